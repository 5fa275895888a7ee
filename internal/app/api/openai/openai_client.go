package openai

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ClientConfig holds what is needed to reach an OpenAI-compatible endpoint.
type ClientConfig struct {
	APIKey string
	// BaseURL overrides the default https://api.openai.com/v1, e.g. for a self-hosted server.
	BaseURL string
	// Timeout bounds each HTTP request. Zero keeps the client default (no timeout).
	Timeout time.Duration
}

// NewClient builds a client for one run. The key is never logged.
func NewClient(cfg ClientConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return openai.NewClientWithConfig(clientConfig)
}
