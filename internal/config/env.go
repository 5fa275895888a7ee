package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apperrors "long-whisper/internal/app/errors"
)

// EnvAPIKey is the environment variable holding the transcription service key.
const EnvAPIKey = "OPENAI_API_KEY"

var envPaths = []string{
	".env",
	".env.local",
}

// LoadEnv loads environment variables from the first .env file found in the
// working directory. Variables already set in the process win. It returns the
// loaded path, or "" when no file exists.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// GetAPIKey returns the trimmed API key from the environment.
// A key is mandatory only when talking to the default OpenAI endpoint.
func GetAPIKey(baseURL string) (string, error) {
	apiKey := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if apiKey == "" && baseURL == "" {
		return "", apperrors.Wrapf(apperrors.ErrMissingAPIKey, "set %s in the environment or a .env file", EnvAPIKey)
	}
	return apiKey, nil
}
