package whisper

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"long-whisper/internal/app/api"
)

// Options tunes the transcription request. Zero values use the service defaults.
type Options struct {
	Model    string
	Language string
	Prompt   string
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client  *openai.Client
	options Options
}

var _ api.Transcriber = (*RemoteTranscriber)(nil)

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, options Options) *RemoteTranscriber {
	if options.Model == "" {
		options.Model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, options: options}
}

// Transcript uploads the file and returns the "text" field of the JSON response.
// The client opens and closes the file itself, so a missing file surfaces here.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	req := openai.AudioRequest{
		Model:    rt.options.Model,
		FilePath: inputFilePath,
		Language: rt.options.Language,
		Prompt:   rt.options.Prompt,
		Format:   openai.AudioResponseFormatJSON,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}

	return resp.Text, nil
}

// Model reports the model identifier sent with every request.
func (rt *RemoteTranscriber) Model() string {
	return rt.options.Model
}
