package app

import (
	"context"

	"long-whisper/internal/app/api"
	"long-whisper/internal/app/api/openai"
	"long-whisper/internal/app/api/openai/whisper"
	"long-whisper/internal/app/audio"
	"long-whisper/internal/app/converter"
	"long-whisper/internal/app/metrics"
	"long-whisper/internal/app/repository"
	"long-whisper/internal/app/repository/sqlite"
	"long-whisper/internal/config"
)

func provideLoader(cfg *config.Config, runner audio.CommandRunner) converter.Loader {
	return audio.NewLoader(cfg.FFprobePath, runner)
}

func provideExporter(cfg *config.Config, runner audio.CommandRunner) converter.Exporter {
	return audio.NewExporter(cfg.FFmpegPath, cfg.Bitrate, runner)
}

// provideTranscriber talks to OpenAI, or to any compatible server when BaseURL is set.
func provideTranscriber(cfg *config.Config) api.Transcriber {
	client := openai.NewClient(openai.ClientConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
	})
	return whisper.NewRemoteTranscriber(client, whisper.Options{
		Model:    cfg.Model,
		Language: cfg.Language,
		Prompt:   cfg.Prompt,
	})
}

func provideRecorder() *metrics.Recorder {
	return metrics.NewRecorder()
}

// provideRunDAO returns nil when no ledger path is configured.
func provideRunDAO(cfg *config.Config) (repository.RunDAO, error) {
	if cfg.RecordDB == "" {
		return nil, nil
	}
	db, err := sqlite.Open(context.Background(), cfg.RecordDB)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func provideOptions(cfg *config.Config) converter.Options {
	return converter.Options{
		ChunkLengthMs: cfg.ChunkLengthMs(),
		Workers:       cfg.Workers,
		MetricsFile:   cfg.MetricsFile,
		ShowProgress:  converter.ShouldShowProgress(cfg.Progress),
	}
}
