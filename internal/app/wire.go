//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"long-whisper/internal/app/audio"
	"long-whisper/internal/app/converter"
	"long-whisper/internal/config"
)

func InitializeConverter(cfg *config.Config, runner audio.CommandRunner, logger *zap.Logger) (*converter.Converter, error) {
	wire.Build(
		provideLoader,
		provideExporter,
		provideTranscriber,
		provideRecorder,
		provideRunDAO,
		provideOptions,
		converter.NewConverter,
	)
	return &converter.Converter{}, nil
}

func InitializePlanner(cfg *config.Config, runner audio.CommandRunner, logger *zap.Logger) *converter.Converter {
	wire.Build(provideLoader, provideOptions, converter.NewPlanner)
	return &converter.Converter{}
}
