package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"long-whisper/cmd/lw/cmd/version"
	"long-whisper/internal/app"
	"long-whisper/internal/app/audio"
	"long-whisper/internal/app/common"
	apperrors "long-whisper/internal/app/errors"
	"long-whisper/internal/config"
)

const missingInputMessage = "You must provide the path to the audio file as an argument"

// swapped in tests
var (
	newLogger = common.NewLogger
	newRunner = audio.NewExecRunner
)

// loggedError is a fatal error that a command already logged.
type loggedError struct {
	error
}

func (e loggedError) Unwrap() error {
	return e.error
}

// logged wraps a RunE whose failures are logged where they happen.
func logged(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := run(cmd, args); err != nil {
			return loggedError{err}
		}
		return nil
	}
}

type flags struct {
	verbose     bool
	configPath  string
	chunkLength time.Duration
	model       string
	language    string
	prompt      string
	baseURL     string
	workers     int
	bitrate     string
	recordDB    string
	metricsFile string
	progress    bool
}

// NewRootCmd builds the lw command tree.
func NewRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "lw <audio-file>",
		Short: "Transcribe a long audio file in 10 minute segments",
		Long: `Transcribe a long audio file with a remote speech-to-text service.

- The input is cut into fixed-length segments (10 minutes by default)
- Each segment is exported as ./<name>/<name>_segment_<i>.mp3
- Segment transcripts are joined, one per line, into ./<name>/<name>_transcript.txt
- A segment that fails to transcribe leaves an empty line; the run continues`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: logged(func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(f.verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if len(args) == 0 {
				logger.Error(missingInputMessage)
				return apperrors.ErrMissingInput
			}

			cfg, err := f.resolveConfig(cmd)
			if err != nil {
				logger.Error("Invalid configuration", zap.Error(err))
				return err
			}
			if cfg.APIKey, err = config.GetAPIKey(cfg.BaseURL); err != nil {
				logger.Error("Missing API key", zap.Error(err))
				return err
			}

			return transcribe(cmd.Context(), cfg, logger, args[0])
		}),
	}

	rootCmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&f.configPath, "config", "", "YAML config file; flags override its values")
	rootCmd.PersistentFlags().DurationVar(&f.chunkLength, "chunk-length", audio.DefaultChunkLength, "segment length")
	rootCmd.PersistentFlags().StringVar(&f.bitrate, "bitrate", "", "mp3 bitrate of exported segments, e.g. 64k")
	rootCmd.PersistentFlags().StringVar(&f.model, "model", config.DefaultModel, "transcription model")
	rootCmd.Flags().StringVar(&f.language, "language", "", "ISO-639-1 language hint")
	rootCmd.Flags().StringVar(&f.prompt, "prompt", "", "prompt passed with every segment")
	rootCmd.Flags().StringVar(&f.baseURL, "base-url", "", "OpenAI-compatible API base URL")
	rootCmd.Flags().IntVar(&f.workers, "workers", config.DefaultWorkers, "concurrent transcription requests")
	rootCmd.Flags().StringVar(&f.recordDB, "db", "", "sqlite file recording runs and segment outcomes")
	rootCmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	rootCmd.Flags().BoolVar(&f.progress, "progress", false, "show progress bars even without a terminal")

	rootCmd.AddCommand(newPlanCmd(f))
	rootCmd.AddCommand(version.Cmd)
	return rootCmd
}

// Execute runs the root command and exits with status 1 on any fatal error.
func Execute() {
	if err := execute(NewRootCmd(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute logs the errors cobra reports itself, such as bad arguments or unknown flags.
func execute(root *cobra.Command, args []string) error {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return nil
	}

	var handled loggedError
	if !errors.As(err, &handled) {
		if logger, lerr := newLogger(false); lerr == nil {
			logger.Error("Invalid command line", zap.Error(err))
			logger.Sync()
		}
	}
	return err
}

// resolveConfig layers defaults, the optional YAML file and explicitly set flags.
func (f *flags) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("chunk-length") {
		cfg.ChunkLength = f.chunkLength
	}
	if changed("model") {
		cfg.Model = f.model
	}
	if changed("language") {
		cfg.Language = f.language
	}
	if changed("prompt") {
		cfg.Prompt = f.prompt
	}
	if changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("bitrate") {
		cfg.Bitrate = f.bitrate
	}
	if changed("db") {
		cfg.RecordDB = f.recordDB
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if changed("progress") {
		cfg.Progress = f.progress
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func transcribe(ctx context.Context, cfg *config.Config, logger *zap.Logger, inputPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	converter, err := app.InitializeConverter(cfg, newRunner(), logger)
	if err != nil {
		logger.Error("Failed to initialize", zap.Error(err))
		return err
	}
	defer converter.Close()

	result, err := converter.Do(ctx, inputPath)
	if err != nil {
		return err
	}

	if failed := result.Failed(); failed > 0 {
		logger.Warn("Some segments could not be transcribed",
			zap.Int("failed", failed),
			zap.Int("segments", len(result.Entries)))
	}
	return nil
}
