package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"long-whisper/internal/app"
	apperrors "long-whisper/internal/app/errors"
	"long-whisper/internal/app/util/files"
)

// newPlanCmd prints the segments a run would produce without exporting or transcribing.
func newPlanCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <audio-file>",
		Short: "Show how an audio file would be segmented",
		Args:  cobra.MaximumNArgs(1),
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

			planner := app.InitializePlanner(cfg, newRunner(), logger)
			defer planner.Close()

			decoded, segments, err := planner.Plan(cmd.Context(), args[0])
			if err != nil {
				logger.Error("Failed to load audio file", zap.Error(err))
				return err
			}

			basename := files.Basename(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s, %d segment(s)\n", args[0], decoded.Duration(), len(segments))
			for _, seg := range segments {
				fmt.Fprintf(out, "  %-28s %s %s\n",
					filepath.Join(basename, files.SegmentFileName(basename, seg.Index)), seg, seg.Duration())
			}
			fmt.Fprintf(out, "  %s\n", filepath.Join(basename, files.TranscriptFileName(basename)))
			return nil
		}),
	}
}
