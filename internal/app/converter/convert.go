package converter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"long-whisper/internal/app/api"
	"long-whisper/internal/app/audio"
	apperrors "long-whisper/internal/app/errors"
	"long-whisper/internal/app/metrics"
	"long-whisper/internal/app/model"
	"long-whisper/internal/app/repository"
	"long-whisper/internal/app/transcript"
	"long-whisper/internal/app/util/files"
)

// Loader turns an input path into probed audio.
type Loader interface {
	Load(ctx context.Context, path string) (*model.DecodedAudio, error)
}

// Exporter writes one segment of the source to disk.
type Exporter interface {
	Export(ctx context.Context, src *model.DecodedAudio, seg model.Segment, dir string, basename string) model.ExportedFile
}

// Options are the run parameters that do not belong to a collaborator.
type Options struct {
	ChunkLengthMs int64
	// Workers bounds concurrent transcription requests. 1 keeps segments strictly sequential.
	Workers int
	// OutputRoot is where the per-input directory is created. Empty means the working directory.
	OutputRoot     string
	MetricsFile    string
	ShowProgress   bool
	ProgressWriter io.Writer
}

type Converter struct {
	loader      Loader
	exporter    Exporter
	transcriber api.Transcriber
	recorder    *metrics.Recorder
	db          repository.RunDAO
	logger      *zap.Logger
	options     Options
}

// Result describes a finished run. Entries has one element per segment, in segment order.
type Result struct {
	RunID          string
	OutputDir      string
	TranscriptPath string
	Audio          *model.DecodedAudio
	Segments       []model.Segment
	Exported       []model.ExportedFile
	Entries        []model.TranscriptEntry
}

// Failed counts the segments whose transcript degraded to an empty line.
func (r *Result) Failed() int {
	return lo.CountBy(r.Entries, func(entry model.TranscriptEntry) bool {
		return entry.Failed()
	})
}

// NewConverter wires the pipeline. db may be nil to disable the run ledger.
func NewConverter(loader Loader, exporter Exporter, transcriber api.Transcriber, recorder *metrics.Recorder,
	db repository.RunDAO, logger *zap.Logger, options Options) *Converter {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.Workers < 1 {
		options.Workers = 1
	}
	return &Converter{
		loader:      loader,
		exporter:    exporter,
		transcriber: transcriber,
		recorder:    recorder,
		db:          db,
		logger:      logger,
		options:     options,
	}
}

// NewPlanner builds a Converter that can only Plan. It never exports or transcribes.
func NewPlanner(loader Loader, logger *zap.Logger, options Options) *Converter {
	return NewConverter(loader, nil, nil, nil, nil, logger, options)
}

func (c *Converter) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Plan loads the input and returns the segments a run would produce, without side effects.
func (c *Converter) Plan(ctx context.Context, inputPath string) (*model.DecodedAudio, []model.Segment, error) {
	decoded, err := c.loader.Load(ctx, inputPath)
	if err != nil {
		return nil, nil, err
	}
	return decoded, audio.Split(decoded.DurationMs, c.options.ChunkLengthMs), nil
}

// Do runs load, split, export, transcribe and assemble for one input file.
// Only load and output-directory failures are returned; per-segment failures are
// recorded in the result and leave an empty line in the transcript.
func (c *Converter) Do(ctx context.Context, inputPath string) (*Result, error) {
	runID := uuid.NewString()
	logger := c.logger.With(zap.String("run_id", runID))
	startedAt := time.Now()

	logger.Info("Processing file", zap.String("path", inputPath))

	decoded, err := c.loader.Load(ctx, inputPath)
	if err != nil {
		logger.Error("Failed to load audio file", zap.Error(err))
		return nil, err
	}
	logger.Info("Audio file loaded",
		zap.Duration("duration", decoded.Duration()),
		zap.String("codec", decoded.Codec))
	c.recorder.AudioLoaded(decoded.Duration())

	segments := audio.Split(decoded.DurationMs, c.options.ChunkLengthMs)
	logger.Debug("Segments planned", zap.Int("count", len(segments)), zap.Int64("chunk_ms", c.options.ChunkLengthMs))

	basename := files.Basename(inputPath)
	outputDir, err := c.prepareOutputDir(logger, basename)
	if err != nil {
		return nil, err
	}

	c.startRun(ctx, logger, model.Run{ID: runID, InputPath: inputPath, OutputDir: outputDir, StartedAt: startedAt})

	exported := c.exportSegments(ctx, logger, decoded, segments, outputDir, basename)
	entries := c.transcribeSegments(ctx, logger, runID, basename, exported)

	result := &Result{
		RunID:          runID,
		OutputDir:      outputDir,
		TranscriptPath: filepath.Join(outputDir, files.TranscriptFileName(basename)),
		Audio:          decoded,
		Segments:       segments,
		Exported:       exported,
		Entries:        entries,
	}

	if err := transcript.Write(result.TranscriptPath, entries); err != nil {
		logger.Error("Failed to save transcript", zap.String("path", result.TranscriptPath), zap.Error(err))
		return result, apperrors.Wrap(err, "failed to save transcript")
	}
	logger.Info("Full transcript saved",
		zap.String("path", result.TranscriptPath),
		zap.Int("segments", len(segments)),
		zap.Int("failed", result.Failed()))

	c.finishRun(ctx, logger, runID, len(segments), result.Failed())
	c.writeMetrics(logger)
	return result, nil
}

func (c *Converter) prepareOutputDir(logger *zap.Logger, basename string) (string, error) {
	root := c.options.OutputRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			logger.Error("Failed to resolve working directory", zap.Error(err))
			return "", apperrors.Mark(err, apperrors.ErrOutputDir)
		}
		root = wd
	}

	outputDir := files.OutputDir(root, basename)
	created, err := files.EnsureDir(outputDir)
	if err != nil {
		logger.Error("Failed to create output directory", zap.String("dir", outputDir), zap.Error(err))
		return "", apperrors.Mark(err, apperrors.ErrOutputDir)
	}
	logger.Info("Output directory created", zap.String("dir", outputDir), zap.Bool("existed", !created))
	return outputDir, nil
}

func (c *Converter) exportSegments(ctx context.Context, logger *zap.Logger, decoded *model.DecodedAudio,
	segments []model.Segment, outputDir, basename string) []model.ExportedFile {
	exported := make([]model.ExportedFile, 0, len(segments))
	for _, seg := range segments {
		logger.Info("Processing segment", zap.Int("segment", seg.Index),
			zap.Int64("start_ms", seg.StartMs), zap.Int64("end_ms", seg.EndMs))

		file := c.exporter.Export(ctx, decoded, seg, outputDir, basename)
		c.recorder.SegmentExported(file.Err)
		if file.Err != nil {
			logger.Error("Segment export failed", zap.Int("segment", seg.Index), zap.Error(file.Err))
		} else {
			logger.Info("Segment saved", zap.Int("segment", seg.Index), zap.String("path", file.Path))
		}
		exported = append(exported, file)
	}
	return exported
}

func (c *Converter) transcribeSegments(ctx context.Context, logger *zap.Logger, runID, basename string,
	exported []model.ExportedFile) []model.TranscriptEntry {
	entries := make([]model.TranscriptEntry, len(exported))
	if len(exported) == 0 {
		return entries
	}

	pm := NewProgressManager(ProgressConfig{Enabled: c.options.ShowProgress, Writer: c.options.ProgressWriter})
	bar := pm.CreateBar(len(exported), FormatProgressDescription("Transcribing", basename))
	defer pm.Wait()
	defer bar.Complete()

	if c.options.Workers == 1 {
		for i, file := range exported {
			entries[i] = c.transcribeOne(ctx, logger, runID, file)
			bar.Increment()
		}
		return entries
	}

	// entries[i] is only written by the goroutine for segment i, so no lock is needed
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.options.Workers)
	for i, file := range exported {
		wg.Add(1)
		go func(i int, file model.ExportedFile) {
			defer wg.Done()
			defer bar.Increment()

			sem <- struct{}{}
			entries[i] = c.transcribeOne(ctx, logger, runID, file)
			<-sem
		}(i, file)
	}
	wg.Wait()
	return entries
}

func (c *Converter) transcribeOne(ctx context.Context, logger *zap.Logger, runID string, file model.ExportedFile) model.TranscriptEntry {
	index := file.Segment.Index

	var entry model.TranscriptEntry
	if file.Err != nil {
		// nothing usable on disk for this segment
		entry = model.TranscriptEntry{Index: index, Err: apperrors.Mark(file.Err, apperrors.ErrTranscriptionFailed)}
		c.recorder.SegmentSkipped()
		logger.Error("Transcription failed for segment", zap.Int("segment", index), zap.Error(entry.Err))
	} else {
		logger.Info("Starting transcription for segment", zap.Int("segment", index))
		start := time.Now()
		text, err := c.transcriber.Transcript(ctx, file.Path)
		elapsed := time.Since(start)
		c.recorder.SegmentTranscribed(elapsed, err)

		if err != nil {
			entry = model.TranscriptEntry{Index: index, Err: apperrors.Mark(err, apperrors.ErrTranscriptionFailed)}
			logger.Error("Transcription failed for segment", zap.Int("segment", index), zap.Error(entry.Err))
		} else {
			entry = model.TranscriptEntry{Index: index, Text: text}
			logger.Info("Transcription completed for segment", zap.Int("segment", index),
				zap.Duration("elapsed", elapsed), zap.Int("chars", len(text)))
			if text == "" {
				logger.Debug("Service returned an empty transcript", zap.Int("segment", index))
			}
		}
	}

	c.recordSegment(ctx, logger, runID, file, entry)
	return entry
}
