// Package metrics counts pipeline outcomes on a private Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lw"

const (
	StageExport     = "export"
	StageTranscribe = "transcribe"
)

// Recorder is safe for concurrent use.
type Recorder struct {
	registry              *prometheus.Registry
	segments              *prometheus.CounterVec
	transcriptionDuration prometheus.Histogram
	audioDuration         prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		segments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_total",
			Help:      "Segments processed, by stage and outcome.",
		}, []string{"stage", "status"}),
		transcriptionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcription_duration_seconds",
			Help:      "Wall time of one transcription request.",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		audioDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audio_duration_seconds",
			Help:      "Duration of the input audio.",
		}),
	}
	r.registry.MustRegister(r.segments, r.transcriptionDuration, r.audioDuration)
	return r
}

func (r *Recorder) AudioLoaded(duration time.Duration) {
	r.audioDuration.Set(duration.Seconds())
}

func (r *Recorder) SegmentExported(err error) {
	r.segments.WithLabelValues(StageExport, status(err)).Inc()
}

func (r *Recorder) SegmentTranscribed(elapsed time.Duration, err error) {
	r.transcriptionDuration.Observe(elapsed.Seconds())
	r.segments.WithLabelValues(StageTranscribe, status(err)).Inc()
}

// SegmentSkipped counts a segment that never reached the service because its export failed.
func (r *Recorder) SegmentSkipped() {
	r.segments.WithLabelValues(StageTranscribe, "skipped").Inc()
}

// WriteToFile writes all metrics in the text exposition format.
func (r *Recorder) WriteToFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
