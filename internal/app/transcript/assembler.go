// Package transcript assembles per-segment texts into the final transcript file.
package transcript

import (
	"os"
	"strings"

	"github.com/samber/lo"

	"long-whisper/internal/app/model"
)

// Join concatenates entry texts in slice order with a single newline.
// Failed entries contribute an empty line so positions stay aligned with segments.
func Join(entries []model.TranscriptEntry) string {
	texts := lo.Map(entries, func(entry model.TranscriptEntry, _ int) string {
		return entry.Text
	})
	return strings.Join(texts, "\n")
}

// Write stores the joined transcript at path, replacing any existing file.
func Write(path string, entries []model.TranscriptEntry) error {
	return os.WriteFile(path, []byte(Join(entries)), 0644)
}
