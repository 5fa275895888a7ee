package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Basename returns the file name of path without directory and extension.
func Basename(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// OutputDir is the per-input directory that holds segments and the transcript.
func OutputDir(root string, basename string) string {
	return filepath.Join(root, basename)
}

func SegmentFileName(basename string, index int) string {
	return fmt.Sprintf("%s_segment_%d.mp3", basename, index)
}

func TranscriptFileName(basename string) string {
	return basename + "_transcript.txt"
}

// EnsureDir creates dir and its parents. It reports whether the directory was
// newly created; an existing directory is not an error.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return false, err
	}
	return true, nil
}
