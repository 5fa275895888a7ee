package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTestAudioFile writes a short silent mono 16 kHz WAV into dir and returns its path.
func CreateTestAudioFile(t *testing.T, dir, name string) string {
	t.Helper()

	wavHeader := []byte{
		0x52, 0x49, 0x46, 0x46, // "RIFF"
		0x24, 0x08, 0x00, 0x00, // file size
		0x57, 0x41, 0x56, 0x45, // "WAVE"
		0x66, 0x6D, 0x74, 0x20, // "fmt "
		0x10, 0x00, 0x00, 0x00, // chunk size
		0x01, 0x00, // PCM
		0x01, 0x00, // mono
		0x80, 0x3E, 0x00, 0x00, // 16000 Hz
		0x00, 0x7D, 0x00, 0x00, // byte rate
		0x02, 0x00, // block align
		0x10, 0x00, // bits per sample
		0x64, 0x61, 0x74, 0x61, // "data"
		0x00, 0x08, 0x00, 0x00, // data size
	}
	data := append(wavHeader, make([]byte, 2048)...)

	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		t.Fatalf("Failed to create test audio file: %v", err)
	}
	return fullPath
}
