package main

import (
	"fmt"
	"os"

	"long-whisper/cmd/lw/cmd"
	"long-whisper/internal/config"
)

func main() {
	// .env is optional; variables already in the environment take precedence
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
