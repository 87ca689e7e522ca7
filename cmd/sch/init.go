package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new scholium library",
	Long: `Initialize a new scholium library in the current directory.

Creates:
  .scholium/
  ├── config.json      # Default config
  ├── store/           # Per-user PDFs, catalogs, and vector indexes
  ├── summaries/       # Generated document summaries
  └── conversations/   # Question/answer history`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	if envRoot := os.Getenv("SCHOLIUM_ROOT"); envRoot != "" {
		root = envRoot
	}

	if config.IsLibrary(root) {
		exitWithError(ExitError, "directory already contains a scholium library")
	}

	for _, dir := range []string{
		config.ScholiumPath(root),
		config.StorePath(root),
		config.SummaryPath(root),
		config.HistoryPath(root),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			exitWithError(ExitError, "creating %s: %v", dir, err)
		}
	}

	cfg := &config.Config{
		EmbedProvider: "ollama",
		PDFReader:     "system",
	}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized scholium library in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
