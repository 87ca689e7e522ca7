package main

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/pdf"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <filename>",
	Short: "Open a stored PDF in a viewer",
	Long: `Open a PDF from the user's library with the configured reader, or the
platform default when none is configured.

Examples:
  sch open bartholdi2012.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	dir, err := store.PDFDir(user)
	if err != nil {
		exitWithError(ExitError, "locating user library: %v", err)
	}
	path := filepath.Join(dir, args[0])

	if reader := cfg.PDFReader; reader != "" && reader != "system" {
		err = exec.Command(reader, path).Start()
	} else {
		err = pdf.OpenInViewer(path)
	}
	if err != nil {
		exitWithError(ExitError, "opening PDF: %v", err)
	}

	if humanOutput {
		fmt.Printf("Opened %s\n", args[0])
	} else {
		outputJSON(StatusResponse{Status: "opened", Path: path})
	}
	return nil
}
