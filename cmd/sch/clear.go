package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/config"
	"github.com/scholium/scholium/internal/conversation"
)

var clearKeepHistory bool

func init() {
	clearCmd.Flags().BoolVar(&clearKeepHistory, "keep-history", false, "Keep conversation history")
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear-lib",
	Short: "Delete the user's library",
	Long: `Delete the user's stored PDFs, catalog and vector index, and by
default their conversation history as well.

Examples:
  sch clear-lib
  sch clear-lib --keep-history`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	removed, err := store.Clear(user)
	if err != nil {
		exitWithError(ExitError, "clearing library: %v", err)
	}

	if !clearKeepHistory {
		manager, err := conversation.NewManager(config.HistoryPath(root))
		if err != nil {
			exitWithError(ExitError, "opening conversation history: %v", err)
		}
		if _, err := manager.Clear(user); err != nil {
			exitWithError(ExitError, "clearing history: %v", err)
		}
	}

	status := "cleared"
	if !removed {
		status = "no library"
	}
	if humanOutput {
		fmt.Println(status)
	} else {
		outputJSON(StatusResponse{Status: status})
	}
	return nil
}
