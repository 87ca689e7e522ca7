package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics",
	Long: `Show the user's library statistics: stored PDFs, catalog entries,
indexed passages and total size on disk.

Examples:
  sch stats --human`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// StatsResult is the response for the stats command.
type StatsResult struct {
	UserID    string   `json:"user_id"`
	PDFCount  int      `json:"pdf_count"`
	Documents int      `json:"documents"`
	Passages  int      `json:"passages"`
	TotalSize int64    `json:"total_size"`
	HasIndex  bool     `json:"has_index"`
	PDFNames  []string `json:"pdf_names"`
}

func runStats(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	stats, err := store.Stats(user)
	if err != nil {
		exitWithError(ExitError, "reading library stats: %v", err)
	}

	catalog := mustOpenCatalog(store, user)
	defer catalog.Close()
	docs, err := catalog.Count()
	if err != nil {
		exitWithError(ExitError, "reading catalog: %v", err)
	}

	passages := 0
	if stats.HasIndex {
		provider := newEmbeddingProvider(cfg)
		vs := mustOpenVector(store, user, provider)
		passages = vs.Count()
	}

	result := StatsResult{
		UserID:    user,
		PDFCount:  stats.PDFCount,
		Documents: docs,
		Passages:  passages,
		TotalSize: stats.TotalSize,
		HasIndex:  stats.HasIndex,
		PDFNames:  stats.PDFNames,
	}
	if result.PDFNames == nil {
		result.PDFNames = []string{}
	}

	if humanOutput {
		fmt.Printf("User:      %s\n", result.UserID)
		fmt.Printf("PDFs:      %d (%s)\n", result.PDFCount, formatBytes(result.TotalSize))
		fmt.Printf("Cataloged: %d\n", result.Documents)
		fmt.Printf("Passages:  %d\n", result.Passages)
		if len(result.PDFNames) > 0 {
			fmt.Printf("Files:     %s\n", strings.Join(result.PDFNames, ", "))
		}
	} else {
		outputJSON(result)
	}
	return nil
}
