package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/config"
	"github.com/scholium/scholium/internal/pdf"
	"github.com/scholium/scholium/internal/summary"
)

var summarizeRefresh bool

func init() {
	summarizeCmd.Flags().BoolVar(&summarizeRefresh, "refresh", false, "Regenerate even when a cached summary exists")
	rootCmd.AddCommand(summarizeCmd)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <filename>",
	Short: "Summarize a library document",
	Long: `Generate a structured summary of an ingested document: overview, key
findings, methodology and conclusions. Summaries are cached, so a
second run returns instantly unless --refresh is given.

Examples:
  sch summarize bartholdi2012.pdf --human
  sch summarize bartholdi2012.pdf --refresh`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	filename := args[0]

	client := newLLMClient(cfg)
	summarizer, err := summary.New(config.SummaryPath(root), client)
	if err != nil {
		exitWithError(ExitError, "opening summary store: %v", err)
	}

	var sum *summary.Summary
	if !summarizeRefresh {
		sum, err = summarizer.Get(filename)
		if err != nil {
			exitWithError(ExitError, "reading cached summary: %v", err)
		}
	}

	if sum == nil {
		dir, err := store.PDFDir(user)
		if err != nil {
			exitWithError(ExitError, "locating user library: %v", err)
		}
		doc, err := pdf.Open(filepath.Join(dir, filename))
		if err != nil {
			exitWithError(ExitDataError, "opening %s: %v", filename, err)
		}
		pages := doc.PageTexts(0)
		doc.Close()

		sum, err = summarizer.Generate(context.Background(), filename, pages)
		if err != nil {
			exitWithError(ExitError, "generating summary: %v", err)
		}
	}

	if humanOutput {
		fmt.Println(summary.Format(sum))
	} else {
		outputJSON(sum)
	}
	return nil
}
