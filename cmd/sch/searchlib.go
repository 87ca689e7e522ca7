package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/library"
)

var searchLibLimit int

func init() {
	searchLibCmd.Flags().IntVar(&searchLibLimit, "limit", 20, "Maximum results to return")
	rootCmd.AddCommand(searchLibCmd)
}

var searchLibCmd = &cobra.Command{
	Use:   "search-lib <query>",
	Short: "Search the catalog by keyword",
	Long: `Search ingested documents by keyword over titles, authors, journals,
and abstracts.

Examples:
  sch search-lib "bus rapid transit"
  sch search-lib Smith --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearchLib,
}

func runSearchLib(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	catalog := mustOpenCatalog(store, user)
	defer catalog.Close()

	docs, err := catalog.Search(args[0], searchLibLimit)
	if err != nil {
		exitWithError(ExitError, "searching catalog: %v", err)
	}

	if humanOutput {
		if len(docs) == 0 {
			fmt.Println("No documents found")
		} else {
			fmt.Printf("Found %d documents:\n\n", len(docs))
			for _, doc := range docs {
				printDocSummary(doc)
			}
		}
	} else {
		if docs == nil {
			docs = []library.Document{}
		}
		outputJSON(docs)
	}

	return nil
}
