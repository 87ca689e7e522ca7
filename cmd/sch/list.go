package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/library"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Long: `List all documents in the user's library catalog.

Examples:
  sch list
  sch list --human`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	catalog := mustOpenCatalog(store, user)
	defer catalog.Close()

	docs, err := catalog.List()
	if err != nil {
		exitWithError(ExitError, "listing documents: %v", err)
	}

	if humanOutput {
		if len(docs) == 0 {
			fmt.Println("No documents in library")
		} else {
			fmt.Printf("%d documents in library:\n\n", len(docs))
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

func printDocSummary(doc library.Document) {
	fmt.Printf("%s\n", doc.Filename)
	fmt.Printf("    %s\n", truncateString(doc.Title, ListTitleMaxLen))
	if len(doc.Authors) > 0 {
		fmt.Printf("    %s\n", formatAuthorsShort(doc.Authors, 3))
	}
	if doc.Journal != "" && doc.Year != 0 {
		fmt.Printf("    %s (%d)\n", doc.Journal, doc.Year)
	} else if doc.Year != 0 {
		fmt.Printf("    (%d)\n", doc.Year)
	}
	fmt.Println()
}
