package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/metadata"
	"github.com/scholium/scholium/internal/pdf"
)

func init() {
	rootCmd.AddCommand(metadataCmd)
}

var metadataCmd = &cobra.Command{
	Use:   "metadata <pdf>",
	Short: "Extract bibliographic metadata from a PDF",
	Long: `Extract bibliographic metadata (title, authors, year, journal, DOI,
abstract) from a PDF without ingesting it.

Embedded document metadata is preferred; missing fields are recovered from
the first page's text.

Examples:
  sch metadata paper.pdf
  sch metadata paper.pdf --human`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadata,
}

func runMetadata(cmd *cobra.Command, args []string) error {
	doc, err := pdf.Open(args[0])
	if err != nil {
		exitWithError(ExitDataError, "opening %s: %v", args[0], err)
	}
	defer doc.Close()

	rec := metadata.New().Extract(doc)

	if humanOutput {
		fmt.Printf("Title:    %s\n", rec.Title)
		if rec.HasAuthors() {
			fmt.Printf("Authors:  %s\n", strings.Join(rec.Authors, "; "))
		}
		if rec.Year != 0 {
			fmt.Printf("Year:     %d\n", rec.Year)
		}
		if rec.Journal != "" {
			fmt.Printf("Journal:  %s\n", rec.Journal)
		}
		if rec.DOI != "" {
			fmt.Printf("DOI:      %s\n", rec.DOI)
		}
		if rec.Abstract != "" {
			fmt.Printf("Abstract: %s\n", truncateString(rec.Abstract, AbstractMaxLen))
		}
	} else {
		outputJSON(rec)
	}

	return nil
}
