package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/citation"
)

var bibStyle string

func init() {
	bibliographyCmd.Flags().StringVar(&bibStyle, "style", string(citation.APA), "Citation style (ieee, apa, mla, chicago, bibtex)")
	rootCmd.AddCommand(bibliographyCmd)
}

var bibliographyCmd = &cobra.Command{
	Use:   "bibliography",
	Short: "Format a bibliography of the whole library",
	Long: `Format a reference list covering every document in the user's catalog,
ordered by filename.

Examples:
  sch bibliography --style ieee --human
  sch bibliography --style bibtex --human > refs.bib`,
	Args: cobra.NoArgs,
	RunE: runBibliography,
}

// BibliographyResult is the response for the bibliography command.
type BibliographyResult struct {
	Style        string `json:"style"`
	Count        int    `json:"count"`
	Bibliography string `json:"bibliography"`
}

func runBibliography(cmd *cobra.Command, args []string) error {
	style, err := citation.ParseStyle(bibStyle)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	catalog := mustOpenCatalog(store, user)
	defer catalog.Close()

	docs, err := catalog.List()
	if err != nil {
		exitWithError(ExitError, "reading catalog: %v", err)
	}

	citations := make([]citation.Citation, 0, len(docs))
	for i := range docs {
		citations = append(citations, citationFromDocument(&docs[i]))
	}

	text := citation.Bibliography(citations, style)

	if humanOutput {
		fmt.Println(text)
	} else {
		outputJSON(BibliographyResult{Style: string(style), Count: len(citations), Bibliography: text})
	}
	return nil
}
