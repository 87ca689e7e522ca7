package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/citation"
	"github.com/scholium/scholium/internal/clipboard"
	"github.com/scholium/scholium/internal/library"
)

var (
	citeStyle  string
	citePage   int
	citeInline bool
	citeCopy   bool
)

func init() {
	citeCmd.Flags().StringVar(&citeStyle, "style", string(citation.APA), "Citation style (ieee, apa, mla, chicago, bibtex)")
	citeCmd.Flags().IntVar(&citePage, "page", 0, "Page number to cite")
	citeCmd.Flags().BoolVar(&citeInline, "inline", false, "Emit the short in-text form instead of a full reference")
	citeCmd.Flags().BoolVar(&citeCopy, "copy", false, "Also copy the citation to the clipboard")
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite <filename>",
	Short: "Format a citation for a library document",
	Long: `Format a bibliographic reference for an ingested document using its
extracted metadata.

Examples:
  sch cite bartholdi2012.pdf --style ieee
  sch cite bartholdi2012.pdf --style apa --page 12 --inline`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

// CiteResult is the response for the cite command.
type CiteResult struct {
	Filename string `json:"filename"`
	Style    string `json:"style"`
	Citation string `json:"citation"`
}

func runCite(cmd *cobra.Command, args []string) error {
	style, err := citation.ParseStyle(citeStyle)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	catalog := mustOpenCatalog(store, user)
	defer catalog.Close()

	doc, err := catalog.Get(args[0])
	if err != nil {
		exitWithError(ExitError, "reading catalog: %v", err)
	}
	if doc == nil {
		exitWithError(ExitDataError, "document %q is not in the catalog", args[0])
	}

	cite := citationFromDocument(doc)
	cite.Page = citePage

	var formatted string
	if citeInline {
		formatted = cite.Inline(style)
	} else {
		formatted = cite.Format(style)
	}

	if citeCopy {
		if err := clipboard.Copy(formatted); err != nil {
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
	}

	if humanOutput {
		fmt.Println(formatted)
	} else {
		outputJSON(CiteResult{Filename: doc.Filename, Style: string(style), Citation: formatted})
	}
	return nil
}

func citationFromDocument(doc *library.Document) citation.Citation {
	title := doc.Title
	if title == "" {
		title = doc.Filename
	}
	return citation.Citation{
		Title:   title,
		Authors: doc.Authors,
		Year:    doc.Year,
		Journal: doc.Journal,
		DOI:     doc.DOI,
	}
}
