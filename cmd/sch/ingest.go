package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/chunk"
	"github.com/scholium/scholium/internal/library"
	"github.com/scholium/scholium/internal/metadata"
	"github.com/scholium/scholium/internal/pdf"
	"github.com/scholium/scholium/internal/vector"
)

func init() {
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <pdf>...",
	Short: "Ingest PDFs into the library",
	Long: `Ingest one or more PDFs: copy them into the library, extract their
bibliographic metadata, and index their text for retrieval.

Re-ingesting a file replaces its indexed content instead of duplicating it.

Examples:
  sch ingest paper.pdf
  sch ingest papers/*.pdf --user alice`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

// IngestResult is the per-file response for the ingest command.
type IngestResult struct {
	Filename string          `json:"filename"`
	Record   metadata.Record `json:"record"`
	Pages    int             `json:"pages"`
	Chunks   int             `json:"chunks"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	catalog := mustOpenCatalog(store, user)
	defer catalog.Close()

	provider := newEmbeddingProvider(cfg)
	vs := mustOpenVector(store, user, provider)

	extractor := metadata.New()
	splitter := chunk.NewSplitter()
	ctx := context.Background()

	var bar *progressbar.ProgressBar
	if humanOutput {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetDescription("Ingesting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	results := make([]IngestResult, 0, len(args))
	for _, arg := range args {
		if bar != nil {
			bar.Describe("Ingesting " + filepath.Base(arg))
		}

		result, err := ingestOne(ctx, arg, store, catalog, vs, extractor, splitter, user)
		if err != nil {
			exitWithError(ExitDataError, "ingesting %s: %v", arg, err)
		}
		results = append(results, result)

		if bar != nil {
			bar.Add(1)
		}
	}

	if humanOutput {
		for _, r := range results {
			fmt.Printf("%s\n", r.Filename)
			fmt.Printf("  Title:   %s\n", r.Record.Title)
			if r.Record.HasAuthors() {
				fmt.Printf("  Authors: %s\n", formatAuthorsShort(r.Record.Authors, 3))
			}
			if r.Record.Year != 0 {
				fmt.Printf("  Year:    %d\n", r.Record.Year)
			}
			fmt.Printf("  Indexed: %d chunks from %d pages\n\n", r.Chunks, r.Pages)
		}
	} else {
		outputJSON(results)
	}

	return nil
}

func ingestOne(ctx context.Context, path string, store *library.Store, catalog *library.Catalog, vs *vector.Store, extractor *metadata.Extractor, splitter *chunk.Splitter, user string) (IngestResult, error) {
	stored, err := store.ImportPDF(user, path)
	if err != nil {
		return IngestResult{}, err
	}

	doc, err := pdf.Open(stored)
	if err != nil {
		return IngestResult{}, err
	}
	defer doc.Close()

	rec := extractor.Extract(doc)
	pages := doc.PageTexts(0)
	chunks := splitter.SplitPages(rec.Filename, pages)

	if err := vs.Add(ctx, chunks, rec); err != nil {
		return IngestResult{}, fmt.Errorf("indexing: %w", err)
	}
	if err := catalog.Upsert(rec, len(pages), len(chunks)); err != nil {
		return IngestResult{}, fmt.Errorf("cataloging: %w", err)
	}

	return IngestResult{
		Filename: rec.Filename,
		Record:   rec,
		Pages:    len(pages),
		Chunks:   len(chunks),
	}, nil
}
