package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/config"
	"github.com/scholium/scholium/internal/export"
	"github.com/scholium/scholium/internal/search"
)

var (
	searchSource   string
	searchLimit    int
	searchYearFrom int
	searchYearTo   int
	searchBibFile  string
)

func init() {
	searchCmd.Flags().StringVar(&searchSource, "source", "", "Restrict to one source (s2, arxiv, crossref, openalex)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", search.DefaultLimit, "Maximum results per source")
	searchCmd.Flags().IntVar(&searchYearFrom, "year-from", 0, "Earliest publication year")
	searchCmd.Flags().IntVar(&searchYearTo, "year-to", 0, "Latest publication year")
	searchCmd.Flags().StringVar(&searchBibFile, "bibtex", "", "Append results as BibTeX entries to this file, skipping duplicates")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search academic databases",
	Long: `Search Semantic Scholar, arXiv, CrossRef and OpenAlex for papers
matching a query. Results are grouped by source; a source that fails
is reported alongside the ones that succeed.

Examples:
  sch search "bus bunching control"
  sch search "headway regularity" --source arxiv --year-from 2020 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	multi := newSearchMulti()
	if searchSource != "" {
		var err error
		multi, err = filterSource(multi, searchSource)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	opts := search.Options{
		Limit:    searchLimit,
		YearFrom: searchYearFrom,
		YearTo:   searchYearTo,
	}

	results := multi.Search(context.Background(), args[0], opts)

	if searchBibFile != "" {
		added, err := appendBibEntries(searchBibFile, results)
		if err != nil {
			exitWithError(ExitError, "writing %s: %v", searchBibFile, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "appended %d new entries to %s\n", added, searchBibFile)
	}

	if humanOutput {
		printSearchResults(results)
	} else {
		outputJSON(results)
	}
	return nil
}

// appendBibEntries appends papers not already present in the .bib file.
func appendBibEntries(path string, results []search.Result) (int, error) {
	idx, err := export.ParseBibTeXFile(path)
	if err != nil {
		return 0, err
	}

	var fresh []search.Paper
	for _, r := range results {
		for _, p := range r.Papers {
			key := export.EntryKey(p)
			if idx.HasEntry(key, p.DOI) {
				continue
			}
			idx.Keys[key] = true
			fresh = append(fresh, p)
		}
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	if err := export.AppendToBibFile(path, export.ToBibTeXList(fresh)); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

func newSearchMulti() *search.Multi {
	var s2Opts []search.S2Option
	if key := config.GetS2APIKey(); key != "" {
		s2Opts = append(s2Opts, search.WithS2APIKey(key))
	}
	var crOpts []search.CrossRefOption
	if mailto := config.GetCrossRefMailto(); mailto != "" {
		crOpts = append(crOpts, search.WithCrossRefMailto(mailto))
	}
	return search.NewMulti(
		search.NewS2Client(s2Opts...),
		search.NewArxivClient(),
		search.NewCrossRefClient(crOpts...),
		search.NewOpenAlexClient(),
	)
}

func filterSource(multi *search.Multi, source string) (*search.Multi, error) {
	for _, c := range multi.Clients() {
		if c.Source() == source {
			return search.NewMulti(c), nil
		}
	}
	return nil, fmt.Errorf("unknown source %q (valid: %s)", source, strings.Join(multi.Sources(), ", "))
}

func printSearchResults(results []search.Result) {
	for _, r := range results {
		fmt.Printf("=== %s ===\n", r.Source)
		if r.Error != "" {
			fmt.Printf("  error: %s\n\n", r.Error)
			continue
		}
		if len(r.Papers) == 0 {
			fmt.Println("  no results")
			fmt.Println()
			continue
		}
		for _, p := range r.Papers {
			printPaper(p)
		}
		fmt.Println()
	}
}

func printPaper(p search.Paper) {
	fmt.Printf("  %s\n", truncateString(p.Title, ListTitleMaxLen))
	if len(p.Authors) > 0 {
		fmt.Printf("    %s", formatAuthorsShort(p.Authors, 3))
		if p.Year > 0 {
			fmt.Printf(" (%d)", p.Year)
		}
		fmt.Println()
	}
	if p.Venue != "" {
		fmt.Printf("    %s\n", p.Venue)
	}
	if p.DOI != "" {
		fmt.Printf("    doi: %s\n", p.DOI)
	}
	if p.PDFURL != "" {
		fmt.Printf("    pdf: %s\n", p.PDFURL)
	} else if p.URL != "" {
		fmt.Printf("    %s\n", p.URL)
	}
	if p.Abstract != "" {
		fmt.Printf("    %s\n", truncateString(p.Abstract, AbstractMaxLen))
	}
}
