// Package search queries external academic APIs for papers.
package search

import (
	"context"
	"time"
)

// DefaultLimit is the default number of results per source.
const DefaultLimit = 5

// DefaultTimeout is the default HTTP request timeout for search clients.
const DefaultTimeout = 10 * time.Second

// Paper is a single academic search result.
type Paper struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors,omitempty"`
	Year      int      `json:"year,omitempty"`
	Venue     string   `json:"venue,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	DOI       string   `json:"doi,omitempty"`
	URL       string   `json:"url,omitempty"`
	PDFURL    string   `json:"pdf_url,omitempty"`
	Citations int      `json:"citations,omitempty"`
}

// Options are the common search parameters.
type Options struct {
	Limit    int // results per source; DefaultLimit when <= 0
	YearFrom int // inclusive lower publication-year bound; 0 = unbounded
	YearTo   int // inclusive upper publication-year bound; 0 = unbounded
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

// Client searches one academic source.
type Client interface {
	// Search returns papers matching query. An empty result set is not an
	// error.
	Search(ctx context.Context, query string, opts Options) ([]Paper, error)

	// Source returns the source identifier (e.g. "s2", "arxiv").
	Source() string
}

// truncateAuthors caps an author list for display, appending "et al.".
func truncateAuthors(authors []string, max int) []string {
	if len(authors) <= max {
		return authors
	}
	capped := make([]string, 0, max+1)
	capped = append(capped, authors[:max]...)
	return append(capped, "et al.")
}
