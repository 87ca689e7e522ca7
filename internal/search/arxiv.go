package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ArxivBaseURL is the arXiv API query endpoint.
const ArxivBaseURL = "http://export.arxiv.org/api/query"

// arxivRateLimit is 1 request per 3 seconds per arXiv's usage policy.
const arxivRateLimit = 1.0 / 3.0

// ArxivClient is a rate-limited client for the arXiv Atom API.
type ArxivClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ArxivOption configures an ArxivClient.
type ArxivOption func(*ArxivClient)

// WithArxivBaseURL sets a custom base URL (for testing).
func WithArxivBaseURL(url string) ArxivOption {
	return func(c *ArxivClient) {
		c.baseURL = url
	}
}

// WithArxivHTTPClient sets a custom HTTP client.
func WithArxivHTTPClient(hc *http.Client) ArxivOption {
	return func(c *ArxivClient) {
		c.httpClient = hc
	}
}

// NewArxivClient creates an arXiv search client.
func NewArxivClient(opts ...ArxivOption) *ArxivClient {
	c := &ArxivClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(arxivRateLimit), 1),
		baseURL:    ArxivBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the source identifier.
func (c *ArxivClient) Source() string { return "arxiv" }

// atomFeed is the subset of the arXiv Atom response we consume.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
	Links     []atomLink   `xml:"link"`
	DOI       string       `xml:"doi"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// Search queries arXiv for papers matching query.
func (c *ArxivClient) Search(ctx context.Context, query string, opts Options) ([]Paper, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(opts.limit()))
	params.Set("sortBy", "relevance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned status %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}

	papers := make([]Paper, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		paper := Paper{
			Title:    collapseWhitespace(e.Title),
			Abstract: collapseWhitespace(e.Summary),
			Venue:    "arXiv",
			Year:     yearFromTimestamp(e.Published),
			DOI:      e.DOI,
			URL:      e.ID,
			PDFURL:   pdfLink(e),
		}

		names := make([]string, 0, len(e.Authors))
		for _, a := range e.Authors {
			names = append(names, a.Name)
		}
		paper.Authors = truncateAuthors(names, 3)

		// Year filters applied client-side, the API has no year parameter.
		if opts.YearFrom != 0 && paper.Year < opts.YearFrom {
			continue
		}
		if opts.YearTo != 0 && paper.Year > opts.YearTo {
			continue
		}
		papers = append(papers, paper)
	}

	return papers, nil
}

// pdfLink finds the PDF link for an entry, falling back to rewriting the
// abstract URL.
func pdfLink(e atomEntry) string {
	for _, l := range e.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			return l.Href
		}
	}
	if strings.Contains(e.ID, "/abs/") {
		return strings.Replace(e.ID, "/abs/", "/pdf/", 1) + ".pdf"
	}
	return ""
}

// yearFromTimestamp parses the year out of an RFC 3339 timestamp.
func yearFromTimestamp(s string) int {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0
	}
	return t.Year()
}

// collapseWhitespace normalizes the newline-wrapped text arXiv returns.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
