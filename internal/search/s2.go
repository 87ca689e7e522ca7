package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"golang.org/x/time/rate"
)

const (
	// S2BaseURL is the Semantic Scholar Academic Graph API base URL.
	S2BaseURL = "https://api.semanticscholar.org/graph/v1"

	// s2RateLimit is 1 request per second for unauthenticated access.
	s2RateLimit = 1.0

	// s2PaperFields are the fields requested for paper search.
	s2PaperFields = "title,authors,year,venue,citationCount,abstract,url,externalIds,openAccessPdf"
)

// S2Client is a rate-limited client for the Semantic Scholar paper search API.
type S2Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// S2Option configures an S2Client.
type S2Option func(*S2Client)

// WithS2APIKey sets the API key for authenticated requests.
func WithS2APIKey(key string) S2Option {
	return func(c *S2Client) {
		c.apiKey = key
	}
}

// WithS2BaseURL sets a custom base URL (for testing).
func WithS2BaseURL(url string) S2Option {
	return func(c *S2Client) {
		c.baseURL = url
	}
}

// WithS2HTTPClient sets a custom HTTP client.
func WithS2HTTPClient(hc *http.Client) S2Option {
	return func(c *S2Client) {
		c.httpClient = hc
	}
}

// NewS2Client creates a Semantic Scholar search client.
func NewS2Client(opts ...S2Option) *S2Client {
	c := &S2Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(s2RateLimit), 1),
		baseURL:    S2BaseURL,
	}

	if key := os.Getenv("S2_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the source identifier.
func (c *S2Client) Source() string { return "s2" }

// s2SearchResponse is the paper search response envelope.
type s2SearchResponse struct {
	Total int       `json:"total"`
	Data  []s2Paper `json:"data"`
}

type s2Paper struct {
	PaperID       string     `json:"paperId"`
	Title         string     `json:"title"`
	Abstract      string     `json:"abstract"`
	Venue         string     `json:"venue"`
	Year          int        `json:"year"`
	CitationCount int        `json:"citationCount"`
	URL           string     `json:"url"`
	Authors       []s2Author `json:"authors"`
	ExternalIDs   struct {
		DOI string `json:"DOI"`
	} `json:"externalIds"`
	OpenAccessPDF *struct {
		URL string `json:"url"`
	} `json:"openAccessPdf"`
}

type s2Author struct {
	Name string `json:"name"`
}

// Search queries Semantic Scholar for papers matching query.
func (c *S2Client) Search(ctx context.Context, query string, opts Options) ([]Paper, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(opts.limit()))
	params.Set("fields", s2PaperFields)
	if opts.YearFrom != 0 || opts.YearTo != 0 {
		params.Set("year", yearRange(opts.YearFrom, opts.YearTo))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/paper/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic scholar returned status %d", resp.StatusCode)
	}

	var result s2SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	papers := make([]Paper, 0, len(result.Data))
	for _, p := range result.Data {
		names := make([]string, 0, len(p.Authors))
		for _, a := range p.Authors {
			names = append(names, a.Name)
		}

		paper := Paper{
			Title:     p.Title,
			Authors:   truncateAuthors(names, 3),
			Year:      p.Year,
			Venue:     p.Venue,
			Abstract:  p.Abstract,
			DOI:       p.ExternalIDs.DOI,
			URL:       p.URL,
			Citations: p.CitationCount,
		}
		if p.OpenAccessPDF != nil {
			paper.PDFURL = p.OpenAccessPDF.URL
		}
		papers = append(papers, paper)
	}

	return papers, nil
}

// yearRange formats a publication-year filter as "from-to", open-ended on
// either side.
func yearRange(from, to int) string {
	switch {
	case from != 0 && to != 0:
		return fmt.Sprintf("%d-%d", from, to)
	case from != 0:
		return fmt.Sprintf("%d-", from)
	default:
		return fmt.Sprintf("-%d", to)
	}
}
