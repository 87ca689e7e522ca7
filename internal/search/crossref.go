package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// CrossRefBaseURL is the CrossRef REST API base URL.
const CrossRefBaseURL = "https://api.crossref.org"

// crossrefMailto identifies us to CrossRef's polite pool.
const crossrefMailto = "scholium@example.org"

// crossrefRateLimit is a conservative 2 requests per second.
const crossrefRateLimit = 2.0

// CrossRefClient is a rate-limited client for the CrossRef works API.
type CrossRefClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// CrossRefOption configures a CrossRefClient.
type CrossRefOption func(*CrossRefClient)

// WithCrossRefBaseURL sets a custom base URL (for testing).
func WithCrossRefBaseURL(url string) CrossRefOption {
	return func(c *CrossRefClient) {
		c.baseURL = url
	}
}

// WithCrossRefMailto sets the polite-pool contact address.
func WithCrossRefMailto(addr string) CrossRefOption {
	return func(c *CrossRefClient) {
		c.mailto = addr
	}
}

// WithCrossRefHTTPClient sets a custom HTTP client.
func WithCrossRefHTTPClient(hc *http.Client) CrossRefOption {
	return func(c *CrossRefClient) {
		c.httpClient = hc
	}
}

// NewCrossRefClient creates a CrossRef search client.
func NewCrossRefClient(opts ...CrossRefOption) *CrossRefClient {
	c := &CrossRefClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(crossrefRateLimit), 1),
		baseURL:    CrossRefBaseURL,
		mailto:     crossrefMailto,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the source identifier.
func (c *CrossRefClient) Source() string { return "crossref" }

type crossrefResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	Title          []string `json:"title"`
	ContainerTitle []string `json:"container-title"`
	DOI            string   `json:"DOI"`
	URL            string   `json:"URL"`
	Abstract       string   `json:"abstract"`
	CitedByCount   int      `json:"is-referenced-by-count"`
	Author         []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
	Published struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"published"`
}

// Search queries CrossRef for works matching query.
func (c *CrossRefClient) Search(ctx context.Context, query string, opts Options) ([]Paper, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("rows", strconv.Itoa(opts.limit()))
	params.Set("mailto", c.mailto)

	var filters []string
	if opts.YearFrom != 0 {
		filters = append(filters, fmt.Sprintf("from-pub-date:%d-01-01", opts.YearFrom))
	}
	if opts.YearTo != 0 {
		filters = append(filters, fmt.Sprintf("until-pub-date:%d-12-31", opts.YearTo))
	}
	if len(filters) > 0 {
		params.Set("filter", strings.Join(filters, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/works?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crossref returned status %d", resp.StatusCode)
	}

	var result crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	papers := make([]Paper, 0, len(result.Message.Items))
	for _, w := range result.Message.Items {
		paper := Paper{
			DOI:       w.DOI,
			URL:       w.URL,
			Abstract:  stripJATS(w.Abstract),
			Citations: w.CitedByCount,
		}
		if len(w.Title) > 0 {
			paper.Title = w.Title[0]
		}
		if len(w.ContainerTitle) > 0 {
			paper.Venue = w.ContainerTitle[0]
		}
		if len(w.Published.DateParts) > 0 && len(w.Published.DateParts[0]) > 0 {
			paper.Year = w.Published.DateParts[0][0]
		}

		names := make([]string, 0, len(w.Author))
		for _, a := range w.Author {
			name := strings.TrimSpace(a.Given + " " + a.Family)
			if name != "" {
				names = append(names, name)
			}
		}
		paper.Authors = truncateAuthors(names, 3)

		papers = append(papers, paper)
	}

	return papers, nil
}

// stripJATS removes the JATS markup CrossRef embeds in abstracts.
func stripJATS(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
