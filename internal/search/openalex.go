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

// OpenAlexBaseURL is the OpenAlex API base URL.
const OpenAlexBaseURL = "https://api.openalex.org"

// openalexRateLimit is well inside OpenAlex's 10 rps ceiling.
const openalexRateLimit = 5.0

// OpenAlexClient is a rate-limited client for the OpenAlex works API.
type OpenAlexClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// OpenAlexOption configures an OpenAlexClient.
type OpenAlexOption func(*OpenAlexClient)

// WithOpenAlexBaseURL sets a custom base URL (for testing).
func WithOpenAlexBaseURL(url string) OpenAlexOption {
	return func(c *OpenAlexClient) {
		c.baseURL = url
	}
}

// WithOpenAlexHTTPClient sets a custom HTTP client.
func WithOpenAlexHTTPClient(hc *http.Client) OpenAlexOption {
	return func(c *OpenAlexClient) {
		c.httpClient = hc
	}
}

// NewOpenAlexClient creates an OpenAlex search client.
func NewOpenAlexClient(opts ...OpenAlexOption) *OpenAlexClient {
	c := &OpenAlexClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(openalexRateLimit), 1),
		baseURL:    OpenAlexBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the source identifier.
func (c *OpenAlexClient) Source() string { return "openalex" }

type openalexResponse struct {
	Results []openalexWork `json:"results"`
}

type openalexWork struct {
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	DOI             string `json:"doi"`
	CitedByCount    int    `json:"cited_by_count"`
	Authorships     []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
	PrimaryLocation *struct {
		Source *struct {
			DisplayName string `json:"display_name"`
		} `json:"source"`
		LandingPageURL string `json:"landing_page_url"`
	} `json:"primary_location"`
	OpenAccess struct {
		OAURL string `json:"oa_url"`
	} `json:"open_access"`
}

// Search queries OpenAlex for works matching query.
func (c *OpenAlexClient) Search(ctx context.Context, query string, opts Options) ([]Paper, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("search", query)
	params.Set("per-page", strconv.Itoa(opts.limit()))

	var filters []string
	if opts.YearFrom != 0 {
		filters = append(filters, fmt.Sprintf("from_publication_date:%d-01-01", opts.YearFrom))
	}
	if opts.YearTo != 0 {
		filters = append(filters, fmt.Sprintf("to_publication_date:%d-12-31", opts.YearTo))
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
		return nil, fmt.Errorf("openalex returned status %d", resp.StatusCode)
	}

	var result openalexResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	papers := make([]Paper, 0, len(result.Results))
	for _, w := range result.Results {
		paper := Paper{
			Title:     w.Title,
			Year:      w.PublicationYear,
			DOI:       strings.TrimPrefix(w.DOI, "https://doi.org/"),
			Citations: w.CitedByCount,
			PDFURL:    w.OpenAccess.OAURL,
		}
		if loc := w.PrimaryLocation; loc != nil {
			paper.URL = loc.LandingPageURL
			if loc.Source != nil {
				paper.Venue = loc.Source.DisplayName
			}
		}

		names := make([]string, 0, len(w.Authorships))
		for _, a := range w.Authorships {
			if a.Author.DisplayName != "" {
				names = append(names, a.Author.DisplayName)
			}
		}
		paper.Authors = truncateAuthors(names, 3)

		papers = append(papers, paper)
	}

	return papers, nil
}
