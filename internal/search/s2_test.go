package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestS2Client_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/paper/search" {
			t.Errorf("path = %s, want /paper/search", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "transit optimization" {
			t.Errorf("query = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		if r.URL.Query().Get("fields") == "" {
			t.Error("fields parameter missing")
		}
		w.Write([]byte(`{
			"total": 1,
			"data": [{
				"paperId": "p1",
				"title": "Transit Network Design",
				"abstract": "We study transit networks.",
				"venue": "Transportation Research",
				"year": 2021,
				"citationCount": 42,
				"url": "https://example.org/p1",
				"authors": [{"name": "Alice Smith"}, {"name": "Bob Jones"}],
				"externalIds": {"DOI": "10.1000/tn.2021"},
				"openAccessPdf": {"url": "https://example.org/p1.pdf"}
			}]
		}`))
	}))
	defer server.Close()

	client := NewS2Client(WithS2BaseURL(server.URL))

	papers, err := client.Search(context.Background(), "transit optimization", Options{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("got %d papers, want 1", len(papers))
	}

	p := papers[0]
	if p.Title != "Transit Network Design" {
		t.Errorf("title = %q", p.Title)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "Alice Smith" {
		t.Errorf("authors = %v", p.Authors)
	}
	if p.Year != 2021 {
		t.Errorf("year = %d, want 2021", p.Year)
	}
	if p.DOI != "10.1000/tn.2021" {
		t.Errorf("doi = %q", p.DOI)
	}
	if p.PDFURL != "https://example.org/p1.pdf" {
		t.Errorf("pdf url = %q", p.PDFURL)
	}
	if p.Citations != 42 {
		t.Errorf("citations = %d, want 42", p.Citations)
	}
}

func TestS2Client_Search_YearFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("year"); got != "2019-2022" {
			t.Errorf("year = %q, want 2019-2022", got)
		}
		w.Write([]byte(`{"total": 0, "data": []}`))
	}))
	defer server.Close()

	client := NewS2Client(WithS2BaseURL(server.URL))

	papers, err := client.Search(context.Background(), "q", Options{YearFrom: 2019, YearTo: 2022})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(papers) != 0 {
		t.Errorf("got %d papers, want 0", len(papers))
	}
}

func TestS2Client_Search_APIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "secret" {
			t.Errorf("x-api-key = %q, want secret", got)
		}
		w.Write([]byte(`{"total": 0, "data": []}`))
	}))
	defer server.Close()

	client := NewS2Client(WithS2BaseURL(server.URL), WithS2APIKey("secret"))

	if _, err := client.Search(context.Background(), "q", Options{}); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
}

func TestS2Client_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewS2Client(WithS2BaseURL(server.URL))

	if _, err := client.Search(context.Background(), "q", Options{}); err == nil {
		t.Error("expected error for 429 response")
	}
}

func TestYearRange(t *testing.T) {
	tests := []struct {
		from, to int
		want     string
	}{
		{2019, 2022, "2019-2022"},
		{2019, 0, "2019-"},
		{0, 2022, "-2022"},
	}
	for _, tt := range tests {
		if got := yearRange(tt.from, tt.to); got != tt.want {
			t.Errorf("yearRange(%d, %d) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}
