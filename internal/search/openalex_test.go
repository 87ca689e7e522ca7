package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAlexClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works" {
			t.Errorf("path = %s, want /works", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "smart transit" {
			t.Errorf("search = %q", got)
		}
		w.Write([]byte(`{
			"results": [{
				"title": "Smart Transit Systems",
				"publication_year": 2022,
				"doi": "https://doi.org/10.1000/sts.2022",
				"cited_by_count": 9,
				"authorships": [
					{"author": {"display_name": "Alice Smith"}}
				],
				"primary_location": {
					"source": {"display_name": "IEEE Transactions on ITS"},
					"landing_page_url": "https://example.org/sts"
				},
				"open_access": {"oa_url": "https://example.org/sts.pdf"}
			}]
		}`))
	}))
	defer server.Close()

	client := NewOpenAlexClient(WithOpenAlexBaseURL(server.URL))

	papers, err := client.Search(context.Background(), "smart transit", Options{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("got %d papers, want 1", len(papers))
	}

	p := papers[0]
	if p.Title != "Smart Transit Systems" {
		t.Errorf("title = %q", p.Title)
	}
	if p.DOI != "10.1000/sts.2022" {
		t.Errorf("doi = %q, want bare DOI", p.DOI)
	}
	if p.Venue != "IEEE Transactions on ITS" {
		t.Errorf("venue = %q", p.Venue)
	}
	if p.URL != "https://example.org/sts" {
		t.Errorf("url = %q", p.URL)
	}
	if p.PDFURL != "https://example.org/sts.pdf" {
		t.Errorf("pdf url = %q", p.PDFURL)
	}
}

func TestOpenAlexClient_Search_MissingLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"title": "Untracked Work", "publication_year": 2019}]}`))
	}))
	defer server.Close()

	client := NewOpenAlexClient(WithOpenAlexBaseURL(server.URL))

	papers, err := client.Search(context.Background(), "q", Options{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("got %d papers, want 1", len(papers))
	}
	if papers[0].Venue != "" || papers[0].URL != "" {
		t.Errorf("expected empty venue and url, got %q, %q", papers[0].Venue, papers[0].URL)
	}
}

func TestOpenAlexClient_Search_YearFilterParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := "from_publication_date:2020-01-01"
		if got := r.URL.Query().Get("filter"); got != want {
			t.Errorf("filter = %q, want %q", got, want)
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewOpenAlexClient(WithOpenAlexBaseURL(server.URL))

	if _, err := client.Search(context.Background(), "q", Options{YearFrom: 2020}); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
}
