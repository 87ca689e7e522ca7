package summary

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
)

type fakeCompleter struct {
	responses map[string]string
	calls     []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls = append(f.calls, prompt)
	for key, resp := range f.responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return "generic response", nil
}

func newTestSummarizer(t *testing.T, c Completer) *Summarizer {
	t.Helper()
	s, err := New(t.TempDir(), c,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestSummarizer_Generate(t *testing.T) {
	completer := &fakeCompleter{responses: map[string]string{
		"overview":         "This paper studies bus networks.",
		"key findings":     "- Finding one\n- Finding two\nnot a bullet\n* Finding three",
		"methodology":      "Simulation study.",
		"main conclusions": "Networks can be improved.",
	}}
	s := newTestSummarizer(t, completer)

	pages := []string{"intro text", "middle text", "more middle", "conclusion text"}
	sum, err := s.Generate(context.Background(), "paper.pdf", pages)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if sum.TotalPages != 4 {
		t.Errorf("total pages = %d, want 4", sum.TotalPages)
	}
	if sum.Overview != "This paper studies bus networks." {
		t.Errorf("overview = %q", sum.Overview)
	}
	if len(sum.KeyFindings) != 3 || sum.KeyFindings[2] != "Finding three" {
		t.Errorf("findings = %v", sum.KeyFindings)
	}
	if sum.Methodology != "Simulation study." {
		t.Errorf("methodology = %q", sum.Methodology)
	}
	if sum.GeneratedAt == 0 {
		t.Error("generated_at should be set")
	}
}

func TestSummarizer_GenerateEmpty(t *testing.T) {
	s := newTestSummarizer(t, &fakeCompleter{})

	if _, err := s.Generate(context.Background(), "paper.pdf", nil); err == nil {
		t.Error("expected error for empty document")
	}
}

func TestSummarizer_GetCached(t *testing.T) {
	s := newTestSummarizer(t, &fakeCompleter{})

	sum, err := s.Get("unknown.pdf")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if sum != nil {
		t.Errorf("Get() = %+v, want nil", sum)
	}

	if _, err := s.Generate(context.Background(), "paper.pdf", []string{"text"}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	cached, err := s.Get("paper.pdf")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if cached == nil || cached.Filename != "paper.pdf" {
		t.Errorf("cached = %+v", cached)
	}
}

func TestParseFindings(t *testing.T) {
	raw := "Intro line\n- one\n* two\n- three\n- four\n- five\n- six"
	got := parseFindings(raw)
	if len(got) != 5 {
		t.Errorf("got %d findings, want 5 (capped)", len(got))
	}
	if got[0] != "one" || got[1] != "two" {
		t.Errorf("findings = %v", got)
	}
}

func TestFormat(t *testing.T) {
	sum := &Summary{
		Filename:    "paper.pdf",
		TotalPages:  3,
		Overview:    "An overview.",
		KeyFindings: []string{"alpha", "beta"},
		Methodology: "Survey.",
		Conclusions: "Done.",
	}

	out := Format(sum)
	for _, want := range []string{"paper.pdf (3 pages)", "  - alpha", "Survey.", "Done."} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted summary missing %q:\n%s", want, out)
		}
	}
}
