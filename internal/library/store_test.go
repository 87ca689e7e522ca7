package library

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_SavePDF(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	path, err := s.SavePDF("u1", []byte("%PDF-1.4"), "My Paper (final).pdf")
	if err != nil {
		t.Fatalf("SavePDF() error: %v", err)
	}
	if filepath.Base(path) != "My Paper final.pdf" {
		t.Errorf("stored name = %q", filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored pdf: %v", err)
	}
	if string(content) != "%PDF-1.4" {
		t.Errorf("content = %q", content)
	}
}

func TestStore_SavePDF_RejectsEmptyName(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	if _, err := s.SavePDF("u1", []byte("x"), "///"); err == nil {
		t.Error("expected error for unusable filename")
	}
}

func TestStore_ListPDFs(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	s.SavePDF("u1", []byte("b"), "b.pdf")
	s.SavePDF("u1", []byte("a"), "a.pdf")
	s.SavePDF("u1", []byte("n"), "notes.txt")

	pdfs, err := s.ListPDFs("u1")
	if err != nil {
		t.Fatalf("ListPDFs() error: %v", err)
	}
	if len(pdfs) != 2 {
		t.Fatalf("got %d pdfs, want 2", len(pdfs))
	}
	if filepath.Base(pdfs[0]) != "a.pdf" || filepath.Base(pdfs[1]) != "b.pdf" {
		t.Errorf("pdfs = %v", pdfs)
	}
}

func TestStore_ClearAndStats(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	s.SavePDF("u1", []byte("12345"), "a.pdf")
	indexDir, err := s.IndexDir("u1")
	if err != nil {
		t.Fatalf("IndexDir() error: %v", err)
	}
	os.WriteFile(filepath.Join(indexDir, "segment"), []byte("x"), 0o644)

	stats, err := s.Stats("u1")
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.PDFCount != 1 || stats.TotalSize != 5 || !stats.HasIndex {
		t.Errorf("stats = %+v", stats)
	}

	cleared, err := s.Clear("u1")
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if !cleared {
		t.Error("Clear() = false, want true")
	}

	cleared, err = s.Clear("u1")
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if cleared {
		t.Error("second Clear() = true, want false")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"paper.pdf", "paper.pdf"},
		{"../../../etc/passwd", "......etcpasswd"},
		{"My Paper: A Study?.pdf", "My Paper A Study.pdf"},
		{"résumé.pdf", "rsum.pdf"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
