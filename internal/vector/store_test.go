package vector

import (
	"context"
	"testing"

	"github.com/scholium/scholium/internal/chunk"
	"github.com/scholium/scholium/internal/embedding"
	"github.com/scholium/scholium/internal/metadata"
)

// fakeProvider embeds known words onto fixed axes so similarity ranking is
// deterministic, with no model dependency.
type fakeProvider struct{}

func (fakeProvider) Embed(_ context.Context, text string) (embedding.Embedding, error) {
	v := make([]float32, 3)
	for i, word := range []string{"alpha", "beta", "gamma"} {
		if containsWord(text, word) {
			v[i] = 1
		}
	}
	if v[0] == 0 && v[1] == 0 && v[2] == 0 {
		v[0], v[1], v[2] = 1, 1, 1
	}
	return embedding.Embedding{Vector: v}, nil
}

func (fakeProvider) ModelName() string { return "fake" }
func (fakeProvider) Dimensions() int   { return 3 }

func containsWord(text, word string) bool {
	for i := 0; i+len(word) <= len(text); i++ {
		if text[i:i+len(word)] == word {
			return true
		}
	}
	return false
}

func testChunks() []chunk.Chunk {
	return []chunk.Chunk{
		{DocID: "paper.pdf", Page: 1, Seq: 0, Text: "alpha passage about the first topic"},
		{DocID: "paper.pdf", Page: 2, Seq: 1, Text: "beta passage about the second topic"},
	}
}

func testRecord() metadata.Record {
	return metadata.Record{
		Filename: "paper.pdf",
		Title:    "A Study of Topics",
		Authors:  []string{"Jane Doe"},
		Year:     2023,
	}
}

func TestStore_AddAndQuery(t *testing.T) {
	store, err := Open(t.TempDir(), fakeProvider{})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	ctx := context.Background()
	if err := store.Add(ctx, testChunks(), testRecord()); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if store.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", store.Count())
	}

	passages, err := store.Query(ctx, "alpha", 1)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(passages) != 1 {
		t.Fatalf("len(passages) = %d, want 1", len(passages))
	}

	p := passages[0]
	if !containsWord(p.Text, "alpha") {
		t.Errorf("top passage = %q, want the alpha passage", p.Text)
	}
	if p.Filename != "paper.pdf" || p.Title != "A Study of Topics" {
		t.Errorf("provenance = %q / %q, want record fields", p.Filename, p.Title)
	}
	if p.Page != 1 {
		t.Errorf("page = %d, want 1", p.Page)
	}
	if p.Year != 2023 {
		t.Errorf("year = %d, want 2023", p.Year)
	}
}

func TestStore_QueryEmpty(t *testing.T) {
	store, err := Open(t.TempDir(), fakeProvider{})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	passages, err := store.Query(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if passages != nil {
		t.Errorf("passages = %v, want nil on empty store", passages)
	}
}

func TestStore_ReindexReplaces(t *testing.T) {
	store, err := Open(t.TempDir(), fakeProvider{})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	ctx := context.Background()
	if err := store.Add(ctx, testChunks(), testRecord()); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	// Re-index the same document with a single chunk; the old chunks must
	// not survive.
	fresh := []chunk.Chunk{
		{DocID: "paper.pdf", Page: 1, Seq: 0, Text: "gamma passage replacing everything"},
	}
	if err := store.Add(ctx, fresh, testRecord()); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1 after re-index", store.Count())
	}
}

func TestStore_Delete(t *testing.T) {
	store, err := Open(t.TempDir(), fakeProvider{})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	ctx := context.Background()
	if err := store.Add(ctx, testChunks(), testRecord()); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := store.Delete(ctx, "paper.pdf"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("Count() = %d, want 0", store.Count())
	}
}
