// Package vector provides the persistent vector store used for passage
// retrieval.
package vector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/scholium/scholium/internal/chunk"
	"github.com/scholium/scholium/internal/embedding"
	"github.com/scholium/scholium/internal/metadata"
)

const collectionName = "passages"

// Passage is a retrieved chunk with provenance and similarity.
type Passage struct {
	Text       string  `json:"text"`
	Filename   string  `json:"filename"`
	Title      string  `json:"title"`
	Authors    string  `json:"authors,omitempty"`
	Year       int     `json:"year,omitempty"`
	Page       int     `json:"page"`
	Similarity float32 `json:"similarity"`
}

// Store wraps a persistent chromem collection of document chunks.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// Open opens (or creates) a vector store at dir, embedding with provider.
func Open(dir string, provider embedding.Provider) (*Store, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}

	col, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc(provider))
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	return &Store{db: db, collection: col}, nil
}

// embeddingFunc adapts an embedding.Provider to chromem's EmbeddingFunc.
func embeddingFunc(p embedding.Provider) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		emb, err := p.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		return emb.Vector, nil
	}
}

// Add indexes the chunks of one document, attaching its bibliographic
// record as read-only metadata on every chunk. Existing chunks for the
// same document are replaced, so a re-index swaps the old record for the
// fresh one.
func (s *Store) Add(ctx context.Context, chunks []chunk.Chunk, rec metadata.Record) error {
	if len(chunks) == 0 {
		return nil
	}

	if err := s.Delete(ctx, rec.Filename); err != nil {
		return err
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		meta := map[string]string{
			"filename": rec.Filename,
			"title":    rec.Title,
			"page":     strconv.Itoa(c.Page),
		}
		if len(rec.Authors) > 0 {
			meta["authors"] = strings.Join(rec.Authors, "; ")
		}
		if rec.Year != 0 {
			meta["year"] = strconv.Itoa(rec.Year)
		}
		if rec.Journal != "" {
			meta["journal"] = rec.Journal
		}
		if rec.DOI != "" {
			meta["doi"] = rec.DOI
		}

		docs[i] = chromem.Document{
			ID:       fmt.Sprintf("%s:%d:%d", rec.Filename, c.Page, c.Seq),
			Content:  c.Text,
			Metadata: meta,
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("adding documents: %w", err)
	}
	return nil
}

// Query returns the k passages most similar to text, best first.
func (s *Store) Query(ctx context.Context, text string, k int) ([]Passage, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k <= 0 || k > count {
		k = count
	}

	results, err := s.collection.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying vector store: %w", err)
	}

	passages := make([]Passage, len(results))
	for i, r := range results {
		page, _ := strconv.Atoi(r.Metadata["page"])
		year, _ := strconv.Atoi(r.Metadata["year"])
		passages[i] = Passage{
			Text:       r.Content,
			Filename:   r.Metadata["filename"],
			Title:      r.Metadata["title"],
			Authors:    r.Metadata["authors"],
			Year:       year,
			Page:       page,
			Similarity: r.Similarity,
		}
	}
	return passages, nil
}

// Delete removes all chunks belonging to filename.
func (s *Store) Delete(ctx context.Context, filename string) error {
	if s.collection.Count() == 0 {
		return nil
	}
	if err := s.collection.Delete(ctx, map[string]string{"filename": filename}, nil); err != nil {
		return fmt.Errorf("deleting documents: %w", err)
	}
	return nil
}

// Count returns the number of indexed chunks.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Reset drops and recreates the collection.
func (s *Store) Reset(ctx context.Context, provider embedding.Provider) error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("dropping collection: %w", err)
	}
	col, err := s.db.GetOrCreateCollection(collectionName, nil, embeddingFunc(provider))
	if err != nil {
		return fmt.Errorf("recreating collection: %w", err)
	}
	s.collection = col
	return nil
}
