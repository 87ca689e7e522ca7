// Package chunk splits document text into bounded, overlapping pieces for
// embedding and retrieval.
package chunk

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSize is the target chunk length in bytes.
	DefaultSize = 1000

	// DefaultOverlap is how much trailing context each chunk shares with
	// its successor.
	DefaultOverlap = 150

	// minChunkLen drops fragments too short to be worth embedding.
	minChunkLen = 20
)

// Chunk is the unit of embedding and retrieval, annotated with provenance.
type Chunk struct {
	DocID string `json:"doc_id"` // source document filename
	Page  int    `json:"page"`   // 1-based page number
	Seq   int    `json:"seq"`    // position within the document
	Text  string `json:"text"`
}

// Splitter splits text into pieces of roughly Size bytes with Overlap bytes
// of shared context between neighbors. Splits prefer paragraph breaks, then
// line breaks, then sentence ends, then word boundaries.
type Splitter struct {
	Size    int
	Overlap int
}

// NewSplitter returns a Splitter with default size and overlap.
func NewSplitter() *Splitter {
	return &Splitter{Size: DefaultSize, Overlap: DefaultOverlap}
}

// Split breaks text into chunks.
func (s *Splitter) Split(text string) []string {
	size := s.Size
	if size <= 0 {
		size = DefaultSize
	}
	overlap := s.Overlap
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			appendChunk(&chunks, text[start:])
			break
		}
		for end < len(text) && !utf8.RuneStart(text[end]) {
			end++
		}

		cut := findBreak(text, start, end)
		appendChunk(&chunks, text[start:cut])

		next := cut - overlap
		if next <= start {
			next = cut // always make progress
		}
		start = next
	}

	return chunks
}

// SplitPages chunks each page's text, assigning provenance. Empty pages
// produce no chunks; page numbers are 1-based.
func (s *Splitter) SplitPages(docID string, pages []string) []Chunk {
	var chunks []Chunk
	seq := 0
	for i, page := range pages {
		for _, text := range s.Split(page) {
			chunks = append(chunks, Chunk{
				DocID: docID,
				Page:  i + 1,
				Seq:   seq,
				Text:  text,
			})
			seq++
		}
	}
	return chunks
}

// findBreak picks a cut point in text[start:end], preferring natural
// boundaries in the second half of the window over a hard cut.
func findBreak(text string, start, end int) int {
	window := text[start:end]
	floor := len(window) / 2

	for _, sep := range []string{"\n\n", "\n", ". ", " "} {
		if i := strings.LastIndex(window, sep); i >= floor {
			return start + i + len(sep)
		}
	}
	return end
}

func appendChunk(chunks *[]string, text string) {
	text = strings.TrimSpace(text)
	if len(text) >= minChunkLen {
		*chunks = append(*chunks, text)
	}
}
