// Package metadata recovers bibliographic metadata from documents,
// preferring embedded metadata and falling back to heuristic
// pattern-matching over first-page text.
package metadata

// Record holds the bibliographic fields recovered for one document.
// A zero value marks an unresolved field: Year is 0 and string fields are
// empty. Records are produced once per ingestion and never mutated; a
// re-index discards the old record and builds a fresh one from the same
// source bytes.
type Record struct {
	Filename string   `json:"filename"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Year     int      `json:"year,omitempty"`
	Journal  string   `json:"journal,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
}

// HasAuthors reports whether at least one author was recovered.
func (r Record) HasAuthors() bool {
	return len(r.Authors) > 0
}
