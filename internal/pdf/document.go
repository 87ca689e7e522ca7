// Package pdf provides read access to PDF documents: per-page plain text
// and the embedded Info dictionary.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

// Document is an open PDF file.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	return &Document{path: path, file: f, reader: r}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// Path returns the full path of the source file.
func (d *Document) Path() string {
	return d.path
}

// Name returns the basename of the source file.
func (d *Document) Name() string {
	return filepath.Base(d.path)
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Info returns the embedded Info dictionary as a string map, or nil when
// the document carries none. The underlying parser panics on some
// malformed files; those documents report no embedded metadata.
func (d *Document) Info() (info map[string]string) {
	defer func() {
		if recover() != nil {
			info = nil
		}
	}()

	dict := d.reader.Trailer().Key("Info")
	if dict.Kind() != pdf.Dict {
		return nil
	}

	info = make(map[string]string)
	for _, key := range dict.Keys() {
		if v := dict.Key(key); v.Kind() == pdf.String {
			info[key] = v.Text()
		}
	}
	if len(info) == 0 {
		return nil
	}
	return info
}

// PageText returns the plain text of page n (1-based). The underlying
// parser panics on some malformed content streams; those surface as errors.
func (d *Document) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting text from page %d: %v", n, r)
		}
	}()

	if n < 1 || n > d.reader.NumPage() {
		return "", fmt.Errorf("page %d out of range (1-%d)", n, d.reader.NumPage())
	}

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d has no content", n)
	}

	return page.GetPlainText(nil)
}

// FirstPageText returns the plain text of the first page.
func (d *Document) FirstPageText() (string, error) {
	if d.reader.NumPage() < 1 {
		return "", fmt.Errorf("document has no pages")
	}
	return d.PageText(1)
}

// PageTexts returns the text of the first maxPages pages, one entry per
// page. maxPages <= 0 means all pages. Pages that fail to extract are
// included as empty strings so indices stay aligned with page numbers.
func (d *Document) PageTexts(maxPages int) []string {
	n := d.reader.NumPage()
	if maxPages > 0 && maxPages < n {
		n = maxPages
	}

	texts := make([]string, n)
	for i := 1; i <= n; i++ {
		text, err := d.PageText(i)
		if err != nil {
			continue
		}
		texts[i-1] = text
	}
	return texts
}
