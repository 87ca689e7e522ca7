// Package library manages each user's PDF collection and its catalog.
package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store lays out per-user data on disk:
//
//	<base>/users/<id>/pdfs/   uploaded documents
//	<base>/users/<id>/index/  vector index
//	<base>/users/<id>/catalog.db
type Store struct {
	baseDir string
	log     *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string, opts ...StoreOption) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "users"), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}
	s := &Store{baseDir: baseDir, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// UserDir returns the user's data directory, creating it if needed.
func (s *Store) UserDir(userID string) (string, error) {
	dir := filepath.Join(s.baseDir, "users", userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating user dir: %w", err)
	}
	return dir, nil
}

// PDFDir returns the user's PDF directory, creating it if needed.
func (s *Store) PDFDir(userID string) (string, error) {
	user, err := s.UserDir(userID)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(user, "pdfs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating pdf dir: %w", err)
	}
	return dir, nil
}

// IndexDir returns the user's vector index directory, creating it if needed.
func (s *Store) IndexDir(userID string) (string, error) {
	user, err := s.UserDir(userID)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(user, "index")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating index dir: %w", err)
	}
	return dir, nil
}

// CatalogPath returns the path of the user's catalog database.
func (s *Store) CatalogPath(userID string) (string, error) {
	user, err := s.UserDir(userID)
	if err != nil {
		return "", err
	}
	return filepath.Join(user, "catalog.db"), nil
}

// SavePDF writes content under a sanitized version of filename and returns
// the stored path.
func (s *Store) SavePDF(userID string, content []byte, filename string) (string, error) {
	dir, err := s.PDFDir(userID)
	if err != nil {
		return "", err
	}

	safe := SanitizeFilename(filename)
	if safe == "" {
		return "", fmt.Errorf("filename %q has no usable characters", filename)
	}

	path := filepath.Join(dir, safe)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing pdf: %w", err)
	}

	s.log.Info("saved pdf", "user", userID, "file", safe)
	return path, nil
}

// ImportPDF copies an existing file into the user's collection.
func (s *Store) ImportPDF(userID, srcPath string) (string, error) {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", srcPath, err)
	}
	return s.SavePDF(userID, content, filepath.Base(srcPath))
}

// ListPDFs returns the user's stored PDF paths, sorted by name.
func (s *Store) ListPDFs(userID string) ([]string, error) {
	dir, err := s.PDFDir(userID)
	if err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("listing pdfs: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Clear removes all of the user's data. Returns false when there was none.
func (s *Store) Clear(userID string) (bool, error) {
	dir := filepath.Join(s.baseDir, "users", userID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("clearing user data: %w", err)
	}
	s.log.Info("cleared user data", "user", userID)
	return true, nil
}

// Stats summarizes a user's collection.
type Stats struct {
	PDFCount  int      `json:"pdf_count"`
	TotalSize int64    `json:"total_size"`
	HasIndex  bool     `json:"has_index"`
	PDFNames  []string `json:"pdf_names"`
}

// Stats reports the user's PDF count, total size, and index presence.
func (s *Store) Stats(userID string) (Stats, error) {
	pdfs, err := s.ListPDFs(userID)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{PDFCount: len(pdfs), PDFNames: make([]string, 0, len(pdfs))}
	for _, p := range pdfs {
		if info, err := os.Stat(p); err == nil {
			stats.TotalSize += info.Size()
		}
		stats.PDFNames = append(stats.PDFNames, filepath.Base(p))
	}

	indexDir := filepath.Join(s.baseDir, "users", userID, "index")
	if entries, err := os.ReadDir(indexDir); err == nil && len(entries) > 0 {
		stats.HasIndex = true
	}
	return stats, nil
}

// SanitizeFilename keeps alphanumerics plus "._- " and drops everything
// else, including path separators.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-' || r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
