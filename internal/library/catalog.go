package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/scholium/scholium/internal/metadata"
)

// Document is one catalog entry for an ingested PDF.
type Document struct {
	Filename   string   `json:"filename"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Year       int      `json:"year,omitempty"`
	Journal    string   `json:"journal,omitempty"`
	DOI        string   `json:"doi,omitempty"`
	Abstract   string   `json:"abstract,omitempty"`
	Pages      int      `json:"pages"`
	Chunks     int      `json:"chunks"`
	IngestedAt int64    `json:"ingested_at"`
}

// Catalog records ingested documents in a SQLite database with full-text
// search over their bibliographic fields.
type Catalog struct {
	db *sql.DB
}

const selectDocFields = `filename, title, authors_json, year, journal, doi,
	abstract, pages, chunks, ingested_at`

// OpenCatalog opens or creates the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createCatalogSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func createCatalogSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			filename TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			year INTEGER,
			journal TEXT,
			doi TEXT,
			abstract TEXT,
			pages INTEGER NOT NULL,
			chunks INTEGER NOT NULL,
			ingested_at INTEGER NOT NULL
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			filename UNINDEXED,
			title,
			authors_text,
			journal,
			abstract
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Upsert records rec for a document, replacing any previous entry. pages and
// chunks describe the ingested content.
func (c *Catalog) Upsert(rec metadata.Record, pages, chunks int) error {
	authorsJSON, err := json.Marshal(rec.Authors)
	if err != nil {
		return fmt.Errorf("encoding authors: %w", err)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO documents
			(filename, title, authors_json, year, journal, doi, abstract,
			 pages, chunks, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			title = excluded.title,
			authors_json = excluded.authors_json,
			year = excluded.year,
			journal = excluded.journal,
			doi = excluded.doi,
			abstract = excluded.abstract,
			pages = excluded.pages,
			chunks = excluded.chunks,
			ingested_at = excluded.ingested_at`,
		rec.Filename, rec.Title, string(authorsJSON), rec.Year, rec.Journal,
		rec.DOI, rec.Abstract, pages, chunks, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM documents_fts WHERE filename = ?`, rec.Filename); err != nil {
		return fmt.Errorf("clearing fts entry: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO documents_fts (filename, title, authors_text, journal, abstract)
		VALUES (?, ?, ?, ?, ?)`,
		rec.Filename, rec.Title, strings.Join(rec.Authors, " "), rec.Journal, rec.Abstract)
	if err != nil {
		return fmt.Errorf("inserting fts entry: %w", err)
	}

	return tx.Commit()
}

// Get returns the catalog entry for filename, or nil when absent.
func (c *Catalog) Get(filename string) (*Document, error) {
	row := c.db.QueryRow(`SELECT `+selectDocFields+` FROM documents WHERE filename = ?`, filename)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return doc, err
}

// List returns all catalog entries ordered by filename.
func (c *Catalog) List() ([]Document, error) {
	rows, err := c.db.Query(`SELECT ` + selectDocFields + ` FROM documents ORDER BY filename`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Search performs a full-text search over titles, authors, journals, and
// abstracts.
func (c *Catalog) Search(query string, limit int) ([]Document, error) {
	rows, err := c.db.Query(`
		SELECT `+selectDocFields+`
		FROM documents
		WHERE filename IN
			(SELECT filename FROM documents_fts WHERE documents_fts MATCH ?)
		LIMIT ?`, prepareFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Delete removes a document from the catalog. Returns false when absent.
func (c *Catalog) Delete(filename string) (bool, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM documents WHERE filename = ?`, filename)
	if err != nil {
		return false, fmt.Errorf("deleting document: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM documents_fts WHERE filename = ?`, filename); err != nil {
		return false, fmt.Errorf("deleting fts entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

// Count returns the number of cataloged documents.
func (c *Catalog) Count() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*Document, error) {
	var (
		doc         Document
		authorsJSON string
		year        sql.NullInt64
		journal     sql.NullString
		doi         sql.NullString
		abstract    sql.NullString
	)
	err := s.Scan(&doc.Filename, &doc.Title, &authorsJSON, &year, &journal,
		&doi, &abstract, &doc.Pages, &doc.Chunks, &doc.IngestedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(authorsJSON), &doc.Authors); err != nil {
		return nil, fmt.Errorf("parsing authors: %w", err)
	}
	doc.Year = int(year.Int64)
	doc.Journal = journal.String
	doc.DOI = doi.String
	doc.Abstract = abstract.String
	return &doc, nil
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// prepareFTSQuery quotes queries containing FTS5 operator characters so they
// match literally.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}
	return query
}
