package metadata

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Source is a readable document: an optional embedded metadata dictionary
// plus extractable first-page text.
type Source interface {
	// Name returns the basename of the source file.
	Name() string

	// Info returns the embedded metadata dictionary, or nil when the
	// container carries none. Conventional keys: Title, Author,
	// CreationDate.
	Info() map[string]string

	// FirstPageText returns the plain text of the first page.
	FirstPageText() (string, error)
}

const (
	// MinYear and MaxYear bound plausible publication years.
	MinYear = 1900
	MaxYear = 2100

	// scanWindow is how many characters of first-page text the year and
	// journal scans examine.
	scanWindow = 1000

	// titleScanLines is how many leading lines the title scan examines.
	titleScanLines = 10

	// MinTitleLen is the shortest line accepted as a title.
	MinTitleLen = 10

	// MaxJournalLen and MaxAbstractLen cap the free-text fields.
	MaxJournalLen  = 200
	MaxAbstractLen = 500
)

var (
	// Any 4-digit run; used on embedded creation-date strings,
	// which arrive in formats like "D:20230415120000".
	datePattern = regexp.MustCompile(`\d{4}`)

	// Standalone year tokens in page text.
	textYearPattern = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

	// DOI: 10.NNNN+/suffix.
	doiPattern = regexp.MustCompile(`10\.\d{4,}/\S+`)

	// Journal indicators, tried in order. The first pattern captures the
	// text following the indicator; the second captures the whole match.
	journalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:Published in|Journal of|Proceedings of)\s+([^\n]+)`),
		regexp.MustCompile(`([A-Z][a-z]+\s+(?:Journal|Review|Letters|Transactions)(?:\s+(?:of|on|in))?\s+[^\n]+)`),
	}

	// Abstract body: everything after an "Abstract" heading up to the next
	// blank line, line starting with a letter, or "Keywords:" marker.
	abstractPattern = regexp.MustCompile(`(?is)abstract[:\s]*\n(.+?)(?:\n\n|\n[A-Z]|\nKeywords:)`)

	// Author-string delimiters in embedded metadata.
	authorSplitPattern = regexp.MustCompile(`[;,]|\sand\s|\s&\s|\n`)

	// Parenthesized email addresses: " (jane@example.com)".
	emailParenPattern = regexp.MustCompile(`\s*\([^)]*@[^)]*\)`)

	// Bracketed or parenthesized affiliation text.
	affiliationPattern = regexp.MustCompile(`\s*[\[(][^\])]*[\])]`)

	// Trailing footnote markers on an author token.
	footnoteTailPattern = regexp.MustCompile(`[\d*†‡§¹²³⁴⁵⁶⁷⁸⁹⁰,]+$`)

	spaceRun = regexp.MustCompile(`\s+`)
)

// Extractor recovers a bibliographic Record from a document. It is
// stateless and safe for concurrent use across independent documents.
type Extractor struct {
	log *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for extraction diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(e *Extractor) {
		e.log = log
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract produces the best-effort bibliographic record for src. Each field
// resolves independently: embedded metadata first, then first-page text
// heuristics, then absence. Extract never fails; when the underlying text
// extraction errors, the failure is logged and the record carries only the
// filename-derived title.
func (e *Extractor) Extract(src Source) Record {
	rec := Record{Filename: src.Name()}

	if info := src.Info(); info != nil {
		rec.Title = strings.TrimSpace(info["Title"])
		if author := info["Author"]; author != "" {
			rec.Authors = ParseAuthorList(author)
		}
		rec.Year = yearFromDate(info["CreationDate"])
	}

	text, err := src.FirstPageText()
	if err != nil {
		e.log.Error("extracting first-page text", "file", rec.Filename, "err", err)
	} else {
		if rec.Title == "" {
			rec.Title = titleFromText(text)
		}
		if len(rec.Authors) == 0 {
			rec.Authors = authorsFromText(text)
		}
		if rec.Year == 0 {
			rec.Year = yearFromText(text)
		}
		rec.DOI = doiFromText(text)
		rec.Journal = journalFromText(text)
		rec.Abstract = abstractFromText(text)
	}

	// Filename-derived title is the guaranteed floor.
	if rec.Title == "" {
		rec.Title = titleFromFilename(rec.Filename)
	}
	if rec.Authors == nil {
		rec.Authors = []string{}
	}

	return rec
}

// ParseAuthorList parses an embedded-metadata author string into cleaned
// names. Tokens are split on semicolons, commas, "and", "&", and newlines;
// each has email addresses, affiliations, and trailing footnote markers
// stripped. Tokens shorter than 3 characters after cleaning are dropped.
func ParseAuthorList(s string) []string {
	if s == "" {
		return nil
	}

	var cleaned []string
	seen := make(map[string]bool)
	for _, tok := range authorSplitPattern.Split(s, -1) {
		tok = strings.TrimSpace(tok)
		tok = emailParenPattern.ReplaceAllString(tok, "")
		tok = affiliationPattern.ReplaceAllString(tok, "")
		tok = strings.TrimSpace(footnoteTailPattern.ReplaceAllString(tok, ""))

		if len(tok) > 2 && !seen[tok] {
			cleaned = append(cleaned, tok)
			seen[tok] = true
		}
	}
	return cleaned
}

// titleFromFilename derives a title from the filename by dropping the
// extension and replacing separators with spaces.
func titleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}

// titleFromText returns the first substantial non-all-caps line, on the
// assumption that the title is the first prominent text on the page.
func titleFromText(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > MinTitleLen && !isAllUpper(line) {
			return line
		}
	}
	return ""
}

// yearFromDate extracts a plausible year from a date string such as a PDF
// CreationDate ("D:20230415120000"). Returns 0 when none is found.
func yearFromDate(date string) int {
	m := datePattern.FindString(date)
	if m == "" {
		return 0
	}
	year, _ := strconv.Atoi(m)
	if year < MinYear || year > MaxYear {
		return 0
	}
	return year
}

// yearFromText scans the leading window of page text for year tokens and
// returns the most recent plausible one, or 0.
func yearFromText(text string) int {
	best := 0
	for _, m := range textYearPattern.FindAllString(head(text, scanWindow), -1) {
		year, _ := strconv.Atoi(m)
		if year >= MinYear && year <= MaxYear && year > best {
			best = year
		}
	}
	return best
}

// doiFromText returns the first DOI in text, trimmed of trailing
// punctuation, or "".
func doiFromText(text string) string {
	return strings.TrimRight(doiPattern.FindString(text), ".,;)")
}

// journalFromText scans the leading window of page text for a journal or
// proceedings name.
func journalFromText(text string) string {
	window := head(text, scanWindow)
	for _, p := range journalPatterns {
		m := p.FindStringSubmatch(window)
		if m == nil {
			continue
		}
		journal := spaceRun.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		if len(journal) > MaxJournalLen {
			journal = journal[:MaxJournalLen]
		}
		return journal
	}
	return ""
}

// abstractFromText captures the text following an "Abstract" heading.
func abstractFromText(text string) string {
	m := abstractPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	abstract := spaceRun.ReplaceAllString(strings.TrimSpace(m[1]), " ")
	if len(abstract) > MaxAbstractLen {
		abstract = abstract[:MaxAbstractLen]
	}
	return abstract
}

// head returns the first n bytes of s without splitting a rune.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// isAllUpper reports whether s contains letters and none of them lowercase.
func isAllUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}
