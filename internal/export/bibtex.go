// Package export writes search results to BibTeX files with deduplication
// against existing entries.
package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/scholium/scholium/internal/search"
)

// ToBibTeX converts one paper to a BibTeX entry.
func ToBibTeX(p search.Paper) string {
	entryType := entryTypeFor(p)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, EntryKey(p)))

	if len(p.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", strings.Join(p.Authors, " and ")))
	}
	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(p.Title)))
	if p.Venue != "" {
		field := "journal"
		if entryType == "inproceedings" {
			field = "booktitle"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", field, escapeLatex(p.Venue)))
	}
	if p.Year > 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", p.Year))
	}
	if p.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", p.DOI))
	}
	if p.URL != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", p.URL))
	}
	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts papers to a sequence of BibTeX entries.
func ToBibTeXList(papers []search.Paper) string {
	entries := make([]string, 0, len(papers))
	for _, p := range papers {
		entries = append(entries, ToBibTeX(p))
	}
	return strings.Join(entries, "\n")
}

// EntryKey builds a citation key from the first author's last name, the
// year and the first title word.
func EntryKey(p search.Paper) string {
	name := "unknown"
	if len(p.Authors) > 0 {
		parts := strings.Fields(p.Authors[0])
		if len(parts) > 0 {
			name = parts[len(parts)-1]
		}
	}

	word := ""
	for _, w := range strings.Fields(p.Title) {
		w = keepLetters(w)
		if len(w) > 3 {
			word = w
			break
		}
	}

	key := strings.ToLower(name)
	if p.Year > 0 {
		key += fmt.Sprintf("%d", p.Year)
	}
	if word != "" {
		key += strings.ToLower(word)
	}
	return keepKeyChars(key)
}

func keepLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepKeyChars(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// entryTypeFor picks the BibTeX entry type from the venue name.
func entryTypeFor(p search.Paper) string {
	venue := strings.ToLower(p.Venue)

	if strings.Contains(venue, "proceedings") ||
		strings.Contains(venue, "conference") ||
		strings.Contains(venue, "workshop") ||
		strings.Contains(venue, "symposium") {
		return "inproceedings"
	}
	return "article"
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
