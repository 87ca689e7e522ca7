// Package citation formats bibliographic references in academic styles.
package citation

import (
	"fmt"
	"strings"

	"github.com/scholium/scholium/internal/metadata"
)

// Style selects a citation format.
type Style string

const (
	IEEE    Style = "ieee"
	APA     Style = "apa"
	MLA     Style = "mla"
	Chicago Style = "chicago"
	BibTeX  Style = "bibtex"
)

// Styles lists the supported styles.
var Styles = []Style{IEEE, APA, MLA, Chicago, BibTeX}

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(s))
	for _, known := range Styles {
		if style == known {
			return style, nil
		}
	}
	return "", fmt.Errorf("unknown citation style %q", s)
}

// Citation is the bibliographic data behind one formatted reference.
type Citation struct {
	Title   string
	Authors []string
	Year    int
	Journal string
	DOI     string
	Page    int // 0 = no page reference
}

// FromRecord builds a Citation from extracted document metadata.
func FromRecord(rec metadata.Record) Citation {
	title := rec.Title
	if title == "" {
		title = rec.Filename
	}
	return Citation{
		Title:   title,
		Authors: rec.Authors,
		Year:    rec.Year,
		Journal: rec.Journal,
		DOI:     rec.DOI,
	}
}

// year renders the publication year, "n.d." when unknown.
func (c Citation) year() string {
	if c.Year == 0 {
		return "n.d."
	}
	return fmt.Sprintf("%d", c.Year)
}

func (c Citation) title() string {
	if c.Title == "" {
		return "Unknown Title"
	}
	return c.Title
}

// Format renders the full citation in the given style.
func (c Citation) Format(style Style) string {
	switch style {
	case IEEE:
		return c.formatIEEE()
	case APA:
		return c.formatAPA()
	case MLA:
		return c.formatMLA()
	case Chicago:
		return c.formatChicago()
	case BibTeX:
		return c.formatBibTeX()
	}

	var b strings.Builder
	if len(c.Authors) > 0 {
		b.WriteString(strings.Join(c.Authors, ", "))
	} else {
		b.WriteString("Unknown")
	}
	fmt.Fprintf(&b, ". %s. %s", c.title(), c.year())
	if c.Page > 0 {
		fmt.Fprintf(&b, ", p. %d", c.Page)
	}
	return b.String()
}

func (c Citation) formatIEEE() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %q", FormatAuthors(c.Authors, 3, IEEE), c.title())
	if c.Journal != "" {
		b.WriteString(", " + c.Journal)
	}
	b.WriteString(", " + c.year())
	if c.Page > 0 {
		fmt.Fprintf(&b, ", p. %d", c.Page)
	}
	if c.DOI != "" {
		b.WriteString(", doi: " + c.DOI)
	}
	b.WriteString(".")
	return b.String()
}

func (c Citation) formatAPA() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s). %s.", FormatAuthors(c.Authors, 7, APA), c.year(), c.title())
	if c.Journal != "" {
		b.WriteString(" " + c.Journal + ".")
	}
	if c.Page > 0 {
		fmt.Fprintf(&b, " p. %d.", c.Page)
	}
	if c.DOI != "" {
		b.WriteString(" https://doi.org/" + c.DOI)
	}
	return b.String()
}

func (c Citation) formatMLA() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s. %q.", FormatAuthors(c.Authors, 1, MLA), c.title())
	if c.Journal != "" {
		b.WriteString(" " + c.Journal + ",")
	}
	b.WriteString(" " + c.year())
	if c.Page > 0 {
		fmt.Fprintf(&b, ", p. %d", c.Page)
	}
	b.WriteString(".")
	return b.String()
}

func (c Citation) formatChicago() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s. %q.", FormatAuthors(c.Authors, 3, Chicago), c.title())
	if c.Journal != "" {
		b.WriteString(" " + c.Journal)
	}
	fmt.Fprintf(&b, " (%s)", c.year())
	if c.Page > 0 {
		fmt.Fprintf(&b, ": %d", c.Page)
	}
	b.WriteString(".")
	return b.String()
}

func (c Citation) formatBibTeX() string {
	last := "unknown"
	if len(c.Authors) > 0 {
		parts := strings.Fields(c.Authors[0])
		if len(parts) > 0 {
			last = strings.ToLower(parts[len(parts)-1])
		}
	}
	key := last + c.year()

	var b strings.Builder
	fmt.Fprintf(&b, "@article{%s,\n", key)
	fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(c.Authors, " and "))
	fmt.Fprintf(&b, "  title = {%s},\n", c.title())
	if c.Journal != "" {
		fmt.Fprintf(&b, "  journal = {%s},\n", c.Journal)
	}
	fmt.Fprintf(&b, "  year = {%s},\n", c.year())
	if c.Page > 0 {
		fmt.Fprintf(&b, "  pages = {%d},\n", c.Page)
	}
	if c.DOI != "" {
		fmt.Fprintf(&b, "  doi = {%s},\n", c.DOI)
	}
	b.WriteString("}")
	return b.String()
}

// Inline renders a short in-text citation.
func (c Citation) Inline(style Style) string {
	last := lastName(c.Authors, 0)

	switch style {
	case APA:
		author := last
		switch {
		case len(c.Authors) == 2:
			author = last + " & " + lastName(c.Authors, 1)
		case len(c.Authors) > 2:
			author = last + " et al."
		}
		if c.Page > 0 {
			return fmt.Sprintf("(%s, %s, p. %d)", author, c.year(), c.Page)
		}
		return fmt.Sprintf("(%s, %s)", author, c.year())

	case MLA:
		if c.Page > 0 {
			return fmt.Sprintf("(%s %d)", last, c.Page)
		}
		return fmt.Sprintf("(%s)", last)

	case Chicago:
		if c.Page > 0 {
			return fmt.Sprintf("(%s %s, %d)", last, c.year(), c.Page)
		}
		return fmt.Sprintf("(%s %s)", last, c.year())
	}

	if c.Page > 0 {
		return fmt.Sprintf("(%s, %s, p. %d)", last, c.year(), c.Page)
	}
	return fmt.Sprintf("(%s, %s)", last, c.year())
}

func lastName(authors []string, i int) string {
	if i >= len(authors) {
		return "Unknown"
	}
	parts := strings.Fields(authors[i])
	if len(parts) == 0 {
		return "Unknown"
	}
	return parts[len(parts)-1]
}
