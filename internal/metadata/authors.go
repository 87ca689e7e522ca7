package metadata

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Author extraction from raw first-page text, used only when no embedded
// author metadata exists. PDF text extraction frequently collapses
// whitespace, so author lines arrive concatenated
// ("NadimpalliMadanaKailashVarma"). Each surface pattern pairs a line
// matcher with the reconstruction that restores the lost word boundaries.

const (
	// titleSkipLines is how many leading lines are presumed title text.
	titleSkipLines = 3

	// authorScanLines bounds the window of early lines examined.
	authorScanLines = 60

	// maxAuthorLineLen rejects lines too long to be an author line.
	maxAuthorLineLen = 200

	// maxAuthors caps the result list.
	maxAuthors = 10

	// maxCandidates caps how many raw candidates are cleaned.
	maxCandidates = 15
)

var (
	lowerUpperBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	initialDotBoundary = regexp.MustCompile(`\.([A-Z])`)
	honorificBoundary  = regexp.MustCompile(`^(Mrs?|Dr|Prof)\.?\s*([A-Z])`)

	// Trailing footnote symbols on a candidate name.
	footnoteSymbolTail = regexp.MustCompile(`[\d*†‡§¹²³⁴⁵⁶⁷⁸⁹⁰]+$`)

	// Embedded email addresses in a candidate name.
	emailPattern = regexp.MustCompile(`\s*[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// titleWordBlocklist rejects CamelCase candidates whose reconstruction
// contains title text rather than a name. Hand-tuned and English/domain
// specific; expect both false rejections and false acceptances.
var titleWordBlocklist = []string{
	"Machine", "Learning", "System", "Track", "Enable",
	"Urban", "Mobility", "Enhanced", "Real", "Time", "Smart",
	"Transit", "Bus",
}

// falsePositiveNames drops cleaned candidates that are section headings or
// generic topic phrases rather than names.
var falsePositiveNames = map[string]bool{
	"Abstract":                true,
	"Introduction":            true,
	"Keywords":                true,
	"References":              true,
	"Acknowledgment":          true,
	"Conclusion":              true,
	"Results":                 true,
	"Methods":                 true,
	"Machine Learning":        true,
	"Artificial Intelligence": true,
	"Deep Learning":           true,
}

// namePattern pairs a line matcher with the transform recovering the spaced
// name. Patterns are tried in fixed order; the first match claims the line.
// A transform returning "" rejects the candidate.
type namePattern struct {
	match       *regexp.Regexp
	reconstruct func(line string) string
}

var namePatterns = []namePattern{
	{
		// CamelCase run of capitalized fragments ("NadimpalliMadanaKailashVarma"):
		// insert a space before each uppercase letter following a lowercase one.
		match: regexp.MustCompile(`^([A-Z][a-z]+){2,6}$`),
		reconstruct: func(line string) string {
			if len(line) <= 10 || len(line) >= 60 {
				return ""
			}
			name := deconcat(line)
			for _, word := range titleWordBlocklist {
				if strings.Contains(name, word) {
					return ""
				}
			}
			return name
		},
	},
	{
		// Leading initial glued to the name ("G.RishabBabu"): space after
		// the dot, then de-concatenate the remainder.
		match: regexp.MustCompile(`^[A-Z]\.(?:\s*[A-Z][a-z]+){1,3}$`),
		reconstruct: func(line string) string {
			return deconcat(initialDotBoundary.ReplaceAllString(line, ". $1"))
		},
	},
	{
		// Honorific glued to the name ("Mrs.FatimaUnnisa", "Dr.JohnSmith").
		match: regexp.MustCompile(`^(?:Mrs?\.?|Dr\.?|Prof\.?)\s*[A-Z]`),
		reconstruct: func(line string) string {
			return deconcat(honorificBoundary.ReplaceAllString(line, "$1. $2"))
		},
	},
	{
		// Ordinary space-separated name ("John Smith"): accepted verbatim.
		match: regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+){1,4}$`),
		reconstruct: func(line string) string {
			return line
		},
	},
}

// deconcat inserts a space at each lowercase-to-uppercase transition,
// reconstructing word boundaries lost during text extraction.
func deconcat(s string) string {
	return lowerUpperBoundary.ReplaceAllString(s, "$1 $2")
}

// authorsFromText recovers author names from first-page text. Names appear
// shortly after the title, each followed by an affiliation line
// ("Department of ...", "... University"). A first pass skips the presumed
// title lines; when it finds fewer than two names, a relaxed second pass
// rescans from the top admitting any line a department marker follows.
func authorsFromText(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")

	candidates := scanAuthorLines(lines, titleSkipLines, isAffiliationLine)
	if len(candidates) < 2 {
		candidates = append(candidates, scanAuthorLines(lines, 0, isDepartmentLine)...)
	}

	return cleanAuthorCandidates(candidates)
}

// scanAuthorLines walks lines[start:authorScanLines] treating a line as an
// author candidate only when the marker accepts the following line.
func scanAuthorLines(lines []string, start int, marker func(string) bool) []string {
	var found []string

	end := min(len(lines), authorScanLines)
	for i := start; i < end; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || len(line) > maxAuthorLineLen {
			continue
		}
		if i+1 >= len(lines) || !marker(lines[i+1]) {
			continue
		}

		for _, p := range namePatterns {
			if !p.match.MatchString(line) {
				continue
			}
			if name := strings.TrimSpace(p.reconstruct(line)); name != "" {
				found = append(found, name)
			}
			break
		}

		if len(found) >= maxAuthors {
			break
		}
	}

	return found
}

// isAffiliationLine reports whether line looks like an institutional
// affiliation following an author name.
func isAffiliationLine(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(lower, "department") ||
		strings.Contains(lower, "department of") ||
		strings.Contains(lower, "university") ||
		strings.Contains(lower, "college")
}

// isDepartmentLine is the relaxed second-pass marker: department lines only.
func isDepartmentLine(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(lower, "department") ||
		strings.Contains(lower, "department of")
}

// cleanAuthorCandidates strips footnote symbols and email addresses,
// validates surface shape, drops known false positives, deduplicates, and
// caps the result at maxAuthors.
func cleanAuthorCandidates(candidates []string) []string {
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	var cleaned []string
	seen := make(map[string]bool)
	for _, author := range candidates {
		author = strings.TrimSpace(author)
		author = strings.TrimSpace(footnoteSymbolTail.ReplaceAllString(author, ""))
		author = strings.TrimSpace(emailPattern.ReplaceAllString(author, ""))

		if len(author) < 4 || seen[author] || falsePositiveNames[author] {
			continue
		}
		first, _ := utf8.DecodeRuneInString(author)
		if !unicode.IsUpper(first) {
			continue
		}
		// A name has at least one interior space or dot.
		if !strings.ContainsAny(author, " .") {
			continue
		}

		cleaned = append(cleaned, author)
		seen[author] = true
		if len(cleaned) >= maxAuthors {
			break
		}
	}

	return cleaned
}
