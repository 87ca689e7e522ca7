package citation

import "strings"

// FormatAuthors renders an author list per the conventions of a citation
// style. max bounds how many authors appear before "et al.".
func FormatAuthors(authors []string, max int, style Style) string {
	if len(authors) == 0 {
		return "Unknown Author"
	}

	switch style {
	case IEEE:
		formatted := make([]string, 0, max)
		for _, a := range authors[:min(len(authors), max)] {
			formatted = append(formatted, initialLast(a))
		}
		if len(authors) > max {
			return strings.Join(formatted, ", ") + ", et al."
		}
		return joinWithAnd(formatted, ", and ")

	case APA:
		formatted := make([]string, 0, max)
		for _, a := range authors[:min(len(authors), max)] {
			formatted = append(formatted, lastInitials(a))
		}
		if len(authors) > max {
			return strings.Join(formatted, ", ") + ", et al."
		}
		return joinWithAnd(formatted, ", & ")

	case MLA:
		result := lastFirst(authors[0])
		if len(authors) > 1 {
			result += ", et al."
		}
		return result

	case Chicago:
		switch len(authors) {
		case 1:
			return authors[0]
		case 2:
			return authors[0] + " and " + authors[1]
		default:
			return authors[0] + " et al."
		}
	}

	return strings.Join(authors[:min(len(authors), max)], ", ")
}

// initialLast formats "First Middle Last" as "F. Middle Last".
func initialLast(author string) string {
	parts := strings.Fields(author)
	if len(parts) < 2 {
		return author
	}
	return string(parts[0][0]) + ". " + strings.Join(parts[1:], " ")
}

// lastInitials formats "First Middle Last" as "Last, F. M."
func lastInitials(author string) string {
	parts := strings.Fields(author)
	if len(parts) < 2 {
		return author
	}
	initials := make([]string, 0, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		initials = append(initials, string(p[0]))
	}
	return parts[len(parts)-1] + ", " + strings.Join(initials, ". ") + "."
}

// lastFirst formats "First Middle Last" as "Last, First Middle".
func lastFirst(author string) string {
	parts := strings.Fields(author)
	if len(parts) < 2 {
		return author
	}
	return parts[len(parts)-1] + ", " + strings.Join(parts[:len(parts)-1], " ")
}

// joinWithAnd joins two names with the style's conjunction and longer lists
// with commas plus a final conjunction.
func joinWithAnd(names []string, lastSep string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		if lastSep == ", and " {
			return names[0] + " and " + names[1]
		}
		return names[0] + lastSep + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + lastSep + names[len(names)-1]
	}
}
