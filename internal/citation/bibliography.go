package citation

import (
	"fmt"
	"strings"
)

// Bibliography renders a list of citations as one document. IEEE entries are
// numbered; other styles are listed as-is, one blank line apart.
func Bibliography(citations []Citation, style Style) string {
	if len(citations) == 0 {
		return "No citations to format."
	}

	lines := make([]string, 0, len(citations))
	for i, c := range citations {
		entry := c.Format(style)
		if style == IEEE {
			entry = fmt.Sprintf("[%d] %s", i+1, entry)
		}
		lines = append(lines, entry)
	}
	return strings.Join(lines, "\n\n")
}
