package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/scholium/scholium/internal/vector"
)

const answerTemplate = `You are a research assistant. Write a concise answer in bullet points.
Each point MUST be grounded in CONTEXT and include (source, p.page) if present.
If info is missing, state what's missing.`

// Answer asks the model the question grounded in the retrieved passages.
// history may carry recent conversation context and can be empty.
func (c *Client) Answer(ctx context.Context, question string, passages []vector.Passage, history string) (string, error) {
	if len(passages) == 0 {
		return "", fmt.Errorf("no passages to ground the answer in")
	}
	return c.Complete(ctx, buildAnswerPrompt(question, passages, history))
}

func buildAnswerPrompt(question string, passages []vector.Passage, history string) string {
	var b strings.Builder
	b.WriteString(answerTemplate)
	b.WriteString("\n\n")

	if history != "" {
		b.WriteString("PREVIOUS CONVERSATION:\n")
		b.WriteString(history)
		b.WriteString("\n\n")
	}

	b.WriteString("QUESTION:\n")
	b.WriteString(question)
	b.WriteString("\n\nCONTEXT:\n")
	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		fmt.Fprintf(&b, "[%s, p.%d]\n%s\n", p.Filename, p.Page, p.Text)
	}
	return b.String()
}

// SourceList returns the unique source filenames behind a set of passages,
// in retrieval order.
func SourceList(passages []vector.Passage) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, p := range passages {
		if !seen[p.Filename] {
			seen[p.Filename] = true
			sources = append(sources, p.Filename)
		}
	}
	return sources
}
