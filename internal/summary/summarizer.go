// Package summary generates and stores structured document summaries.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scholium/scholium/internal/library"
)

const (
	// overviewTextLen bounds the text sent for overview and section prompts.
	overviewTextLen = 4000

	// findingsTextLen bounds the text sampled for key findings.
	findingsTextLen = 8000

	// maxFindings caps the parsed findings list.
	maxFindings = 5
)

// Completer produces text from a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summary is a structured digest of one document.
type Summary struct {
	Filename    string   `json:"filename"`
	TotalPages  int      `json:"total_pages"`
	Overview    string   `json:"overview"`
	KeyFindings []string `json:"key_findings"`
	Methodology string   `json:"methodology"`
	Conclusions string   `json:"conclusions"`
	GeneratedAt int64    `json:"generated_at"`
}

// Summarizer generates summaries with a language model and caches them as
// JSON files.
type Summarizer struct {
	dir       string
	completer Completer
	log       *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Summarizer) {
		s.log = l
	}
}

// New creates a Summarizer storing summaries under dir.
func New(dir string, completer Completer, opts ...Option) (*Summarizer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating summary dir: %w", err)
	}
	s := &Summarizer{dir: dir, completer: completer, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Summarizer) summaryFile(filename string) string {
	return filepath.Join(s.dir, library.SanitizeFilename(filename)+".json")
}

// Get returns a previously generated summary, or nil when none exists.
func (s *Summarizer) Get(filename string) (*Summary, error) {
	data, err := os.ReadFile(s.summaryFile(filename))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}

	var sum Summary
	if err := json.Unmarshal(data, &sum); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	return &sum, nil
}

// Generate builds a summary from the document's page texts and persists it.
func (s *Summarizer) Generate(ctx context.Context, filename string, pages []string) (*Summary, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no content to summarize")
	}

	intro := strings.Join(pages[:min(len(pages), 3)], "\n\n")
	midStart := len(pages) / 3
	midEnd := 2 * len(pages) / 3
	middle := intro
	if midEnd > midStart {
		mid := pages[midStart:midEnd]
		middle = strings.Join(mid[:min(len(mid), 3)], "\n\n")
	}
	tail := strings.Join(pages[max(0, len(pages)-3):], "\n\n")
	full := strings.Join(pages, "\n\n")

	sum := &Summary{
		Filename:    filename,
		TotalPages:  len(pages),
		GeneratedAt: time.Now().Unix(),
	}

	var err error
	if sum.Overview, err = s.section(ctx, overviewPrompt, intro, overviewTextLen); err != nil {
		return nil, fmt.Errorf("generating overview: %w", err)
	}
	if sum.Methodology, err = s.section(ctx, methodologyPrompt, middle, overviewTextLen); err != nil {
		return nil, fmt.Errorf("extracting methodology: %w", err)
	}
	if sum.Conclusions, err = s.section(ctx, conclusionsPrompt, tail, overviewTextLen); err != nil {
		return nil, fmt.Errorf("extracting conclusions: %w", err)
	}

	raw, err := s.section(ctx, findingsPrompt, full, findingsTextLen)
	if err != nil {
		return nil, fmt.Errorf("extracting findings: %w", err)
	}
	sum.KeyFindings = parseFindings(raw)

	if err := s.save(sum); err != nil {
		return nil, err
	}
	s.log.Info("generated summary", "file", filename, "pages", len(pages))
	return sum, nil
}

func (s *Summarizer) section(ctx context.Context, template, text string, maxLen int) (string, error) {
	if len(text) > maxLen {
		text = text[:maxLen]
	}
	out, err := s.completer.Complete(ctx, fmt.Sprintf(template, text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (s *Summarizer) save(sum *Summary) error {
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := os.WriteFile(s.summaryFile(sum.Filename), data, 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// parseFindings extracts bulleted lines from model output.
func parseFindings(raw string) []string {
	var findings []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			if f := strings.TrimSpace(strings.TrimLeft(line, "-* ")); f != "" {
				findings = append(findings, f)
			}
		}
		if len(findings) == maxFindings {
			break
		}
	}
	return findings
}

// Format renders a summary as readable text.
func Format(sum *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d pages)\n\n", sum.Filename, sum.TotalPages)
	b.WriteString("Overview:\n" + sum.Overview + "\n\n")
	b.WriteString("Key findings:\n")
	for _, f := range sum.KeyFindings {
		b.WriteString("  - " + f + "\n")
	}
	b.WriteString("\nMethodology:\n" + sum.Methodology + "\n\n")
	b.WriteString("Conclusions:\n" + sum.Conclusions + "\n")
	return b.String()
}

const overviewPrompt = `You are a research assistant. Read the following text from the beginning of a research paper and provide a brief 2-3 sentence overview of what the paper is about.

TEXT:
%s

Provide a clear, concise overview:`

const findingsPrompt = `You are a research assistant. Read the following research paper text and extract 3-5 key findings or main points.

TEXT:
%s

Provide key findings as a bulleted list (use - for bullets):`

const methodologyPrompt = `You are a research assistant. Read the following text and briefly describe the research methodology used (if any). If no clear methodology is present, say "Not applicable".

TEXT:
%s

Methodology (1-2 sentences):`

const conclusionsPrompt = `You are a research assistant. Read the following text from the end of a paper and summarize the main conclusions in 2-3 sentences.

TEXT:
%s

Conclusions:`
