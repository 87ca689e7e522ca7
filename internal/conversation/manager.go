// Package conversation persists per-user question/answer history.
package conversation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// answerPreviewLen bounds answer text when building follow-up context.
const answerPreviewLen = 200

// Turn is one question/answer exchange.
type Turn struct {
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Sources   []string  `json:"sources"`
}

// History is a user's full conversation record.
type History struct {
	UserID string `json:"user_id"`
	Turns  []Turn `json:"conversations"`
}

// Manager stores conversation history as one JSON file per user.
type Manager struct {
	baseDir string
	log     *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager creates a Manager rooted at baseDir, creating it if needed.
func NewManager(baseDir string, opts ...Option) (*Manager, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating conversation dir: %w", err)
	}
	m := &Manager{baseDir: baseDir, log: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Manager) userFile(userID string) string {
	return filepath.Join(m.baseDir, "user_"+userID+".json")
}

func (m *Manager) load(userID string) (History, error) {
	data, err := os.ReadFile(m.userFile(userID))
	if os.IsNotExist(err) {
		return History{UserID: userID}, nil
	}
	if err != nil {
		return History{}, fmt.Errorf("reading history: %w", err)
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return History{}, fmt.Errorf("parsing history: %w", err)
	}
	return h, nil
}

// Append records a new turn for the user.
func (m *Manager) Append(userID, question, answer string, sources []string) error {
	h, err := m.load(userID)
	if err != nil {
		return err
	}

	if sources == nil {
		sources = []string{}
	}
	h.Turns = append(h.Turns, Turn{
		Timestamp: time.Now(),
		Question:  question,
		Answer:    answer,
		Sources:   sources,
	})

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.WriteFile(m.userFile(userID), data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}

	m.log.Info("saved conversation turn", "user", userID)
	return nil
}

// History returns the user's most recent turns, all of them when limit <= 0.
func (m *Manager) History(userID string, limit int) ([]Turn, error) {
	h, err := m.load(userID)
	if err != nil {
		return nil, err
	}

	turns := h.Turns
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns, nil
}

// RecentContext formats the last numTurns exchanges for inclusion in a
// follow-up prompt. Empty string when there is no history.
func (m *Manager) RecentContext(userID string, numTurns int) (string, error) {
	turns, err := m.History(userID, numTurns)
	if err != nil {
		return "", err
	}
	if len(turns) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, t := range turns {
		b.WriteString("Q: " + t.Question + "\n")
		answer := t.Answer
		if len(answer) > answerPreviewLen {
			answer = answer[:answerPreviewLen] + "..."
		}
		b.WriteString("A: " + answer + "\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Search returns turns whose question or answer contains query,
// case-insensitively.
func (m *Manager) Search(userID, query string) ([]Turn, error) {
	turns, err := m.History(userID, 0)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []Turn
	for _, t := range turns {
		if strings.Contains(strings.ToLower(t.Question), q) ||
			strings.Contains(strings.ToLower(t.Answer), q) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// Sources returns the sorted set of unique sources cited across the user's
// history.
func (m *Manager) Sources(userID string) ([]string, error) {
	turns, err := m.History(userID, 0)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var sources []string
	for _, t := range turns {
		for _, s := range t.Sources {
			if !seen[s] {
				seen[s] = true
				sources = append(sources, s)
			}
		}
	}
	sort.Strings(sources)
	return sources, nil
}

// Clear deletes the user's history. Returns false when there was none.
func (m *Manager) Clear(userID string) (bool, error) {
	err := os.Remove(m.userFile(userID))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("clearing history: %w", err)
	}
	m.log.Info("cleared conversation history", "user", userID)
	return true, nil
}
