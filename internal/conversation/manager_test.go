package conversation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	return m
}

func TestManager_AppendAndHistory(t *testing.T) {
	m := newTestManager(t)

	if err := m.Append("u1", "What is BRT?", "Bus rapid transit.", []string{"brt.pdf"}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := m.Append("u1", "How fast?", "Up to 30 km/h average.", nil); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	turns, err := m.History("u1", 0)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Question != "What is BRT?" {
		t.Errorf("question = %q", turns[0].Question)
	}
	if turns[0].Sources[0] != "brt.pdf" {
		t.Errorf("sources = %v", turns[0].Sources)
	}
	if turns[1].Sources == nil {
		t.Error("nil sources should be stored as empty list")
	}
	if turns[0].Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestManager_HistoryLimit(t *testing.T) {
	m := newTestManager(t)
	for _, q := range []string{"one", "two", "three"} {
		if err := m.Append("u1", q, "a", nil); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	turns, err := m.History("u1", 2)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(turns) != 2 || turns[0].Question != "two" {
		t.Errorf("limited history = %+v", turns)
	}
}

func TestManager_HistoryEmpty(t *testing.T) {
	m := newTestManager(t)

	turns, err := m.History("nobody", 0)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("got %d turns, want 0", len(turns))
	}
}

func TestManager_RecentContext(t *testing.T) {
	m := newTestManager(t)

	long := strings.Repeat("x", 300)
	if err := m.Append("u1", "short question", long, nil); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	ctx, err := m.RecentContext("u1", 3)
	if err != nil {
		t.Fatalf("RecentContext() error: %v", err)
	}
	if !strings.Contains(ctx, "Q: short question") {
		t.Errorf("context missing question: %q", ctx)
	}
	if !strings.Contains(ctx, "...") {
		t.Error("long answer should be truncated")
	}
	if strings.Contains(ctx, long) {
		t.Error("full answer should not appear in context")
	}

	empty, err := m.RecentContext("nobody", 3)
	if err != nil {
		t.Fatalf("RecentContext() error: %v", err)
	}
	if empty != "" {
		t.Errorf("context for unknown user = %q, want empty", empty)
	}
}

func TestManager_Search(t *testing.T) {
	m := newTestManager(t)
	m.Append("u1", "Tell me about headways", "Headways vary.", nil)
	m.Append("u1", "What about fares?", "Fares are flat.", nil)

	matches, err := m.Search("u1", "HEADWAY")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(matches) != 1 || matches[0].Question != "Tell me about headways" {
		t.Errorf("matches = %+v", matches)
	}
}

func TestManager_Sources(t *testing.T) {
	m := newTestManager(t)
	m.Append("u1", "q1", "a1", []string{"b.pdf", "a.pdf"})
	m.Append("u1", "q2", "a2", []string{"a.pdf", "c.pdf"})

	sources, err := m.Sources("u1")
	if err != nil {
		t.Fatalf("Sources() error: %v", err)
	}
	want := []string{"a.pdf", "b.pdf", "c.pdf"}
	if len(sources) != 3 {
		t.Fatalf("sources = %v, want %v", sources, want)
	}
	for i := range want {
		if sources[i] != want[i] {
			t.Errorf("sources = %v, want %v", sources, want)
			break
		}
	}
}

func TestManager_Clear(t *testing.T) {
	m := newTestManager(t)
	m.Append("u1", "q", "a", nil)

	cleared, err := m.Clear("u1")
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if !cleared {
		t.Error("Clear() = false, want true")
	}
	if _, err := os.Stat(filepath.Join(m.baseDir, "user_u1.json")); !os.IsNotExist(err) {
		t.Error("history file should be removed")
	}

	cleared, err = m.Clear("u1")
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if cleared {
		t.Error("second Clear() = true, want false")
	}
}
