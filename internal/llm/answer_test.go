package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scholium/scholium/internal/vector"
)

func TestBuildAnswerPrompt(t *testing.T) {
	passages := []vector.Passage{
		{Text: "Headways average four minutes.", Filename: "brt.pdf", Page: 3},
		{Text: "Fares are distance-based.", Filename: "fares.pdf", Page: 12},
	}

	prompt := buildAnswerPrompt("How frequent is service?", passages, "")
	for _, want := range []string{
		"QUESTION:\nHow frequent is service?",
		"[brt.pdf, p.3]",
		"[fares.pdf, p.12]",
		"Headways average four minutes.",
		"---",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "PREVIOUS CONVERSATION") {
		t.Error("prompt should omit history section when history is empty")
	}
}

func TestBuildAnswerPrompt_WithHistory(t *testing.T) {
	passages := []vector.Passage{{Text: "t", Filename: "a.pdf", Page: 1}}

	prompt := buildAnswerPrompt("follow-up?", passages, "Q: earlier\nA: answer")
	if !strings.Contains(prompt, "PREVIOUS CONVERSATION:\nQ: earlier") {
		t.Errorf("prompt missing history:\n%s", prompt)
	}
}

func TestClient_Answer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if !strings.Contains(req.Messages[0].Content, "[brt.pdf, p.3]") {
			t.Error("request prompt missing passage citation")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "- Four minutes (brt.pdf, p.3)"}},
			},
		})
	}))
	defer server.Close()

	client := New("key", server.URL+"/v1", WithModel("test-model"))

	answer, err := client.Answer(context.Background(),
		"How frequent?", []vector.Passage{{Text: "Headways", Filename: "brt.pdf", Page: 3}}, "")
	if err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	if !strings.Contains(answer, "Four minutes") {
		t.Errorf("answer = %q", answer)
	}
}

func TestClient_Answer_NoPassages(t *testing.T) {
	client := New("key", "")

	if _, err := client.Answer(context.Background(), "q", nil, ""); err == nil {
		t.Error("expected error with no passages")
	}
}

func TestSourceList(t *testing.T) {
	passages := []vector.Passage{
		{Filename: "a.pdf"}, {Filename: "b.pdf"}, {Filename: "a.pdf"},
	}

	got := SourceList(passages)
	if len(got) != 2 || got[0] != "a.pdf" || got[1] != "b.pdf" {
		t.Errorf("SourceList() = %v", got)
	}
}
