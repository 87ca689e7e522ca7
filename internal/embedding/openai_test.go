package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIProvider_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %s, want /embeddings", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "test-model",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer server.Close()

	provider := NewOpenAIProvider("test-key", server.URL, WithOpenAIModel("test-model", 3))

	emb, err := provider.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Embed() error: %v", err)
	}
	if emb.Dimensions() != 3 {
		t.Errorf("dimensions = %d, want 3", emb.Dimensions())
	}
}

func TestOpenAIProvider_Embed_DimensionMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{0.1, 0.2}},
			},
		})
	}))
	defer server.Close()

	provider := NewOpenAIProvider("test-key", server.URL, WithOpenAIModel("test-model", 3))

	if _, err := provider.Embed(context.Background(), "some text"); err == nil {
		t.Error("expected dimension mismatch error")
	}
}

func TestOpenAIProvider_Defaults(t *testing.T) {
	provider := NewOpenAIProvider("key", "")

	if provider.ModelName() != DefaultOpenAIModel {
		t.Errorf("ModelName() = %s, want %s", provider.ModelName(), DefaultOpenAIModel)
	}
	if provider.Dimensions() != DefaultOpenAIDimensions {
		t.Errorf("Dimensions() = %d, want %d", provider.Dimensions(), DefaultOpenAIDimensions)
	}
}
