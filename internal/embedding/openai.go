package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultOpenAIModel is the default OpenAI embedding model.
	DefaultOpenAIModel = "text-embedding-3-small"

	// DefaultOpenAIDimensions is the output dimensionality of
	// text-embedding-3-small.
	DefaultOpenAIDimensions = 1536
)

// OpenAIProvider generates embeddings using an OpenAI-compatible API.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	dimensions int
}

// OpenAIOption configures an OpenAIProvider.
type OpenAIOption func(*OpenAIProvider)

// WithOpenAIModel sets the embedding model and its expected dimensions.
func WithOpenAIModel(model string, dimensions int) OpenAIOption {
	return func(p *OpenAIProvider) {
		p.model = model
		p.dimensions = dimensions
	}
}

// NewOpenAIProvider creates an OpenAI embedding provider. baseURL may be
// empty for the default endpoint, or point at any OpenAI-compatible server.
func NewOpenAIProvider(apiKey, baseURL string, opts ...OpenAIOption) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	p := &OpenAIProvider{
		client:     openai.NewClientWithConfig(cfg),
		model:      DefaultOpenAIModel,
		dimensions: DefaultOpenAIDimensions,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Embed generates an embedding for the given text.
func (p *OpenAIProvider) Embed(ctx context.Context, text string) (Embedding, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return Embedding{}, fmt.Errorf("creating embedding: %w", err)
	}
	if len(resp.Data) != 1 {
		return Embedding{}, fmt.Errorf("unexpected embedding count: got %d, want 1", len(resp.Data))
	}
	if len(resp.Data[0].Embedding) != p.dimensions {
		return Embedding{}, fmt.Errorf("unexpected embedding dimensions: got %d, want %d", len(resp.Data[0].Embedding), p.dimensions)
	}

	return Embedding{Vector: resp.Data[0].Embedding}, nil
}

// ModelName returns the name of the embedding model.
func (p *OpenAIProvider) ModelName() string {
	return p.model
}

// Dimensions returns the expected vector dimensions.
func (p *OpenAIProvider) Dimensions() int {
	return p.dimensions
}
