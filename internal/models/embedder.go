package models

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"

	"github.com/easeaico/gptamagotchi/internal/config"
)

// Embedder converts text into a fixed-length vector representation.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// NewEmbedder selects the embedding provider from configuration. Missing
// credentials fall back to the mock embedder.
func NewEmbedder(ctx context.Context, cfg config.Config) (Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "gemini":
		if cfg.GoogleAPIKey == "" {
			slog.Warn("GOOGLE_API_KEY not configured, embeddings run in mock mode")
			return &mockEmbedder{dimensions: cfg.EmbeddingDimensions}, nil
		}
		return newGenAIEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimensions)
	default:
		if cfg.OpenAIAPIKey == "" {
			slog.Warn("OPENAI_API_KEY not configured, embeddings run in mock mode")
			return &mockEmbedder{dimensions: cfg.EmbeddingDimensions}, nil
		}
		return newOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimensions), nil
	}
}

// openaiEmbedder calls the OpenAI embeddings endpoint.
type openaiEmbedder struct {
	client     *openai.Client
	model      string
	dimensions int
}

func newOpenAIEmbedder(apiKey, modelName string, dimensions int) *openaiEmbedder {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiEmbedder{
		client:     &client,
		model:      modelName,
		dimensions: dimensions,
	}
}

func (e *openaiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text)
}

func (e *openaiEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text)
}

func (e *openaiEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *openaiEmbedder) embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(e.model),
		Input:      openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Dimensions: openai.Int(int64(e.dimensions)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	values := resp.Data[0].Embedding
	result := make([]float32, len(values))
	for i, v := range values {
		result[i] = float32(v)
	}
	if len(result) != e.dimensions {
		return nil, fmt.Errorf("embedding dimensions mismatch: got %d want %d", len(result), e.dimensions)
	}
	return result, nil
}

// genaiEmbedder calls the Gemini embedding endpoint.
type genaiEmbedder struct {
	client     *genai.Client
	model      string
	dimensions int
}

func newGenAIEmbedder(ctx context.Context, apiKey, modelName string, dimensions int) (*genaiEmbedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &genaiEmbedder{
		client:     client,
		model:      modelName,
		dimensions: dimensions,
	}, nil
}

func (e *genaiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_QUERY")
}

func (e *genaiEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_DOCUMENT")
}

func (e *genaiEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *genaiEmbedder) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	if text == "" {
		return nil, nil
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: func() *int32 { v := int32(e.dimensions); return &v }(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, fmt.Errorf("empty embedding response")
	}

	values := resp.Embeddings[0].Values
	if len(values) == e.dimensions {
		return values, nil
	}
	if len(values) > e.dimensions {
		slog.Warn("embedding dimensions exceed target, truncating", "actual", len(values), "target", e.dimensions, "model", e.model)
		return values[:e.dimensions], nil
	}
	return nil, fmt.Errorf("embedding dimensions mismatch: got %d want %d", len(values), e.dimensions)
}
