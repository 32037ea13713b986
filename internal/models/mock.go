package models

import (
	"context"
	"math/rand"
)

// MockReply is the fixed completion returned when no chat credentials are
// configured.
const MockReply = "I'm your AI companion, but my responses are currently limited because the OpenAI API key is not configured. Once configured, I'll be able to respond properly to your messages!"

// mockChat always answers with the fixed not-configured reply.
type mockChat struct{}

func (mockChat) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	return MockReply, nil
}

// mockEmbedder produces random vectors of the configured length, matching
// the shape real embeddings would have so retrieval plumbing stays
// exercisable offline.
type mockEmbedder struct {
	dimensions int
}

func (e *mockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.vector(), nil
}

func (e *mockEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.vector(), nil
}

func (e *mockEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *mockEmbedder) vector() []float32 {
	values := make([]float32, e.dimensions)
	for i := range values {
		values[i] = rand.Float32()
	}
	return values
}
