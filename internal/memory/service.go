// Package memory decides which turns are worth remembering, stores them as
// embedding-indexed excerpts, and retrieves similar memories for prompt
// assembly.
package memory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easeaico/gptamagotchi/internal/models"
	"github.com/easeaico/gptamagotchi/internal/types"
)

// A turn is memorable when user message and reply together exceed this many
// bytes. Longer exchanges approximate more meaningful ones.
const memorableLength = 100

const excerptLimit = 50

// MemoryRepo is the persistence surface the service needs.
type MemoryRepo interface {
	AddMemory(ctx context.Context, mem types.Memory) error
	SearchSimilar(ctx context.Context, userID string, embedding []float32, topK int, threshold float64) ([]types.RetrievedMemory, error)
}

// Service creates and retrieves memories. A nil repo disables persistence;
// every operation then degrades to a logged no-op.
type Service struct {
	embedder  models.Embedder
	memories  MemoryRepo
	topK      int
	threshold float64
}

// NewService returns a memory Service.
func NewService(embedder models.Embedder, memories MemoryRepo, topK int, threshold float64) *Service {
	if topK <= 0 {
		topK = 5
	}
	if threshold <= 0 {
		threshold = 0.5
	}
	return &Service{
		embedder:  embedder,
		memories:  memories,
		topK:      topK,
		threshold: threshold,
	}
}

// Retrieve returns the memories most similar to the query for this user.
func (s *Service) Retrieve(ctx context.Context, userID, query string) ([]types.RetrievedMemory, error) {
	if query == "" || s.memories == nil {
		return nil, nil
	}

	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return s.memories.SearchSimilar(ctx, userID, vec, s.topK, s.threshold)
}

// RememberConversation stores an episodic memory when the exchange crosses
// the memorability threshold. It reports whether a memory was created.
func (s *Service) RememberConversation(ctx context.Context, userID, userMessage, reply string) (bool, error) {
	if len(userMessage)+len(reply) <= memorableLength {
		return false, nil
	}

	excerpt := fmt.Sprintf("User: %q... - AI responded about %s", truncate(userMessage, excerptLimit), topicFromMessage(userMessage))
	if err := s.create(ctx, types.Memory{
		UserID:          userID,
		Text:            excerpt,
		Source:          types.MemorySourceConversation,
		MemoryType:      types.MemoryTypeEpisodic,
		EmotionalImpact: estimateEmotionalImpact(userMessage),
	}); err != nil {
		return false, err
	}
	return true, nil
}

// RememberGame stores a fact memory for a completed mini-game.
func (s *Service) RememberGame(ctx context.Context, userID, gameType string, score int) error {
	text := fmt.Sprintf("User played %s and scored %d points. They seemed to enjoy the activity.", gameType, score)
	return s.create(ctx, types.Memory{
		UserID:          userID,
		Text:            text,
		Source:          types.MemorySourceActivity,
		MemoryType:      types.MemoryTypeFact,
		EmotionalImpact: gameMemoryImpact,
	})
}

func (s *Service) create(ctx context.Context, mem types.Memory) error {
	if s.memories == nil {
		slog.Warn("memory store not configured, memory not created", "user_id", mem.UserID)
		return nil
	}

	embedding, err := s.embedder.EmbedDocument(ctx, mem.Text)
	if err != nil {
		return fmt.Errorf("failed to embed memory text: %w", err)
	}
	mem.Embedding = embedding

	if err := s.memories.AddMemory(ctx, mem); err != nil {
		return err
	}
	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
