package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/easeaico/gptamagotchi/internal/types"
)

// memoryModel maps to the memory_embeddings table.
type memoryModel struct {
	ID              int
	UserID          string
	Text            string
	Source          string
	MemoryType      string
	EmotionalImpact float64
	// Embedding stores the vector representation for similarity search.
	Embedding *pgvector.Vector `gorm:"type:vector"`
	CreatedAt time.Time
}

func (memoryModel) TableName() string {
	return "memory_embeddings"
}

// MemoryRepo accesses memory rows.
type MemoryRepo struct {
	db *gorm.DB
}

// NewMemoryRepo returns a MemoryRepo.
func NewMemoryRepo(db *gorm.DB) *MemoryRepo {
	return &MemoryRepo{db: db}
}

// AddMemory inserts one memory row. Memories are immutable after insert.
func (r *MemoryRepo) AddMemory(ctx context.Context, mem types.Memory) error {
	var vector *pgvector.Vector
	if len(mem.Embedding) > 0 {
		v := pgvector.NewVector(mem.Embedding)
		vector = &v
	}
	record := memoryModel{
		UserID:          mem.UserID,
		Text:            mem.Text,
		Source:          mem.Source,
		MemoryType:      mem.MemoryType,
		EmotionalImpact: mem.EmotionalImpact,
		Embedding:       vector,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}
	return nil
}

// SearchSimilar returns up to topK memories for the user whose cosine
// similarity to the query embedding exceeds threshold, best match first.
func (r *MemoryRepo) SearchSimilar(ctx context.Context, userID string, embedding []float32, topK int, threshold float64) ([]types.RetrievedMemory, error) {
	if len(embedding) == 0 {
		return nil, nil
	}

	query := `
		SELECT text, source, memory_type, emotional_impact, created_at,
		       1 - (embedding <=> $1) AS similarity
		FROM memory_embeddings
		WHERE user_id = $2
		  AND embedding IS NOT NULL
		  AND 1 - (embedding <=> $1) > $3
		ORDER BY similarity DESC
		LIMIT $4`

	vector := pgvector.NewVector(embedding)
	var results []types.RetrievedMemory
	if err := r.db.WithContext(ctx).
		Raw(query, vector, userID, threshold, topK).
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to search similar memories: %w", err)
	}
	return results, nil
}
