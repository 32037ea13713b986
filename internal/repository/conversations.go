package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/easeaico/gptamagotchi/internal/types"
)

// conversationModel maps to the conversations table.
type conversationModel struct {
	ID               int
	UserID           string
	Role             string
	Text             string
	ImportanceMarker int
	CreatedAt        time.Time
}

func (conversationModel) TableName() string {
	return "conversations"
}

// ConversationRepo accesses conversation rows.
type ConversationRepo struct {
	db *gorm.DB
}

// NewConversationRepo returns a ConversationRepo.
func NewConversationRepo(db *gorm.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// SaveConversation inserts one turn entry for the user.
func (r *ConversationRepo) SaveConversation(ctx context.Context, userID, role, text string) error {
	record := conversationModel{
		UserID: userID,
		Role:   role,
		Text:   text,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}
	return nil
}

// GetRecent returns the most recent conversation entries, oldest first.
func (r *ConversationRepo) GetRecent(ctx context.Context, userID string, limit int) ([]types.Message, error) {
	var records []conversationModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}

	results := make([]types.Message, 0, len(records))
	for _, record := range records {
		results = append(results, types.Message{
			ID:        fmt.Sprintf("%d", record.ID),
			Role:      record.Role,
			Content:   record.Text,
			CreatedAt: record.CreatedAt,
		})
	}

	// Oldest -> newest
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}
