package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/easeaico/gptamagotchi/internal/emotion"
)

// userModel maps to the users table.
type userModel struct {
	ID                  string          `gorm:"primaryKey"`
	PersonalitySettings json.RawMessage `gorm:"type:jsonb"`
	EmotionalState      json.RawMessage `gorm:"type:jsonb"`
	CreatedAt           time.Time
}

func (userModel) TableName() string {
	return "users"
}

// UserRepo accesses user rows.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo returns a UserRepo.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUser creates the user row with the default emotional state if it
// does not exist yet.
func (r *UserRepo) EnsureUser(ctx context.Context, userID string) error {
	state, err := json.Marshal(emotion.DefaultState())
	if err != nil {
		return fmt.Errorf("failed to encode default emotional state: %w", err)
	}
	record := userModel{
		ID:                  userID,
		PersonalitySettings: json.RawMessage(`{}`),
		EmotionalState:      state,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateEmotionalState upserts the user's emotional-state column.
func (r *UserRepo) UpdateEmotionalState(ctx context.Context, userID string, state emotion.State) error {
	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode emotional state: %w", err)
	}
	if err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", userID).
		Update("emotional_state", json.RawMessage(encoded)).Error; err != nil {
		return fmt.Errorf("failed to update emotional state: %w", err)
	}
	return nil
}

// GetEmotionalState loads the persisted state, or the default vector when
// the user row has none yet.
func (r *UserRepo) GetEmotionalState(ctx context.Context, userID string) (emotion.State, error) {
	var record userModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		Limit(1).
		Find(&record).Error; err != nil {
		return emotion.State{}, fmt.Errorf("failed to query user: %w", err)
	}
	if record.ID == "" || len(record.EmotionalState) == 0 {
		return emotion.DefaultState(), nil
	}

	var state emotion.State
	if err := json.Unmarshal(record.EmotionalState, &state); err != nil {
		return emotion.State{}, fmt.Errorf("failed to decode emotional state: %w", err)
	}
	return state.Clamped(), nil
}
