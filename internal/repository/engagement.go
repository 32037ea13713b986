package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/easeaico/gptamagotchi/internal/types"
)

// engagementModel maps to the engagement_metrics table.
type engagementModel struct {
	UserID          string `gorm:"primaryKey"`
	LastInteraction time.Time
	StreakCount     int
}

func (engagementModel) TableName() string {
	return "engagement_metrics"
}

// EngagementRepo accesses engagement metric rows.
type EngagementRepo struct {
	db *gorm.DB
}

// NewEngagementRepo returns an EngagementRepo.
func NewEngagementRepo(db *gorm.DB) *EngagementRepo {
	return &EngagementRepo{db: db}
}

// UpsertEngagement writes the latest interaction time and streak for the
// user, inserting the row on first contact.
func (r *EngagementRepo) UpsertEngagement(ctx context.Context, metrics types.EngagementMetrics) error {
	record := engagementModel{
		UserID:          metrics.UserID,
		LastInteraction: metrics.LastInteraction,
		StreakCount:     metrics.StreakCount,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_interaction", "streak_count"}),
		}).
		Create(&record).Error; err != nil {
		return fmt.Errorf("failed to upsert engagement metrics: %w", err)
	}
	return nil
}
