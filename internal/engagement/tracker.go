package engagement

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/easeaico/gptamagotchi/internal/localstore"
	"github.com/easeaico/gptamagotchi/internal/types"
)

// Local store keys, matching the web client's storage layout.
const (
	keyLastLogin  = "lastLogin"
	keyStreak     = "currentStreak"
	keyDaysActive = "daysActive"
	keyGamesToday = "gamesPlayedToday"
	keyGamesDate  = "gamesPlayedDate"
)

const dateLayout = "2006-01-02"

// MetricsRepo mirrors streak state into the remote store.
type MetricsRepo interface {
	UpsertEngagement(ctx context.Context, metrics types.EngagementMetrics) error
}

// Tracker owns streak and daily game counters. Local persistence is the
// source of truth; the remote upsert is best-effort.
type Tracker struct {
	local   *localstore.Store
	metrics MetricsRepo
	userID  string
	nowFunc func() time.Time
}

// NewTracker returns a Tracker. metrics may be nil when the remote store is
// not configured.
func NewTracker(local *localstore.Store, metrics MetricsRepo, userID string) *Tracker {
	return &Tracker{
		local:   local,
		metrics: metrics,
		userID:  userID,
		nowFunc: time.Now,
	}
}

// Touch records a login for today and returns the updated stats. Repeated
// calls within the same day are no-ops.
func (t *Tracker) Touch(ctx context.Context) (Stats, error) {
	stats := t.Stats()
	updated := Update(stats, t.nowFunc())
	if updated == stats && !stats.LastLogin.IsZero() {
		return stats, nil
	}

	if err := t.local.SetAll(map[string]string{
		keyLastLogin:  updated.LastLogin.Format(dateLayout),
		keyStreak:     strconv.Itoa(updated.Streak),
		keyDaysActive: strconv.Itoa(updated.DaysActive),
	}); err != nil {
		return updated, fmt.Errorf("failed to persist streak: %w", err)
	}

	if t.metrics != nil {
		if err := t.metrics.UpsertEngagement(ctx, types.EngagementMetrics{
			UserID:          t.userID,
			LastInteraction: t.nowFunc(),
			StreakCount:     updated.Streak,
		}); err != nil {
			slog.Warn("failed to upsert engagement metrics", "error", err.Error(), "user_id", t.userID)
		}
	}
	return updated, nil
}

// Stats loads the locally stored counters.
func (t *Tracker) Stats() Stats {
	var stats Stats
	if raw := t.local.Get(keyLastLogin); raw != "" {
		if parsed, err := time.ParseInLocation(dateLayout, raw, time.Local); err == nil {
			stats.LastLogin = parsed
		}
	}
	if raw := t.local.Get(keyStreak); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			stats.Streak = parsed
		}
	}
	if raw := t.local.Get(keyDaysActive); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			stats.DaysActive = parsed
		}
	}
	return stats
}

// GamesPlayedToday returns the daily counter, resetting it when the stored
// date is not today.
func (t *Tracker) GamesPlayedToday() int {
	today := t.nowFunc().Format(dateLayout)
	if t.local.Get(keyGamesDate) != today {
		return 0
	}
	count, err := strconv.Atoi(t.local.Get(keyGamesToday))
	if err != nil {
		return 0
	}
	return count
}

// CanPlayGame reports whether the daily allowance still has room.
func (t *Tracker) CanPlayGame() bool {
	return t.GamesPlayedToday() < MaxGamesPerDay
}

// RecordGame bumps the daily counter and returns the new value.
func (t *Tracker) RecordGame() (int, error) {
	count := t.GamesPlayedToday() + 1
	if err := t.local.SetAll(map[string]string{
		keyGamesToday: strconv.Itoa(count),
		keyGamesDate:  t.nowFunc().Format(dateLayout),
	}); err != nil {
		return count, fmt.Errorf("failed to persist game counter: %w", err)
	}
	return count, nil
}
