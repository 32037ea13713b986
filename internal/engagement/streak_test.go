package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/easeaico/gptamagotchi/internal/localstore"
	"github.com/easeaico/gptamagotchi/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestUpdateFirstLogin(t *testing.T) {
	got := Update(Stats{}, time.Date(2026, time.August, 30, 15, 4, 0, 0, time.Local))
	if got.Streak != 1 || got.DaysActive != 1 {
		t.Fatalf("expected streak 1 / active 1, got %+v", got)
	}
	if !got.LastLogin.Equal(day(2026, time.August, 30)) {
		t.Fatalf("expected last login truncated to midnight, got %v", got.LastLogin)
	}
}

func TestUpdateSameDayIsNoOp(t *testing.T) {
	stats := Stats{LastLogin: day(2026, time.August, 30), Streak: 4, DaysActive: 9}
	got := Update(stats, time.Date(2026, time.August, 30, 23, 59, 0, 0, time.Local))
	if got != stats {
		t.Fatalf("same-day update must not change stats, got %+v", got)
	}
	// Idempotent on repeated calls.
	if again := Update(got, time.Date(2026, time.August, 30, 23, 59, 30, 0, time.Local)); again != stats {
		t.Fatalf("repeated same-day update changed stats: %+v", again)
	}
}

func TestUpdateConsecutiveDayExtendsStreak(t *testing.T) {
	stats := Stats{LastLogin: day(2026, time.August, 29), Streak: 4, DaysActive: 9}
	got := Update(stats, time.Date(2026, time.August, 30, 0, 30, 0, 0, time.Local))
	if got.Streak != 5 {
		t.Fatalf("expected streak 5, got %d", got.Streak)
	}
	if got.DaysActive != 10 {
		t.Fatalf("expected active days 10, got %d", got.DaysActive)
	}
}

func TestUpdateGapResetsStreak(t *testing.T) {
	stats := Stats{LastLogin: day(2026, time.August, 20), Streak: 14, DaysActive: 40}
	got := Update(stats, time.Date(2026, time.August, 30, 12, 0, 0, 0, time.Local))
	if got.Streak != 1 {
		t.Fatalf("expected streak reset to 1, got %d", got.Streak)
	}
	if got.DaysActive != 41 {
		t.Fatalf("expected active days 41, got %d", got.DaysActive)
	}
}

func TestMessageTiers(t *testing.T) {
	tests := []struct {
		streak int
		want   string
	}{
		{1, "Keep coming back to build your streak!"},
		{3, "Great streak! Keep it up!"},
		{7, "Impressive streak! You're doing great!"},
		{20, "Amazing streak! You're a GPTamagotchi master!"},
	}
	for _, tt := range tests {
		if got := Message(tt.streak); got != tt.want {
			t.Fatalf("Message(%d): got %q", tt.streak, got)
		}
	}
}

type fakeMetricsRepo struct {
	upserts []types.EngagementMetrics
}

func (r *fakeMetricsRepo) UpsertEngagement(ctx context.Context, m types.EngagementMetrics) error {
	r.upserts = append(r.upserts, m)
	return nil
}

func newTestTracker(t *testing.T, now time.Time) (*Tracker, *fakeMetricsRepo) {
	t.Helper()
	local, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	metrics := &fakeMetricsRepo{}
	tracker := NewTracker(local, metrics, "user-1")
	tracker.nowFunc = func() time.Time { return now }
	return tracker, metrics
}

func TestTrackerTouchPersistsAndMirrors(t *testing.T) {
	now := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.Local)
	tracker, metrics := newTestTracker(t, now)

	stats, err := tracker.Touch(context.Background())
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	if stats.Streak != 1 || stats.DaysActive != 1 {
		t.Fatalf("unexpected stats after first touch: %+v", stats)
	}
	if len(metrics.upserts) != 1 || metrics.upserts[0].StreakCount != 1 {
		t.Fatalf("expected one metrics upsert with streak 1, got %+v", metrics.upserts)
	}

	// Second touch on the same day changes nothing and skips the upsert.
	again, err := tracker.Touch(context.Background())
	if err != nil {
		t.Fatalf("second touch: %v", err)
	}
	if again != stats {
		t.Fatalf("same-day touch changed stats: %+v", again)
	}
	if len(metrics.upserts) != 1 {
		t.Fatalf("same-day touch must not upsert again, got %d", len(metrics.upserts))
	}
}

func TestTrackerGameCounter(t *testing.T) {
	now := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.Local)
	tracker, _ := newTestTracker(t, now)

	if got := tracker.GamesPlayedToday(); got != 0 {
		t.Fatalf("expected 0 games, got %d", got)
	}
	for i := 1; i <= MaxGamesPerDay; i++ {
		count, err := tracker.RecordGame()
		if err != nil {
			t.Fatalf("record game: %v", err)
		}
		if count != i {
			t.Fatalf("expected count %d, got %d", i, count)
		}
	}
	if tracker.CanPlayGame() {
		t.Fatal("expected daily allowance exhausted")
	}

	// A new day resets the counter.
	tracker.nowFunc = func() time.Time { return now.AddDate(0, 0, 1) }
	if got := tracker.GamesPlayedToday(); got != 0 {
		t.Fatalf("expected counter reset on new day, got %d", got)
	}
	if !tracker.CanPlayGame() {
		t.Fatal("expected allowance back on new day")
	}
}
