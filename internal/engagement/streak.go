// Package engagement tracks login streaks, active days, and the daily
// mini-game allowance.
package engagement

import (
	"math"
	"time"
)

// Stats is the engagement counter set tracked per user.
type Stats struct {
	LastLogin  time.Time `json:"last_login"`
	Streak     int       `json:"streak"`
	DaysActive int       `json:"days_active"`
}

// MaxGamesPerDay caps how many mini-games count toward the play need each
// calendar day.
const MaxGamesPerDay = 5

// truncateDay zeroes the time-of-day so date differences count calendar
// days, not 24-hour windows.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Update applies the calendar rule for a login happening at now: same day is
// a no-op, a one-day gap extends the streak, any larger gap resets it to 1.
// Active days increment on every new calendar day. A zero LastLogin is the
// first login ever.
func Update(stats Stats, now time.Time) Stats {
	today := truncateDay(now)

	if stats.LastLogin.IsZero() {
		return Stats{LastLogin: today, Streak: 1, DaysActive: 1}
	}

	last := truncateDay(stats.LastLogin)
	// Round so DST-shortened days still count as one calendar day.
	daysDiff := int(math.Round(today.Sub(last).Hours() / 24))

	switch {
	case daysDiff == 0:
		return stats
	case daysDiff == 1:
		return Stats{LastLogin: today, Streak: stats.Streak + 1, DaysActive: stats.DaysActive + 1}
	default:
		return Stats{LastLogin: today, Streak: 1, DaysActive: stats.DaysActive + 1}
	}
}

// Message returns the encouragement line for the current streak length.
func Message(streak int) string {
	switch {
	case streak < 3:
		return "Keep coming back to build your streak!"
	case streak < 7:
		return "Great streak! Keep it up!"
	case streak < 14:
		return "Impressive streak! You're doing great!"
	default:
		return "Amazing streak! You're a GPTamagotchi master!"
	}
}
