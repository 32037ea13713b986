// Package emotion models the companion's four-dimensional need vector and the
// reducer rules that update it after conversation turns and game events.
package emotion

// State holds the four core needs. Every field stays inside [0,1]; all
// updates go through the reducers below, which clamp on write.
type State struct {
	Attention  float64 `json:"attention"`
	Connection float64 `json:"connection"`
	Growth     float64 `json:"growth"`
	Play       float64 `json:"play"`
}

// Per-turn adjustments. Connection grows faster for longer, more meaningful
// messages, approximated by character count.
const (
	attentionPerTurn      = 0.1
	connectionLong        = 0.05
	connectionShort       = 0.02
	growthPerTurn         = 0.01
	meaningfulInputLength = 50

	maxPlayIncrease = 0.3
	playPerPoint    = 0.01
)

// DefaultState is the starting vector for a fresh companion.
func DefaultState() State {
	return State{
		Attention:  0.8,
		Connection: 0.7,
		Growth:     0.6,
		Play:       0.5,
	}
}

// Clamp bounds a single need value to [0,1].
func Clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Clamped returns a copy of s with every field bounded to [0,1].
func (s State) Clamped() State {
	s.Attention = Clamp(s.Attention)
	s.Connection = Clamp(s.Connection)
	s.Growth = Clamp(s.Growth)
	s.Play = Clamp(s.Play)
	return s
}

// ApplyConversation returns the state after one completed conversation turn.
// Play is untouched by conversation; it only moves through game events.
func ApplyConversation(s State, userMessage string) State {
	s.Attention += attentionPerTurn
	if len(userMessage) > meaningfulInputLength {
		s.Connection += connectionLong
	} else {
		s.Connection += connectionShort
	}
	s.Growth += growthPerTurn
	return s.Clamped()
}

// ApplyGame returns the state after a completed mini-game with the given
// score. The play increase is min(0.3, score*0.01), clamped to the ceiling.
func ApplyGame(s State, score int) State {
	increase := float64(score) * playPerPoint
	if increase > maxPlayIncrease {
		increase = maxPlayIncrease
	}
	s.Play += increase
	return s.Clamped()
}

// GameIncrease reports the play delta a score would produce before clamping.
func GameIncrease(score int) float64 {
	increase := float64(score) * playPerPoint
	if increase > maxPlayIncrease {
		return maxPlayIncrease
	}
	return increase
}
