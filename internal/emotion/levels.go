package emotion

// Level maps a need value to the qualitative label shown to the model.
func Level(v float64) string {
	switch {
	case v > 0.8:
		return "excellent"
	case v > 0.6:
		return "good"
	case v > 0.4:
		return "neutral"
	case v > 0.2:
		return "low"
	default:
		return "very low"
	}
}

// OverallMood derives a single mood word from the average of all needs.
func OverallMood(s State) string {
	average := (s.Attention + s.Connection + s.Growth + s.Play) / 4
	switch {
	case average > 0.8:
		return "very happy"
	case average > 0.6:
		return "happy"
	case average > 0.4:
		return "content"
	case average > 0.2:
		return "sad"
	default:
		return "very sad"
	}
}
