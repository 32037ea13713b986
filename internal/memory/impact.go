package memory

import "math/rand"

// gameMemoryImpact is the fixed emotional weight of game memories.
const gameMemoryImpact = 0.7

// conversationTopics feeds the topic placeholder below.
var conversationTopics = []string{
	"feelings",
	"work",
	"games",
	"memories",
	"future plans",
	"day-to-day activities",
}

// estimateEmotionalImpact is an explicit stand-in for sentiment analysis: it
// returns a random value in [0, 0.8) with no required distribution. Replace
// it wholesale when a real estimator lands; nothing downstream depends on
// its output beyond the [-1, 1] range.
func estimateEmotionalImpact(message string) float64 {
	return rand.Float64() * 0.8
}

// topicFromMessage is the matching placeholder for topic extraction.
func topicFromMessage(message string) string {
	return conversationTopics[rand.Intn(len(conversationTopics))]
}
