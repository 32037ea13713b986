// Package types defines the domain model shared across the companion service.
package types

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Memory sources describe where a memory came from.
const (
	MemorySourceConversation   = "conversation"
	MemorySourceSummary        = "summary"
	MemorySourceCoreMemory     = "core_memory"
	MemorySourceEmotionPattern = "emotion_pattern"
	MemorySourceActivity       = "activity"
)

// Memory types classify how a memory should be recalled.
const (
	MemoryTypeEpisodic = "episodic"
	MemoryTypeSummary  = "summary"
	MemoryTypeFact     = "fact"
	MemoryTypePattern  = "pattern"
)

// Message is one turn entry in the conversation log. Immutable once created.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Memory is a persisted, embedding-indexed text excerpt. Never mutated after
// creation; retrieval is similarity ranking only.
type Memory struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Text            string    `json:"text"`
	Source          string    `json:"source"`
	MemoryType      string    `json:"memory_type"`
	EmotionalImpact float64   `json:"emotional_impact"`
	Embedding       []float32 `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// RetrievedMemory is a similarity-search hit.
type RetrievedMemory struct {
	Text            string    `json:"text"`
	Source          string    `json:"source"`
	MemoryType      string    `json:"memory_type"`
	EmotionalImpact float64   `json:"emotional_impact"`
	Similarity      float64   `json:"similarity"`
	CreatedAt       time.Time `json:"created_at"`
}

// EngagementMetrics mirrors the locally tracked streak state into the store.
type EngagementMetrics struct {
	UserID          string    `json:"user_id"`
	LastInteraction time.Time `json:"last_interaction"`
	StreakCount     int       `json:"streak_count"`
}
