// Package companion sequences conversation turns: persist the input, recall
// similar memories, assemble the prompt, call the completion model, apply
// the emotional-state reducers, store what is worth remembering, and
// synthesize speech for the reply.
package companion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/easeaico/gptamagotchi/internal/emotion"
	"github.com/easeaico/gptamagotchi/internal/models"
	"github.com/easeaico/gptamagotchi/internal/prompt"
	"github.com/easeaico/gptamagotchi/internal/speech"
	"github.com/easeaico/gptamagotchi/internal/types"
)

// FallbackReply is returned when the completion call fails. The emotional
// state is left untouched for that turn.
const FallbackReply = "I'm having trouble understanding right now. Can we try again?"

// Greeting opens a fresh conversation.
const Greeting = "Hi there! I'm your GPTamagotchi companion. I'm here to chat, play games, and get to know you better over time. What would you like to talk about today?"

// ResetGreeting replaces the log when the user starts over.
const ResetGreeting = "Let's start fresh! How can I help you today?"

var (
	// ErrEmptyInput rejects blank messages before any network call.
	ErrEmptyInput = errors.New("empty user input")
	// ErrBusy rejects input while a prior turn is still in flight.
	ErrBusy = errors.New("a turn is already being processed")
)

// Activity states mirrored to the presentation layer.
const (
	ActivityIdle      = "idle"
	ActivityListening = "listening"
	ActivityThinking  = "thinking"
	ActivitySpeaking  = "speaking"
)

// Persistence is the remote-store surface the orchestrator writes to. All
// writes are best-effort: failures are logged, never surfaced.
type Persistence interface {
	SaveConversation(ctx context.Context, userID, role, text string) error
	UpdateEmotionalState(ctx context.Context, userID string, state emotion.State) error
}

// MemoryService recalls and creates memories.
type MemoryService interface {
	Retrieve(ctx context.Context, userID, query string) ([]types.RetrievedMemory, error)
	RememberConversation(ctx context.Context, userID, userMessage, reply string) (bool, error)
	RememberGame(ctx context.Context, userID, gameType string, score int) error
}

// TurnResult is the outcome of one processed user turn.
type TurnResult struct {
	Reply string
	State emotion.State
	Audio []byte
}

// Achievement marks a notable game result.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GameResult is the outcome of one processed game completion.
type GameResult struct {
	State       emotion.State
	Achievement *Achievement
}

// Companion owns the conversation and emotional state for one user session.
// At most one turn is in flight at a time.
type Companion struct {
	userID   string
	chat     models.Chat
	memories MemoryService
	synth    speech.Synthesizer
	builder  *prompt.Builder
	store    Persistence

	mu         sync.Mutex
	processing bool
	activity   string
	state      emotion.State
	messages   []types.Message

	nowFunc func() time.Time
}

// New creates a Companion seeded with the default emotional state and the
// opening greeting. store may be nil when the remote store is not
// configured.
func New(userID string, chat models.Chat, memories MemoryService, synth speech.Synthesizer, builder *prompt.Builder, store Persistence) *Companion {
	c := &Companion{
		userID:   userID,
		chat:     chat,
		memories: memories,
		synth:    synth,
		builder:  builder,
		store:    store,
		activity: ActivityIdle,
		state:    emotion.DefaultState(),
		nowFunc:  time.Now,
	}
	c.messages = []types.Message{c.newMessage(types.RoleAssistant, Greeting)}
	return c
}

// RestoreState replaces the emotional state, typically with the vector
// loaded from the store at startup.
func (c *Companion) RestoreState(state emotion.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state.Clamped()
}

// RestoreMessages replaces the conversation log with previously persisted
// history, oldest first. An empty history keeps the opening greeting.
func (c *Companion) RestoreMessages(history []types.Message) {
	if len(history) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = make([]types.Message, len(history))
	copy(c.messages, history)
}

// ProcessUserInput runs one full turn and returns the reply. Adapter
// failures degrade per the fallback rules; the only errors returned are
// ErrEmptyInput and ErrBusy.
func (c *Companion) ProcessUserInput(ctx context.Context, content string) (TurnResult, error) {
	if strings.TrimSpace(content) == "" {
		return TurnResult{}, ErrEmptyInput
	}

	c.mu.Lock()
	if c.processing {
		c.mu.Unlock()
		return TurnResult{}, ErrBusy
	}
	c.processing = true
	c.activity = ActivityListening
	state := c.state
	history := make([]types.Message, len(c.messages))
	copy(history, c.messages)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.processing = false
		c.activity = ActivityIdle
		c.mu.Unlock()
	}()

	userMsg := c.newMessage(types.RoleUser, content)
	c.append(userMsg)
	c.persistConversation(ctx, types.RoleUser, content)

	c.setActivity(ActivityThinking)

	memories, err := c.memories.Retrieve(ctx, c.userID, content)
	if err != nil {
		slog.Error("failed to retrieve memories", "error", err.Error(), "user_id", c.userID)
		memories = nil
	}

	reply, err := c.complete(ctx, state, memories, history, content)
	if err != nil {
		slog.Error("failed to process user input", "error", err.Error(), "user_id", c.userID)
		c.append(c.newMessage(types.RoleAssistant, FallbackReply))
		return TurnResult{Reply: FallbackReply, State: state}, nil
	}

	newState := emotion.ApplyConversation(state, content)
	c.setState(newState)
	c.append(c.newMessage(types.RoleAssistant, reply))
	c.persistConversation(ctx, types.RoleAssistant, reply)
	c.persistState(ctx, newState)

	if _, err := c.memories.RememberConversation(ctx, c.userID, content, reply); err != nil {
		slog.Error("failed to store conversation memory", "error", err.Error(), "user_id", c.userID)
	}

	c.setActivity(ActivitySpeaking)
	audio, err := c.synth.Synthesize(ctx, reply)
	if err != nil {
		// Synthesis failure only suppresses audio, never the text reply.
		slog.Error("failed to synthesize speech", "error", err.Error(), "user_id", c.userID)
		audio = nil
	}

	return TurnResult{Reply: reply, State: newState, Audio: audio}, nil
}

func (c *Companion) complete(ctx context.Context, state emotion.State, memories []types.RetrievedMemory, history []types.Message, content string) (string, error) {
	messages, err := c.builder.Build(prompt.BuildContext{
		State:       state,
		Memories:    memories,
		History:     history,
		UserMessage: content,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	reply, err := c.chat.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("empty completion reply")
	}
	return reply, nil
}

// ProcessGameInteraction applies a completed mini-game to the play need and
// records a game memory.
func (c *Companion) ProcessGameInteraction(ctx context.Context, gameType string, score int) GameResult {
	c.mu.Lock()
	newState := emotion.ApplyGame(c.state, score)
	c.state = newState
	c.mu.Unlock()

	c.persistState(ctx, newState)

	if err := c.memories.RememberGame(ctx, c.userID, gameType, score); err != nil {
		slog.Error("failed to store game memory", "error", err.Error(), "user_id", c.userID)
	}

	return GameResult{
		State:       newState,
		Achievement: achievementFor(score),
	}
}

func achievementFor(score int) *Achievement {
	switch {
	case score >= 20:
		return &Achievement{
			Title:       "Bubble Master!",
			Description: fmt.Sprintf("You popped %d bubbles! Your companion feels extremely playful now.", score),
		}
	case score >= 10:
		return &Achievement{
			Title:       "Bubble Enthusiast",
			Description: fmt.Sprintf("You popped %d bubbles! Your companion is enjoying playtime.", score),
		}
	default:
		return nil
	}
}

// Reset replaces the conversation log with a fresh-start greeting. The
// emotional state carries over.
func (c *Companion) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = []types.Message{c.newMessage(types.RoleAssistant, ResetGreeting)}
}

// State returns the current emotional state.
func (c *Companion) State() emotion.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Activity returns what the companion is doing right now.
func (c *Companion) Activity() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activity
}

// Messages returns a copy of the conversation log.
func (c *Companion) Messages() []types.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]types.Message, len(c.messages))
	copy(result, c.messages)
	return result
}

// UserID returns the owning user identifier.
func (c *Companion) UserID() string {
	return c.userID
}

func (c *Companion) newMessage(role, content string) types.Message {
	return types.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: c.nowFunc(),
	}
}

func (c *Companion) append(msg types.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *Companion) setState(state emotion.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

func (c *Companion) setActivity(activity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activity = activity
}

func (c *Companion) persistConversation(ctx context.Context, role, text string) {
	if c.store == nil {
		return
	}
	if err := c.store.SaveConversation(ctx, c.userID, role, text); err != nil {
		slog.Error("failed to save conversation", "error", err.Error(), "user_id", c.userID, "role", role)
	}
}

func (c *Companion) persistState(ctx context.Context, state emotion.State) {
	if c.store == nil {
		return
	}
	if err := c.store.UpdateEmotionalState(ctx, c.userID, state); err != nil {
		slog.Error("failed to save emotional state", "error", err.Error(), "user_id", c.userID)
	}
}
