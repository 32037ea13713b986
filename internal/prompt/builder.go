// Package prompt assembles the layered completion request for a turn:
// persona instructions, a rendered emotional-state summary, retrieved memory
// excerpts, and a bounded window of recent conversation.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/easeaico/gptamagotchi/internal/emotion"
	"github.com/easeaico/gptamagotchi/internal/models"
	"github.com/easeaico/gptamagotchi/internal/types"
)

var (
	emotionTemplate = template.Must(template.New("emotion").Funcs(template.FuncMap{
		"level": emotion.Level,
	}).Parse(emotionContextText))

	memoryTemplate = template.Must(template.New("memories").Parse(memoryContextText))
)

// BuildContext contains all inputs for prompt assembly.
type BuildContext struct {
	State       emotion.State
	Memories    []types.RetrievedMemory
	History     []types.Message
	UserMessage string
}

// Builder assembles layered prompts.
type Builder struct {
	historyLimit int
	nowFunc      func() time.Time
}

// NewBuilder creates a prompt Builder bounding history to the given number
// of recent turns.
func NewBuilder(historyLimit int) *Builder {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &Builder{
		historyLimit: historyLimit,
		nowFunc:      time.Now,
	}
}

// Build renders the full role-tagged message list for the completion call.
func (b *Builder) Build(ctx BuildContext) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{
		{Role: types.RoleSystem, Content: personaText},
	}

	emotionContext, err := renderEmotionContext(ctx.State)
	if err != nil {
		return nil, err
	}
	messages = append(messages, models.ChatMessage{Role: types.RoleSystem, Content: emotionContext})

	if len(ctx.Memories) > 0 {
		memoryContext, err := renderMemoryContext(ctx.Memories)
		if err != nil {
			return nil, err
		}
		messages = append(messages, models.ChatMessage{Role: types.RoleSystem, Content: memoryContext})
	}

	history := ctx.History
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}
	for _, msg := range history {
		// Stale system messages from earlier turns never re-enter the prompt.
		if msg.Role == types.RoleSystem {
			continue
		}
		messages = append(messages, models.ChatMessage{Role: msg.Role, Content: msg.Content})
	}

	messages = append(messages, models.ChatMessage{Role: types.RoleUser, Content: ctx.UserMessage})
	return messages, nil
}

func renderEmotionContext(state emotion.State) (string, error) {
	data := struct {
		State emotion.State
		Mood  string
	}{
		State: state,
		Mood:  emotion.OverallMood(state),
	}
	var buf bytes.Buffer
	if err := emotionTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render emotion context: %w", err)
	}
	return buf.String(), nil
}

func renderMemoryContext(memories []types.RetrievedMemory) (string, error) {
	data := struct {
		Memories []types.RetrievedMemory
	}{Memories: memories}
	var buf bytes.Buffer
	if err := memoryTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render memory context: %w", err)
	}
	return buf.String(), nil
}
