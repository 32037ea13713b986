// Package speech wraps the hosted voice endpoints: audio-to-text
// transcription and text-to-speech synthesis.
package speech

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/easeaico/gptamagotchi/internal/config"
)

// MockTranscript is returned when transcription runs without credentials.
const MockTranscript = "This is a mock transcription since the OpenAI API key is not configured."

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// NewTranscriber selects the Whisper adapter or its mock from configuration.
func NewTranscriber(cfg config.Config) Transcriber {
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY not configured, transcription runs in mock mode")
		return mockTranscriber{}
	}
	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	return &whisperTranscriber{client: &client}
}

type whisperTranscriber struct {
	client *openai.Client
}

func (t *whisperTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(audio, filename, "application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return resp.Text, nil
}

type mockTranscriber struct{}

func (mockTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return MockTranscript, nil
}
