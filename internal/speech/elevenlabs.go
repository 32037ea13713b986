package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/easeaico/gptamagotchi/internal/config"
)

const (
	defaultElevenLabsBaseURL = "https://api.elevenlabs.io"
	synthesisModelID         = "eleven_monolingual_v1"
	voiceStability           = 0.5
	voiceSimilarityBoost     = 0.75
)

// Synthesizer converts reply text into audio bytes. A nil result with a nil
// error means synthesis is disabled; callers treat missing audio as a
// non-failure.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// NewSynthesizer selects the ElevenLabs adapter or the disabled no-op from
// configuration.
func NewSynthesizer(cfg config.Config) Synthesizer {
	if cfg.ElevenLabsAPIKey == "" {
		slog.Warn("ELEVENLABS_API_KEY not configured, text-to-speech is disabled")
		return noopSynthesizer{}
	}
	return &elevenLabsSynthesizer{
		apiKey:     cfg.ElevenLabsAPIKey,
		voiceID:    cfg.VoiceID,
		baseURL:    defaultElevenLabsBaseURL,
		httpClient: http.DefaultClient,
	}
}

// elevenLabsSynthesizer calls the ElevenLabs text-to-speech REST endpoint.
// There is no Go SDK for this API, so the adapter speaks HTTP directly.
type elevenLabsSynthesizer struct {
	apiKey     string
	voiceID    string
	baseURL    string
	httpClient *http.Client
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

func (s *elevenLabsSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: synthesisModelID,
		VoiceSettings: voiceSettings{
			Stability:       voiceStability,
			SimilarityBoost: voiceSimilarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build synthesis request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call text-to-speech API: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("text-to-speech API error: status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesis response: %w", err)
	}
	return audio, nil
}

// noopSynthesizer silently produces no audio.
type noopSynthesizer struct{}

func (noopSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return nil, nil
}
