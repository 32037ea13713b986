package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/easeaico/gptamagotchi/internal/config"
)

func TestElevenLabsSynthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotBody synthesisRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	s := &elevenLabsSynthesizer{
		apiKey:     "el-key",
		voiceID:    "EXAVITQu4vr4xnSDxMaL",
		baseURL:    server.URL,
		httpClient: server.Client(),
	}

	audio, err := s.Synthesize(context.Background(), "Hi there!")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Fatalf("unexpected audio: %q", audio)
	}
	if gotPath != "/v1/text-to-speech/EXAVITQu4vr4xnSDxMaL" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotKey != "el-key" {
		t.Fatalf("unexpected api key header: %q", gotKey)
	}
	if gotBody.Text != "Hi there!" || gotBody.ModelID != synthesisModelID {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
	if gotBody.VoiceSettings.Stability != voiceStability || gotBody.VoiceSettings.SimilarityBoost != voiceSimilarityBoost {
		t.Fatalf("unexpected voice settings: %+v", gotBody.VoiceSettings)
	}
}

func TestElevenLabsSynthesizeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	s := &elevenLabsSynthesizer{
		apiKey:     "bad",
		voiceID:    "voice",
		baseURL:    server.URL,
		httpClient: server.Client(),
	}
	if _, err := s.Synthesize(context.Background(), "text"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestNewSynthesizerWithoutKeyIsNoop(t *testing.T) {
	s := NewSynthesizer(config.Config{})
	audio, err := s.Synthesize(context.Background(), "anything")
	if err != nil {
		t.Fatalf("noop synthesize: %v", err)
	}
	if audio != nil {
		t.Fatalf("expected nil audio, got %d bytes", len(audio))
	}
}

func TestMockTranscriber(t *testing.T) {
	tr := NewTranscriber(config.Config{})
	text, err := tr.Transcribe(context.Background(), strings.NewReader("fake-audio"), "recording.webm")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != MockTranscript {
		t.Fatalf("unexpected transcript: %q", text)
	}
}
