// Package main boots the GPTamagotchi companion service and wires application
// dependencies.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/easeaico/gptamagotchi/internal/companion"
	"github.com/easeaico/gptamagotchi/internal/config"
	"github.com/easeaico/gptamagotchi/internal/emotion"
	"github.com/easeaico/gptamagotchi/internal/engagement"
	"github.com/easeaico/gptamagotchi/internal/localstore"
	"github.com/easeaico/gptamagotchi/internal/memory"
	"github.com/easeaico/gptamagotchi/internal/models"
	"github.com/easeaico/gptamagotchi/internal/prompt"
	"github.com/easeaico/gptamagotchi/internal/repository"
	"github.com/easeaico/gptamagotchi/internal/server"
	"github.com/easeaico/gptamagotchi/internal/speech"
)

// keyUserID stores the stable per-installation user identifier.
const keyUserID = "companionUserId"

const shutdownTimeout = 10 * time.Second

// repoPersistence joins the user and conversation repos into the single
// write surface the orchestrator expects.
type repoPersistence struct {
	users         *repository.UserRepo
	conversations *repository.ConversationRepo
}

func (p *repoPersistence) SaveConversation(ctx context.Context, userID, role, text string) error {
	return p.conversations.SaveConversation(ctx, userID, role, text)
}

func (p *repoPersistence) UpdateEmotionalState(ctx context.Context, userID string, state emotion.State) error {
	return p.users.UpdateEmotionalState(ctx, userID, state)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	slog.Info("configuration loaded", "chat_model", cfg.ChatModel, "embedding_provider", cfg.EmbeddingProvider, "listen_addr", cfg.ListenAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	local, err := localstore.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open local store: %v", err)
	}

	userID := local.Get(keyUserID)
	if userID == "" {
		userID = uuid.NewString()
		if err := local.Set(keyUserID, userID); err != nil {
			log.Fatalf("failed to persist user id: %v", err)
		}
		slog.Info("generated new user id", "user_id", userID)
	}

	var store *repository.Store
	if cfg.DatabaseURL != "" {
		store, err = repository.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer store.Close()

		if err := store.Users.EnsureUser(ctx, userID); err != nil {
			log.Fatalf("failed to ensure user row: %v", err)
		}
	} else {
		slog.Warn("DATABASE_URL not configured, running without remote persistence")
	}

	embedder, err := models.NewEmbedder(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize embedder: %v", err)
	}

	var memoryRepo memory.MemoryRepo
	var persistence companion.Persistence
	var metricsRepo engagement.MetricsRepo
	if store != nil {
		memoryRepo = store.Memories
		persistence = &repoPersistence{users: store.Users, conversations: store.Conversations}
		metricsRepo = store.Engagement
	}

	memoryService := memory.NewService(embedder, memoryRepo, cfg.TopK, cfg.SimilarityThreshold)
	chat := models.NewChat(cfg)
	synth := speech.NewSynthesizer(cfg)
	transcriber := speech.NewTranscriber(cfg)

	comp := companion.New(userID, chat, memoryService, synth, prompt.NewBuilder(cfg.HistoryLimit), persistence)

	if store != nil {
		state, err := store.Users.GetEmotionalState(ctx, userID)
		if err != nil {
			slog.Warn("failed to load emotional state, starting fresh", "error", err.Error())
		} else {
			comp.RestoreState(state)
		}

		history, err := store.Conversations.GetRecent(ctx, userID, cfg.HistoryLimit)
		if err != nil {
			slog.Warn("failed to load conversation history", "error", err.Error())
		} else {
			comp.RestoreMessages(history)
		}
	}

	tracker := engagement.NewTracker(local, metricsRepo, userID)
	if _, err := tracker.Touch(ctx); err != nil {
		slog.Warn("failed to record login", "error", err.Error())
	}

	srv := server.NewServer(cfg.ListenAddr, comp, tracker, transcriber)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("http server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err.Error())
		}
	}

	slog.Info("companion shutdown complete")
}
