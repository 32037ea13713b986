// Package server exposes the companion over HTTP for the web client.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/easeaico/gptamagotchi/internal/companion"
	"github.com/easeaico/gptamagotchi/internal/emotion"
	"github.com/easeaico/gptamagotchi/internal/engagement"
	"github.com/easeaico/gptamagotchi/internal/speech"
	"github.com/easeaico/gptamagotchi/internal/types"
)

// Companion is the orchestrator surface the handlers call.
type Companion interface {
	ProcessUserInput(ctx context.Context, content string) (companion.TurnResult, error)
	ProcessGameInteraction(ctx context.Context, gameType string, score int) companion.GameResult
	Reset()
	State() emotion.State
	Activity() string
	Messages() []types.Message
}

// Tracker is the engagement surface the handlers call.
type Tracker interface {
	Touch(ctx context.Context) (engagement.Stats, error)
	GamesPlayedToday() int
	CanPlayGame() bool
	RecordGame() (int, error)
}

// Server routes web-client requests to the companion.
type Server struct {
	companion   Companion
	tracker     Tracker
	transcriber speech.Transcriber
	httpServer  *http.Server
}

// NewServer wires the routes and returns a Server listening on addr once
// Start is called.
func NewServer(addr string, comp Companion, tracker Tracker, transcriber speech.Transcriber) *Server {
	s := &Server{
		companion:   comp,
		tracker:     tracker,
		transcriber: transcriber,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	s.registerRoutes(router)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	api.POST("/chat", s.handleChat)
	api.POST("/transcribe", s.handleTranscribe)
	api.POST("/game", s.handleGame)
	api.POST("/reset", s.handleReset)
	api.GET("/state", s.handleState)
	api.GET("/messages", s.handleMessages)
	api.GET("/engagement", s.handleEngagement)
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	slog.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
