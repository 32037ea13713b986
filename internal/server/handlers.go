package server

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easeaico/gptamagotchi/internal/companion"
	"github.com/easeaico/gptamagotchi/internal/emotion"
	"github.com/easeaico/gptamagotchi/internal/engagement"
)

type chatRequest struct {
	Message string `json:"message"`
}

type gameRequest struct {
	Game  string `json:"game" binding:"required"`
	Score int    `json:"score"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.companion.ProcessUserInput(c.Request.Context(), req.Message)
	switch {
	case errors.Is(err, companion.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	case errors.Is(err, companion.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "still processing the previous message"})
		return
	case err != nil:
		slog.Error("chat turn failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := gin.H{
		"reply":           result.Reply,
		"emotional_state": result.State,
	}
	if len(result.Audio) > 0 {
		resp["audio"] = base64.StdEncoding.EncodeToString(result.Audio)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleTranscribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	defer file.Close()

	text, err := s.transcriber.Transcribe(c.Request.Context(), file, header.Filename)
	if err != nil {
		slog.Error("transcription failed", "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to transcribe audio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (s *Server) handleGame(c *gin.Context) {
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game name is required"})
		return
	}

	if !s.tracker.CanPlayGame() {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":              "daily game limit reached",
			"games_played_today": s.tracker.GamesPlayedToday(),
			"max_games_per_day":  engagement.MaxGamesPerDay,
		})
		return
	}

	played, err := s.tracker.RecordGame()
	if err != nil {
		slog.Warn("failed to record game", "error", err.Error())
	}

	result := s.companion.ProcessGameInteraction(c.Request.Context(), req.Game, req.Score)
	resp := gin.H{
		"emotional_state":    result.State,
		"games_played_today": played,
		"max_games_per_day":  engagement.MaxGamesPerDay,
	}
	if result.Achievement != nil {
		resp["achievement"] = result.Achievement
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleReset(c *gin.Context) {
	s.companion.Reset()
	c.JSON(http.StatusOK, gin.H{"messages": s.companion.Messages()})
}

func (s *Server) handleState(c *gin.Context) {
	state := s.companion.State()
	c.JSON(http.StatusOK, gin.H{
		"emotional_state": state,
		"overall_mood":    emotion.OverallMood(state),
		"activity":        s.companion.Activity(),
	})
}

func (s *Server) handleMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": s.companion.Messages()})
}

func (s *Server) handleEngagement(c *gin.Context) {
	stats, err := s.tracker.Touch(c.Request.Context())
	if err != nil {
		slog.Warn("failed to record login", "error", err.Error())
	}
	c.JSON(http.StatusOK, gin.H{
		"streak":             stats.Streak,
		"days_active":        stats.DaysActive,
		"games_played_today": s.tracker.GamesPlayedToday(),
		"max_games_per_day":  engagement.MaxGamesPerDay,
		"message":            engagement.Message(stats.Streak),
	})
}
