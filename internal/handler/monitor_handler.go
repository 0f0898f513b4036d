package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/model"
	"github.com/intervia/intervia-backend/internal/response"
	"github.com/intervia/intervia-backend/internal/service"
)

const (
	// refreshInterval is short because the remaining time of the current
	// question is the main thing a recruiter watches.
	refreshInterval   = 2 * time.Second
	keepAliveInterval = 30 * time.Second
)

// MonitorHandler streams live session progress to recruiters over SSE.
type MonitorHandler struct {
	sessions *service.SessionService
	log      zerolog.Logger
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(sessions *service.SessionService, log zerolog.Logger) *MonitorHandler {
	return &MonitorHandler{
		sessions: sessions,
		log:      logger.Component(log, "monitor_handler"),
	}
}

// MonitorSessionSSE godoc
// GET /api/v1/sessions/:session_id/monitor
// Streams a snapshot followed by periodic progress refreshes. Sampling
// happens on each tick; the session core never pushes.
func (h *MonitorHandler) MonitorSessionSSE(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	session, err := h.sessions.SessionStatus(sessionID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Full snapshot first; refreshes only carry what changes.
	c.SSEvent("message", gin.H{
		"type":    "snapshot",
		"session": session,
	})
	c.Writer.Flush()

	finished := session.Status == model.SessionStatusFinished

	refreshTicker := time.NewTicker(refreshInterval)
	defer refreshTicker.Stop()

	keepAliveTicker := time.NewTicker(keepAliveInterval)
	defer keepAliveTicker.Stop()

	h.log.Info().Str("session_id", sessionID.String()).Msg("Recruiter attached to live monitor SSE")

	// Pre-allocate a reusable ping payload (never changes)
	pingPayload, _ := json.Marshal(map[string]string{"type": "ping"})

	for {
		select {
		case <-reqCtx.Done():
			h.log.Info().Str("session_id", sessionID.String()).Msg("Recruiter disconnected from live monitor SSE")
			return

		case <-refreshTicker.C:
			if finished {
				continue // nothing changes once the session finished
			}

			session, err := h.sessions.SessionStatus(sessionID)
			if err != nil {
				// Session pruned mid-stream; tell the client and stop.
				c.SSEvent("message", gin.H{"type": "gone"})
				c.Writer.Flush()
				return
			}

			c.SSEvent("message", gin.H{
				"type":             "refresh",
				"status":           session.Status,
				"current_question": session.CurrentQuestion,
				"answered_count":   len(session.Answers),
			})
			c.Writer.Flush()

			if session.Status == model.SessionStatusFinished {
				finished = true
			}

		case <-keepAliveTicker.C:
			c.Writer.Write([]byte("data: "))
			c.Writer.Write(pingPayload)
			c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		}
	}
}
