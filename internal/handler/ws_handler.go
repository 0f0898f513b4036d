package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/service"
	ws "github.com/intervia/intervia-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the live interview WebSocket channel.
type WSHandler struct {
	sessions *service.SessionService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(sessions *service.SessionService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		sessions: sessions,
		log:      logger.Component(log, "ws_handler"),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// SessionLiveStream godoc
// WS /ws/v1/sessions/:session_id/live
// Upgrades to WebSocket for the interview loop: the client pulls
// progress, submits answers and requests the summary. The server never
// pushes on its own; timeouts surface on the next submission.
func (h *WSHandler) SessionLiveStream(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// The session must exist, but FINISHED is fine: a client may still
	// pull the summary over the open socket after the last answer.
	if _, err := h.sessions.SessionStatus(sessionID); err != nil {
		ws.WriteError(conn, "session not found")
		return
	}

	wsLog := h.log.With().Str("session_id", sessionID.String()).Logger()
	wsLog.Info().Msg("Candidate connected")

	for {
		var msg ws.RequestPayload
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionProgress:
			h.handleProgress(conn, sessionID)
		case ws.ActionAnswer:
			h.handleAnswer(conn, wsLog, sessionID, msg.Text)
		case ws.ActionSummary:
			h.handleSummary(conn, sessionID)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

// handleProgress sends the current question with a fresh remaining-time
// sample, or a null progress once the session finished.
func (h *WSHandler) handleProgress(conn *websocket.Conn, sessionID uuid.UUID) {
	progress, err := h.sessions.CurrentQuestion(sessionID)
	if err != nil {
		ws.WriteError(conn, "session not found")
		return
	}

	ws.WriteTyped(conn, ws.ProgressResponse{
		Event:    ws.EventProgress,
		Progress: progress,
	})
}

// handleAnswer records the answer to the current question and sends the
// recorded answer together with the next question, if any.
func (h *WSHandler) handleAnswer(conn *websocket.Conn, wsLog zerolog.Logger, sessionID uuid.UUID, text string) {
	answer, err := h.sessions.SubmitAnswer(sessionID, text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			ws.WriteError(conn, "session not found")
		case errors.Is(err, service.ErrSessionNotActive):
			ws.WriteError(conn, "session is not active")
		case errors.Is(err, service.ErrNoCurrentQuestion):
			ws.WriteError(conn, "no question awaiting an answer")
		default:
			ws.WriteError(conn, "submit failed")
		}
		return
	}

	next, _ := h.sessions.CurrentQuestion(sessionID)

	wsLog.Info().
		Int("question_id", answer.QuestionID).
		Bool("timeout", answer.IsTimeout).
		Bool("finished", next == nil).
		Msg("Answer submitted over WebSocket")

	ws.WriteTyped(conn, ws.RecordedResponse{
		Event:    ws.EventRecorded,
		Answer:   *answer,
		Next:     next,
		Finished: next == nil,
	})
}

// handleSummary sends the session summary on request.
func (h *WSHandler) handleSummary(conn *websocket.Conn, sessionID uuid.UUID) {
	summary, err := h.sessions.SessionSummary(sessionID)
	if err != nil {
		ws.WriteError(conn, "session not found")
		return
	}

	ws.WriteTyped(conn, ws.SummaryResponse{
		Event:   ws.EventSummary,
		Summary: summary,
	})
}
