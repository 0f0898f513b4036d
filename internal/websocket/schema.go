package websocket

import "github.com/intervia/intervia-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionProgress Action = "progress"
	ActionAnswer   Action = "answer"
	ActionSummary  Action = "summary"
	ActionPing     Action = "ping"
)

// RequestPayload is the single client-to-server message shape. Text is
// only read for ActionAnswer and may be empty; skipping a question is a
// legal move.
type RequestPayload struct {
	Action Action `json:"action"`
	Text   string `json:"text"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventProgress Event = "progress"
	EventRecorded Event = "recorded"
	EventSummary  Event = "summary"
	EventPong     Event = "pong"
	EventError    Event = "error"
)

// ProgressResponse carries the current question with a fresh
// time-remaining sample. Progress is null once the session finished.
type ProgressResponse struct {
	Event    Event                   `json:"event"`
	Progress *model.QuestionProgress `json:"progress"`
}

// RecordedResponse confirms a submitted answer. Next carries the
// following question, or null when the interview just finished.
type RecordedResponse struct {
	Event    Event                   `json:"event"`
	Answer   model.Answer            `json:"answer"`
	Next     *model.QuestionProgress `json:"next"`
	Finished bool                    `json:"finished"`
}

// SummaryResponse carries the session summary on request.
type SummaryResponse struct {
	Event   Event                 `json:"event"`
	Summary *model.SessionSummary `json:"summary"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
