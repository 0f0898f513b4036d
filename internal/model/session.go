package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus enumerates interview session states.
type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "ACTIVE"
	SessionStatusFinished SessionStatus = "FINISHED"
)

// QuestionProgress is the live view of the question a candidate is
// answering right now. TimeRemaining is recomputed from the running
// timer on every read, never cached.
type QuestionProgress struct {
	QuestionID     int          `json:"question_id"`
	QuestionText   string       `json:"question_text"`
	Skill          string       `json:"skill"`
	Difficulty     Difficulty   `json:"difficulty"`
	QuestionType   QuestionType `json:"question_type"`
	QuestionIndex  int          `json:"question_index"`
	TotalQuestions int          `json:"total_questions"`
	TimeLimit      float64      `json:"time_limit"`
	TimeRemaining  float64      `json:"time_remaining"`
}

// Session is one candidate's interview attempt.
type Session struct {
	ID              uuid.UUID         `json:"id"`
	CandidateID     string            `json:"candidate_id"`
	CandidateName   string            `json:"candidate_name"`
	Questions       []QuestionRef     `json:"questions"`
	CurrentIndex    int               `json:"current_index"`
	CurrentQuestion *QuestionProgress `json:"current_question,omitempty"`
	Answers         []Answer          `json:"answers"`
	Status          SessionStatus     `json:"status"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      *time.Time        `json:"finished_at,omitempty"`
}

// CreateSessionRequest is the payload for starting an interview.
type CreateSessionRequest struct {
	CandidateID   string        `json:"candidate_id" binding:"required,max=100"`
	CandidateName string        `json:"candidate_name" binding:"required,max=200"`
	Questions     []QuestionRef `json:"questions" binding:"required,min=1,dive"`
}

// SubmitAnswerRequest carries one answer body. Text may be empty: a
// candidate can skip or run out the clock, and the scorer treats those
// answers as zero credit.
type SubmitAnswerRequest struct {
	AnswerText string `json:"answer_text" binding:"max=10000"`
}
