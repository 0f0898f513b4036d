package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer is the immutable record of one submitted answer. TimeSpent is
// wall-clock seconds between question start and submission, clamped to
// the question's time limit.
type Answer struct {
	QuestionID  int       `json:"question_id"`
	AnswerText  string    `json:"answer_text"`
	TimeSpent   float64   `json:"time_spent"`
	IsTimeout   bool      `json:"is_timeout"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SessionSummary condenses a session for reporting and HR review.
type SessionSummary struct {
	SessionID         uuid.UUID     `json:"session_id"`
	CandidateID       string        `json:"candidate_id"`
	CandidateName     string        `json:"candidate_name"`
	Status            SessionStatus `json:"status"`
	TotalQuestions    int           `json:"total_questions"`
	AnsweredQuestions int           `json:"answered_questions"`
	TotalTimeSpent    float64       `json:"total_time_spent"`
	Answers           []Answer      `json:"answers"`
}
