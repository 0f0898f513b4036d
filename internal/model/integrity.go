package model

import "github.com/google/uuid"

// AnalysisType tags one integrity signal.
type AnalysisType string

const (
	AnalysisTimeBehavior AnalysisType = "time_behavior"
	AnalysisAuthenticity AnalysisType = "authenticity"
)

// AnalysisResult is one signal produced for one answer. Score is on a
// 0-1 scale where 1 means no anomaly detected.
type AnalysisResult struct {
	Type   AnalysisType `json:"type"`
	Score  float64      `json:"score"`
	Detail string       `json:"detail,omitempty"`
}

// AnswerAnalysis groups the integrity signals for a single answer.
type AnswerAnalysis struct {
	QuestionID int              `json:"question_id"`
	Results    []AnalysisResult `json:"analysis_results"`
}

// IntegrityReport aggregates per-answer integrity signals for a whole
// session. OverallHonestyScore is on a 0-1 scale.
type IntegrityReport struct {
	SessionID           uuid.UUID        `json:"session_id"`
	OverallHonestyScore float64          `json:"overall_honesty_score"`
	AnswerReports       []AnswerAnalysis `json:"answer_reports"`
	Flags               []string         `json:"flags"`
}
