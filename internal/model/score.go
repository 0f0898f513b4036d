package model

import (
	"time"

	"github.com/google/uuid"
)

// DifficultyMix classifies a whole question set for weight selection.
type DifficultyMix string

const (
	MixEasy   DifficultyMix = "easy"
	MixMedium DifficultyMix = "medium"
	MixHard   DifficultyMix = "hard"
)

// ClassifyDifficultyMix buckets a question set. Uniform sets get their
// dedicated weight table; anything blended counts as medium.
func ClassifyDifficultyMix(questions []QuestionRef) DifficultyMix {
	if len(questions) == 0 {
		return MixMedium
	}
	allEasy, allHard := true, true
	for _, q := range questions {
		if q.Difficulty != DifficultyEasy {
			allEasy = false
		}
		if q.Difficulty != DifficultyHard {
			allHard = false
		}
	}
	switch {
	case allHard:
		return MixHard
	case allEasy:
		return MixEasy
	default:
		return MixMedium
	}
}

// ScoreBreakdown holds the four component scores, each on a 0-100
// scale rounded to two decimals.
type ScoreBreakdown struct {
	KnowledgeScore      float64 `json:"knowledge_score"`
	HonestyScore        float64 `json:"honesty_score"`
	TimeBehaviorScore   float64 `json:"time_behavior_score"`
	ProblemSolvingScore float64 `json:"problem_solving_score"`
}

// InterviewReport is the artifact handed to HR once a session finishes:
// summary, integrity analysis, component breakdown and the single
// weighted final score.
type InterviewReport struct {
	SessionID     uuid.UUID       `json:"session_id"`
	CandidateID   string          `json:"candidate_id"`
	CandidateName string          `json:"candidate_name"`
	DifficultyMix DifficultyMix   `json:"difficulty_mix"`
	Breakdown     ScoreBreakdown  `json:"breakdown"`
	FinalScore    int             `json:"final_score"`
	Integrity     IntegrityReport `json:"integrity"`
	GeneratedAt   time.Time       `json:"generated_at"`
}
