package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/model"
)

// Thresholds for the deterministic integrity heuristics. Ratios are
// fractions of the question's time limit.
const (
	fastAnswerRatio = 0.10
	pasteRatio      = 0.05
	pasteMinLength  = 300

	timeoutBehaviorScore = 0.3
	fastBehaviorScore    = 0.7
	pasteBehaviorScore   = 0.2

	duplicateAuthenticity = 0.2
	pasteAuthenticity     = 0.4
)

// IntegrityService produces the integrity report consumed by score
// aggregation. The heuristics are deterministic: they look at timing
// patterns and duplicate answer bodies, never at answer correctness.
type IntegrityService struct {
	cfg *config.ScoringConfig
	log zerolog.Logger
}

// NewIntegrityService creates an analyzer bound to the scoring
// configuration, which supplies the per-difficulty time limits.
func NewIntegrityService(cfg *config.ScoringConfig, log zerolog.Logger) *IntegrityService {
	return &IntegrityService{
		cfg: cfg,
		log: logger.Component(log, "integrity_service"),
	}
}

// Analyze builds the integrity report for a session. Every answer gets
// a time_behavior result; non-empty answers additionally get an
// authenticity result. Session-wide anomalies land in Flags.
func (s *IntegrityService) Analyze(summary *model.SessionSummary, questions []model.QuestionRef) *model.IntegrityReport {
	qmap := make(map[int]model.QuestionRef, len(questions))
	for _, q := range questions {
		qmap[q.ID] = q
	}

	var flags []string
	var honestyScores []float64
	reports := make([]model.AnswerAnalysis, 0, len(summary.Answers))

	// First non-empty use of each normalized answer body.
	seen := make(map[string]int)

	for _, answer := range summary.Answers {
		var results []model.AnalysisResult

		limitSeconds := 0.0
		if q, ok := qmap[answer.QuestionID]; ok {
			limitSeconds = s.cfg.TimeLimits[q.Difficulty].Seconds()
		}
		limitKnown := limitSeconds > 0

		ratio := 0.0
		if limitKnown {
			ratio = answer.TimeSpent / limitSeconds
		}
		pasteLike := !answer.IsTimeout && limitKnown &&
			ratio < pasteRatio && len(answer.AnswerText) >= pasteMinLength

		results = append(results, timeBehaviorResult(answer, ratio, limitKnown, pasteLike))

		if answer.AnswerText != "" {
			authenticity := model.AnalysisResult{Type: model.AnalysisAuthenticity, Score: 1.0}

			norm := normalizeAnswer(answer.AnswerText)
			if firstQ, dup := seen[norm]; dup {
				authenticity.Score = duplicateAuthenticity
				authenticity.Detail = fmt.Sprintf("duplicate of the answer to question %d", firstQ)
				flags = append(flags, fmt.Sprintf("questions %d and %d received identical answers", firstQ, answer.QuestionID))
			} else {
				seen[norm] = answer.QuestionID
				if pasteLike {
					authenticity.Score = pasteAuthenticity
					authenticity.Detail = "implausible typing speed for the answer length"
					flags = append(flags, fmt.Sprintf("question %d: long answer arrived implausibly fast", answer.QuestionID))
				}
			}

			results = append(results, authenticity)
			honestyScores = append(honestyScores, authenticity.Score)
		}

		reports = append(reports, model.AnswerAnalysis{
			QuestionID: answer.QuestionID,
			Results:    results,
		})
	}

	report := &model.IntegrityReport{
		SessionID:           summary.SessionID,
		OverallHonestyScore: mean(honestyScores, 1.0),
		AnswerReports:       reports,
		Flags:               flags,
	}

	if len(flags) > 0 {
		s.log.Warn().
			Str("session_id", summary.SessionID.String()).
			Strs("flags", flags).
			Msg("integrity anomalies detected")
	}

	return report
}

func timeBehaviorResult(answer model.Answer, ratio float64, limitKnown, pasteLike bool) model.AnalysisResult {
	result := model.AnalysisResult{Type: model.AnalysisTimeBehavior, Score: 1.0}

	switch {
	case answer.IsTimeout:
		result.Score = timeoutBehaviorScore
		result.Detail = "time limit exhausted"
	case pasteLike:
		result.Score = pasteBehaviorScore
		result.Detail = "long answer arrived implausibly fast"
	case limitKnown && ratio < fastAnswerRatio:
		result.Score = fastBehaviorScore
		result.Detail = "answered unusually fast"
	}

	return result
}

// normalizeAnswer lowercases and collapses whitespace so trivial edits
// do not hide duplicated answer bodies.
func normalizeAnswer(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
