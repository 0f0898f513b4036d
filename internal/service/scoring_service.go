package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/model"
)

// ErrUnknownDifficultyMix signals a weight lookup for a mix the scoring
// configuration does not carry. This is a configuration error; the mix
// is never silently defaulted.
var ErrUnknownDifficultyMix = errors.New("unknown difficulty mix")

// ScoreService turns a finished session's answers and its integrity
// report into the four component scores and the weighted final score.
// All methods are pure; the service holds only configuration.
type ScoreService struct {
	cfg *config.ScoringConfig
}

// NewScoreService creates a scorer bound to the given configuration.
func NewScoreService(cfg *config.ScoringConfig) *ScoreService {
	return &ScoreService{cfg: cfg}
}

// Aggregate combines technical evaluation, integrity and behavioral
// data into the component breakdown. Every component lands on a 0-100
// scale rounded to two decimals. The report must not be nil.
func (s *ScoreService) Aggregate(summary *model.SessionSummary, report *model.IntegrityReport, questions []model.QuestionRef) model.ScoreBreakdown {
	knowledge, problemSolving := s.technicalScores(summary, questions)

	honesty := report.OverallHonestyScore * 100

	var timeScores []float64
	for _, answerReport := range report.AnswerReports {
		for _, result := range answerReport.Results {
			if result.Type == model.AnalysisTimeBehavior {
				timeScores = append(timeScores, result.Score*100)
			}
		}
	}
	timeBehavior := mean(timeScores, s.cfg.TimeNeutralScore)

	return model.ScoreBreakdown{
		KnowledgeScore:      round2(knowledge),
		HonestyScore:        round2(honesty),
		TimeBehaviorScore:   round2(timeBehavior),
		ProblemSolvingScore: round2(problemSolving),
	}
}

// FinalWeightedScore folds the breakdown into a single integer score
// using the weight table for the given difficulty mix. The mix comes
// from the caller; classifying a question set is not the scorer's job.
func (s *ScoreService) FinalWeightedScore(breakdown model.ScoreBreakdown, mix model.DifficultyMix) (int, error) {
	weights, ok := s.cfg.Weights[mix]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDifficultyMix, mix)
	}

	final := breakdown.KnowledgeScore*weights.Knowledge +
		breakdown.HonestyScore*weights.Honesty +
		breakdown.TimeBehaviorScore*weights.Time +
		breakdown.ProblemSolvingScore*weights.ProblemSolving

	return int(math.Round(final)), nil
}

// technicalScores computes the knowledge and problem solving components
// as session means on a 0-100 scale.
//
// Timed-out and empty answers earn exactly zero knowledge credit and
// contribute no problem solving sample at all: the candidate said
// nothing, so there is nothing to judge problem solving on.
func (s *ScoreService) technicalScores(summary *model.SessionSummary, questions []model.QuestionRef) (knowledge, problemSolving float64) {
	qmap := make(map[int]model.QuestionRef, len(questions))
	for _, q := range questions {
		qmap[q.ID] = q
	}

	var knowledgeScores []float64
	var psScores []float64

	for _, answer := range summary.Answers {
		if answer.AnswerText == "" || answer.IsTimeout {
			knowledgeScores = append(knowledgeScores, 0)
			continue
		}

		q, known := qmap[answer.QuestionID]
		text := strings.ToLower(answer.AnswerText)

		// Topic coverage drives the base score. Answers to questions
		// without expected topics start from the neutral base.
		base := s.cfg.NeutralBase
		if known && len(q.ExpectedTopics) > 0 {
			matches := 0
			for _, topic := range q.ExpectedTopics {
				if topicMatches(text, topic) {
					matches++
				}
			}
			base = float64(matches) / float64(len(q.ExpectedTopics)) * 100
		}

		bonus := 0.0
		for _, word := range s.cfg.Vocabulary {
			if strings.Contains(text, word) {
				bonus += s.cfg.VocabularyBonus
			}
		}
		knowledgeScore := math.Min(100, base+bonus)
		knowledgeScores = append(knowledgeScores, knowledgeScore)

		if known && q.QuestionType == model.QuestionTypeCase {
			markerBonus := 0.0
			for _, marker := range s.cfg.Markers {
				if strings.Contains(text, marker) {
					markerBonus += s.cfg.MarkerBonus
				}
			}
			psScores = append(psScores, math.Min(100, base+markerBonus))
		} else {
			// Theory answers reveal only part of the problem solving
			// picture, so the knowledge score is scaled down.
			psScores = append(psScores, knowledgeScore*s.cfg.TheoryFactor)
		}
	}

	return mean(knowledgeScores, 0), mean(psScores, 0)
}

// topicMatches reports whether topic appears in text as a whole word.
// Multi-word topics match as exact phrases. Both sides are expected to
// be lowercase already for text; the topic is lowered here.
func topicMatches(text, topic string) bool {
	pattern := `\b` + regexp.QuoteMeta(strings.ToLower(topic)) + `\b`
	return regexp.MustCompile(pattern).MatchString(text)
}

func mean(values []float64, empty float64) float64 {
	if len(values) == 0 {
		return empty
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
