package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/model"
)

// ReportService assembles the final interview report for a finished
// session: summary, integrity analysis, component breakdown and the
// weighted final score. The difficulty mix is classified here, on the
// caller side of the scorer.
type ReportService struct {
	sessions  *SessionService
	integrity *IntegrityService
	scores    *ScoreService
	log       zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	sessions *SessionService,
	integrity *IntegrityService,
	scores *ScoreService,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		sessions:  sessions,
		integrity: integrity,
		scores:    scores,
		log:       logger.Component(log, "report_service"),
	}
}

// BuildReport produces the report for a FINISHED session. Requesting a
// report on a session that is still running is a state violation.
func (s *ReportService) BuildReport(id uuid.UUID) (*model.InterviewReport, error) {
	summary, err := s.sessions.SessionSummary(id)
	if err != nil {
		return nil, err
	}
	if summary.Status != model.SessionStatusFinished {
		return nil, ErrSessionNotFinished
	}

	questions, err := s.sessions.SessionQuestions(id)
	if err != nil {
		return nil, err
	}

	integrity := s.integrity.Analyze(summary, questions)
	breakdown := s.scores.Aggregate(summary, integrity, questions)

	mix := model.ClassifyDifficultyMix(questions)
	final, err := s.scores.FinalWeightedScore(breakdown, mix)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("session_id", summary.SessionID.String()).
		Str("candidate_id", summary.CandidateID).
		Str("difficulty_mix", string(mix)).
		Int("final_score", final).
		Msg("interview report generated")

	return &model.InterviewReport{
		SessionID:     summary.SessionID,
		CandidateID:   summary.CandidateID,
		CandidateName: summary.CandidateName,
		DifficultyMix: mix,
		Breakdown:     breakdown,
		FinalScore:    final,
		Integrity:     *integrity,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}
