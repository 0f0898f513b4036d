package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/model"
)

func newTestReportStack(t *testing.T) (*ReportService, *SessionService, *fakeClock) {
	t.Helper()
	cfg := config.DefaultScoring()
	clock := newFakeClock()
	sessions := NewSessionServiceWithClock(cfg, zerolog.Nop(), clock.Now)
	reports := NewReportService(
		sessions,
		NewIntegrityService(cfg, zerolog.Nop()),
		NewScoreService(cfg),
		zerolog.Nop(),
	)
	return reports, sessions, clock
}

func TestBuildReportRequiresFinishedSession(t *testing.T) {
	reports, sessions, _ := newTestReportStack(t)

	session, err := sessions.CreateSession("cand-1", "Maya Putri", testQuestions())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := reports.BuildReport(session.ID); !errors.Is(err, ErrSessionNotFinished) {
		t.Fatalf("err = %v, want ErrSessionNotFinished", err)
	}
}

func TestBuildReportUnknownSession(t *testing.T) {
	reports, _, _ := newTestReportStack(t)

	if _, err := reports.BuildReport(uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestBuildReport(t *testing.T) {
	reports, sessions, clock := newTestReportStack(t)

	session, err := sessions.CreateSession("cand-7", "Rizky Pratama", testQuestions())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Full topic coverage on the theory question, half coverage and no
	// markers on the case question, both at a comfortable pace.
	clock.Advance(30 * time.Second)
	if _, err := sessions.SubmitAnswer(session.ID, "a list or a dict depends on access"); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	clock.Advance(40 * time.Second)
	if _, err := sessions.SubmitAnswer(session.ID, "profiling shows the hot loop"); err != nil {
		t.Fatalf("submit 2: %v", err)
	}

	report, err := reports.BuildReport(session.ID)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	if report.SessionID != session.ID || report.CandidateID != "cand-7" || report.CandidateName != "Rizky Pratama" {
		t.Errorf("identity fields off: %+v", report)
	}
	// One EASY and one MEDIUM question blend into the medium mix.
	if report.DifficultyMix != model.MixMedium {
		t.Errorf("mix = %s, want medium", report.DifficultyMix)
	}

	b := report.Breakdown
	if b.KnowledgeScore != 75 {
		t.Errorf("knowledge = %v, want 75", b.KnowledgeScore)
	}
	if b.HonestyScore != 100 {
		t.Errorf("honesty = %v, want 100", b.HonestyScore)
	}
	if b.TimeBehaviorScore != 100 {
		t.Errorf("time behavior = %v, want 100", b.TimeBehaviorScore)
	}
	if b.ProblemSolvingScore != 65 {
		t.Errorf("problem solving = %v, want 65", b.ProblemSolvingScore)
	}

	// 0.30*75 + 0.25*100 + 0.20*100 + 0.25*65 = 83.75, rounded up.
	if report.FinalScore != 84 {
		t.Errorf("final score = %d, want 84", report.FinalScore)
	}

	if len(report.Integrity.Flags) != 0 {
		t.Errorf("unexpected integrity flags: %v", report.Integrity.Flags)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("generated at is zero")
	}
}

func TestBuildReportClassifiesUniformSets(t *testing.T) {
	reports, sessions, _ := newTestReportStack(t)

	hard := []model.QuestionRef{
		{
			ID: 4, Skill: "python", Difficulty: model.DifficultyHard, QuestionType: model.QuestionTypeTheory,
			QuestionText: "How does the GIL shape concurrency?", ExpectedTopics: []string{"gil", "threads"},
		},
		{
			ID: 17, Skill: "sql", Difficulty: model.DifficultyHard, QuestionType: model.QuestionTypeCase,
			QuestionText: "A join got slow on production. Walk through it.", ExpectedTopics: []string{"index", "plan"},
		},
	}

	session, err := sessions.CreateSession("cand-8", "Sari Dewi", hard)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for range hard {
		if _, err := sessions.SubmitAnswer(session.ID, "short but honest answer"); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	report, err := reports.BuildReport(session.ID)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.DifficultyMix != model.MixHard {
		t.Errorf("mix = %s, want hard", report.DifficultyMix)
	}
}
