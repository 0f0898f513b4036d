package service

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/model"
)

func newTestIntegrityService() *IntegrityService {
	return NewIntegrityService(config.DefaultScoring(), zerolog.Nop())
}

// resultOf pulls the single result of the given type out of an answer
// analysis, failing the test when it is missing or duplicated.
func resultOf(t *testing.T, analysis model.AnswerAnalysis, typ model.AnalysisType) model.AnalysisResult {
	t.Helper()
	var found []model.AnalysisResult
	for _, r := range analysis.Results {
		if r.Type == typ {
			found = append(found, r)
		}
	}
	if len(found) != 1 {
		t.Fatalf("question %d carries %d %s results, want 1", analysis.QuestionID, len(found), typ)
	}
	return found[0]
}

func TestAnalyze(t *testing.T) {
	svc := newTestIntegrityService()
	questions := scoringQuestions()

	t.Run("CleanSession", func(t *testing.T) {
		summary := summaryOf(
			model.Answer{QuestionID: 1, AnswerText: "a thorough answer about goroutines", TimeSpent: 60},
			model.Answer{QuestionID: 2, AnswerText: "i would shard the cache", TimeSpent: 90},
		)
		report := svc.Analyze(summary, questions)

		if report.OverallHonestyScore != 1.0 {
			t.Errorf("honesty = %v, want 1.0", report.OverallHonestyScore)
		}
		if len(report.Flags) != 0 {
			t.Errorf("unexpected flags: %v", report.Flags)
		}
		if len(report.AnswerReports) != 2 {
			t.Fatalf("got %d answer reports, want 2", len(report.AnswerReports))
		}
		for _, analysis := range report.AnswerReports {
			if got := resultOf(t, analysis, model.AnalysisTimeBehavior).Score; got != 1.0 {
				t.Errorf("question %d time behavior = %v, want 1.0", analysis.QuestionID, got)
			}
			if got := resultOf(t, analysis, model.AnalysisAuthenticity).Score; got != 1.0 {
				t.Errorf("question %d authenticity = %v, want 1.0", analysis.QuestionID, got)
			}
		}
	})

	t.Run("TimeoutLowersTimeBehavior", func(t *testing.T) {
		summary := summaryOf(model.Answer{QuestionID: 1, AnswerText: "ran out of time here", TimeSpent: 180, IsTimeout: true})
		report := svc.Analyze(summary, questions)

		tb := resultOf(t, report.AnswerReports[0], model.AnalysisTimeBehavior)
		if tb.Score != 0.3 {
			t.Errorf("time behavior = %v, want 0.3", tb.Score)
		}
		if tb.Detail == "" {
			t.Error("timeout result carries no detail")
		}
		// A timeout is slow, not dishonest.
		if got := resultOf(t, report.AnswerReports[0], model.AnalysisAuthenticity).Score; got != 1.0 {
			t.Errorf("authenticity = %v, want 1.0", got)
		}
	})

	t.Run("EmptyAnswerGetsNoAuthenticitySignal", func(t *testing.T) {
		summary := summaryOf(model.Answer{QuestionID: 1, AnswerText: "", TimeSpent: 30})
		report := svc.Analyze(summary, questions)

		if got := len(report.AnswerReports[0].Results); got != 1 {
			t.Fatalf("empty answer has %d results, want only time behavior", got)
		}
		if report.OverallHonestyScore != 1.0 {
			t.Errorf("honesty without any authenticity sample = %v, want default 1.0", report.OverallHonestyScore)
		}
	})

	t.Run("SuspiciouslyFastAnswer", func(t *testing.T) {
		// 10s of a 180s limit sits under the fast-answer ratio.
		summary := summaryOf(model.Answer{QuestionID: 1, AnswerText: "a quick one", TimeSpent: 10})
		report := svc.Analyze(summary, questions)

		if got := resultOf(t, report.AnswerReports[0], model.AnalysisTimeBehavior).Score; got != 0.7 {
			t.Errorf("time behavior = %v, want 0.7", got)
		}
		// Short answers can legitimately be fast, so authenticity is
		// untouched and nothing is flagged.
		if got := resultOf(t, report.AnswerReports[0], model.AnalysisAuthenticity).Score; got != 1.0 {
			t.Errorf("authenticity = %v, want 1.0", got)
		}
		if len(report.Flags) != 0 {
			t.Errorf("unexpected flags: %v", report.Flags)
		}
	})

	t.Run("PasteLikeAnswer", func(t *testing.T) {
		// 360 characters in 5 of 180 seconds cannot be typed.
		long := strings.Repeat("lorem ipsum ", 30)
		summary := summaryOf(model.Answer{QuestionID: 2, AnswerText: long, TimeSpent: 5})
		report := svc.Analyze(summary, questions)

		if got := resultOf(t, report.AnswerReports[0], model.AnalysisTimeBehavior).Score; got != 0.2 {
			t.Errorf("time behavior = %v, want 0.2", got)
		}
		if got := resultOf(t, report.AnswerReports[0], model.AnalysisAuthenticity).Score; got != 0.4 {
			t.Errorf("authenticity = %v, want 0.4", got)
		}
		if len(report.Flags) != 1 || !strings.Contains(report.Flags[0], "question 2") {
			t.Errorf("flags = %v, want one paste flag for question 2", report.Flags)
		}
	})

	t.Run("DuplicateAnswersAcrossQuestions", func(t *testing.T) {
		summary := summaryOf(
			model.Answer{QuestionID: 1, AnswerText: "The Same Answer", TimeSpent: 60},
			model.Answer{QuestionID: 2, AnswerText: "the   same answer", TimeSpent: 70},
		)
		report := svc.Analyze(summary, questions)

		// The first occurrence stays clean; the repeat is penalized.
		if got := resultOf(t, report.AnswerReports[0], model.AnalysisAuthenticity).Score; got != 1.0 {
			t.Errorf("first answer authenticity = %v, want 1.0", got)
		}
		dup := resultOf(t, report.AnswerReports[1], model.AnalysisAuthenticity)
		if dup.Score != 0.2 {
			t.Errorf("duplicate authenticity = %v, want 0.2", dup.Score)
		}
		if !strings.Contains(dup.Detail, "question 1") {
			t.Errorf("duplicate detail = %q, want reference to question 1", dup.Detail)
		}

		if report.OverallHonestyScore != 0.6 {
			t.Errorf("honesty = %v, want 0.6", report.OverallHonestyScore)
		}
		want := "questions 1 and 2 received identical answers"
		if len(report.Flags) != 1 || report.Flags[0] != want {
			t.Errorf("flags = %v, want [%q]", report.Flags, want)
		}
	})

	t.Run("UnknownQuestionHasNoTimeVerdict", func(t *testing.T) {
		// Without a time limit the heuristics cannot call anything
		// fast, even an instant answer.
		summary := summaryOf(model.Answer{QuestionID: 99, AnswerText: "mystery answer", TimeSpent: 0})
		report := svc.Analyze(summary, questions)

		if got := resultOf(t, report.AnswerReports[0], model.AnalysisTimeBehavior).Score; got != 1.0 {
			t.Errorf("time behavior = %v, want 1.0", got)
		}
	})
}
