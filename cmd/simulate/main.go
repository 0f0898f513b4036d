package main

import (
	"fmt"

	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/model"
	"github.com/intervia/intervia-backend/internal/service"
)

// Runs a scripted interview against the in-process services. Handy for
// eyeballing scoring and integrity changes without curl choreography.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	scoring, err := config.LoadScoring(cfg.ScoringConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid scoring configuration")
	}

	sessionService := service.NewSessionService(scoring, log)
	questionService := service.NewQuestionService(log)
	integrityService := service.NewIntegrityService(scoring, log)
	scoreService := service.NewScoreService(scoring)
	reportService := service.NewReportService(sessionService, integrityService, scoreService, log)

	fmt.Println("=== Building question set ===")
	questions := questionService.BuildQuestionSet([]string{"python", "react"}, model.DifficultyMedium, 2)
	for _, q := range questions {
		fmt.Printf("  [%d] %-6s %-6s %s\n", q.ID, q.Difficulty, q.QuestionType, q.QuestionText)
	}

	session, err := sessionService.CreateSession("cand-042", "Dian Paramita", questions)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session")
	}
	fmt.Printf("\n=== Session %s (%d questions) ===\n", session.ID, len(session.Questions))

	// One strong answer, one skip, and a deliberate duplicate pair so
	// the integrity analyzer has something to flag.
	answers := []string{
		"I would profile the implementation first, check the complexity of the hot path and weigh the trade-off between caching and recomputation before touching the architecture.",
		"",
		"Optimization depends on the access pattern; a pattern like memoization can be a solution at scale.",
		"Optimization depends on the access pattern; a pattern like memoization can be a solution at scale.",
	}

	for _, text := range answers {
		progress, err := sessionService.CurrentQuestion(session.ID)
		if err != nil || progress == nil {
			break
		}
		fmt.Printf("\nQ%d/%d (%.0fs limit): %s\n",
			progress.QuestionIndex+1, progress.TotalQuestions, progress.TimeLimit, progress.QuestionText)

		answer, err := sessionService.SubmitAnswer(session.ID, text)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to submit answer")
		}
		if text == "" {
			fmt.Printf("  -> skipped (%.2fs)\n", answer.TimeSpent)
		} else {
			fmt.Printf("  -> answered (%.2fs)\n", answer.TimeSpent)
		}
	}

	summary, err := sessionService.SessionSummary(session.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch summary")
	}
	fmt.Printf("\n=== Summary: %s ===\n", summary.Status)
	fmt.Printf("  answered %d/%d questions in %.2fs\n",
		summary.AnsweredQuestions, summary.TotalQuestions, summary.TotalTimeSpent)

	report, err := reportService.BuildReport(session.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build report")
	}

	fmt.Printf("\n=== Report (mix: %s) ===\n", report.DifficultyMix)
	fmt.Printf("  knowledge:       %6.2f\n", report.Breakdown.KnowledgeScore)
	fmt.Printf("  honesty:         %6.2f\n", report.Breakdown.HonestyScore)
	fmt.Printf("  time behavior:   %6.2f\n", report.Breakdown.TimeBehaviorScore)
	fmt.Printf("  problem solving: %6.2f\n", report.Breakdown.ProblemSolvingScore)
	fmt.Printf("  FINAL SCORE:     %6d\n", report.FinalScore)

	if len(report.Integrity.Flags) > 0 {
		fmt.Println("\n  integrity flags:")
		for _, flag := range report.Integrity.Flags {
			fmt.Printf("    - %s\n", flag)
		}
	}
}
