package service

import (
	"testing"
	"time"
)

func TestAnswerRecorder(t *testing.T) {
	submittedAt := time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC)

	t.Run("RecordKeepsSubmissionOrder", func(t *testing.T) {
		rec := NewAnswerRecorder()

		rec.Record(1, "first", 30*time.Second, false, submittedAt)
		rec.Record(2, "second", 45*time.Second, false, submittedAt.Add(time.Minute))

		answers := rec.Answers()
		if len(answers) != 2 {
			t.Fatalf("got %d answers, want 2", len(answers))
		}
		if answers[0].QuestionID != 1 || answers[1].QuestionID != 2 {
			t.Fatalf("answers out of order: %+v", answers)
		}
		if answers[0].TimeSpent != 30 {
			t.Fatalf("time spent = %v, want 30 seconds", answers[0].TimeSpent)
		}
	})

	t.Run("EmptyAnswerIsRecordedAsIs", func(t *testing.T) {
		rec := NewAnswerRecorder()

		answer := rec.Record(7, "", 120*time.Second, true, submittedAt)
		if answer.AnswerText != "" {
			t.Fatalf("answer text = %q, want empty", answer.AnswerText)
		}
		if !answer.IsTimeout {
			t.Fatal("timeout flag lost")
		}
		if rec.Count() != 1 {
			t.Fatalf("count = %d, want 1", rec.Count())
		}
	})

	t.Run("TotalTimeAccumulates", func(t *testing.T) {
		rec := NewAnswerRecorder()

		rec.Record(1, "a", 30*time.Second, false, submittedAt)
		rec.Record(2, "", 180*time.Second, true, submittedAt)

		if got := rec.TotalTimeSpent(); got != 210*time.Second {
			t.Fatalf("total time = %v, want 210s", got)
		}
	})

	t.Run("AnswersReturnsACopy", func(t *testing.T) {
		rec := NewAnswerRecorder()
		rec.Record(1, "original", 10*time.Second, false, submittedAt)

		leaked := rec.Answers()
		leaked[0].AnswerText = "mutated"

		if got := rec.Answers()[0].AnswerText; got != "original" {
			t.Fatalf("stored answer mutated through returned slice: %q", got)
		}
	})
}
