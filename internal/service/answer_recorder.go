package service

import (
	"time"

	"github.com/intervia/intervia-backend/internal/model"
)

// AnswerRecorder accumulates the immutable answer log for one session
// and keeps the running total of time spent. It performs no content
// validation: empty answers are recorded as-is and judged by the scorer.
//
// An AnswerRecorder is not safe for concurrent use; the owning
// session's lock serializes access.
type AnswerRecorder struct {
	answers   []model.Answer
	totalTime time.Duration
}

// NewAnswerRecorder creates an empty recorder.
func NewAnswerRecorder() *AnswerRecorder {
	return &AnswerRecorder{}
}

// Record appends one answer record and updates the running total.
// The stored record is returned by value and never modified afterwards.
func (r *AnswerRecorder) Record(questionID int, text string, spent time.Duration, timedOut bool, at time.Time) model.Answer {
	answer := model.Answer{
		QuestionID:  questionID,
		AnswerText:  text,
		TimeSpent:   spent.Seconds(),
		IsTimeout:   timedOut,
		SubmittedAt: at,
	}
	r.answers = append(r.answers, answer)
	r.totalTime += spent
	return answer
}

// Answers returns a copy of the recorded answers in submission order.
func (r *AnswerRecorder) Answers() []model.Answer {
	out := make([]model.Answer, len(r.answers))
	copy(out, r.answers)
	return out
}

// Count returns how many answers have been recorded.
func (r *AnswerRecorder) Count() int {
	return len(r.answers)
}

// TotalTimeSpent returns the cumulative time spent across all answers.
func (r *AnswerRecorder) TotalTimeSpent() time.Duration {
	return r.totalTime
}
