package service

import (
	"time"
)

// QuestionTimer tracks wall-clock time for a single question. Readings
// are computed lazily from the recorded start instant; nothing fires
// when the limit passes, callers observe timeouts by sampling. A timer
// serves exactly one question and is replaced when the session advances.
//
// A QuestionTimer is not safe for concurrent use; the owning session's
// lock serializes access.
type QuestionTimer struct {
	limit     time.Duration
	now       func() time.Time
	startedAt time.Time
	elapsed   time.Duration
	stopped   bool
}

// NewQuestionTimer creates a timer with the given limit. The timer does
// not run until Start is called.
func NewQuestionTimer(limit time.Duration) *QuestionTimer {
	return NewQuestionTimerWithClock(limit, time.Now)
}

// NewQuestionTimerWithClock creates a timer with an injectable clock
// for deterministic tests.
func NewQuestionTimerWithClock(limit time.Duration, now func() time.Time) *QuestionTimer {
	return &QuestionTimer{limit: limit, now: now}
}

// Start records the start instant. Calling Start again resets the timer.
func (t *QuestionTimer) Start() {
	t.startedAt = t.now()
	t.elapsed = 0
	t.stopped = false
}

// Elapsed returns wall-clock time since Start, clamped to [0, limit].
// After Stop it returns the frozen value.
func (t *QuestionTimer) Elapsed() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	return t.clamp(t.now().Sub(t.startedAt))
}

// Stop freezes the elapsed time and returns it.
func (t *QuestionTimer) Stop() time.Duration {
	if !t.stopped {
		t.elapsed = t.clamp(t.now().Sub(t.startedAt))
		t.stopped = true
	}
	return t.elapsed
}

// Remaining returns the limit minus elapsed time, never negative. The
// value is recomputed on every call; nothing is cached while running.
func (t *QuestionTimer) Remaining() time.Duration {
	return t.limit - t.Elapsed()
}

// TimedOut reports whether the question's time limit was reached.
func (t *QuestionTimer) TimedOut() bool {
	return t.Elapsed() >= t.limit
}

// Limit returns the fixed time limit for this question.
func (t *QuestionTimer) Limit() time.Duration {
	return t.limit
}

func (t *QuestionTimer) clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > t.limit {
		return t.limit
	}
	return d
}
