package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/model"
)

// Lifecycle sentinel errors. Handlers map these onto API error codes.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionNotActive   = errors.New("session is not active")
	ErrNoCurrentQuestion  = errors.New("session has no current question")
	ErrSessionNotFinished = errors.New("session is not finished")
	ErrNoQuestions        = errors.New("question list is empty")
	ErrInvalidQuestion    = errors.New("invalid question")
)

// sessionState bundles one session with its live helpers. mu serializes
// every operation on this session; the store lock is only ever taken
// for map membership, never while mu is held.
type sessionState struct {
	mu       sync.Mutex
	session  model.Session
	timer    *QuestionTimer
	recorder *AnswerRecorder
}

// SessionService owns every live interview session. Sessions are
// process-local: nothing is persisted and a restart clears the store.
// Other sessions never block each other; each carries its own lock.
type SessionService struct {
	scoring *config.ScoringConfig
	log     zerolog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionState
}

// NewSessionService creates an empty session store.
func NewSessionService(scoring *config.ScoringConfig, log zerolog.Logger) *SessionService {
	return NewSessionServiceWithClock(scoring, log, time.Now)
}

// NewSessionServiceWithClock injects the clock used for session
// timestamps and question timers, for deterministic tests.
func NewSessionServiceWithClock(scoring *config.ScoringConfig, log zerolog.Logger, now func() time.Time) *SessionService {
	return &SessionService{
		scoring:  scoring,
		log:      logger.Component(log, "session_service"),
		now:      now,
		sessions: make(map[uuid.UUID]*sessionState),
	}
}

// CreateSession validates the question list, registers an ACTIVE
// session and starts the timer for the first question. The returned
// session is a detached snapshot.
func (s *SessionService) CreateSession(candidateID, candidateName string, questions []model.QuestionRef) (*model.Session, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	qs := make([]model.QuestionRef, len(questions))
	copy(qs, questions)

	st := &sessionState{
		session: model.Session{
			ID:            uuid.New(),
			CandidateID:   candidateID,
			CandidateName: candidateName,
			Questions:     qs,
			Answers:       []model.Answer{},
			Status:        model.SessionStatusActive,
			StartedAt:     s.now(),
		},
		recorder: NewAnswerRecorder(),
	}
	s.startQuestion(st, 0)

	// Snapshot before publishing; nobody else can reach st yet.
	snap := cloneSession(&st.session)

	s.mu.Lock()
	s.sessions[st.session.ID] = st
	s.mu.Unlock()

	s.log.Info().
		Str("session_id", st.session.ID.String()).
		Str("candidate_id", candidateID).
		Int("questions", len(qs)).
		Msg("session created")

	return snap, nil
}

// CurrentQuestion returns the live progress of the question awaiting an
// answer, with TimeRemaining freshly sampled from the running timer.
// Once the session has finished it returns nil without an error.
func (s *SessionService) CurrentQuestion(id uuid.UUID) (*model.QuestionProgress, error) {
	st, err := s.get(id)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.session.Status != model.SessionStatusActive || st.session.CurrentQuestion == nil {
		return nil, nil
	}

	st.session.CurrentQuestion.TimeRemaining = st.timer.Remaining().Seconds()
	progress := *st.session.CurrentQuestion
	return &progress, nil
}

// SubmitAnswer stops the current question's timer, records the answer
// and advances the session, finishing it after the last question. Empty
// text is accepted; the scorer treats it as zero credit.
func (s *SessionService) SubmitAnswer(id uuid.UUID, text string) (*model.Answer, error) {
	st, err := s.get(id)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.session.Status != model.SessionStatusActive {
		return nil, ErrSessionNotActive
	}
	if st.session.CurrentQuestion == nil || st.timer == nil {
		return nil, ErrNoCurrentQuestion
	}

	q := st.session.Questions[st.session.CurrentIndex]
	spent := st.timer.Stop()
	timedOut := st.timer.TimedOut()

	answer := st.recorder.Record(q.ID, text, spent, timedOut, s.now())
	st.session.Answers = append(st.session.Answers, answer)

	if next := st.session.CurrentIndex + 1; next >= len(st.session.Questions) {
		s.finish(st)
	} else {
		s.startQuestion(st, next)
	}

	s.log.Debug().
		Str("session_id", id.String()).
		Int("question_id", q.ID).
		Bool("timeout", timedOut).
		Float64("time_spent", answer.TimeSpent).
		Msg("answer recorded")

	return &answer, nil
}

// SessionStatus returns a detached point-in-time snapshot of the
// session with TimeRemaining freshly sampled, safe for concurrent
// serialization.
func (s *SessionService) SessionStatus(id uuid.UUID) (*model.Session, error) {
	st, err := s.get(id)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.session.CurrentQuestion != nil && st.timer != nil {
		st.session.CurrentQuestion.TimeRemaining = st.timer.Remaining().Seconds()
	}
	return cloneSession(&st.session), nil
}

// SessionSummary condenses the session for scoring and HR review.
func (s *SessionService) SessionSummary(id uuid.UUID) (*model.SessionSummary, error) {
	st, err := s.get(id)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	return &model.SessionSummary{
		SessionID:         st.session.ID,
		CandidateID:       st.session.CandidateID,
		CandidateName:     st.session.CandidateName,
		Status:            st.session.Status,
		TotalQuestions:    len(st.session.Questions),
		AnsweredQuestions: st.recorder.Count(),
		TotalTimeSpent:    st.recorder.TotalTimeSpent().Seconds(),
		Answers:           st.recorder.Answers(),
	}, nil
}

// SessionQuestions returns a copy of the session's ordered question list.
func (s *SessionService) SessionQuestions(id uuid.UUID) ([]model.QuestionRef, error) {
	st, err := s.get(id)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]model.QuestionRef, len(st.session.Questions))
	copy(out, st.session.Questions)
	return out, nil
}

// PruneFinishedBefore removes FINISHED sessions whose FinishedAt lies
// before cutoff and returns how many were removed. ACTIVE sessions are
// never touched, regardless of age.
func (s *SessionService) PruneFinishedBefore(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, st := range s.sessions {
		st.mu.Lock()
		expired := st.session.Status == model.SessionStatusFinished &&
			st.session.FinishedAt != nil &&
			st.session.FinishedAt.Before(cutoff)
		st.mu.Unlock()

		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of sessions currently held, any status.
func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func (s *SessionService) get(id uuid.UUID) (*sessionState, error) {
	s.mu.RLock()
	st, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st, nil
}

// startQuestion arms a fresh timer for questions[idx] and replaces the
// progress projection. Callers must hold st.mu or own st exclusively.
func (s *SessionService) startQuestion(st *sessionState, idx int) {
	q := st.session.Questions[idx]
	limit := s.scoring.TimeLimits[q.Difficulty]

	timer := NewQuestionTimerWithClock(limit, s.now)
	timer.Start()

	st.timer = timer
	st.session.CurrentIndex = idx
	st.session.CurrentQuestion = &model.QuestionProgress{
		QuestionID:     q.ID,
		QuestionText:   q.QuestionText,
		Skill:          q.Skill,
		Difficulty:     q.Difficulty,
		QuestionType:   q.QuestionType,
		QuestionIndex:  idx,
		TotalQuestions: len(st.session.Questions),
		TimeLimit:      limit.Seconds(),
		TimeRemaining:  limit.Seconds(),
	}
}

// finish marks the session FINISHED and drops the live question state.
// Callers must hold st.mu.
func (s *SessionService) finish(st *sessionState) {
	now := s.now()
	st.session.Status = model.SessionStatusFinished
	st.session.FinishedAt = &now
	st.session.CurrentQuestion = nil
	st.session.CurrentIndex = len(st.session.Questions)
	st.timer = nil

	s.log.Info().
		Str("session_id", st.session.ID.String()).
		Str("candidate_id", st.session.CandidateID).
		Int("answers", st.recorder.Count()).
		Msg("session finished")
}

func validateQuestions(questions []model.QuestionRef) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for i, q := range questions {
		switch {
		case q.ID <= 0:
			return fmt.Errorf("%w: entry %d has no id", ErrInvalidQuestion, i)
		case q.Skill == "":
			return fmt.Errorf("%w: entry %d has no skill", ErrInvalidQuestion, i)
		case q.QuestionText == "":
			return fmt.Errorf("%w: entry %d has no question text", ErrInvalidQuestion, i)
		}
		switch q.Difficulty {
		case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		default:
			return fmt.Errorf("%w: entry %d has unknown difficulty %q", ErrInvalidQuestion, i, q.Difficulty)
		}
		switch q.QuestionType {
		case model.QuestionTypeTheory, model.QuestionTypeCase:
		default:
			return fmt.Errorf("%w: entry %d has unknown question type %q", ErrInvalidQuestion, i, q.QuestionType)
		}
	}
	return nil
}

// cloneSession copies the session so callers can serialize it without
// holding the session lock. Question and answer slices are copied;
// expected-topic slices are shared but read-only by contract.
func cloneSession(src *model.Session) *model.Session {
	out := *src
	out.Questions = append([]model.QuestionRef(nil), src.Questions...)
	out.Answers = append([]model.Answer(nil), src.Answers...)
	if src.CurrentQuestion != nil {
		progress := *src.CurrentQuestion
		out.CurrentQuestion = &progress
	}
	if src.FinishedAt != nil {
		t := *src.FinishedAt
		out.FinishedAt = &t
	}
	return &out
}
