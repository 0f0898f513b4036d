package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/service"
)

// RetentionWorker prunes FINISHED sessions past their retention TTL so
// the in-memory store does not grow forever. ACTIVE sessions are never
// touched, regardless of age.
type RetentionWorker struct {
	sessions *service.SessionService
	interval time.Duration
	ttl      time.Duration
	log      zerolog.Logger
}

// NewRetentionWorker creates a worker pruning on the given interval.
func NewRetentionWorker(sessions *service.SessionService, interval, ttl time.Duration, log zerolog.Logger) *RetentionWorker {
	return &RetentionWorker{
		sessions: sessions,
		interval: interval,
		ttl:      ttl,
		log:      logger.Component(log, "retention_worker"),
	}
}

// Start runs the prune loop until ctx is cancelled.
func (w *RetentionWorker) Start(ctx context.Context) {
	w.log.Info().
		Dur("interval", w.interval).
		Dur("ttl", w.ttl).
		Msg("RetentionWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("RetentionWorker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

// runOnce prunes a single batch. Split out so tests can drive it
// without the ticker.
func (w *RetentionWorker) runOnce() {
	cutoff := time.Now().Add(-w.ttl)
	if removed := w.sessions.PruneFinishedBefore(cutoff); removed > 0 {
		w.log.Info().
			Int("removed", removed).
			Int("remaining", w.sessions.Len()).
			Msg("Pruned finished sessions")
	}
}
