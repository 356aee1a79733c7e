package sweeper

import (
	"context"
	"log"
	"time"
)

// TokenStore is the slice of the token repository the sweep needs.
type TokenStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	PurgeBlacklisted(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper periodically removes expired tokens and stale blacklist entries.
// One instance runs per process; it stops when its context is cancelled.
type Sweeper struct {
	tokens    TokenStore
	interval  time.Duration
	retention time.Duration
}

func New(tokens TokenStore, interval, retention time.Duration) *Sweeper {
	return &Sweeper{
		tokens:    tokens,
		interval:  interval,
		retention: retention,
	}
}

// Run blocks until ctx is cancelled. A tick that is already in progress at
// shutdown is allowed to finish. Sweep errors are logged and the loop keeps
// ticking.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("sweeper started interval=%s retention=%s", s.interval, s.retention)

	for {
		select {
		case <-ctx.Done():
			log.Printf("sweeper stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			// detach the tick from the loop context so cancellation
			// mid-sweep does not abort a half-done pass
			s.Sweep(context.WithoutCancel(ctx))
		}
	}
}

// Sweep runs both passes once. Exposed for the one-shot cleanup command.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now()

	expired, err := s.tokens.DeleteExpired(ctx, now)
	if err != nil {
		log.Printf("sweep expired_tokens_failed err=%v", err)
	}

	purged, err := s.tokens.PurgeBlacklisted(ctx, now.Add(-s.retention))
	if err != nil {
		log.Printf("sweep blacklist_purge_failed err=%v", err)
	}

	log.Printf("sweep completed expired_tokens=%d blacklist_purged=%d", expired, purged)
}
