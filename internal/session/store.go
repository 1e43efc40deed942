package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultIdleTimeout is how long an untouched session is kept.
const DefaultIdleTimeout = 30 * time.Minute

// Store holds sessions in memory keyed by session id. Nothing is persisted.
type Store[In, Out any] struct {
	run         Func[In, Out]
	idleTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*Session[In, Out]
}

func NewStore[In, Out any](run Func[In, Out], idleTimeout time.Duration) *Store[In, Out] {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Store[In, Out]{
		run:         run,
		idleTimeout: idleTimeout,
		sessions:    make(map[string]*Session[In, Out]),
	}
}

// Get returns the session for id, creating it on first use.
func (st *Store[In, Out]) Get(id string) *Session[In, Out] {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		s = New(st.run)
		st.sessions[id] = s
	}
	return s
}

func (st *Store[In, Out]) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle since before now minus the idle timeout. Sessions
// with a call in flight are kept.
func (st *Store[In, Out]) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		lastUsed, pending := s.idleSince()
		if pending || now.Sub(lastUsed) < st.idleTimeout {
			continue
		}
		delete(st.sessions, id)
		removed++
	}
	return removed
}

// Run sweeps on every interval until ctx is done.
func (st *Store[In, Out]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := st.Sweep(now); n > 0 {
				slog.DebugContext(ctx, "Expired idle sessions", "count", n, "remaining", st.Len())
			}
		}
	}
}
