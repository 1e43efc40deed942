// Package session keeps the per-visitor state of the recipe form: the last
// successful result, the last failure and whether a call is in flight.
//
// Every submission gets a monotonically increasing request id and cancels
// the call it supersedes. A result is applied only while its id is still
// the latest, so a slow earlier call can never overwrite a newer one.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/socialchef/chefgpt/internal/metrics"
)

// Func performs one generation.
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// State is a snapshot of a session.
type State[In, Out any] struct {
	Input     In
	Last      *Out
	LastErr   error
	Pending   bool
	RequestID uint64
}

// Outcome describes how one submission ended.
type Outcome[Out any] struct {
	RequestID uint64
	Result    *Out
	Err       error
	// Stale is set when a newer submission superseded this one; its result
	// was discarded.
	Stale bool
}

type Session[In, Out any] struct {
	run Func[In, Out]

	mu       sync.Mutex
	state    State[In, Out]
	cancel   context.CancelFunc
	lastUsed time.Time
}

func New[In, Out any](run Func[In, Out]) *Session[In, Out] {
	return &Session[In, Out]{run: run, lastUsed: time.Now()}
}

// begin moves the session to pending under a fresh request id and cancels
// the call in flight, if any.
func (s *Session[In, Out]) begin(ctx context.Context, in In) (uint64, context.Context, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.state.RequestID++
	s.state.Pending = true
	s.state.Input = in
	s.lastUsed = time.Now()

	callCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return s.state.RequestID, callCtx, cancel
}

// finish applies a result if id is still current.
func (s *Session[In, Out]) finish(ctx context.Context, id uint64, out Out, err error) Outcome[Out] {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := Outcome[Out]{RequestID: id, Err: err}
	if err == nil {
		outcome.Result = &out
	}

	if id != s.state.RequestID {
		outcome.Stale = true
		metrics.StaleResultsTotal.Add(ctx, 1)
		slog.DebugContext(ctx, "Discarded stale generation result",
			"request_id", id,
			"latest_request_id", s.state.RequestID)
		return outcome
	}

	s.cancel = nil
	s.state.Pending = false
	if err != nil {
		// Keep the previous successful result on screen.
		s.state.LastErr = err
	} else {
		s.state.Last = &out
		s.state.LastErr = nil
	}
	s.lastUsed = time.Now()
	return outcome
}

// Submit runs a generation for in and blocks until it finishes or is
// superseded.
func (s *Session[In, Out]) Submit(ctx context.Context, in In) Outcome[Out] {
	id, callCtx, cancel := s.begin(ctx, in)
	defer cancel()

	out, err := s.run(callCtx, in)
	return s.finish(ctx, id, out, err)
}

// Start runs Submit in the background and returns the request id assigned
// to it. done, when non-nil, receives the outcome.
func (s *Session[In, Out]) Start(ctx context.Context, in In, done func(Outcome[Out])) uint64 {
	id, callCtx, cancel := s.begin(ctx, in)
	go func() {
		defer cancel()
		out, err := s.run(callCtx, in)
		outcome := s.finish(ctx, id, out, err)
		if done != nil {
			done(outcome)
		}
	}()
	return id
}

// State returns a snapshot of the session.
func (s *Session[In, Out]) State() State[In, Out] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return s.state
}

// DismissError clears the failure notification without touching the last
// successful result.
func (s *Session[In, Out]) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastErr = nil
}

// Cancel aborts the call in flight, if any. Its result will be discarded.
func (s *Session[In, Out]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
	s.state.RequestID++
	s.state.Pending = false
}

func (s *Session[In, Out]) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed, s.state.Pending
}
