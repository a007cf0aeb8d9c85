package lookup

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a snapshot of a Session. Verb is set only for StatusSuccess and Err
// only for StatusFailed.
type State struct {
	Status     Status
	Name       string
	Verb       conjugation.Verb
	Err        error
	Generation uint64
}

type verbLookup interface {
	LookupVerb(ctx context.Context, name string) (conjugation.Verb, error)
}

// Session drives lookups for a single consumer and exposes the latest one as
// a state machine: Idle, Loading, then Success, NotFound or Failed. Starting
// a new lookup supersedes the previous one; a superseded result is discarded.
type Session struct {
	lookup verbLookup
	log    *slog.Logger

	mu      sync.Mutex
	state   State
	gen     uint64
	cancel  context.CancelFunc
	settled chan struct{}
	subs    map[int]chan State
	nextSub int
	closed  bool

	wg sync.WaitGroup
}

func NewSession(l verbLookup, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		lookup: l,
		log:    log,
		subs:   make(map[int]chan State),
	}
}

// Start begins a lookup of name in the background and returns its generation.
// The in-flight lookup, if any, is cancelled.
func (s *Session) Start(ctx context.Context, name string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.gen
	}

	if s.cancel != nil {
		s.cancel()
	}
	if s.state.Status == StatusLoading {
		close(s.settled)
	}

	s.gen++
	gen := s.gen
	lctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.settled = make(chan struct{})
	s.setLocked(State{Status: StatusLoading, Name: name, Generation: gen})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		verb, err := s.lookup.LookupVerb(lctx, name)
		s.finish(gen, name, verb, err)
	}()

	return gen
}

func (s *Session) finish(gen uint64, name string, verb conjugation.Verb, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.state.Status != StatusLoading {
		s.log.Debug("discarding stale lookup result", "verb", name, "generation", gen, "current", s.gen)
		return
	}

	s.cancel()
	s.cancel = nil

	next := State{Name: name, Generation: gen}
	var nf *NotFoundError
	switch {
	case s.closed && errors.Is(err, context.Canceled):
		// abandoned by Close; the session goes back to idle
		s.log.Debug("discarding lookup cancelled by close", "verb", name, "generation", gen)
		next.Status = StatusIdle
	case err == nil:
		next.Status = StatusSuccess
		next.Verb = verb
	case errors.As(err, &nf):
		next.Status = StatusNotFound
	default:
		next.Status = StatusFailed
		next.Err = err
		s.log.Error("verb lookup failed", "verb", name, "error", err)
	}

	s.setLocked(next)
	close(s.settled)
}

// setLocked stores st and fans it out to subscribers. A subscriber whose
// buffer is full misses the transition; State always has the latest value.
func (s *Session) setLocked(st State) {
	s.state = st
	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel receiving every later state transition and a
// func that stops delivery and closes the channel.
func (s *Session) Subscribe(buffer int) (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, max(buffer, 1))
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
		})
	}
}

// Wait blocks until the latest lookup settles and returns the resulting state.
func (s *Session) Wait(ctx context.Context) (State, error) {
	for {
		s.mu.Lock()
		st, settled := s.state, s.settled
		s.mu.Unlock()

		if st.Status != StatusLoading {
			return st, nil
		}

		select {
		case <-settled:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Close cancels the in-flight lookup, waits for it to return and closes all subscriptions.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
