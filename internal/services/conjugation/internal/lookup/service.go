package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/store"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 10 * time.Second

// Service resolves a verb name into its conjugation table. It keeps no results
// between calls; concurrent lookups of the same verb share one store round trip.
type Service struct {
	store   store.FormReader
	policy  conjugation.Policy
	timeout time.Duration
	metrics *Metrics
	log     *slog.Logger
	group   singleflight.Group
}

type ServiceOption func(*Service)

func WithPolicy(p conjugation.Policy) ServiceOption {
	return func(s *Service) {
		s.policy = p
	}
}

// WithTimeout bounds the store calls of a single lookup.
func WithTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = l
	}
}

func NewService(st store.FormReader, opts ...ServiceOption) *Service {
	s := &Service{
		store:   st,
		policy:  conjugation.PolicyFirstWins,
		timeout: defaultTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LookupVerb finds the verb, fetches its forms and aggregates them. It returns
// a *NotFoundError when the store has no verb by that name. A verb without
// forms is not an error and yields an empty table.
func (s *Service) LookupVerb(ctx context.Context, name string) (conjugation.Verb, error) {
	name = strings.TrimSpace(name)
	key := store.LookupKey(name)

	// the shared call must not die with whichever caller happened to start it
	ch := s.group.DoChan(key, func() (any, error) {
		workCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.lookup(workCtx, name)
	})

	select {
	case <-ctx.Done():
		return conjugation.Verb{}, fmt.Errorf("lookup verb: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			// a shared call reports the name of the caller that started it
			var nf *NotFoundError
			if errors.As(res.Err, &nf) {
				return conjugation.Verb{}, &NotFoundError{Name: name}
			}
			return conjugation.Verb{}, res.Err
		}

		verb := res.Val.(conjugation.Verb)
		verb.Name = name
		return verb, nil
	}
}

func (s *Service) lookup(ctx context.Context, name string) (conjugation.Verb, error) {
	start := time.Now()

	id, err := s.store.FindVerbID(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.metrics.observe(outcomeNotFound, time.Since(start).Seconds(), 0)
			s.log.Debug("verb not found", "verb", name)
			return conjugation.Verb{}, &NotFoundError{Name: name}
		}

		s.metrics.observe(outcomeError, time.Since(start).Seconds(), 0)
		return conjugation.Verb{}, fmt.Errorf("find verb id: %w", err)
	}

	forms, err := s.store.FetchForms(ctx, id)
	if err != nil {
		s.metrics.observe(outcomeError, time.Since(start).Seconds(), 0)
		return conjugation.Verb{}, fmt.Errorf("fetch forms: %w", err)
	}

	verb := conjugation.Aggregate(forms, conjugation.WithPolicy(s.policy), conjugation.WithName(name))

	s.metrics.observe(outcomeSuccess, time.Since(start).Seconds(), len(forms))
	s.log.Debug("verb aggregated",
		"verb", name,
		"verb_id", int64(id),
		"forms", len(forms),
		"moods", len(verb.Moods),
		"duration", time.Since(start))

	return verb, nil
}
