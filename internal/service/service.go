// Package service contains the business logic of the travel planner.
// Each service loads its records from the key-value store, applies a pure
// transition from the domain packages, and persists the result.
// No SQL lives here; services depend on repo.KVRepo, not an implementation.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// Option configures the clock, id source and logger of a service.
type Option func(*deps)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

// WithIDs replaces uuid.New.
func WithIDs(newID func() uuid.UUID) Option {
	return func(d *deps) { d.newID = newID }
}

// WithLogger sets the logger used for recovered storage errors.
func WithLogger(log *slog.Logger) Option {
	return func(d *deps) { d.log = log }
}

type deps struct {
	now   func() time.Time
	newID func() uuid.UUID
	log   *slog.Logger
}

func newDeps(opts []Option) deps {
	d := deps{now: time.Now, newID: uuid.New, log: slog.Default()}
	for _, o := range opts {
		o(&d)
	}
	return d
}

// store adds JSON encoding to a KVRepo.
type store struct {
	kv  repo.KVRepo
	log *slog.Logger
}

// load decodes the value under key into v and reports whether one was found.
// A value that does not decode is logged, deleted and treated as absent; only
// adapter I/O failures are returned.
func (s store) load(ctx context.Context, key string, v any) (bool, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("service.load %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.discard(ctx, key, fmt.Errorf("service.load %s: %w: %v", key, domain.ErrStorage, err))
		return false, nil
	}
	return true, nil
}

func (s store) discard(ctx context.Context, key string, err error) {
	s.log.WarnContext(ctx, "discarding unreadable stored value", "key", key, "error", err)
	if err := s.kv.Delete(ctx, key); err != nil {
		s.log.WarnContext(ctx, "could not delete unreadable stored value", "key", key, "error", err)
	}
}

func (s store) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("service.save %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("service.save %s: %w", key, err)
	}
	return nil
}

func (s store) remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("service.remove %s: %w", key, err)
		}
	}
	return nil
}
