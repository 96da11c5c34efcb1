package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// CountdownService reports the time left until the next trip. The active
// itinerary wins over the standalone nextTrip record.
type CountdownService struct {
	store store
	deps  deps
}

// NewCountdownService constructs a CountdownService backed by kv.
func NewCountdownService(kv repo.KVRepo, opts ...Option) *CountdownService {
	d := newDeps(opts)
	return &CountdownService{store: store{kv: kv, log: d.log}, deps: d}
}

func (s *CountdownService) next(ctx context.Context) (domain.NextTrip, bool, error) {
	var trip domain.Trip
	found, err := s.store.load(ctx, domain.KeyTrip, &trip)
	if err != nil {
		return domain.NextTrip{}, false, err
	}
	if found && !trip.StartDate.IsZero() {
		return domain.NextTrip{Date: trip.StartDate, Name: orDefaultName(trip.Name)}, true, nil
	}

	var rec domain.NextTrip
	found, err = s.store.load(ctx, domain.KeyNextTrip, &rec)
	if err != nil || !found {
		return domain.NextTrip{}, false, err
	}
	rec.Name = orDefaultName(rec.Name)
	return rec, true, nil
}

func orDefaultName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return defaultTripName
	}
	return name
}

// Next computes the countdown at now.
func (s *CountdownService) Next(ctx context.Context, now time.Time) (domain.Countdown, error) {
	rec, found, err := s.next(ctx)
	if err != nil {
		return domain.Countdown{}, err
	}
	if !found {
		return domain.Countdown{Status: domain.CountdownNone}, nil
	}
	return Remaining(rec, now), nil
}

// Remaining splits the time left until rec.Date into whole days, hours and
// minutes. A date that has passed reports CountdownArrived with zeros.
func Remaining(rec domain.NextTrip, now time.Time) domain.Countdown {
	date := rec.Date
	c := domain.Countdown{Status: domain.CountdownArrived, Name: rec.Name, Date: &date}

	left := rec.Date.Sub(now)
	if left <= 0 {
		return c
	}
	c.Status = domain.CountdownUpcoming
	c.Days = int(left / (24 * time.Hour))
	c.Hours = int(left % (24 * time.Hour) / time.Hour)
	c.Minutes = int(left % time.Hour / time.Minute)
	return c
}

// Set stores a standalone countdown record.
func (s *CountdownService) Set(ctx context.Context, date time.Time, name string) (domain.NextTrip, error) {
	if date.IsZero() {
		return domain.NextTrip{}, fmt.Errorf("service.CountdownService.Set: %w: trip date is required", domain.ErrValidation)
	}
	rec := domain.NextTrip{Date: date.UTC(), Name: orDefaultName(name), SetAt: s.deps.now().UTC()}
	if err := s.store.save(ctx, domain.KeyNextTrip, rec); err != nil {
		return domain.NextTrip{}, err
	}
	return rec, nil
}

// Clear removes the countdown record and the active trip.
func (s *CountdownService) Clear(ctx context.Context) error {
	return s.store.remove(ctx, domain.KeyNextTrip, domain.KeyTrip)
}
