package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/export"
	"github.com/pkordes/travel-planner/internal/itinerary"
	"github.com/pkordes/travel-planner/internal/repo"
)

// defaultTripName is the countdown label of a trip or record without a name.
const defaultTripName = "Your Trip"

// ItineraryService persists the active trip. Each call loads the trip, applies
// one itinerary.Planner transition and stores the result. Whenever the trip's
// identity, name or start date changes, the nextTrip countdown record is
// rewritten so other pages can pick it up.
type ItineraryService struct {
	store store
	deps  deps
}

// NewItineraryService constructs an ItineraryService backed by kv.
func NewItineraryService(kv repo.KVRepo, opts ...Option) *ItineraryService {
	d := newDeps(opts)
	return &ItineraryService{store: store{kv: kv, log: d.log}, deps: d}
}

// loadTrip returns the stored trip, or nil when there is none. A stored trip
// without days is unusable and is discarded.
func (s *ItineraryService) loadTrip(ctx context.Context) (*domain.Trip, error) {
	var trip domain.Trip
	found, err := s.store.load(ctx, domain.KeyTrip, &trip)
	if err != nil || !found {
		return nil, err
	}
	if len(trip.Days) == 0 {
		s.store.discard(ctx, domain.KeyTrip, fmt.Errorf("%w: stored trip has no days", domain.ErrStorage))
		return nil, nil
	}
	return &trip, nil
}

func (s *ItineraryService) planner(ctx context.Context) (*itinerary.Planner, error) {
	trip, err := s.loadTrip(ctx)
	if err != nil {
		return nil, err
	}
	return itinerary.New(trip, itinerary.WithClock(s.deps.now), itinerary.WithIDs(s.deps.newID)), nil
}

type tripIdentity struct {
	id    uuid.UUID
	name  string
	start time.Time
}

func identityOf(t *domain.Trip) tripIdentity {
	if t == nil {
		return tripIdentity{}
	}
	return tripIdentity{id: t.ID, name: t.Name, start: t.StartDate}
}

// mutate applies op to the stored trip and persists the outcome. Nothing is
// written when op fails.
func (s *ItineraryService) mutate(ctx context.Context, op func(*itinerary.Planner) error) (domain.Trip, error) {
	p, err := s.planner(ctx)
	if err != nil {
		return domain.Trip{}, err
	}
	before := identityOf(p.Trip())
	if err := op(p); err != nil {
		return domain.Trip{}, err
	}

	trip := p.Trip()
	if err := s.store.save(ctx, domain.KeyTrip, trip); err != nil {
		return domain.Trip{}, err
	}
	if identityOf(trip) != before {
		next := domain.NextTrip{Date: trip.StartDate, Name: trip.Name, SetAt: s.deps.now().UTC()}
		if err := s.store.save(ctx, domain.KeyNextTrip, next); err != nil {
			return domain.Trip{}, err
		}
	}
	return *trip, nil
}

// Get returns the active trip. found is false when there is none.
func (s *ItineraryService) Get(ctx context.Context) (trip domain.Trip, found bool, err error) {
	t, err := s.loadTrip(ctx)
	if err != nil || t == nil {
		return domain.Trip{}, false, err
	}
	return *t, true, nil
}

// Create starts a new trip.
func (s *ItineraryService) Create(ctx context.Context, name string, numDays int, start time.Time) (domain.Trip, error) {
	return s.mutate(ctx, func(p *itinerary.Planner) error {
		_, err := p.CreateTrip(name, numDays, start)
		return err
	})
}

// Reschedule renames the trip and moves it to a new start date.
func (s *ItineraryService) Reschedule(ctx context.Context, name string, start time.Time) (domain.Trip, error) {
	return s.mutate(ctx, func(p *itinerary.Planner) error {
		_, err := p.Reschedule(name, start)
		return err
	})
}

// AddDay appends a day.
func (s *ItineraryService) AddDay(ctx context.Context) (domain.Trip, error) {
	return s.mutate(ctx, func(p *itinerary.Planner) error {
		_, err := p.AddDay()
		return err
	})
}

// RemoveDay deletes a day.
func (s *ItineraryService) RemoveDay(ctx context.Context, dayID uuid.UUID, confirm bool) (domain.Trip, error) {
	return s.mutate(ctx, func(p *itinerary.Planner) error {
		return p.RemoveDay(dayID, confirm)
	})
}

// Draft returns the add/edit form values for an activity.
func (s *ItineraryService) Draft(ctx context.Context, dayID uuid.UUID, activityID *uuid.UUID) (itinerary.ActivityInput, error) {
	p, err := s.planner(ctx)
	if err != nil {
		return itinerary.ActivityInput{}, err
	}
	return p.Draft(dayID, activityID)
}

// SaveActivity adds (activityID nil) or edits an activity.
func (s *ItineraryService) SaveActivity(ctx context.Context, dayID uuid.UUID, activityID *uuid.UUID, in itinerary.ActivityInput) (domain.Trip, error) {
	return s.mutate(ctx, func(p *itinerary.Planner) error {
		_, err := p.SaveActivity(dayID, activityID, in)
		return err
	})
}

// RemoveActivity deletes an activity.
func (s *ItineraryService) RemoveActivity(ctx context.Context, dayID, activityID uuid.UUID) (domain.Trip, error) {
	return s.mutate(ctx, func(p *itinerary.Planner) error {
		return p.RemoveActivity(dayID, activityID)
	})
}

// ToggleActivity flips an activity's completed flag.
func (s *ItineraryService) ToggleActivity(ctx context.Context, dayID, activityID uuid.UUID) (domain.Trip, error) {
	return s.mutate(ctx, func(p *itinerary.Planner) error {
		_, err := p.ToggleActivity(dayID, activityID)
		return err
	})
}

// ClearAll removes every activity and reports how many were removed.
func (s *ItineraryService) ClearAll(ctx context.Context, confirm bool) (domain.Trip, int, error) {
	var removed int
	trip, err := s.mutate(ctx, func(p *itinerary.Planner) error {
		n, err := p.ClearAll(confirm)
		removed = n
		return err
	})
	return trip, removed, err
}

// Reset discards the trip together with its countdown record.
func (s *ItineraryService) Reset(ctx context.Context, confirm bool) error {
	p, err := s.planner(ctx)
	if err != nil {
		return err
	}
	if err := p.Reset(confirm); err != nil {
		return err
	}
	return s.store.remove(ctx, domain.KeyTrip, domain.KeyNextTrip)
}

// Import adopts a JSON export as the active trip.
func (s *ItineraryService) Import(ctx context.Context, data []byte) (domain.Trip, error) {
	doc, err := export.ParseJSON(data)
	if err != nil {
		return domain.Trip{}, err
	}
	return s.mutate(ctx, func(p *itinerary.Planner) error {
		_, err := p.Adopt(doc.Trip)
		return err
	})
}

// Export renders the active trip in the named format.
func (s *ItineraryService) Export(ctx context.Context, format string) (export.Document, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return export.Document{}, err
	}
	trip, found, err := s.Get(ctx)
	if err != nil {
		return export.Document{}, err
	}
	if !found {
		return export.Document{}, fmt.Errorf("service.ItineraryService.Export: %w: no active trip", domain.ErrNotFound)
	}
	return export.Render(f, trip, s.deps.now())
}
