// Package itinerary implements the trip, day and activity state machine.
//
// A Planner is Uninitialized while it holds no trip and Active once CreateTrip
// or Adopt succeeds. Every operation validates first and mutates second, so a
// failed call leaves the trip untouched. Persistence is the caller's concern.
package itinerary

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

// DefaultTripDays is the trip length used when none is given.
const DefaultTripDays = 3

// Option configures a Planner.
type Option func(*Planner)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithIDs replaces uuid.New.
func WithIDs(newID func() uuid.UUID) Option {
	return func(p *Planner) { p.newID = newID }
}

// Planner owns one optional trip and applies transitions to it.
type Planner struct {
	trip  *domain.Trip
	now   func() time.Time
	newID func() uuid.UUID
}

// New returns a Planner holding trip. A nil trip means Uninitialized.
func New(trip *domain.Trip, opts ...Option) *Planner {
	p := &Planner{trip: trip, now: time.Now, newID: uuid.New}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Trip returns the current trip, or nil when Uninitialized.
func (p *Planner) Trip() *domain.Trip { return p.trip }

// Active reports whether a trip exists.
func (p *Planner) Active() bool { return p.trip != nil }

// Date truncates t to its calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p *Planner) stamp() time.Time {
	return p.now().UTC()
}

func (p *Planner) active(op string) error {
	if p.trip == nil {
		return fmt.Errorf("itinerary.%s: %w: no active trip", op, domain.ErrNotFound)
	}
	return nil
}

func (p *Planner) dayIndex(op string, dayID uuid.UUID) (int, error) {
	if err := p.active(op); err != nil {
		return 0, err
	}
	i := slices.IndexFunc(p.trip.Days, func(d domain.Day) bool { return d.ID == dayID })
	if i < 0 {
		return 0, fmt.Errorf("itinerary.%s: %w: day %s", op, domain.ErrNotFound, dayID)
	}
	return i, nil
}

// CreateTrip starts a new trip of numDays consecutive days from start.
func (p *Planner) CreateTrip(name string, numDays int, start time.Time) (domain.Trip, error) {
	if p.trip != nil {
		return domain.Trip{}, fmt.Errorf("itinerary.CreateTrip: %w: a trip is already active, reset it first", domain.ErrPolicy)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Trip{}, fmt.Errorf("itinerary.CreateTrip: %w: trip name is required", domain.ErrValidation)
	}
	if numDays < 1 || numDays > domain.MaxDays {
		return domain.Trip{}, fmt.Errorf("itinerary.CreateTrip: %w: number of days must be between 1 and %d", domain.ErrValidation, domain.MaxDays)
	}
	if start.IsZero() {
		return domain.Trip{}, fmt.Errorf("itinerary.CreateTrip: %w: start date is required", domain.ErrValidation)
	}

	now := p.stamp()
	start = Date(start)
	trip := domain.Trip{
		ID:        p.newID(),
		Name:      name,
		StartDate: start,
		Days:      make([]domain.Day, 0, numDays),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range numDays {
		trip.Days = append(trip.Days, domain.Day{
			ID:         p.newID(),
			DayNumber:  i + 1,
			Date:       start.AddDate(0, 0, i),
			Activities: []domain.Activity{},
		})
	}

	p.trip = &trip
	return trip, nil
}

// AddDay appends a day dated one day after the current last day.
// domain.MaxDays bounds CreateTrip only; a trip may grow past it here.
func (p *Planner) AddDay() (domain.Day, error) {
	if err := p.active("AddDay"); err != nil {
		return domain.Day{}, err
	}

	day := domain.Day{
		ID:         p.newID(),
		DayNumber:  len(p.trip.Days) + 1,
		Date:       p.trip.LastDay().Date.AddDate(0, 0, 1),
		Activities: []domain.Activity{},
	}
	p.trip.Days = append(p.trip.Days, day)
	p.trip.UpdatedAt = p.stamp()
	return day, nil
}

// RemoveDay deletes a day and renumbers the rest from 1. The last remaining
// day cannot be removed. A day holding activities needs confirm.
func (p *Planner) RemoveDay(dayID uuid.UUID, confirm bool) error {
	i, err := p.dayIndex("RemoveDay", dayID)
	if err != nil {
		return err
	}
	if len(p.trip.Days) <= 1 {
		return fmt.Errorf("itinerary.RemoveDay: %w: cannot remove the last day", domain.ErrPolicy)
	}
	day := p.trip.Days[i]
	if n := len(day.Activities); n > 0 && !confirm {
		return fmt.Errorf("itinerary.RemoveDay: %w: day %d has %d activities", domain.ErrConfirmationRequired, day.DayNumber, n)
	}

	p.trip.Days = slices.Delete(p.trip.Days, i, i+1)
	renumber(p.trip.Days)
	p.trip.UpdatedAt = p.stamp()
	return nil
}

func renumber(days []domain.Day) {
	for i := range days {
		days[i].DayNumber = i + 1
	}
}

// ClearAll empties every day's activities and keeps the days. It returns the
// number of activities removed. An empty trip yields ErrNothingToDo.
func (p *Planner) ClearAll(confirm bool) (int, error) {
	if err := p.active("ClearAll"); err != nil {
		return 0, err
	}
	total := p.trip.TotalActivities()
	if total == 0 {
		return 0, fmt.Errorf("itinerary.ClearAll: %w: no activities to clear", domain.ErrNothingToDo)
	}
	if !confirm {
		return 0, fmt.Errorf("itinerary.ClearAll: %w: this will remove all %d activities from the trip", domain.ErrConfirmationRequired, total)
	}

	for i := range p.trip.Days {
		p.trip.Days[i].Activities = []domain.Activity{}
	}
	p.trip.UpdatedAt = p.stamp()
	return total, nil
}

// Reschedule renames the trip and re-dates its days consecutively from start.
func (p *Planner) Reschedule(name string, start time.Time) (domain.Trip, error) {
	if err := p.active("Reschedule"); err != nil {
		return domain.Trip{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Trip{}, fmt.Errorf("itinerary.Reschedule: %w: trip name is required", domain.ErrValidation)
	}
	if start.IsZero() {
		return domain.Trip{}, fmt.Errorf("itinerary.Reschedule: %w: start date is required", domain.ErrValidation)
	}

	start = Date(start)
	p.trip.Name = name
	p.trip.StartDate = start
	for i := range p.trip.Days {
		p.trip.Days[i].Date = start.AddDate(0, 0, i)
	}
	p.trip.UpdatedAt = p.stamp()
	return *p.trip, nil
}

// Reset discards the trip. An Active planner needs confirm; an
// Uninitialized one is left as is.
func (p *Planner) Reset(confirm bool) error {
	if p.trip != nil && !confirm {
		return fmt.Errorf("itinerary.Reset: %w: all current trip data will be lost", domain.ErrConfirmationRequired)
	}
	p.trip = nil
	return nil
}
