package itinerary

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Adopt installs an externally supplied trip, such as a JSON export being
// re-imported. The trip needs a name, a start date and at least one day, and
// each day must respect the activity cap. A trip grown past domain.MaxDays by
// AddDay is accepted. Days are renumbered, missing or repeated ids are
// replaced, and missing dates are filled in consecutively from the start date.
func (p *Planner) Adopt(trip domain.Trip) (domain.Trip, error) {
	if p.trip != nil {
		return domain.Trip{}, fmt.Errorf("itinerary.Adopt: %w: a trip is already active, reset it first", domain.ErrPolicy)
	}

	trip.Name = strings.TrimSpace(trip.Name)
	if trip.Name == "" {
		return domain.Trip{}, fmt.Errorf("itinerary.Adopt: %w: trip name is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() {
		return domain.Trip{}, fmt.Errorf("itinerary.Adopt: %w: start date is required", domain.ErrValidation)
	}
	if len(trip.Days) == 0 {
		return domain.Trip{}, fmt.Errorf("itinerary.Adopt: %w: the trip has no days", domain.ErrValidation)
	}

	now := p.stamp()
	seen := make(map[uuid.UUID]bool)
	fresh := func(id uuid.UUID) uuid.UUID {
		if id == uuid.Nil || seen[id] {
			id = p.newID()
		}
		seen[id] = true
		return id
	}

	trip.ID = fresh(trip.ID)
	trip.StartDate = Date(trip.StartDate)
	days := make([]domain.Day, len(trip.Days))
	for i, d := range trip.Days {
		if len(d.Activities) > domain.MaxActivitiesPerDay {
			return domain.Trip{}, fmt.Errorf("itinerary.Adopt: %w: day %d has more than %d activities", domain.ErrPolicy, i+1, domain.MaxActivitiesPerDay)
		}
		d.ID = fresh(d.ID)
		d.DayNumber = i + 1
		if d.Date.IsZero() {
			d.Date = trip.StartDate.AddDate(0, 0, i)
		}
		d.Date = Date(d.Date)

		acts := make([]domain.Activity, len(d.Activities))
		for j, a := range d.Activities {
			in, err := ActivityInput{
				Title:       a.Title,
				Time:        a.Time,
				Duration:    a.Duration,
				Description: a.Description,
				Location:    a.Location,
			}.normalize("Adopt")
			if err != nil {
				return domain.Trip{}, fmt.Errorf("day %d activity %d: %w", i+1, j+1, err)
			}
			a.ID = fresh(a.ID)
			a.Title, a.Time, a.Duration, a.Description, a.Location = in.Title, in.Time, in.Duration, in.Description, in.Location
			if a.CreatedAt.IsZero() {
				a.CreatedAt = now
			}
			if a.UpdatedAt.IsZero() {
				a.UpdatedAt = a.CreatedAt
			}
			acts[j] = a
		}
		d.Activities = acts
		days[i] = d
	}
	trip.Days = days

	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now

	p.trip = &trip
	return trip, nil
}
