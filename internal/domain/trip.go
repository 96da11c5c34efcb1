// Package domain contains the core data types for the travel planner.
// Apart from uuid it has no external dependencies and is imported by every
// other internal package.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary limits.
const (
	MaxDays             = 30
	MaxActivitiesPerDay = 20

	// DefaultActivityDuration is used when an activity is saved without a
	// positive duration, in hours.
	DefaultActivityDuration = 2.0
)

// Trip is the single active itinerary: an ordered list of days.
// DayNumber of every day equals its index + 1, and a trip always has at least
// one day.
type Trip struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	Days      []Day     `json:"days"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Day is one calendar day of a trip.
type Day struct {
	ID         uuid.UUID  `json:"id"`
	DayNumber  int        `json:"dayNumber"`
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}

// Activity is a planned item on a day. Time is an optional "15:04" wall clock
// value; Duration is in hours.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Time        string    `json:"time,omitempty"`
	Duration    float64   `json:"duration"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LastDay returns the final day of the trip. The trip must have at least one day.
func (t Trip) LastDay() Day {
	return t.Days[len(t.Days)-1]
}

// TotalActivities counts activities across all days.
func (t Trip) TotalActivities() int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Activities)
	}
	return n
}

// CompletedActivities counts activities marked completed across all days.
func (t Trip) CompletedActivities() int {
	n := 0
	for _, d := range t.Days {
		for _, a := range d.Activities {
			if a.Completed {
				n++
			}
		}
	}
	return n
}
