package domain

import "time"

// NextTrip is the derived countdown record republished whenever the active
// trip's identity or start date changes. Other pages read it to render a
// countdown without loading the whole itinerary.
type NextTrip struct {
	Date  time.Time `json:"date"`
	Name  string    `json:"name"`
	SetAt time.Time `json:"setAt"`
}

// CountdownStatus describes where "now" sits relative to the next trip.
type CountdownStatus string

const (
	CountdownNone     CountdownStatus = "none"
	CountdownUpcoming CountdownStatus = "upcoming"
	CountdownArrived  CountdownStatus = "arrived"
)

// Countdown is the time remaining until the next trip, in whole units.
type Countdown struct {
	Status  CountdownStatus `json:"status"`
	Name    string          `json:"name,omitempty"`
	Date    *time.Time      `json:"date,omitempty"`
	Days    int             `json:"days"`
	Hours   int             `json:"hours"`
	Minutes int             `json:"minutes"`
}
