package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-planner/internal/domain"
)

func TestSession_Valid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session domain.Session
		want    bool
	}{
		{"not expired", domain.Session{ExpiresAt: now.Add(time.Hour)}, true},
		{"expired", domain.Session{ExpiresAt: now.Add(-time.Hour)}, false},
		{"expiring exactly now", domain.Session{ExpiresAt: now}, false},
		{"expired but remembered", domain.Session{ExpiresAt: now.Add(-time.Hour), RememberMe: true}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.session.Valid(now))
		})
	}
}

func TestTrip_Counters(t *testing.T) {
	trip := domain.Trip{Days: []domain.Day{
		{Activities: []domain.Activity{{Completed: true}, {}}},
		{},
		{Activities: []domain.Activity{{Completed: true}}},
	}}

	assert.Equal(t, 3, trip.TotalActivities())
	assert.Equal(t, 2, trip.CompletedActivities())
	assert.Len(t, trip.LastDay().Activities, 1)
}
