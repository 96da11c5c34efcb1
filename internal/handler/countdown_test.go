package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/handler"
)

// mockCountdownServicer is a test double for handler.CountdownServicer.
type mockCountdownServicer struct {
	next  func(ctx context.Context, now time.Time) (domain.Countdown, error)
	set   func(ctx context.Context, date time.Time, name string) (domain.NextTrip, error)
	clear func(ctx context.Context) error
}

func (m *mockCountdownServicer) Next(ctx context.Context, now time.Time) (domain.Countdown, error) {
	return m.next(ctx, now)
}
func (m *mockCountdownServicer) Set(ctx context.Context, date time.Time, name string) (domain.NextTrip, error) {
	return m.set(ctx, date, name)
}
func (m *mockCountdownServicer) Clear(ctx context.Context) error {
	return m.clear(ctx)
}

// compile-time check: mockCountdownServicer must satisfy handler.CountdownServicer.
var _ handler.CountdownServicer = (*mockCountdownServicer)(nil)

var countdownNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func countdownHandler(svc handler.CountdownServicer) http.Handler {
	return handler.NewServer(handler.Deps{
		Countdown: svc,
		Now:       func() time.Time { return countdownNow },
	}).Routes()
}

func TestGetCountdown_UsesServerClock(t *testing.T) {
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	svc := &mockCountdownServicer{next: func(_ context.Context, now time.Time) (domain.Countdown, error) {
		require.Equal(t, countdownNow, now)
		return domain.Countdown{Status: domain.CountdownUpcoming, Name: "Kerala", Date: &date, Days: 21, Hours: 15}, nil
	}}

	rec := do(countdownHandler(svc), http.MethodGet, "/countdown", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Countdown
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, domain.CountdownUpcoming, got.Status)
	assert.Equal(t, 21, got.Days)
	assert.Equal(t, 15, got.Hours)
}

func TestGetCountdown_None(t *testing.T) {
	svc := &mockCountdownServicer{next: func(_ context.Context, _ time.Time) (domain.Countdown, error) {
		return domain.Countdown{Status: domain.CountdownNone}, nil
	}}

	rec := do(countdownHandler(svc), http.MethodGet, "/countdown", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"none","days":0,"hours":0,"minutes":0}`, rec.Body.String())
}

func TestSetCountdown_ReturnsFreshCountdown(t *testing.T) {
	var stored time.Time
	svc := &mockCountdownServicer{
		set: func(_ context.Context, date time.Time, name string) (domain.NextTrip, error) {
			require.Equal(t, "Goa", name)
			stored = date
			return domain.NextTrip{Date: date, Name: name, SetAt: countdownNow}, nil
		},
		next: func(_ context.Context, _ time.Time) (domain.Countdown, error) {
			return domain.Countdown{Status: domain.CountdownUpcoming, Name: "Goa", Date: &stored, Days: 1}, nil
		},
	}

	rec := do(countdownHandler(svc), http.MethodPut, "/countdown", jsonBody(t, map[string]any{"date": "2025-03-11T09:00:00Z", "name": "Goa"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), stored)
	assert.Contains(t, rec.Body.String(), `"name":"Goa"`)
}

func TestSetCountdown_422_MissingDate(t *testing.T) {
	svc := &mockCountdownServicer{set: func(_ context.Context, date time.Time, _ string) (domain.NextTrip, error) {
		require.True(t, date.IsZero())
		return domain.NextTrip{}, fmt.Errorf("service.CountdownService.Set: %w: a date is required", domain.ErrValidation)
	}}

	rec := do(countdownHandler(svc), http.MethodPut, "/countdown", jsonBody(t, map[string]any{"name": "Goa"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "a date is required", decodeError(t, rec).Message)
}

func TestClearCountdown_204(t *testing.T) {
	called := false
	svc := &mockCountdownServicer{clear: func(_ context.Context) error {
		called = true
		return nil
	}}

	rec := do(countdownHandler(svc), http.MethodDelete, "/countdown", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}
