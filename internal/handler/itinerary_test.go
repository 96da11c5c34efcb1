package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/export"
	"github.com/pkordes/travel-planner/internal/handler"
	"github.com/pkordes/travel-planner/internal/itinerary"
)

// mockItineraryServicer is a test double for handler.ItineraryServicer.
// Set only the method fields your test needs.
type mockItineraryServicer struct {
	get            func(ctx context.Context) (domain.Trip, bool, error)
	create         func(ctx context.Context, name string, numDays int, start time.Time) (domain.Trip, error)
	reschedule     func(ctx context.Context, name string, start time.Time) (domain.Trip, error)
	addDay         func(ctx context.Context) (domain.Trip, error)
	removeDay      func(ctx context.Context, dayID uuid.UUID, confirm bool) (domain.Trip, error)
	draft          func(ctx context.Context, dayID uuid.UUID, activityID *uuid.UUID) (itinerary.ActivityInput, error)
	saveActivity   func(ctx context.Context, dayID uuid.UUID, activityID *uuid.UUID, in itinerary.ActivityInput) (domain.Trip, error)
	removeActivity func(ctx context.Context, dayID, activityID uuid.UUID) (domain.Trip, error)
	toggleActivity func(ctx context.Context, dayID, activityID uuid.UUID) (domain.Trip, error)
	clearAll       func(ctx context.Context, confirm bool) (domain.Trip, int, error)
	reset          func(ctx context.Context, confirm bool) error
	importTrip     func(ctx context.Context, data []byte) (domain.Trip, error)
	exportTrip     func(ctx context.Context, format string) (export.Document, error)
}

func (m *mockItineraryServicer) Get(ctx context.Context) (domain.Trip, bool, error) {
	return m.get(ctx)
}
func (m *mockItineraryServicer) Create(ctx context.Context, name string, numDays int, start time.Time) (domain.Trip, error) {
	return m.create(ctx, name, numDays, start)
}
func (m *mockItineraryServicer) Reschedule(ctx context.Context, name string, start time.Time) (domain.Trip, error) {
	return m.reschedule(ctx, name, start)
}
func (m *mockItineraryServicer) AddDay(ctx context.Context) (domain.Trip, error) {
	return m.addDay(ctx)
}
func (m *mockItineraryServicer) RemoveDay(ctx context.Context, dayID uuid.UUID, confirm bool) (domain.Trip, error) {
	return m.removeDay(ctx, dayID, confirm)
}
func (m *mockItineraryServicer) Draft(ctx context.Context, dayID uuid.UUID, activityID *uuid.UUID) (itinerary.ActivityInput, error) {
	return m.draft(ctx, dayID, activityID)
}
func (m *mockItineraryServicer) SaveActivity(ctx context.Context, dayID uuid.UUID, activityID *uuid.UUID, in itinerary.ActivityInput) (domain.Trip, error) {
	return m.saveActivity(ctx, dayID, activityID, in)
}
func (m *mockItineraryServicer) RemoveActivity(ctx context.Context, dayID, activityID uuid.UUID) (domain.Trip, error) {
	return m.removeActivity(ctx, dayID, activityID)
}
func (m *mockItineraryServicer) ToggleActivity(ctx context.Context, dayID, activityID uuid.UUID) (domain.Trip, error) {
	return m.toggleActivity(ctx, dayID, activityID)
}
func (m *mockItineraryServicer) ClearAll(ctx context.Context, confirm bool) (domain.Trip, int, error) {
	return m.clearAll(ctx, confirm)
}
func (m *mockItineraryServicer) Reset(ctx context.Context, confirm bool) error {
	return m.reset(ctx, confirm)
}
func (m *mockItineraryServicer) Import(ctx context.Context, data []byte) (domain.Trip, error) {
	return m.importTrip(ctx, data)
}
func (m *mockItineraryServicer) Export(ctx context.Context, format string) (export.Document, error) {
	return m.exportTrip(ctx, format)
}

// compile-time check: mockItineraryServicer must satisfy handler.ItineraryServicer.
var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func itineraryHandler(svc handler.ItineraryServicer) http.Handler {
	return handler.NewServer(handler.Deps{Itinerary: svc}).Routes()
}

func tripFixture() domain.Trip {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Kerala",
		StartDate: start,
		Days: []domain.Day{
			{ID: uuid.New(), DayNumber: 1, Date: start, Activities: []domain.Activity{
				{ID: uuid.New(), Title: "Houseboat", Time: "09:30", Duration: 2, Completed: true, CreatedAt: now, UpdatedAt: now},
			}},
			{ID: uuid.New(), DayNumber: 2, Date: start.AddDate(0, 0, 1), Activities: []domain.Activity{}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func decodeItinerary(t *testing.T, body io.Reader) handler.ItineraryResponse {
	t.Helper()
	var resp handler.ItineraryResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

// ---- GET /itinerary --------------------------------------------------------

func TestGetItinerary_NoTrip(t *testing.T) {
	svc := &mockItineraryServicer{get: func(_ context.Context) (domain.Trip, bool, error) { return domain.Trip{}, false, nil }}

	rec := do(itineraryHandler(svc), http.MethodGet, "/itinerary", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"active":false}`, rec.Body.String())
}

func TestGetItinerary_Shape(t *testing.T) {
	fixture := tripFixture()
	svc := &mockItineraryServicer{get: func(_ context.Context) (domain.Trip, bool, error) { return fixture, true, nil }}

	rec := do(itineraryHandler(svc), http.MethodGet, "/itinerary", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"start_date":"2025-04-01"`)
	assert.Contains(t, rec.Body.String(), `"end_date":"2025-04-02"`)

	resp := decodeItinerary(t, rec.Body)
	require.True(t, resp.Active)
	require.Len(t, resp.Trip.Days, 2)
	assert.Equal(t, 2, resp.Trip.Days[1].DayNumber)
	assert.Equal(t, export.Summary{TotalDays: 2, TotalActivities: 1, CompletedActivities: 1}, resp.Trip.Summary)
}

// ---- POST /itinerary -------------------------------------------------------

func TestCreateItinerary_201_DefaultsDays(t *testing.T) {
	var gotDays int
	var gotStart time.Time
	svc := &mockItineraryServicer{create: func(_ context.Context, _ string, numDays int, start time.Time) (domain.Trip, error) {
		gotDays, gotStart = numDays, start
		return tripFixture(), nil
	}}

	rec := do(itineraryHandler(svc), http.MethodPost, "/itinerary", jsonBody(t, map[string]any{"name": "Kerala", "start_date": "2025-04-01"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, itinerary.DefaultTripDays, gotDays)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), gotStart)
}

func TestCreateItinerary_422_BadDate(t *testing.T) {
	rec := do(itineraryHandler(&mockItineraryServicer{}), http.MethodPost, "/itinerary", jsonBody(t, map[string]any{"name": "Kerala", "start_date": "April 1st"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateItinerary_409_WhileActive(t *testing.T) {
	svc := &mockItineraryServicer{create: func(_ context.Context, _ string, _ int, _ time.Time) (domain.Trip, error) {
		return domain.Trip{}, fmt.Errorf("itinerary.CreateTrip: %w: a trip is already active, reset it first", domain.ErrPolicy)
	}}

	rec := do(itineraryHandler(svc), http.MethodPost, "/itinerary", jsonBody(t, map[string]any{"name": "Goa", "num_days": 2, "start_date": "2025-04-01"}))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "a trip is already active, reset it first", decodeError(t, rec).Message)
}

// ---- days ------------------------------------------------------------------

func TestRemoveDay_428_ThenConfirmed(t *testing.T) {
	fixture := tripFixture()
	dayID := fixture.Days[0].ID
	svc := &mockItineraryServicer{removeDay: func(_ context.Context, id uuid.UUID, confirm bool) (domain.Trip, error) {
		require.Equal(t, dayID, id)
		if !confirm {
			return domain.Trip{}, fmt.Errorf("itinerary.RemoveDay: %w: day 1 has 1 activities", domain.ErrConfirmationRequired)
		}
		fixture.Days = fixture.Days[1:]
		fixture.Days[0].DayNumber = 1
		return fixture, nil
	}}
	h := itineraryHandler(svc)

	rec := do(h, http.MethodDelete, "/itinerary/days/"+dayID.String(), nil)
	require.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Equal(t, "confirmation_required", decodeError(t, rec).Code)

	rec = do(h, http.MethodDelete, "/itinerary/days/"+dayID.String()+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeItinerary(t, rec.Body).Trip.Days, 1)
}

func TestRemoveDay_422_BadID(t *testing.T) {
	rec := do(itineraryHandler(&mockItineraryServicer{}), http.MethodDelete, "/itinerary/days/not-a-uuid", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAddDay_201(t *testing.T) {
	fixture := tripFixture()
	svc := &mockItineraryServicer{addDay: func(_ context.Context) (domain.Trip, error) {
		fixture.Days = append(fixture.Days, domain.Day{ID: uuid.New(), DayNumber: 3, Date: fixture.StartDate.AddDate(0, 0, 2), Activities: []domain.Activity{}})
		return fixture, nil
	}}

	rec := do(itineraryHandler(svc), http.MethodPost, "/itinerary/days", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeItinerary(t, rec.Body)
	require.Len(t, resp.Trip.Days, 3)
	assert.Equal(t, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), resp.Trip.EndDate.Time)
}

// ---- activities ------------------------------------------------------------

func TestAddActivity_201_PassesInput(t *testing.T) {
	fixture := tripFixture()
	dayID := fixture.Days[1].ID
	var got itinerary.ActivityInput
	var gotActivity *uuid.UUID
	svc := &mockItineraryServicer{saveActivity: func(_ context.Context, id uuid.UUID, activityID *uuid.UUID, in itinerary.ActivityInput) (domain.Trip, error) {
		require.Equal(t, dayID, id)
		got, gotActivity = in, activityID
		return fixture, nil
	}}

	rec := do(itineraryHandler(svc), http.MethodPost, "/itinerary/days/"+dayID.String()+"/activities",
		jsonBody(t, map[string]any{"title": "Spice market", "time": "16:00", "duration": 1.5, "location": "Kochi"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, gotActivity)
	assert.Equal(t, itinerary.ActivityInput{Title: "Spice market", Time: "16:00", Duration: 1.5, Location: "Kochi"}, got)
}

func TestUpdateActivity_200(t *testing.T) {
	fixture := tripFixture()
	day := fixture.Days[0]
	act := day.Activities[0]
	svc := &mockItineraryServicer{saveActivity: func(_ context.Context, _ uuid.UUID, activityID *uuid.UUID, _ itinerary.ActivityInput) (domain.Trip, error) {
		require.NotNil(t, activityID)
		require.Equal(t, act.ID, *activityID)
		return fixture, nil
	}}

	rec := do(itineraryHandler(svc), http.MethodPut, "/itinerary/days/"+day.ID.String()+"/activities/"+act.ID.String(),
		jsonBody(t, map[string]any{"title": "Sunset cruise"}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetActivityDraft(t *testing.T) {
	fixture := tripFixture()
	day := fixture.Days[0]
	svc := &mockItineraryServicer{draft: func(_ context.Context, _ uuid.UUID, activityID *uuid.UUID) (itinerary.ActivityInput, error) {
		if activityID == nil {
			return itinerary.ActivityInput{Duration: domain.DefaultActivityDuration}, nil
		}
		return itinerary.ActivityInput{Title: "Houseboat", Duration: 2}, nil
	}}
	h := itineraryHandler(svc)

	rec := do(h, http.MethodGet, "/itinerary/days/"+day.ID.String()+"/draft", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"","time":"","duration":2,"description":"","location":""}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/itinerary/days/"+day.ID.String()+"/draft?activity_id="+day.Activities[0].ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Houseboat")
}

func TestToggleAndRemoveActivity(t *testing.T) {
	fixture := tripFixture()
	day := fixture.Days[0]
	act := day.Activities[0]
	svc := &mockItineraryServicer{
		toggleActivity: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) { return fixture, nil },
		removeActivity: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("itinerary.RemoveActivity: %w: activity %s", domain.ErrNotFound, act.ID)
		},
	}
	h := itineraryHandler(svc)
	path := "/itinerary/days/" + day.ID.String() + "/activities/" + act.ID.String()

	rec := do(h, http.MethodPost, path+"/toggle", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- clear, reset, reschedule ----------------------------------------------

func TestClearItinerary_NothingToDoIsANotice(t *testing.T) {
	svc := &mockItineraryServicer{clearAll: func(_ context.Context, _ bool) (domain.Trip, int, error) {
		return domain.Trip{}, 0, fmt.Errorf("itinerary.ClearAll: %w: no activities to clear", domain.ErrNothingToDo)
	}}

	rec := do(itineraryHandler(svc), http.MethodPost, "/itinerary/clear?confirm=true", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notice":"no activities to clear"}`, rec.Body.String())
}

func TestClearItinerary_Removed(t *testing.T) {
	svc := &mockItineraryServicer{clearAll: func(_ context.Context, confirm bool) (domain.Trip, int, error) {
		require.True(t, confirm)
		return tripFixture(), 3, nil
	}}

	rec := do(itineraryHandler(svc), http.MethodPost, "/itinerary/clear?confirm=1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.ClearResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Removed)
}

func TestResetItinerary(t *testing.T) {
	svc := &mockItineraryServicer{reset: func(_ context.Context, confirm bool) error {
		if !confirm {
			return fmt.Errorf("itinerary.Reset: %w: all current trip data will be lost", domain.ErrConfirmationRequired)
		}
		return nil
	}}
	h := itineraryHandler(svc)

	assert.Equal(t, http.StatusPreconditionRequired, do(h, http.MethodDelete, "/itinerary?confirm=nope", nil).Code)
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/itinerary?confirm=true", nil).Code)
}

func TestRescheduleItinerary(t *testing.T) {
	var gotName string
	svc := &mockItineraryServicer{reschedule: func(_ context.Context, name string, _ time.Time) (domain.Trip, error) {
		gotName = name
		return tripFixture(), nil
	}}

	rec := do(itineraryHandler(svc), http.MethodPut, "/itinerary", jsonBody(t, map[string]any{"name": "Kerala Again", "start_date": "2025-05-01"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kerala Again", gotName)
}

// ---- import / export -------------------------------------------------------

func TestExportItinerary_Attachment(t *testing.T) {
	svc := &mockItineraryServicer{exportTrip: func(_ context.Context, format string) (export.Document, error) {
		require.Equal(t, "csv", format)
		return export.Document{FileName: "kerala_itinerary.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("a,b\n")}, nil
	}}

	rec := do(itineraryHandler(svc), http.MethodGet, "/itinerary/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="kerala_itinerary.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}

func TestExportItinerary_422_UnknownFormat(t *testing.T) {
	svc := &mockItineraryServicer{exportTrip: func(_ context.Context, format string) (export.Document, error) {
		_, err := export.ParseFormat(format)
		return export.Document{}, err
	}}

	rec := do(itineraryHandler(svc), http.MethodGet, "/itinerary/export?format=docx", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestImportItinerary_PassesRawBody(t *testing.T) {
	var got []byte
	svc := &mockItineraryServicer{importTrip: func(_ context.Context, data []byte) (domain.Trip, error) {
		got = data
		return tripFixture(), nil
	}}

	rec := do(itineraryHandler(svc), http.MethodPost, "/itinerary/import", strings.NewReader(`{"name":"Kerala"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"name":"Kerala"}`, string(got))
}
