package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/export"
	"github.com/pkordes/travel-planner/internal/itinerary"
)

// CreateTripRequest is the body of POST /itinerary. NumDays defaults to
// itinerary.DefaultTripDays.
type CreateTripRequest struct {
	Name      string              `json:"name"`
	NumDays   *int                `json:"num_days,omitempty"`
	StartDate *openapi_types.Date `json:"start_date,omitempty"`
}

// RescheduleRequest is the body of PUT /itinerary.
type RescheduleRequest struct {
	Name      string              `json:"name"`
	StartDate *openapi_types.Date `json:"start_date,omitempty"`
}

// ActivityRequest is the body of the activity add and edit endpoints.
type ActivityRequest struct {
	Title       string   `json:"title"`
	Time        string   `json:"time,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// Activity is the API view of domain.Activity.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Time        string    `json:"time,omitempty"`
	Duration    float64   `json:"duration"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Day is the API view of domain.Day.
type Day struct {
	ID         uuid.UUID          `json:"id"`
	DayNumber  int                `json:"day_number"`
	Date       openapi_types.Date `json:"date"`
	Activities []Activity         `json:"activities"`
}

// Trip is the API view of domain.Trip, with its summary counts.
type Trip struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Days      []Day              `json:"days"`
	Summary   export.Summary     `json:"summary"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ItineraryResponse is returned by every itinerary endpoint. Trip is absent
// while no trip is active.
type ItineraryResponse struct {
	Active bool  `json:"active"`
	Trip   *Trip `json:"trip,omitempty"`
}

// ClearResponse is the body of POST /itinerary/clear.
type ClearResponse struct {
	Removed int   `json:"removed"`
	Trip    *Trip `json:"trip"`
}

// GetItinerary handles GET /itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	trip, found, err := s.itinerary.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, ItineraryResponse{})
		return
	}
	s.writeTrip(w, r, http.StatusOK, trip, nil)
}

// CreateItinerary handles POST /itinerary.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	numDays := itinerary.DefaultTripDays
	if body.NumDays != nil {
		numDays = *body.NumDays
	}

	trip, err := s.itinerary.Create(r.Context(), body.Name, numDays, dateOrZero(body.StartDate))
	s.writeTrip(w, r, http.StatusCreated, trip, err)
}

// RescheduleItinerary handles PUT /itinerary.
func (s *Server) RescheduleItinerary(w http.ResponseWriter, r *http.Request) {
	var body RescheduleRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	trip, err := s.itinerary.Reschedule(r.Context(), body.Name, dateOrZero(body.StartDate))
	s.writeTrip(w, r, http.StatusOK, trip, err)
}

// ResetItinerary handles DELETE /itinerary?confirm=true.
func (s *Server) ResetItinerary(w http.ResponseWriter, r *http.Request) {
	if err := s.itinerary.Reset(r.Context(), confirmed(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportItinerary handles POST /itinerary/import. The body is a JSON export.
func (s *Server) ImportItinerary(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trip, err := s.itinerary.Import(r.Context(), data)
	s.writeTrip(w, r, http.StatusCreated, trip, err)
}

// ClearItinerary handles POST /itinerary/clear?confirm=true.
func (s *Server) ClearItinerary(w http.ResponseWriter, r *http.Request) {
	trip, removed, err := s.itinerary.ClearAll(r.Context(), confirmed(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := tripToResponse(trip)
	writeJSON(w, http.StatusOK, ClearResponse{Removed: removed, Trip: &out})
}

// ExportItinerary handles GET /itinerary/export?format=.
// The document is sent as an attachment named after the trip.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	doc, err := s.itinerary.Export(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

// AddDay handles POST /itinerary/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	trip, err := s.itinerary.AddDay(r.Context())
	s.writeTrip(w, r, http.StatusCreated, trip, err)
}

// RemoveDay handles DELETE /itinerary/days/{dayID}?confirm=.
func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "dayID")
	if !ok {
		return
	}
	trip, err := s.itinerary.RemoveDay(r.Context(), dayID, confirmed(r))
	s.writeTrip(w, r, http.StatusOK, trip, err)
}

// GetActivityDraft handles GET /itinerary/days/{dayID}/draft[?activity_id=].
func (s *Server) GetActivityDraft(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "dayID")
	if !ok {
		return
	}
	var activityID *uuid.UUID
	if raw := r.URL.Query().Get("activity_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody("activity_id must be a UUID"))
			return
		}
		activityID = &id
	}

	draft, err := s.itinerary.Draft(r.Context(), dayID, activityID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// AddActivity handles POST /itinerary/days/{dayID}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	s.saveActivity(w, r, false)
}

// UpdateActivity handles PUT /itinerary/days/{dayID}/activities/{activityID}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	s.saveActivity(w, r, true)
}

func (s *Server) saveActivity(w http.ResponseWriter, r *http.Request, edit bool) {
	dayID, ok := pathID(w, r, "dayID")
	if !ok {
		return
	}
	var activityID *uuid.UUID
	if edit {
		id, ok := pathID(w, r, "activityID")
		if !ok {
			return
		}
		activityID = &id
	}
	var body ActivityRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}

	trip, err := s.itinerary.SaveActivity(r.Context(), dayID, activityID, requestToActivity(body))
	status := http.StatusCreated
	if edit {
		status = http.StatusOK
	}
	s.writeTrip(w, r, status, trip, err)
}

// RemoveActivity handles DELETE /itinerary/days/{dayID}/activities/{activityID}.
func (s *Server) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "dayID")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityID")
	if !ok {
		return
	}
	trip, err := s.itinerary.RemoveActivity(r.Context(), dayID, activityID)
	s.writeTrip(w, r, http.StatusOK, trip, err)
}

// ToggleActivity handles POST /itinerary/days/{dayID}/activities/{activityID}/toggle.
func (s *Server) ToggleActivity(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "dayID")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityID")
	if !ok {
		return
	}
	trip, err := s.itinerary.ToggleActivity(r.Context(), dayID, activityID)
	s.writeTrip(w, r, http.StatusOK, trip, err)
}

// --- mapping helpers --------------------------------------------------------

func (s *Server) writeTrip(w http.ResponseWriter, r *http.Request, status int, trip domain.Trip, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := tripToResponse(trip)
	writeJSON(w, status, ItineraryResponse{Active: true, Trip: &out})
}

// confirmed reads the confirm query flag. Anything unparsable is false.
func confirmed(r *http.Request) bool {
	ok, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return err == nil && ok
}

// pathID parses a UUID path parameter, writing a 422 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(name+" must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func dateOrZero(d *openapi_types.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

func requestToActivity(body ActivityRequest) itinerary.ActivityInput {
	in := itinerary.ActivityInput{
		Title:       body.Title,
		Time:        body.Time,
		Description: body.Description,
		Location:    body.Location,
	}
	if body.Duration != nil {
		in.Duration = *body.Duration
	}
	return in
}

func tripToResponse(t domain.Trip) Trip {
	out := Trip{
		ID:        t.ID,
		Name:      t.Name,
		StartDate: openapi_types.Date{Time: t.StartDate},
		EndDate:   openapi_types.Date{Time: t.StartDate},
		Days:      make([]Day, 0, len(t.Days)),
		Summary:   export.Summarize(t),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if len(t.Days) > 0 {
		out.EndDate = openapi_types.Date{Time: t.LastDay().Date}
	}
	for _, d := range t.Days {
		day := Day{ID: d.ID, DayNumber: d.DayNumber, Date: openapi_types.Date{Time: d.Date}, Activities: make([]Activity, 0, len(d.Activities))}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, Activity{
				ID:          a.ID,
				Title:       a.Title,
				Time:        a.Time,
				Duration:    a.Duration,
				Description: a.Description,
				Location:    a.Location,
				Completed:   a.Completed,
				CreatedAt:   a.CreatedAt,
				UpdatedAt:   a.UpdatedAt,
			})
		}
		out.Days = append(out.Days, day)
	}
	return out
}
