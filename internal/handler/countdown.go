package handler

import (
	"net/http"
	"time"
)

// SetCountdownRequest is the body of PUT /countdown.
type SetCountdownRequest struct {
	Date *time.Time `json:"date"`
	Name string     `json:"name,omitempty"`
}

// GetCountdown handles GET /countdown.
func (s *Server) GetCountdown(w http.ResponseWriter, r *http.Request) {
	c, err := s.countdown.Next(r.Context(), s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// SetCountdown handles PUT /countdown.
func (s *Server) SetCountdown(w http.ResponseWriter, r *http.Request) {
	var body SetCountdownRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	var date time.Time
	if body.Date != nil {
		date = *body.Date
	}
	if _, err := s.countdown.Set(r.Context(), date, body.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.GetCountdown(w, r)
}

// ClearCountdown handles DELETE /countdown.
func (s *Server) ClearCountdown(w http.ResponseWriter, r *http.Request) {
	if err := s.countdown.Clear(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
