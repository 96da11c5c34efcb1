package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/internal/calculator"
)

// CalculatorResponse carries the raw breakdown and its rupee rendering.
type CalculatorResponse struct {
	Breakdown calculator.Breakdown `json:"breakdown"`
	Formatted calculator.Formatted `json:"formatted"`
}

// Calculate handles POST /calculator.
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	var in calculator.Inputs
	if !s.decodeJSON(w, r, &in) {
		return
	}
	b, err := calculator.Calculate(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CalculatorResponse{Breakdown: b, Formatted: calculator.Format(b)})
}

// GetCalculatorDefaults handles GET /calculator/defaults.
func (s *Server) GetCalculatorDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, calculator.DefaultInputs())
}
