package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/internal/checklist"
	"github.com/pkordes/travel-planner/internal/domain"
)

// ItemRequest names one checklist item.
type ItemRequest struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// CategoryRequest is the body of POST /checklist/categories.
type CategoryRequest struct {
	Name string `json:"name"`
}

// ChecklistResponse is the full checklist plus the sorted category names
// offered by the add-item selector.
type ChecklistResponse struct {
	Categories    []domain.ChecklistCategory `json:"categories"`
	CategoryNames []string                   `json:"category_names"`
}

// GetChecklist handles GET /checklist.
func (s *Server) GetChecklist(w http.ResponseWriter, r *http.Request) {
	c, err := s.checklist.Load(r.Context())
	s.writeChecklist(w, r, c, err)
}

// AddChecklistCategory handles POST /checklist/categories.
func (s *Server) AddChecklistCategory(w http.ResponseWriter, r *http.Request) {
	var body CategoryRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	c, err := s.checklist.AddCategory(r.Context(), body.Name)
	s.writeChecklist(w, r, c, err)
}

// AddChecklistItem handles POST /checklist/items.
func (s *Server) AddChecklistItem(w http.ResponseWriter, r *http.Request) {
	var body ItemRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	c, err := s.checklist.AddItem(r.Context(), body.Category, body.Text)
	s.writeChecklist(w, r, c, err)
}

// ToggleChecklistItem handles POST /checklist/items/toggle.
func (s *Server) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	var body ItemRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	c, err := s.checklist.Toggle(r.Context(), body.Category, body.Text)
	s.writeChecklist(w, r, c, err)
}

// RemoveChecklistItem handles POST /checklist/items/remove.
func (s *Server) RemoveChecklistItem(w http.ResponseWriter, r *http.Request) {
	var body ItemRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	c, err := s.checklist.DeleteItem(r.Context(), body.Category, body.Text)
	s.writeChecklist(w, r, c, err)
}

// ResetChecklist handles POST /checklist/reset.
func (s *Server) ResetChecklist(w http.ResponseWriter, r *http.Request) {
	c, err := s.checklist.Reset(r.Context())
	s.writeChecklist(w, r, c, err)
}

func (s *Server) writeChecklist(w http.ResponseWriter, r *http.Request, c domain.Checklist, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ChecklistResponse{Categories: c.Categories, CategoryNames: checklist.CategoryNames(c)})
}
