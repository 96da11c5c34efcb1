package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-planner/internal/destinations"
	"github.com/pkordes/travel-planner/internal/domain"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// DestinationList is the body of GET /destinations.
type DestinationList struct {
	Data       []domain.Destination `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// WishlistRequest is the body of POST /wishlist.
type WishlistRequest struct {
	DestinationID int `json:"destination_id"`
}

// WishlistResponse is the body of the wishlist endpoints.
type WishlistResponse struct {
	Data []domain.Destination `json:"data"`
}

// ListDestinations handles GET /destinations.
// Supports ?q= free-text search, ?region=, ?category= and ?budget= filters,
// and ?page= / ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := domain.NewPaginationParams(queryInt(q.Get("page")), queryInt(q.Get("limit")))
	page := s.destinations.Query(q.Get("q"), destinations.Filter{
		Region:   q.Get("region"),
		Category: q.Get("category"),
		Budget:   q.Get("budget"),
	}, params)

	writeJSON(w, http.StatusOK, DestinationList{
		Data:       page.Items,
		Pagination: Pagination{Page: page.Page, Limit: page.Limit, Total: page.Total},
	})
}

// GetDestination handles GET /destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("id must be an integer"))
		return
	}
	d, err := s.destinations.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// GetWishlist handles GET /wishlist.
func (s *Server) GetWishlist(w http.ResponseWriter, r *http.Request) {
	list, err := s.wishlist.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, WishlistResponse{Data: list})
}

// AddToWishlist handles POST /wishlist.
func (s *Server) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var body WishlistRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	list, err := s.wishlist.Add(r.Context(), body.DestinationID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, WishlistResponse{Data: list})
}

// queryInt parses an optional integer query value; anything else is nil.
func queryInt(raw string) *int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
