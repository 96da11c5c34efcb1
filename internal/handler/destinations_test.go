package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/destinations"
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/handler"
)

// mockWishlistServicer is a test double for handler.WishlistServicer.
type mockWishlistServicer struct {
	list func(ctx context.Context) ([]domain.Destination, error)
	add  func(ctx context.Context, id int) ([]domain.Destination, error)
}

func (m *mockWishlistServicer) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockWishlistServicer) Add(ctx context.Context, id int) ([]domain.Destination, error) {
	return m.add(ctx, id)
}

// compile-time check: mockWishlistServicer must satisfy handler.WishlistServicer.
var _ handler.WishlistServicer = (*mockWishlistServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func destinationsHandler(wl handler.WishlistServicer) http.Handler {
	d := handler.Deps{Destinations: destinations.Default()}
	if wl != nil {
		d.Wishlist = wl
	}
	return handler.NewServer(d).Routes()
}

func destinationIDs(list []domain.Destination) []int {
	out := make([]int, 0, len(list))
	for _, d := range list {
		out = append(out, d.ID)
	}
	return out
}

// ---- GET /destinations -----------------------------------------------------

func TestListDestinations_DefaultPage(t *testing.T) {
	rec := do(destinationsHandler(nil), http.MethodGet, "/destinations", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.DestinationList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 20)
	assert.Equal(t, handler.Pagination{Page: 1, Limit: 20, Total: 20}, resp.Pagination)
}

func TestListDestinations_FilterAndPage(t *testing.T) {
	rec := do(destinationsHandler(nil), http.MethodGet, "/destinations?category=cultural&page=2&limit=3", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.DestinationList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []int{14, 17, 18}, destinationIDs(resp.Data))
	assert.Equal(t, 6, resp.Pagination.Total)
}

func TestListDestinations_NoMatchIsEmptyArray(t *testing.T) {
	rec := do(destinationsHandler(nil), http.MethodGet, "/destinations?q=antarctica", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListDestinations_BadPageFallsBack(t *testing.T) {
	rec := do(destinationsHandler(nil), http.MethodGet, "/destinations?page=abc&limit=500", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.DestinationList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 100, resp.Pagination.Limit)
}

// ---- GET /destinations/{id} ------------------------------------------------

func TestGetDestination(t *testing.T) {
	rec := do(destinationsHandler(nil), http.MethodGet, "/destinations/14", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Destination
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Hampi", got.Name)
}

func TestGetDestination_Errors(t *testing.T) {
	h := destinationsHandler(nil)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/destinations/999", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(h, http.MethodGet, "/destinations/hampi", nil).Code)
}

// ---- wishlist --------------------------------------------------------------

func TestWishlist_Unconfigured404(t *testing.T) {
	rec := do(destinationsHandler(nil), http.MethodGet, "/wishlist", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetWishlist_401_WithoutSession(t *testing.T) {
	svc := &mockWishlistServicer{list: func(_ context.Context) ([]domain.Destination, error) {
		return nil, fmt.Errorf("service.WishlistService: %w: please log in to use the wishlist", domain.ErrInvalidCredentials)
	}}

	rec := do(destinationsHandler(svc), http.MethodGet, "/wishlist", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "please log in to use the wishlist", decodeError(t, rec).Message)
}

func TestAddToWishlist_201(t *testing.T) {
	hampi, err := destinations.Default().Get(14)
	require.NoError(t, err)
	svc := &mockWishlistServicer{add: func(_ context.Context, id int) ([]domain.Destination, error) {
		require.Equal(t, 14, id)
		return []domain.Destination{hampi}, nil
	}}

	rec := do(destinationsHandler(svc), http.MethodPost, "/wishlist", jsonBody(t, map[string]any{"destination_id": 14}))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp handler.WishlistResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []int{14}, destinationIDs(resp.Data))
}

func TestAddToWishlist_DuplicateIsNotice(t *testing.T) {
	svc := &mockWishlistServicer{add: func(_ context.Context, _ int) ([]domain.Destination, error) {
		return nil, fmt.Errorf("service.WishlistService.Add: %w: already in wishlist", domain.ErrNothingToDo)
	}}

	rec := do(destinationsHandler(svc), http.MethodPost, "/wishlist", jsonBody(t, map[string]any{"destination_id": 14}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notice":"already in wishlist"}`, rec.Body.String())
}
