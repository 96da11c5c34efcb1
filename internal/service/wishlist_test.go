package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/destinations"
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/service"
)

func newWishlist(t *testing.T, loggedIn bool) (*service.WishlistService, repo.KVRepo) {
	t.Helper()
	kv := repo.NewMemoryKV()
	authSvc := newAuth(kv, &clock{now: t0})
	if loggedIn {
		_, _, err := authSvc.Register(context.Background(), registration("asha@example.com"))
		require.NoError(t, err)
	}
	return service.NewWishlistService(kv, authSvc, destinations.Default()), kv
}

func TestWishlistService_RequiresSession(t *testing.T) {
	svc, _ := newWishlist(t, false)

	_, err := svc.Add(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestWishlistService_Add(t *testing.T) {
	svc, kv := newWishlist(t, true)

	got, err := svc.Add(context.Background(), 14)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Hampi", got[0].Name)

	raw, ok := get(t, kv, domain.WishlistKey("asha@example.com"))
	require.True(t, ok)
	assert.JSONEq(t, `[14]`, raw)

	_, err = svc.Add(context.Background(), 14)
	assert.ErrorIs(t, err, domain.ErrNothingToDo)
}

func TestWishlistService_Add_UnknownDestination(t *testing.T) {
	svc, _ := newWishlist(t, true)

	_, err := svc.Add(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWishlistService_List_Empty(t *testing.T) {
	svc, _ := newWishlist(t, true)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
