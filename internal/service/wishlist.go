package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// SessionSource yields the current session. *AuthService satisfies it.
type SessionSource interface {
	Session(ctx context.Context) (domain.Session, bool, error)
}

// DestinationLookup resolves a destination id.
type DestinationLookup interface {
	Get(id int) (domain.Destination, error)
}

// WishlistService keeps the signed-in user's list of saved destination ids,
// one list per email.
type WishlistService struct {
	store    store
	sessions SessionSource
	catalog  DestinationLookup
}

// NewWishlistService constructs a WishlistService.
func NewWishlistService(kv repo.KVRepo, sessions SessionSource, catalog DestinationLookup, opts ...Option) *WishlistService {
	d := newDeps(opts)
	return &WishlistService{store: store{kv: kv, log: d.log}, sessions: sessions, catalog: catalog}
}

func (s *WishlistService) key(ctx context.Context, op string) (string, error) {
	sess, ok, err := s.sessions.Session(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("service.WishlistService.%s: %w: please log in to use the wishlist", op, domain.ErrInvalidCredentials)
	}
	return domain.WishlistKey(sess.User.Email), nil
}

// List returns the saved destinations, skipping ids no longer in the catalog.
func (s *WishlistService) List(ctx context.Context) ([]domain.Destination, error) {
	key, err := s.key(ctx, "List")
	if err != nil {
		return nil, err
	}
	var ids []int
	if _, err := s.store.load(ctx, key, &ids); err != nil {
		return nil, err
	}

	out := make([]domain.Destination, 0, len(ids))
	for _, id := range ids {
		if d, err := s.catalog.Get(id); err == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

// Add saves a destination. Adding one that is already saved returns
// ErrNothingToDo.
func (s *WishlistService) Add(ctx context.Context, id int) ([]domain.Destination, error) {
	key, err := s.key(ctx, "Add")
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.Get(id); err != nil {
		return nil, err
	}

	var ids []int
	if _, err := s.store.load(ctx, key, &ids); err != nil {
		return nil, err
	}
	if slices.Contains(ids, id) {
		return nil, fmt.Errorf("service.WishlistService.Add: %w: already in wishlist", domain.ErrNothingToDo)
	}
	if err := s.store.save(ctx, key, append(ids, id)); err != nil {
		return nil, err
	}
	return s.List(ctx)
}
