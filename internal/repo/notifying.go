package repo

import (
	"context"
	"strings"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/events"
)

// notifyingKV decorates a KVRepo and publishes a storage-change notification
// after every successful write, so consumers can refresh derived views.
type notifyingKV struct {
	inner KVRepo
	pub   events.Publisher
}

// NewNotifyingKV wraps inner so that Set and Delete publish an events.Change.
// Failed writes publish nothing.
//
// The user registry and the session hold password hashes and personal data:
// their writes are announced with the value withheld. Wishlist keys embed the
// owner's email and are not announced at all.
func NewNotifyingKV(inner KVRepo, pub events.Publisher) KVRepo {
	return &notifyingKV{inner: inner, pub: pub}
}

func withheld(key string) bool {
	return key == domain.KeyUsers || key == domain.KeySession
}

func unannounced(key string) bool {
	return strings.HasPrefix(key, domain.KeyWishlistPrefix)
}

func (n *notifyingKV) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, key)
}

func (n *notifyingKV) Set(ctx context.Context, key, value string) error {
	if err := n.inner.Set(ctx, key, value); err != nil {
		return err
	}
	switch {
	case unannounced(key):
	case withheld(key):
		n.pub.Publish(events.Change{Key: key, Withheld: true})
	default:
		n.pub.Publish(events.Change{Key: key, NewValue: &value})
	}
	return nil
}

func (n *notifyingKV) Delete(ctx context.Context, key string) error {
	if err := n.inner.Delete(ctx, key); err != nil {
		return err
	}
	if !unannounced(key) {
		n.pub.Publish(events.Change{Key: key})
	}
	return nil
}
