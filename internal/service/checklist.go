package service

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-planner/internal/checklist"
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// ChecklistService persists the packing checklist. Every mutation stores and
// returns the whole checklist.
type ChecklistService struct {
	store store
}

// NewChecklistService constructs a ChecklistService backed by kv.
func NewChecklistService(kv repo.KVRepo, opts ...Option) *ChecklistService {
	d := newDeps(opts)
	return &ChecklistService{store: store{kv: kv, log: d.log}}
}

// Load merges the stored checklist onto the baseline. Missing or unreadable
// state yields the baseline.
func (s *ChecklistService) Load(ctx context.Context) (domain.Checklist, error) {
	raw, found, err := s.store.kv.Get(ctx, domain.KeyChecklist)
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("service.ChecklistService.Load: %w", err)
	}
	if !found {
		return checklist.Baseline(), nil
	}
	stored, err := checklist.Decode([]byte(raw))
	if err != nil {
		s.store.discard(ctx, domain.KeyChecklist, err)
		return checklist.Baseline(), nil
	}
	return checklist.Merge(checklist.Baseline(), stored), nil
}

func (s *ChecklistService) mutate(ctx context.Context, apply func(*domain.Checklist) error) (domain.Checklist, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return domain.Checklist{}, err
	}
	if err := apply(&c); err != nil {
		return domain.Checklist{}, err
	}

	b, err := checklist.Encode(c)
	if err != nil {
		return domain.Checklist{}, err
	}
	if err := s.store.kv.Set(ctx, domain.KeyChecklist, string(b)); err != nil {
		return domain.Checklist{}, fmt.Errorf("service.ChecklistService: save: %w", err)
	}
	return c, nil
}

// Toggle flips one item.
func (s *ChecklistService) Toggle(ctx context.Context, category, text string) (domain.Checklist, error) {
	return s.mutate(ctx, func(c *domain.Checklist) error {
		return checklist.Toggle(c, category, text)
	})
}

// AddItem appends a custom item to category.
func (s *ChecklistService) AddItem(ctx context.Context, category, text string) (domain.Checklist, error) {
	return s.mutate(ctx, func(c *domain.Checklist) error {
		_, err := checklist.AddItem(c, category, text)
		return err
	})
}

// DeleteItem removes an item, and its category when that category is custom
// and becomes empty.
func (s *ChecklistService) DeleteItem(ctx context.Context, category, text string) (domain.Checklist, error) {
	return s.mutate(ctx, func(c *domain.Checklist) error {
		return checklist.DeleteItem(c, category, text)
	})
}

// AddCategory appends an empty custom category.
func (s *ChecklistService) AddCategory(ctx context.Context, name string) (domain.Checklist, error) {
	return s.mutate(ctx, func(c *domain.Checklist) error {
		_, err := checklist.AddCategory(c, name)
		return err
	})
}

// Reset discards the stored checklist and returns the baseline.
func (s *ChecklistService) Reset(ctx context.Context) (domain.Checklist, error) {
	if err := s.store.remove(ctx, domain.KeyChecklist); err != nil {
		return domain.Checklist{}, err
	}
	return checklist.Baseline(), nil
}
