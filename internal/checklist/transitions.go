package checklist

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Category name length bounds, in characters.
const (
	MinCategoryName = 2
	MaxCategoryName = 50
)

func find(c *domain.Checklist, category string) (*domain.ChecklistCategory, error) {
	for i := range c.Categories {
		if c.Categories[i].Name == category {
			return &c.Categories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: category %q", domain.ErrNotFound, category)
}

func indexOf(cat *domain.ChecklistCategory, text string) int {
	return slices.IndexFunc(cat.Items, func(it domain.ChecklistItem) bool { return it.Text == text })
}

// Toggle flips the checked state of the item with the given text.
func Toggle(c *domain.Checklist, category, text string) error {
	cat, err := find(c, category)
	if err != nil {
		return fmt.Errorf("checklist.Toggle: %w", err)
	}
	i := indexOf(cat, text)
	if i < 0 {
		return fmt.Errorf("checklist.Toggle: %w: item %q", domain.ErrNotFound, text)
	}
	cat.Items[i].Checked = !cat.Items[i].Checked
	return nil
}

// AddItem appends an unchecked custom item. Text is trimmed and must be
// non-empty and unique within the category, ignoring case.
func AddItem(c *domain.Checklist, category, text string) (domain.ChecklistItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChecklistItem{}, fmt.Errorf("checklist.AddItem: %w: item text is required", domain.ErrValidation)
	}
	cat, err := find(c, category)
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("checklist.AddItem: %w", err)
	}
	for _, it := range cat.Items {
		if strings.EqualFold(it.Text, text) {
			return domain.ChecklistItem{}, fmt.Errorf("checklist.AddItem: %w: %q already exists in the %s category", domain.ErrValidation, text, category)
		}
	}

	item := domain.ChecklistItem{Text: text, Origin: domain.OriginCustom}
	cat.Items = append(cat.Items, item)
	return item, nil
}

// DeleteItem removes the item with the given text. A custom category left
// empty is removed too; a baseline category stays, even empty.
func DeleteItem(c *domain.Checklist, category, text string) error {
	cat, err := find(c, category)
	if err != nil {
		return fmt.Errorf("checklist.DeleteItem: %w", err)
	}
	i := indexOf(cat, text)
	if i < 0 {
		return fmt.Errorf("checklist.DeleteItem: %w: item %q", domain.ErrNotFound, text)
	}
	cat.Items = slices.Delete(cat.Items, i, i+1)

	if len(cat.Items) == 0 && !cat.Baseline {
		c.Categories = slices.DeleteFunc(c.Categories, func(x domain.ChecklistCategory) bool { return x.Name == category })
	}
	return nil
}

// AddCategory appends an empty custom category. The name is trimmed, must be
// 2 to 50 characters long and must not already exist.
func AddCategory(c *domain.Checklist, name string) (domain.ChecklistCategory, error) {
	name = strings.TrimSpace(name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return domain.ChecklistCategory{}, fmt.Errorf("checklist.AddCategory: %w: category name is required", domain.ErrValidation)
	case n < MinCategoryName:
		return domain.ChecklistCategory{}, fmt.Errorf("checklist.AddCategory: %w: category name must be at least %d characters long", domain.ErrValidation, MinCategoryName)
	case n > MaxCategoryName:
		return domain.ChecklistCategory{}, fmt.Errorf("checklist.AddCategory: %w: category name must be at most %d characters long", domain.ErrValidation, MaxCategoryName)
	}
	if _, err := find(c, name); err == nil {
		return domain.ChecklistCategory{}, fmt.Errorf("checklist.AddCategory: %w: category %q already exists", domain.ErrValidation, name)
	}

	cat := domain.ChecklistCategory{Name: name, Items: []domain.ChecklistItem{}}
	c.Categories = append(c.Categories, cat)
	return cat, nil
}

// CategoryNames returns the category names sorted, for the category selector.
func CategoryNames(c domain.Checklist) []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	slices.Sort(names)
	return names
}
