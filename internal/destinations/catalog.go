// Package destinations serves the read-only destination catalog: listing,
// free-text search and exact-match filters.
package destinations

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/travel-planner/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Filter narrows a result list. Empty fields match everything.
type Filter struct {
	Region   string
	Category string
	Budget   string
}

// Page is one window of a result list.
type Page struct {
	Items []domain.Destination `json:"items"`
	Total int                  `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// Catalog is an immutable, ordered set of destinations.
type Catalog struct {
	items []domain.Destination
	byID  map[int]int
}

// Parse decodes a YAML catalog document. Ids must be unique.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Destinations []domain.Destination `yaml:"destinations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("destinations.Parse: %w", err)
	}

	c := &Catalog{items: doc.Destinations, byID: make(map[int]int, len(doc.Destinations))}
	for i, d := range c.items {
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("destinations.Parse: duplicate id %d", d.ID)
		}
		c.byID[d.ID] = i
	}
	return c, nil
}

// Default returns the compiled-in catalog.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns every destination in catalog order.
func (c *Catalog) All() []domain.Destination {
	return append([]domain.Destination(nil), c.items...)
}

// Get returns the destination with the given id.
func (c *Catalog) Get(id int) (domain.Destination, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Destination{}, fmt.Errorf("destinations.Get: %w: destination %d", domain.ErrNotFound, id)
	}
	return c.items[i], nil
}

// Search returns destinations whose name, location, description or any tag
// contains query, ignoring case. A blank query returns everything.
func (c *Catalog) Search(query string) []domain.Destination {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}

	var out []domain.Destination
	for _, d := range c.items {
		if matches(d, q) {
			out = append(out, d)
		}
	}
	return out
}

func matches(d domain.Destination, q string) bool {
	for _, s := range []string{d.Name, d.Location, d.Description} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Filter keeps the results matching every non-empty field of f.
func (c *Catalog) Filter(results []domain.Destination, f Filter) []domain.Destination {
	var out []domain.Destination
	for _, d := range results {
		if f.Region != "" && d.Region != f.Region {
			continue
		}
		if f.Category != "" && d.Category != f.Category {
			continue
		}
		if f.Budget != "" && d.Budget != f.Budget {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Query searches, filters and paginates in one call.
func (c *Catalog) Query(query string, f Filter, p domain.PaginationParams) Page {
	results := c.Filter(c.Search(query), f)
	start, end := p.Window(len(results))
	items := results[start:end]
	if items == nil {
		items = []domain.Destination{}
	}
	return Page{Items: items, Total: len(results), Page: p.Page, Limit: p.Limit}
}
