// Package checklist implements the packing checklist as pure transitions over
// domain.Checklist. Nothing here touches storage.
package checklist

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/travel-planner/internal/domain"
)

//go:embed baseline.yaml
var baselineYAML []byte

type baselineFile struct {
	Categories []struct {
		Name  string   `yaml:"name"`
		Items []string `yaml:"items"`
	} `yaml:"categories"`
}

var baseline = mustParseBaseline(baselineYAML)

// ParseBaseline decodes a baseline document: a list of categories, each with
// a list of item texts.
func ParseBaseline(data []byte) (domain.Checklist, error) {
	var f baselineFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.Checklist{}, fmt.Errorf("checklist.ParseBaseline: %w", err)
	}

	var c domain.Checklist
	for _, fc := range f.Categories {
		cat := domain.ChecklistCategory{Name: fc.Name, Baseline: true, Items: []domain.ChecklistItem{}}
		for _, text := range fc.Items {
			cat.Items = append(cat.Items, domain.ChecklistItem{Text: text, Origin: domain.OriginBaseline})
		}
		c.Categories = append(c.Categories, cat)
	}
	return c, nil
}

func mustParseBaseline(data []byte) domain.Checklist {
	c, err := ParseBaseline(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Baseline returns a fresh copy of the compiled-in checklist with every item
// unchecked.
func Baseline() domain.Checklist {
	return clone(baseline)
}

func clone(c domain.Checklist) domain.Checklist {
	out := domain.Checklist{Categories: make([]domain.ChecklistCategory, len(c.Categories))}
	for i, cat := range c.Categories {
		cat.Items = append([]domain.ChecklistItem{}, cat.Items...)
		out.Categories[i] = cat
	}
	return out
}
