package checklist

import "github.com/pkordes/travel-planner/internal/domain"

// StoredItem is an item as persisted: no origin, since origin is recomputed
// against the baseline on every load.
type StoredItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// StoredCategory is a category as persisted, in stored order.
type StoredCategory struct {
	Name  string
	Items []StoredItem
}

// Merge reconciles stored state with a baseline.
//
// The result starts as a copy of baseline. Stored categories are then visited
// in stored order:
//   - a category named like a baseline category copies each stored checked
//     flag onto the baseline item with identical text, then appends stored
//     items matching no baseline item as custom items, in stored order;
//   - any other category is appended as a custom category with its items
//     verbatim. A repeated custom name keeps the first occurrence.
//
// Items are matched by text only, so a baseline item whose text changed
// comes back unchecked, and a baseline item the user deleted reappears.
func Merge(base domain.Checklist, stored []StoredCategory) domain.Checklist {
	out := clone(base)

	index := make(map[string]int, len(out.Categories))
	for i, cat := range out.Categories {
		index[cat.Name] = i
	}

	for _, sc := range stored {
		i, ok := index[sc.Name]
		if !ok {
			cat := domain.ChecklistCategory{Name: sc.Name, Items: []domain.ChecklistItem{}}
			for _, it := range sc.Items {
				cat.Items = append(cat.Items, domain.ChecklistItem{Text: it.Text, Checked: it.Checked, Origin: domain.OriginCustom})
			}
			index[sc.Name] = len(out.Categories)
			out.Categories = append(out.Categories, cat)
			continue
		}

		cat := &out.Categories[i]
		if !cat.Baseline {
			continue
		}

		baseTexts := make(map[string]bool, len(cat.Items))
		for _, it := range cat.Items {
			baseTexts[it.Text] = true
		}
		for j := range cat.Items {
			if s, found := findStored(sc.Items, cat.Items[j].Text); found {
				cat.Items[j].Checked = s.Checked
			}
		}
		for _, it := range sc.Items {
			if !baseTexts[it.Text] {
				cat.Items = append(cat.Items, domain.ChecklistItem{Text: it.Text, Checked: it.Checked, Origin: domain.OriginCustom})
			}
		}
	}
	return out
}

func findStored(items []StoredItem, text string) (StoredItem, bool) {
	for _, it := range items {
		if it.Text == text {
			return it, true
		}
	}
	return StoredItem{}, false
}
