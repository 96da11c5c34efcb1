package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Encode serializes a checklist in the stored form: a JSON array of
// {name, items:[{text, checked, origin}]} in display order.
func Encode(c domain.Checklist) ([]byte, error) {
	cats := c.Categories
	if cats == nil {
		cats = []domain.ChecklistCategory{}
	}
	b, err := json.Marshal(cats)
	if err != nil {
		return nil, fmt.Errorf("checklist.Encode: %w", err)
	}
	return b, nil
}

// Decode parses a stored checklist. Two forms are accepted:
//
//	[{"name":"Tech & Extras","items":[{"text":"Headphones","checked":true}]}]
//	{"Tech & Extras":[{"text":"Headphones","checked":true}]}
//
// The second is the object form written by the browser client. Its key order
// is kept, since category order is display order.
func Decode(data []byte) ([]StoredCategory, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("checklist.Decode: empty value: %w", domain.ErrStorage)
	}

	switch trimmed[0] {
	case '[':
		var raw []struct {
			Name  string       `json:"name"`
			Items []StoredItem `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("checklist.Decode: %w: %v", domain.ErrStorage, err)
		}
		out := make([]StoredCategory, 0, len(raw))
		for _, r := range raw {
			out = append(out, StoredCategory{Name: r.Name, Items: r.Items})
		}
		return out, nil
	case '{':
		return decodeObject(trimmed)
	default:
		return nil, fmt.Errorf("checklist.Decode: unexpected %q: %w", trimmed[0], domain.ErrStorage)
	}
}

func decodeObject(data []byte) ([]StoredCategory, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("checklist.Decode: %w: %v", domain.ErrStorage, err)
	}

	var out []StoredCategory
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("checklist.Decode: %w: %v", domain.ErrStorage, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("checklist.Decode: category key %v: %w", tok, domain.ErrStorage)
		}
		var items []StoredItem
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("checklist.Decode: category %q: %w: %v", name, domain.ErrStorage, err)
		}
		out = append(out, StoredCategory{Name: name, Items: items})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("checklist.Decode: %w: %v", domain.ErrStorage, err)
	}
	return out, nil
}
