package domain

// ItemOrigin tags a checklist item as part of the compiled-in baseline or as
// added by the user.
type ItemOrigin string

const (
	OriginBaseline ItemOrigin = "baseline"
	OriginCustom   ItemOrigin = "custom"
)

// ChecklistItem is one line of a packing checklist. Items are identified by
// Text within their category.
type ChecklistItem struct {
	Text    string     `json:"text"`
	Checked bool       `json:"checked"`
	Origin  ItemOrigin `json:"origin"`
}

// ChecklistCategory is a named, ordered list of items.
// Baseline categories are never deleted, even when emptied.
type ChecklistCategory struct {
	Name     string          `json:"name"`
	Baseline bool            `json:"baseline"`
	Items    []ChecklistItem `json:"items"`
}

// Checklist is the ordered set of categories shown on the checklist page.
type Checklist struct {
	Categories []ChecklistCategory `json:"categories"`
}
