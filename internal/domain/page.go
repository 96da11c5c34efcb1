package domain

// PaginationParams carries page/limit values from the HTTP layer to listing
// operations. Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query values.
// Nil pointers fall back to page=1, limit=20.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, 100)
	}
	return p
}

// Offset returns the zero-based index of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Window returns the [start, end) bounds of the page within a list of total
// items, clamped so slicing never panics.
func (p PaginationParams) Window(total int) (start, end int) {
	start = min(p.Offset(), total)
	end = min(start+p.Limit, total)
	return start, end
}
