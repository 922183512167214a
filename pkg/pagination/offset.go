package pagination

const (
	PageDefaultSize = 50
	PageMaxSize     = 1000
)

// OffsetRequest is a page-number pagination request bound from the query
// string.
type OffsetRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// Normalize replaces out-of-range values with the defaults and caps the size.
func (r *OffsetRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
}

type OffsetResult[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	HasMore bool `json:"has_more"`
}

// Paginate cuts the requested page out of the full item list.
func Paginate[T any](items []T, req OffsetRequest) *OffsetResult[T] {
	req.Normalize()

	total := len(items)
	start, end := total, total
	// Pages past the end are empty; comparing before multiplying keeps
	// (Page-1)*Size from overflowing.
	if req.Page-1 < (total+req.Size-1)/req.Size {
		start = (req.Page - 1) * req.Size
		end = min(start+req.Size, total)
	}

	page := make([]T, end-start)
	copy(page, items[start:end])

	return &OffsetResult[T]{
		Items:   page,
		Total:   total,
		Page:    req.Page,
		Size:    req.Size,
		HasMore: end < total,
	}
}
