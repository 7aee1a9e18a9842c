package query

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (MaxPage-1)*MaxLimit inside int.
	MaxPage = math.MaxInt / MaxLimit
)

// Pagination selects one page of a list ordered by the repository.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination applies defaults to missing values. Bounds are checked at the request layer.
func NewPagination(page, limit *int) Pagination {
	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}
	if page != nil {
		p.Page = *page
	}
	if limit != nil {
		p.Limit = *limit
	}
	return p.Normalize()
}

// Normalize clamps values into range so a zero-value Pagination is usable.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows skipped before the page starts. It saturates at
// math.MaxInt instead of wrapping.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Page is a list result: one page of rows plus the count of all matching rows.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

// NewPage never returns a nil Data slice so it encodes as [].
func NewPage[T any](data []T, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Total: total}
}
