// Package pagination normalizes page/limit input and builds the page
// envelope shared by every listing query.
package pagination

import (
	"math"
	"strconv"
	"strings"
)

// DefaultLimit is the page size used when none (or a nonsensical one) is given.
const DefaultLimit = 6

// Request is a normalized page request. Page and Limit are always >= 1.
type Request struct {
	Page  int
	Limit int
}

// Normalize replaces a non-positive page with 1 and a non-positive limit
// with DefaultLimit.
func Normalize(page, limit int) Request {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Request{Page: page, Limit: limit}
}

// FromQuery parses raw query-string values. The second return value is
// false when limitParam is absent, which callers treat as a request for the
// unpaginated listing. Values that are not finite numbers fall back to the
// defaults; fractional values are truncated.
func FromQuery(pageParam, limitParam string) (Request, bool) {
	paginated := strings.TrimSpace(limitParam) != ""
	return Normalize(parseInt(pageParam), parseInt(limitParam)), paginated
}

// Offset is the number of rows to skip for this page.
func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// TotalPages returns ceil(total/limit), or 1 when limit is not positive.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// Page is one slice of a listing together with the totals of the same
// filtered set.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// NewPage builds the envelope for items fetched with req.
func NewPage[T any](items []T, total int, req Request) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: TotalPages(total, req.Limit),
	}
}

// Meta is the JSON shape of the listing metadata.
type Meta struct {
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// Meta returns the envelope's metadata.
func (p Page[T]) Meta() Meta {
	return Meta{Total: p.Total, TotalPages: p.TotalPages, Page: p.Page, Limit: p.Limit}
}

func parseInt(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
