package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams returns pagination defaults for the given page size.
func DefaultParams(perPage int) Params {
	return Params{
		Page:    1,
		PerPage: perPage,
	}
}

// FromRequest extracts pagination parameters from an HTTP request. Invalid or
// non-positive values fall back to page 1 and defaultPerPage. per_page is
// capped at 100.
func FromRequest(r *http.Request, defaultPerPage int) Params {
	p := DefaultParams(defaultPerPage)

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 100 {
			p.PerPage = v
		}
	}

	return p
}

// Page describes one window over a result set of TotalCount items.
type Page struct {
	Page       int `json:"page"`
	Offset     int `json:"-"`
	Limit      int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

// Paginate computes the window for requestedPage over totalCount items.
// There is always at least one page, and requestedPage is clamped into
// [1, TotalPages]. pageSize must be positive.
func Paginate(totalCount, pageSize, requestedPage int) Page {
	if pageSize <= 0 {
		panic(fmt.Sprintf("pagination: page size must be positive, got %d", pageSize))
	}
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := totalCount / pageSize
	if totalCount%pageSize > 0 {
		totalPages++
	}
	totalPages = max(totalPages, 1)

	page := min(max(requestedPage, 1), totalPages)

	return Page{
		Page:       page,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
}

// HasNext reports whether a page follows p.
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether a page precedes p.
func (p Page) HasPrev() bool { return p.Page > 1 }

// Slice returns the items covered by p. A window past the end of items yields
// an empty slice.
func Slice[T any](items []T, p Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := min(p.Offset+p.Limit, len(items))
	return items[p.Offset:end]
}

// Link is one entry of a page navigation control.
type Link struct {
	Page    int  `json:"page"`
	Current bool `json:"current"`
}

// Links returns one link per page of p, marking the current page.
func Links(p Page) []Link {
	links := make([]Link, 0, p.TotalPages)
	for i := 1; i <= p.TotalPages; i++ {
		links = append(links, Link{Page: i, Current: i == p.Page})
	}
	return links
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data       []T    `json:"data"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages int    `json:"total_pages"`
	HasNext    bool   `json:"has_next"`
	HasPrev    bool   `json:"has_prev"`
	Links      []Link `json:"links"`
}

// NewResult paginates the full item list and returns the requested page.
func NewResult[T any](items []T, pageSize, requestedPage int) Result[T] {
	p := Paginate(len(items), pageSize, requestedPage)
	return ResultOf(Slice(items, p), p)
}

// ResultOf wraps data that already holds the window described by p.
func ResultOf[T any](data []T, p Page) Result[T] {
	return Result[T]{
		Data:       data,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		PerPage:    p.Limit,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext(),
		HasPrev:    p.HasPrev(),
		Links:      Links(p),
	}
}
