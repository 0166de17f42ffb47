package paging

import (
	"encoding/base64"
	"fmt"
	"time"
)

// Meta holds the page metadata rendered next to paginated items
type Meta struct {
	CurrentPage int    `json:"current_page,omitempty"`
	PerPage     int    `json:"per_page,omitempty"`
	LastPage    int    `json:"last_page,omitempty"`
	From        int    `json:"from,omitempty"`
	To          int    `json:"to,omitempty"`
	Total       int    `json:"total"`
	NextCursor  string `json:"next,omitempty"`
	HasNextPage bool   `json:"has_next"`
}

// Paginator is implemented by every paginated result
type Paginator interface {
	// Meta returns the page metadata
	Meta() Meta
	// Values returns the items of the current page
	Values() any
}

// Params holds the unified pagination parameters
type Params struct {
	Cursor string `json:"cursor"`
	Limit  int    `json:"limit"`
}

// Result holds the pagination result
type Result[T any] struct {
	Items       []T    `json:"items"`
	Total       int    `json:"total,omitempty"`
	NextCursor  string `json:"next,omitempty"`
	HasNextPage bool   `json:"has_next"`
}

// Meta implements Paginator
func (r *Result[T]) Meta() Meta {
	return Meta{
		Total:       r.Total,
		NextCursor:  r.NextCursor,
		HasNextPage: r.HasNextPage,
	}
}

// Values implements Paginator
func (r *Result[T]) Values() any {
	return r.Items
}

// NormalizeParams ensures that Limit is within an acceptable range
func NormalizeParams(params Params) Params {
	if params.Limit <= 0 || params.Limit > 1024 {
		params.Limit = 256
	}
	return params
}

// EncodeCursor encodes a timestamp to a cursor string
func EncodeCursor(t time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(t.Format(time.RFC3339Nano)))
}

// DecodeCursor decodes a cursor string to a timestamp
func DecodeCursor(cursor string) (time.Time, error) {
	b, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, string(b))
}

// PagingFunc is a function type that implements pagination logic
type PagingFunc[T any] func(cursor string, limit int) (items []T, total int, nextCursor string, err error)

// Paginate applies pagination using the provided PagingFunc
func Paginate[T any](params Params, paginateFunc PagingFunc[T]) (*Result[T], error) {
	params = NormalizeParams(params)
	items, total, nextCursor, err := paginateFunc(params.Cursor, params.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("pagination error: %w", err)
	}

	hasNextPage := false
	if len(items) > params.Limit {
		hasNextPage = true
		items = items[:params.Limit]
	}

	if items == nil {
		items = make([]T, 0)
	}

	return &Result[T]{
		Items:       items,
		Total:       total,
		NextCursor:  nextCursor,
		HasNextPage: hasNextPage,
	}, nil
}

// Page is an offset-based page: current page, page size, total count and items
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PerPage     int
	Total       int
}

// NewPage creates a page, normalizing page and perPage
func NewPage[T any](items []T, page, perPage, total int) *Page[T] {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 1024 {
		perPage = 15
	}
	if items == nil {
		items = make([]T, 0)
	}
	return &Page[T]{
		Items:       items,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
	}
}

// Offset returns the number of items skipped before the current page
func (p *Page[T]) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}

// LastPage returns the number of the last page, at least 1
func (p *Page[T]) LastPage() int {
	if p.Total <= 0 || p.PerPage <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// Meta implements Paginator
func (p *Page[T]) Meta() Meta {
	m := Meta{
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		LastPage:    p.LastPage(),
		Total:       p.Total,
		HasNextPage: p.CurrentPage < p.LastPage(),
	}
	if len(p.Items) > 0 {
		m.From = p.Offset() + 1
		m.To = p.Offset() + len(p.Items)
	}
	return m
}

// Values implements Paginator
func (p *Page[T]) Values() any {
	return p.Items
}

// NoopPagingFunc is a noop paging function
func NoopPagingFunc[T any](cursor string, limit int) ([]T, int, string, error) {
	return nil, 0, "", nil
}
