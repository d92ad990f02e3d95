// Package pagination splits ordered listings into fixed-size pages.
//
// Page numbers come straight from the query string and are never rejected:
// empty, non-numeric and values below 1 select the first page, values past
// the end select the last page. An empty listing still has one (empty) page.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPerPage is the listing page size used across the site
const DefaultPerPage = 10

// Window is a resolved page position inside a listing of TotalItems rows
type Window struct {
	Number     int
	PerPage    int
	TotalPages int
	TotalItems int64
}

// Resolve clamps raw (the ?page= value) into the valid range for total items
func Resolve(raw string, total int64, perPage int) Window {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil, number < 1:
		number = 1
	case number > pages:
		number = pages
	}

	return Window{
		Number:     number,
		PerPage:    perPage,
		TotalPages: pages,
		TotalItems: total,
	}
}

// Offset is the number of rows to skip for this page
func (w Window) Offset() int {
	return (w.Number - 1) * w.PerPage
}

// Limit is the maximum number of rows on this page
func (w Window) Limit() int {
	return w.PerPage
}

func (w Window) HasNext() bool {
	return w.Number < w.TotalPages
}

func (w Window) HasPrevious() bool {
	return w.Number > 1
}

func (w Window) HasOtherPages() bool {
	return w.TotalPages > 1
}

func (w Window) NextNumber() int {
	if w.HasNext() {
		return w.Number + 1
	}
	return w.Number
}

func (w Window) PreviousNumber() int {
	if w.HasPrevious() {
		return w.Number - 1
	}
	return w.Number
}

// PageRange lists every page number, 1..TotalPages
func (w Window) PageRange() []int {
	out := make([]int, w.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Page is one page of a listing together with its window
type Page[T any] struct {
	Window
	Items []T
}

func NewPage[T any](items []T, w Window) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Window: w, Items: items}
}

// Len is the number of items on this page
func (p *Page[T]) Len() int {
	return len(p.Items)
}
