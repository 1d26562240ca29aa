// Package paging slices an already-filtered in-memory list into fixed-size
// pages. Filtering happens locally over the fetched list, not in the store,
// so page numbers restart at 1 whenever the search query changes.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows per page in admin tables.
const PageSize = 20

// DonorPageSize matches the public donor grid (3×3 cards).
const DonorPageSize = 9

// ParsePage extracts the 1-based "page" query parameter, defaulting to 1.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Page describes one slice of a list.
type Page struct {
	Number  int // current page, clamped into range
	Total   int // total pages (at least 1)
	HasPrev bool
	HasNext bool
	Start   int // 1-based index of the first shown row (0 when empty)
	End     int // 1-based index of the last shown row
}

// Slice returns the rows of page number page (1-based) and the page
// descriptor. Out-of-range pages clamp to the nearest valid page.
func Slice[T any](rows []T, page, size int) ([]T, Page) {
	if size < 1 {
		size = PageSize
	}

	total := (len(rows) + size - 1) / size
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	lo := (page - 1) * size
	hi := lo + size
	if lo > len(rows) {
		lo = len(rows)
	}
	if hi > len(rows) {
		hi = len(rows)
	}

	p := Page{
		Number:  page,
		Total:   total,
		HasPrev: page > 1,
		HasNext: page < total,
	}
	if hi > lo {
		p.Start = lo + 1
		p.End = hi
	}
	return rows[lo:hi], p
}
