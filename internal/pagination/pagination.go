// Package pagination implements the page math for post listings: fixed
// page size, ceiling-division page counts, and forgiving page-number
// parsing that clamps instead of erroring.
package pagination

import "strconv"

// PerPage is the number of posts on a listing page.
const PerPage = 12

// Page describes one window into an ordered result set.
type Page struct {
	Number     int // 1-based current page, always valid
	PerPage    int
	TotalItems int
	TotalPages int
	Offset     int // items to skip for this page
}

// New builds a Page for the given raw ?page= value and total item count.
// Parsing is forgiving: non-numeric or missing input means page 1, numbers
// past the end clamp to the last page, and an empty result set still
// yields a single empty page.
func New(rawPage string, totalItems int) Page {
	totalPages := (totalItems + PerPage - 1) / PerPage
	if totalPages < 1 {
		totalPages = 1
	}

	number := 1
	if n, err := strconv.Atoi(rawPage); err == nil && n > 0 {
		number = n
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		PerPage:    PerPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Offset:     (number - 1) * PerPage,
	}
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Prev returns the previous page number, clamped at 1.
func (p Page) Prev() int {
	if p.Number <= 1 {
		return 1
	}
	return p.Number - 1
}

// Next returns the next page number, clamped at the last page.
func (p Page) Next() int {
	if p.Number >= p.TotalPages {
		return p.TotalPages
	}
	return p.Number + 1
}
