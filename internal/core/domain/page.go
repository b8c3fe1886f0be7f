package domain

import "math"

// Page selects a window of a listing. Page is 1-based.
type Page struct {
	Number int
	Limit  int
}

// Skip returns the number of documents before this page.
func (p Page) Skip() int64 {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	if int64(p.Number-1) > math.MaxInt64/int64(p.Limit) {
		return math.MaxInt64
	}
	return int64(p.Number-1) * int64(p.Limit)
}

// LastPage returns the number of the final page for total documents, never
// less than 1.
func (p Page) LastPage(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
