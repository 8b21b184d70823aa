package usecase

import "strconv"

// PageWindow is the slice of a result set that one page covers.
// Offset+Limit never exceed Total, so callers can slice directly.
type PageWindow struct {
	Offset      int
	Limit       int
	HasNext     bool
	HasPrevious bool
}

// ParsePage turns the raw page query parameter into a 1-indexed page
// number. Anything malformed, missing, zero or negative becomes page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Window computes the slice bounds for the given 1-indexed page over a
// result set of total items. Pages past the end yield an empty window.
// HasNext holds exactly when page*size < total.
func Window(page, size, total int) PageWindow {
	if page < 1 {
		page = 1
	}
	if size < 1 || total < 0 {
		return PageWindow{HasPrevious: page > 1}
	}

	offset := (page - 1) * size
	if offset >= total {
		return PageWindow{Offset: total, HasPrevious: page > 1}
	}

	limit := size
	if offset+limit > total {
		limit = total - offset
	}

	return PageWindow{
		Offset:      offset,
		Limit:       limit,
		HasNext:     page*size < total,
		HasPrevious: page > 1,
	}
}
