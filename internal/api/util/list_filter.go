package util

import "strconv"

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListFilter contains common pagination options for list endpoints
type ListFilter struct {
	Page    int
	PerPage int
}

// ParsePagination parses page/per_page query values, applying defaults and
// clamping per_page to MaxPerPage. Invalid or missing values fall back to
// page 1 and the default page size.
func ParsePagination(pageStr, perPageStr string) ListFilter {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return ListFilter{Page: page, PerPage: perPage}
}

// PageCount returns the number of pages needed to hold total items.
func PageCount(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
