package utils

import "strconv"

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ParsePagination turns raw page/limit query values into sane bounds.
func ParsePagination(pageStr, limitStr string) (page, limit int) {
	page = defaultPage
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}

	limit = defaultLimit
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}
