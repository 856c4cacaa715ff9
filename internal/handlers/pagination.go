package handlers

import (
	"strconv"

	"shopapi/internal/apperr"
)

func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(10)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, &apperr.ValidationError{Field: "page", Message: "page must be a positive integer"}
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, &apperr.ValidationError{Field: "limit", Message: "limit must be a positive integer"}
		}
		limit = l
	}

	return page, limit, nil
}
