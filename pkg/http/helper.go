package http

import (
	"net/http"
	"strconv"

	"smpid/pkg/config"
	apperrors "smpid/pkg/errors"
)

// ExtractLimitOffset reads and normalizes the pagination query parameters.
func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	return config.NormalizePaginationLimit(limit), config.NormalizeOffset(offset), nil
}

// ExtractYearMonth reads the calendar coordinates of availability queries.
// Month is 1-indexed, matching time.Month.
func ExtractYearMonth(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		return 0, 0, apperrors.InvalidInput("invalid year parameter: " + query.Get("year"))
	}

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, apperrors.InvalidInput("invalid month parameter (expected 1-12): " + query.Get("month"))
	}

	return year, month, nil
}
