package util

import (
	"strconv"
	"time"
)

func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, &MalformedIdHTTPErr
	}
	return id, nil
}

func ParseTime(val string) (time.Time, error) {
	return time.Parse(time.RFC3339, val)
}

// ParsePageNumber reads the ?page= param; anything unparseable falls back
// to page 1 (out-of-range values are clamped later by the paginator).
func ParsePageNumber(val string) int {
	if val == "" {
		return 1
	}
	page, err := strconv.Atoi(val)
	if err != nil {
		return 1
	}
	return page
}
