// Package query parses the listing query parameters shared by every
// collection endpoint: page, limit, search.
package query

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination holds normalized paging values.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads page/limit with defaults and caps.
func ParsePagination(q url.Values) Pagination {
	page := 1
	limit := DefaultLimit
	if p := q.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= MaxLimit {
			limit = v
		}
	}
	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}
}
