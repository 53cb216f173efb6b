package query

import (
	"net/url"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{"defaults", "", Pagination{Page: 1, Limit: 10, Offset: 0}},
		{"explicit page", "page=3&limit=20", Pagination{Page: 3, Limit: 20, Offset: 40}},
		{"limit capped", "limit=500", Pagination{Page: 1, Limit: 10, Offset: 0}},
		{"zero page ignored", "page=0", Pagination{Page: 1, Limit: 10, Offset: 0}},
		{"negative values ignored", "page=-2&limit=-5", Pagination{Page: 1, Limit: 10, Offset: 0}},
		{"garbage ignored", "page=abc&limit=xyz", Pagination{Page: 1, Limit: 10, Offset: 0}},
		{"max limit allowed", "limit=100", Pagination{Page: 1, Limit: 100, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			if got := ParsePagination(q); got != tt.want {
				t.Errorf("ParsePagination(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}
