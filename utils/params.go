package utils

import (
	"net/http"
	"strconv"
	"time"
)

type QueryOptions struct {
	Page        int
	HitsPerPage int
	Search      string
}

func ParseQueryOptions(r *http.Request) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 0 {
		page = 0
	}

	hits, _ := strconv.Atoi(q.Get("hitsPerPage"))
	if hits < 1 {
		hits = 20
	}

	return QueryOptions{
		Page:        page,
		HitsPerPage: hits,
		Search:      q.Get("q"),
	}
}

// ParseDateParam reads a YYYY-MM-DD query parameter; nil when absent or
// malformed.
func ParseDateParam(r *http.Request, key string) *time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
