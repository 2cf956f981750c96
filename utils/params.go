package utils

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// ParsePagination reads page/limit query parameters and returns skip/limit
// values bounded by the supplied defaults.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}

// ParseSort maps a sort query value onto a Mongo sort document. Unknown or
// empty values fall back to def. allowed maps query values to sort docs.
func ParseSort(value string, def bson.D, allowed map[string]bson.D) bson.D {
	if value == "" {
		return def
	}
	if allowed != nil {
		if d, ok := allowed[value]; ok {
			return d
		}
	}
	return def
}
