package utils

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Query/pagination shaper: filter -> sort -> field projection -> paginate.
// Query-string conventions follow the frontend contract:
//
//	?status=approved&rating[gte]=4&sort=-createdAt,name&fields=name,rating&page=2&limit=5
//
// The caller's base filter is intersected with the request filter, never
// replaced, so pre-constrained queries (e.g. approved + non-deleted reviews)
// stay constrained.

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var reservedParams = map[string]bool{
	"page":   true,
	"limit":  true,
	"sort":   true,
	"fields": true,
}

var comparisonOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
	"ne":  "$ne",
}

// ParsePagination returns skip and limit for the request, clamped to
// [1, max] with the given default page size.
func ParsePagination(r *http.Request, def, max int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}

	return (page - 1) * limit, limit
}

// ParseSort turns "-createdAt,name" into a bson sort document. Fields not in
// allowed are dropped; a nil allowed set permits everything. Falls back to
// def when nothing usable remains.
func ParseSort(raw string, def bson.D, allowed map[string]bool) bson.D {
	if raw == "" {
		return def
	}

	var sort bson.D
	for _, part := range strings.Split(raw, ",") {
		field := strings.TrimSpace(part)
		if field == "" {
			continue
		}
		order := 1
		if field[0] == '-' {
			order = -1
			field = field[1:]
		}
		if field == "" || (allowed != nil && !allowed[field]) {
			continue
		}
		sort = append(sort, bson.E{Key: field, Value: order})
	}

	if len(sort) == 0 {
		return def
	}
	return sort
}

// ParseFilter translates the remaining query parameters into a bson filter,
// mapping rating[gte]=4 style suffixes onto Mongo comparison operators.
// Numeric and boolean values are coerced so range operators compare as
// numbers rather than strings.
func ParseFilter(values url.Values) bson.M {
	filter := bson.M{}
	for key, vals := range values {
		if len(vals) == 0 || reservedParams[key] {
			continue
		}
		raw := vals[0]

		field, op := key, ""
		if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
			field = key[:i]
			op = key[i+1 : len(key)-1]
		}

		if mop, ok := comparisonOps[op]; ok {
			cond, _ := filter[field].(bson.M)
			if cond == nil {
				cond = bson.M{}
			}
			cond[mop] = coerce(raw)
			filter[field] = cond
			continue
		}

		filter[field] = coerce(raw)
	}
	return filter
}

// ParseProjection turns "name,rating" into a projection document.
func ParseProjection(raw string) bson.M {
	if raw == "" {
		return nil
	}
	proj := bson.M{}
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			proj[f] = 1
		}
	}
	if len(proj) == 0 {
		return nil
	}
	return proj
}

// MergeFilter intersects a base filter with the request filter. The base
// always wins: it is joined with $and so a request cannot widen it.
func MergeFilter(base, req bson.M) bson.M {
	switch {
	case len(base) == 0:
		return req
	case len(req) == 0:
		return base
	}
	return bson.M{"$and": []bson.M{base, req}}
}

// ShapeQuery runs the whole pipeline for a request against a base filter and
// returns the effective filter plus find options ready for Mongo.
func ShapeQuery(r *http.Request, base bson.M) (bson.M, *options.FindOptions) {
	q := r.URL.Query()

	filter := MergeFilter(base, ParseFilter(q))
	skip, limit := ParsePagination(r, DefaultPageSize, MaxPageSize)
	sort := ParseSort(q.Get("sort"), bson.D{{Key: "createdAt", Value: -1}}, nil)

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)
	if proj := ParseProjection(q.Get("fields")); proj != nil {
		opts.SetProjection(proj)
	}
	return filter, opts
}

func coerce(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
