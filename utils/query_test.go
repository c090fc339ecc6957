package utils

import (
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query     string
		wantSkip  int64
		wantLimit int64
	}{
		{"", 0, 10},
		{"page=2&limit=5", 5, 5},
		{"page=3", 20, 10},
		{"page=0&limit=-4", 0, 10},
		{"limit=500", 0, 100},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/api/listings?"+tt.query, nil)
		skip, limit := ParsePagination(r, DefaultPageSize, MaxPageSize)
		if skip != tt.wantSkip || limit != tt.wantLimit {
			t.Errorf("%q: got skip=%d limit=%d, want %d/%d", tt.query, skip, limit, tt.wantSkip, tt.wantLimit)
		}
	}
}

func TestParseSort(t *testing.T) {
	def := bson.D{{Key: "createdAt", Value: -1}}

	got := ParseSort("-createdAt,name", def, nil)
	want := bson.D{{Key: "createdAt", Value: -1}, {Key: "name", Value: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := ParseSort("", def, nil); !reflect.DeepEqual(got, def) {
		t.Errorf("empty sort should fall back to default, got %v", got)
	}

	allowed := map[string]bool{"rating": true}
	got = ParseSort("-secret,rating", def, allowed)
	want = bson.D{{Key: "rating", Value: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("disallowed field not dropped: %v", got)
	}
}

func TestParseFilter(t *testing.T) {
	values := url.Values{}
	values.Set("status", "approved")
	values.Set("rating[gte]", "4")
	values.Set("isDeleted", "false")
	values.Set("page", "3")
	values.Set("sort", "-createdAt")

	got := ParseFilter(values)
	want := bson.M{
		"status":    "approved",
		"rating":    bson.M{"$gte": 4.0},
		"isDeleted": false,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseFilterCombinesOperators(t *testing.T) {
	values := url.Values{}
	values.Set("rating[gte]", "2")
	values.Set("rating[lte]", "4")

	got := ParseFilter(values)
	want := bson.M{"rating": bson.M{"$gte": 2.0, "$lte": 4.0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMergeFilterBaseWins(t *testing.T) {
	base := bson.M{"status": "approved", "isDeleted": false}
	req := bson.M{"status": "rejected"}

	got := MergeFilter(base, req)
	want := bson.M{"$and": []bson.M{base, req}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := MergeFilter(nil, req); !reflect.DeepEqual(got, req) {
		t.Errorf("empty base: got %v", got)
	}
	if got := MergeFilter(base, bson.M{}); !reflect.DeepEqual(got, base) {
		t.Errorf("empty request: got %v", got)
	}
}

func TestParseProjection(t *testing.T) {
	got := ParseProjection("name, rating,")
	want := bson.M{"name": 1, "rating": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if ParseProjection("") != nil {
		t.Error("empty projection should be nil")
	}
}

func TestShapeQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/reviews?rating[gte]=4&page=2&limit=5&sort=-createdAt", nil)
	base := bson.M{"status": "approved"}

	filter, opts := ShapeQuery(r, base)

	want := bson.M{"$and": []bson.M{base, {"rating": bson.M{"$gte": 4.0}}}}
	if !reflect.DeepEqual(filter, want) {
		t.Errorf("filter = %v, want %v", filter, want)
	}
	if *opts.Skip != 5 || *opts.Limit != 5 {
		t.Errorf("skip=%d limit=%d, want 5/5", *opts.Skip, *opts.Limit)
	}
}
