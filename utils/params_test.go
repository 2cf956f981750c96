package utils

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		url        string
		skip, limit int64
	}{
		{"/x", 0, 20},
		{"/x?page=3", 40, 20},
		{"/x?page=2&limit=50", 50, 50},
		{"/x?limit=500", 0, 100},
		{"/x?page=0&limit=-1", 0, 20},
		{"/x?page=abc", 0, 20},
	}
	for _, c := range cases {
		r := httptest.NewRequest("GET", c.url, nil)
		skip, limit := ParsePagination(r, 20, 100)
		if skip != c.skip || limit != c.limit {
			t.Errorf("%s: got (%d, %d), want (%d, %d)", c.url, skip, limit, c.skip, c.limit)
		}
	}
}

func TestParseSort(t *testing.T) {
	def := bson.D{{Key: "createdAt", Value: -1}}
	allowed := map[string]bson.D{
		"price": {{Key: "price", Value: 1}},
	}

	if got := ParseSort("", def, allowed); got[0].Key != "createdAt" {
		t.Errorf("empty value: %v", got)
	}
	if got := ParseSort("price", def, allowed); got[0].Key != "price" {
		t.Errorf("known value: %v", got)
	}
	if got := ParseSort("bogus", def, allowed); got[0].Key != "createdAt" {
		t.Errorf("unknown value falls back: %v", got)
	}
}
