package normalize

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"wifi, parking, pool", []string{"wifi", "parking", "pool"}},
		{"wifi", []string{"wifi"}},
		{" , , ", []string{}},
		{"", []string{}},
		{"a,,b", []string{"a", "b"}},
		{"a, a", []string{"a", "a"}}, // duplicates survive
	}
	for _, c := range cases {
		if got := SplitList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSplitListIdempotent(t *testing.T) {
	once := SplitList("wifi, parking , pool")
	again := SplitList(strings.Join(once, ","))
	if !reflect.DeepEqual(once, again) {
		t.Errorf("second pass changed the list: %v vs %v", once, again)
	}
}

func TestCleanList(t *testing.T) {
	got := CleanList([]string{" wifi ", "", "pool", "  "})
	want := []string{"wifi", "pool"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanList = %v, want %v", got, want)
	}
}

func TestParsePriceList(t *testing.T) {
	cases := []struct {
		in   string
		want []PriceItem
	}{
		{"Swedish:1500,Thai:2000", []PriceItem{{"Swedish", 1500}, {"Thai", 2000}}},
		{"Swedish", []PriceItem{{"Swedish", 0}}},
		{"Swedish:abc", []PriceItem{{"Swedish", 0}}},
		{":500", []PriceItem{{FallbackServiceName, 500}}},
		{"Swedish:-5", []PriceItem{{"Swedish", 0}}},
		{"", []PriceItem{}},
		{" , ", []PriceItem{}},
	}
	for _, c := range cases {
		if got := ParsePriceList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParsePriceList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"false", false},
		{"yes", false},
		{"TRUE", false},
		{nil, false},
		{1, false},
	}
	for _, c := range cases {
		if got := ParseBool(c.in); got != c.want {
			t.Errorf("ParseBool(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMirrorGeo(t *testing.T) {
	geo := MirrorGeo(12.9716, 77.5946)
	if geo.Type != "Point" {
		t.Errorf("type = %q, want Point", geo.Type)
	}
	// GeoJSON order is [longitude, latitude]
	want := []float64{77.5946, 12.9716}
	if !reflect.DeepEqual(geo.Coordinates, want) {
		t.Errorf("coordinates = %v, want %v", geo.Coordinates, want)
	}
}
