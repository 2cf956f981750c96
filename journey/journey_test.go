package journey

import (
	"reflect"
	"testing"

	"wanderlust/models"
	"wanderlust/normalize"

	"go.mongodb.org/mongo-driver/bson"
)

func strp(s string) *string { return &s }

func num(v float64) normalize.FlexFloat {
	return normalize.FlexFloat{Value: v, Present: true}
}

func TestBuildPlaceMirrorsGeo(t *testing.T) {
	place := buildPlace(&models.JourneyPayload{
		Name: strp("Cubbon Park"),
		Type: strp("picnic"),
		Location: &models.JourneyLocationPayload{
			Name: strp("Bangalore"),
			Coordinates: &models.JourneyCoordinatesPayload{
				Latitude:  num(12.9716),
				Longitude: num(77.5946),
			},
		},
	})

	if place.Location.Geo == nil {
		t.Fatal("geo mirror not set")
	}
	want := []float64{77.5946, 12.9716}
	if !reflect.DeepEqual(place.Location.Geo.Coordinates, want) {
		t.Errorf("geo coordinates = %v, want %v", place.Location.Geo.Coordinates, want)
	}
	if place.Location.Coordinates.Latitude != 12.9716 {
		t.Errorf("latitude = %v", place.Location.Coordinates.Latitude)
	}
}

func TestBuildPlaceDefaults(t *testing.T) {
	place := buildPlace(&models.JourneyPayload{Name: strp("Spot")})
	if !place.IsActive {
		t.Error("new places default to active")
	}
	if place.Pricing.Currency != "INR" || place.Pricing.PricingType != "per_person" {
		t.Errorf("pricing defaults = %+v", place.Pricing)
	}
	if place.Capacity.Min != 1 || place.Capacity.Max != 10 {
		t.Errorf("capacity defaults = %+v", place.Capacity)
	}
	if place.Amenities == nil || place.Tags == nil || place.Reviews == nil {
		t.Error("list fields must be non-nil")
	}
}

func TestPlaceFieldsRecomputesGeo(t *testing.T) {
	set := placeFields(&models.JourneyPayload{
		Location: &models.JourneyLocationPayload{
			Coordinates: &models.JourneyCoordinatesPayload{
				Latitude:  num(19.076),
				Longitude: num(72.8777),
			},
		},
	})

	geo, ok := set["location.geo"].(normalize.GeoPoint)
	if !ok {
		t.Fatalf("coordinate write without geo recompute: %v", set)
	}
	want := []float64{72.8777, 19.076}
	if !reflect.DeepEqual(geo.Coordinates, want) {
		t.Errorf("geo = %v, want %v", geo.Coordinates, want)
	}
	if _, ok := set["location.coordinates"]; !ok {
		t.Error("coordinates missing from set")
	}
}

func TestPlaceFieldsIgnoresHalfPair(t *testing.T) {
	set := placeFields(&models.JourneyPayload{
		Location: &models.JourneyLocationPayload{
			Coordinates: &models.JourneyCoordinatesPayload{Latitude: num(19.076)},
		},
	})
	if _, ok := set["location.geo"]; ok {
		t.Error("half a coordinate pair must not touch the geo mirror")
	}
}

func TestNearestFindOptionsSortsByRating(t *testing.T) {
	opts := nearestFindOptions()
	if opts.Limit == nil || *opts.Limit != maxNearest {
		t.Errorf("limit = %v, want %d", opts.Limit, maxNearest)
	}
	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) == 0 {
		t.Fatalf("sort = %v", opts.Sort)
	}
	if sort[0].Key != "rating.average" || sort[0].Value != -1 {
		t.Errorf("sort = %v, want rating.average descending", sort)
	}
}

func TestParseLatLng(t *testing.T) {
	if _, _, err := parseLatLng("", "77.59"); err == nil {
		t.Error("missing latitude accepted")
	}
	if _, _, err := parseLatLng("95", "77.59"); err == nil {
		t.Error("latitude above 90 accepted")
	}
	if _, _, err := parseLatLng("12.97", "-181"); err == nil {
		t.Error("longitude below -180 accepted")
	}
	lat, lng, err := parseLatLng("12.97", "77.59")
	if err != nil || lat != 12.97 || lng != 77.59 {
		t.Errorf("valid pair: %v %v %v", lat, lng, err)
	}
}
