package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"wanderlust/models"
	"wanderlust/normalize"
)

func strptr(s string) *string { return &s }

func num(v float64) normalize.FlexFloat {
	return normalize.FlexFloat{Value: v, Present: true}
}

func validListing() *models.ListingPayload {
	return &models.ListingPayload{
		Title:       strptr("Seaside Villa"),
		Description: strptr("A quiet villa near the beach"),
		Price:       num(4500),
		Location:    strptr("Goa"),
		Country:     strptr("India"),
	}
}

func TestListingCreateValid(t *testing.T) {
	if err := ListingCreate(validListing()).Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestListingCreateShortTitle(t *testing.T) {
	p := validListing()
	p.Title = strptr("ab")
	err := ListingCreate(p).Validate()
	if err == nil {
		t.Fatal("two-character title accepted")
	}
	if want := "Title must be at least 3 characters long"; err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestListingCreateJoinsViolations(t *testing.T) {
	p := &models.ListingPayload{}
	err := ListingCreate(p).Validate()
	if err == nil {
		t.Fatal("empty payload accepted")
	}
	msg := err.Error()
	for _, part := range []string{"Title is required", "Description is required", "Price is required", "Location is required", "Country is required"} {
		if !strings.Contains(msg, part) {
			t.Errorf("missing %q in %q", part, msg)
		}
	}
	if !strings.Contains(msg, ", ") {
		t.Errorf("violations not comma-joined: %q", msg)
	}
}

func TestListingCreateBounds(t *testing.T) {
	p := validListing()
	p.Price = num(2000000)
	err := ListingCreate(p).Validate()
	if err == nil || err.Error() != "Price cannot exceed 1,000,000" {
		t.Errorf("price bound message = %v", err)
	}

	p = validListing()
	p.Price = num(-1)
	err = ListingCreate(p).Validate()
	if err == nil || err.Error() != "Price cannot be negative" {
		t.Errorf("negative price message = %v", err)
	}

	p = validListing()
	p.PropertyType = strptr("Castle")
	if err := ListingCreate(p).Validate(); err == nil {
		t.Error("unknown property type accepted")
	}
}

func TestListingUpdateAllOptional(t *testing.T) {
	if err := ListingUpdate(&models.ListingPayload{}).Validate(); err != nil {
		t.Fatalf("empty update rejected: %v", err)
	}
	p := &models.ListingPayload{Title: strptr("ab")}
	if err := ListingUpdate(p).Validate(); err == nil {
		t.Fatal("short title accepted on update")
	}
}

func TestReviewRules(t *testing.T) {
	ok := &models.ReviewPayload{Comment: strptr("Lovely stay"), Rating: num(4.4)}
	if err := ReviewCreate(ok).Validate(); err != nil {
		t.Fatalf("valid review rejected: %v", err)
	}

	missing := &models.ReviewPayload{Comment: strptr("Lovely stay")}
	if err := ReviewCreate(missing).Validate(); err == nil || err.Error() != "Rating is required" {
		t.Errorf("missing rating: %v", err)
	}

	var nullRating models.ReviewPayload
	if err := json.Unmarshal([]byte(`{"comment":"Lovely stay","rating":null}`), &nullRating); err != nil {
		t.Fatal(err)
	}
	if err := ReviewCreate(&nullRating).Validate(); err == nil || err.Error() != "Rating is required" {
		t.Errorf("null rating: %v", err)
	}

	high := &models.ReviewPayload{Comment: strptr("Lovely stay"), Rating: num(5.5)}
	if err := ReviewCreate(high).Validate(); err == nil || err.Error() != "Rating cannot exceed 5" {
		t.Errorf("rating above 5: %v", err)
	}

	low := &models.ReviewPayload{Comment: strptr("Lovely stay"), Rating: num(0.5)}
	if err := ReviewCreate(low).Validate(); err == nil || err.Error() != "Rating must be at least 1" {
		t.Errorf("rating below 1: %v", err)
	}
}

func TestJourneyCreateRequiresCoordinates(t *testing.T) {
	p := &models.JourneyPayload{Name: strptr("City Park")}
	err := JourneyCreate(p).Validate()
	if err == nil || !strings.Contains(err.Error(), "coordinates are required") {
		t.Errorf("missing coordinates: %v", err)
	}

	p.Location = &models.JourneyLocationPayload{
		Coordinates: &models.JourneyCoordinatesPayload{
			Latitude:  num(95),
			Longitude: num(77.6),
		},
	}
	err = JourneyCreate(p).Validate()
	if err == nil || !strings.Contains(err.Error(), "Latitude cannot exceed 90") {
		t.Errorf("out-of-range latitude: %v", err)
	}
}

func TestCoordinatesBounds(t *testing.T) {
	if err := Coordinates(num(12.97), num(77.59)).Validate(); err != nil {
		t.Fatalf("valid coordinates rejected: %v", err)
	}
	if err := Coordinates(num(-91), num(0)).Validate(); err == nil {
		t.Error("latitude below -90 accepted")
	}
	if err := Coordinates(num(0), num(181)).Validate(); err == nil {
		t.Error("longitude above 180 accepted")
	}
}
