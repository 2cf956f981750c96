package models

import (
	"time"

	"wanderlust/normalize"
)

var JourneyTypes = []string{"night_out", "vacation", "picnic", "tour"}

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// JourneyLocation pairs the human lat/lng with its GeoJSON mirror. Geo is
// recomputed from Coordinates on every write; the two must never diverge.
type JourneyLocation struct {
	Name        string              `json:"name" bson:"name"`
	Coordinates Coordinates         `json:"coordinates" bson:"coordinates"`
	Geo         *normalize.GeoPoint `json:"geo,omitempty" bson:"geo,omitempty"`
	Address     string              `json:"address,omitempty" bson:"address,omitempty"`
	City        string              `json:"city,omitempty" bson:"city,omitempty"`
	State       string              `json:"state,omitempty" bson:"state,omitempty"`
	Country     string              `json:"country,omitempty" bson:"country,omitempty"`
}

type JourneyPricing struct {
	BasePrice   float64 `json:"basePrice" bson:"basePrice"`
	Currency    string  `json:"currency" bson:"currency"`
	PricingType string  `json:"pricingType" bson:"pricingType"`
}

type JourneyCapacity struct {
	Min int `json:"min" bson:"min"`
	Max int `json:"max" bson:"max"`
}

type RatingAggregate struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

// JourneyPlace is a point-of-interest record used for proximity discovery,
// distinct from bookable listings.
type JourneyPlace struct {
	PlaceID     string          `json:"placeid" bson:"placeid"`
	Name        string          `json:"name" bson:"name"`
	Type        string          `json:"type" bson:"type"`
	Description string          `json:"description" bson:"description"`
	Location    JourneyLocation `json:"location" bson:"location"`
	Images      []ImageRef      `json:"images,omitempty" bson:"images,omitempty"`
	Amenities   []string        `json:"amenities" bson:"amenities"`
	Pricing     JourneyPricing  `json:"pricing" bson:"pricing"`
	Capacity    JourneyCapacity `json:"capacity" bson:"capacity"`
	Rating      RatingAggregate `json:"rating" bson:"rating"`
	Reviews     []string        `json:"reviews" bson:"reviews"`
	Tags        []string        `json:"tags" bson:"tags"`
	Owner       string          `json:"owner,omitempty" bson:"owner,omitempty"`
	IsActive    bool            `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
