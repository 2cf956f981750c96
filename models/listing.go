package models

import (
	"time"

	"wanderlust/normalize"
)

// Property type categories, in ML feature-code order (Hotel=1 ... Business Rental=6).
var PropertyTypes = []string{
	"Hotel", "Apartment", "Room Rental", "PG", "Land for Sale", "Business Rental",
	"Reception Hall", "Event Hall",
}

var PricingPeriods = []string{"per night", "per week", "per month"}

// DefaultPropertyType backfills listings created before the field existed.
const DefaultPropertyType = "Apartment"

type ImageRef struct {
	URL      string `json:"url" bson:"url"`
	Filename string `json:"filename" bson:"filename"`
}

type AIInsights struct {
	DemandLevel    string `json:"demand_level" bson:"demand_level"`
	EventImpact    string `json:"event_impact" bson:"event_impact"`
	SeasonalFactor string `json:"seasonal_factor" bson:"seasonal_factor"`
	WeatherImpact  string `json:"weather_impact" bson:"weather_impact"`
}

type TrainingOffer struct {
	Available       bool     `json:"available" bson:"available"`
	Instructor      string   `json:"instructor,omitempty" bson:"instructor,omitempty"`
	MonthlyPrice    float64  `json:"monthlyPrice,omitempty" bson:"monthlyPrice,omitempty"`
	PricePerSession float64  `json:"pricePerSession,omitempty" bson:"pricePerSession,omitempty"`
	DayPassPrice    float64  `json:"dayPassPrice,omitempty" bson:"dayPassPrice,omitempty"`
	Description     string   `json:"description,omitempty" bson:"description,omitempty"`
	Benefits        []string `json:"benefits" bson:"benefits"`
	Schedule        string   `json:"schedule,omitempty" bson:"schedule,omitempty"`
}

type ChefService struct {
	Available    bool     `json:"available" bson:"available"`
	Cuisines     []string `json:"cuisines" bson:"cuisines"`
	PricePerMeal float64  `json:"pricePerMeal,omitempty" bson:"pricePerMeal,omitempty"`
}

type MassageService struct {
	Types     []string              `json:"types" bson:"types"`
	PriceList []normalize.PriceItem `json:"priceList" bson:"priceList"`
}

type TrainingServices struct {
	Yoga   TrainingOffer `json:"yoga" bson:"yoga"`
	Karate TrainingOffer `json:"karate" bson:"karate"`
	Gym    TrainingOffer `json:"gym" bson:"gym"`
}

type EventServices struct {
	Supported []string `json:"supported" bson:"supported"`
}

type SportsServices struct {
	Indoor  []string  `json:"indoor" bson:"indoor"`
	Outdoor []string  `json:"outdoor" bson:"outdoor"`
	Image   *ImageRef `json:"image,omitempty" bson:"image,omitempty"`
}

type SportsGround struct {
	Available  bool    `json:"available" bson:"available"`
	GroundType string  `json:"groundType,omitempty" bson:"groundType,omitempty"`
	HourlyRate float64 `json:"hourlyRate,omitempty" bson:"hourlyRate,omitempty"`
}

// Services is the nested record of extras offered at a property. Every
// optional branch is a value type so downstream writes never hit a missing
// parent.
type Services struct {
	Food               []string         `json:"food" bson:"food"`
	Chef               ChefService      `json:"chef" bson:"chef"`
	Training           TrainingServices `json:"training" bson:"training"`
	Massage            MassageService   `json:"massage" bson:"massage"`
	Events             EventServices    `json:"events" bson:"events"`
	Sports             SportsServices   `json:"sports" bson:"sports"`
	SportsGroundForRent SportsGround    `json:"sportsGroundForRent" bson:"sportsGroundForRent"`
}

type PaymentInfo struct {
	UpiID       string   `json:"upiId,omitempty" bson:"upiId,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	QRImageURL  string   `json:"qrImageUrl,omitempty" bson:"qrImageUrl,omitempty"`
	Methods     []string `json:"methods,omitempty" bson:"methods,omitempty"`
}

type Listing struct {
	ListingID     string      `json:"listingid" bson:"listingid"`
	Title         string      `json:"title" bson:"title"`
	PropertyType  string      `json:"propertyType" bson:"propertyType"`
	Description   string      `json:"description" bson:"description"`
	Image         *ImageRef   `json:"image,omitempty" bson:"image,omitempty"`
	Gallery       []ImageRef  `json:"gallery,omitempty" bson:"gallery,omitempty"`
	Price         float64     `json:"price" bson:"price"`
	PricingPeriod string      `json:"pricingPeriod" bson:"pricingPeriod"`
	Location      string      `json:"location" bson:"location"`
	Country       string      `json:"country" bson:"country"`
	Phone         string      `json:"phone,omitempty" bson:"phone,omitempty"`
	Email         string      `json:"email,omitempty" bson:"email,omitempty"`
	Bedrooms      string      `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Bathrooms     string      `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	MaxGuests     int         `json:"maxGuests,omitempty" bson:"maxGuests,omitempty"`
	Amenities     []string    `json:"amenities" bson:"amenities"`
	PaymentMethods []string   `json:"paymentMethods" bson:"paymentMethods"`
	Payment       PaymentInfo `json:"payment,omitempty" bson:"payment,omitempty"`
	Services      Services    `json:"services" bson:"services"`
	Reviews       []string    `json:"reviews" bson:"reviews"`
	Owner         string      `json:"owner,omitempty" bson:"owner,omitempty"`

	// AI prediction fields: AIPrice and AIConfidence are either both set
	// or both nil; confidence lies in [0,100].
	AIPrice      *float64    `json:"aiPrice,omitempty" bson:"aiPrice,omitempty"`
	AIConfidence *float64    `json:"aiConfidence,omitempty" bson:"aiConfidence,omitempty"`
	AIInsights   *AIInsights `json:"aiInsights,omitempty" bson:"aiInsights,omitempty"`

	LastAIPrediction time.Time `json:"lastAIPrediction,omitempty" bson:"lastAIPrediction,omitempty"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// NewServices returns the fully scaffolded services record: every list
// non-nil, every flag false.
func NewServices() Services {
	return Services{
		Food: []string{},
		Chef: ChefService{Cuisines: []string{}},
		Training: TrainingServices{
			Yoga:   TrainingOffer{Benefits: []string{}},
			Karate: TrainingOffer{Benefits: []string{}},
			Gym:    TrainingOffer{Benefits: []string{}},
		},
		Massage: MassageService{Types: []string{}, PriceList: []normalize.PriceItem{}},
		Events:  EventServices{Supported: []string{}},
		Sports:  SportsServices{Indoor: []string{}, Outdoor: []string{}},
	}
}
