// Package pricing produces price predictions for listings. The primary path
// asks the external model service; any transport or decode failure switches
// to a deterministic local calculation that never fails.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"
)

// Features is the request contract of the prediction service.
type Features struct {
	Location        string  `json:"location"`
	BasePrice       float64 `json:"base_price"`
	PropertyType    int     `json:"property_type"`
	AmenitiesScore  float64 `json:"amenities_score"`
	ReviewRating    float64 `json:"review_rating"`
	BookingLeadTime int     `json:"booking_lead_time"`
	CompetitorPrice float64 `json:"competitor_price"`
}

type Insights struct {
	DemandLevel    string `json:"demand_level"`
	EventImpact    string `json:"event_impact"`
	SeasonalFactor string `json:"seasonal_factor"`
	WeatherImpact  string `json:"weather_impact"`
}

type Prediction struct {
	PredictedPrice float64  `json:"predicted_price"`
	Confidence     float64  `json:"confidence"`
	Insights       Insights `json:"insights"`
	// Error annotates degraded responses produced by the fallback path.
	Error string `json:"error,omitempty"`
}

const fallbackNote = "ML service unavailable, using enhanced fallback calculation"

// Estimator calls the prediction service and degrades to the local model.
type Estimator struct {
	URL    string
	Client *http.Client
	Now    func() time.Time
}

func NewEstimator(url string) *Estimator {
	return &Estimator{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
		Now:    time.Now,
	}
}

// Estimate never returns an error: upstream failures are absorbed by the
// fallback calculation and surface only as the annotation field.
func (e *Estimator) Estimate(ctx context.Context, f Features) Prediction {
	pred, err := e.callService(ctx, f)
	if err == nil {
		return pred
	}
	log.Printf("prediction service unavailable: %v", err)

	price := e.FallbackPrice(f)
	return Prediction{
		PredictedPrice: price,
		Confidence:     Confidence(f, price),
		Insights:       e.GenerateInsights(f),
		Error:          fallbackNote,
	}
}

func (e *Estimator) callService(ctx context.Context, f Features) (Prediction, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return Prediction{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		return Prediction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("prediction service returned %d", resp.StatusCode)
	}
	var pred Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return Prediction{}, err
	}
	return pred, nil
}

var locationMultipliers = map[string]float64{
	"mumbai": 1.3, "delhi": 1.2, "bangalore": 1.15, "pune": 1.1, "goa": 1.25,
	"kolkata": 1.05, "chennai": 1.1, "hyderabad": 1.1, "ahmedabad": 1.0,
}

var typeMultipliers = map[int]float64{1: 1.2, 2: 1.0, 3: 0.8, 4: 0.7, 5: 1.5, 6: 1.1}

var knownLocations = []string{"mumbai", "delhi", "bangalore", "pune", "goa", "kolkata", "chennai", "hyderabad"}

// FallbackPrice is the deterministic local price model. Every absent input
// takes a default, so the calculation cannot fail.
func (e *Estimator) FallbackPrice(f Features) float64 {
	basePrice := f.BasePrice
	if basePrice == 0 {
		basePrice = 100
	}
	location := strings.ToLower(f.Location)
	propertyType := f.PropertyType
	if propertyType == 0 {
		propertyType = 1
	}
	amenitiesScore := f.AmenitiesScore
	if amenitiesScore == 0 {
		amenitiesScore = 70
	}
	reviewRating := f.ReviewRating
	if reviewRating == 0 {
		reviewRating = 4.0
	}
	competitorPrice := f.CompetitorPrice
	if competitorPrice == 0 {
		competitorPrice = 120
	}

	price := basePrice

	if m, ok := locationMultipliers[location]; ok {
		price *= m
	}
	if m, ok := typeMultipliers[propertyType]; ok {
		price *= m
	}

	// Amenities factor (0.5 to 1.5 range)
	price *= 0.5 + amenitiesScore/100

	// Review rating factor (0.8 to 1.2 range)
	price *= 0.8 + (reviewRating-1)*0.1

	price *= e.seasonalMultiplier()

	// Competitor price influence (30% weight)
	price = price*0.7 + competitorPrice*0.3

	return math.Round(price)
}

func (e *Estimator) seasonalMultiplier() float64 {
	month := int(e.Now().Month())
	switch {
	case month >= 10 || month <= 3:
		return 1.2 // peak season
	case month >= 6 && month <= 8:
		return 0.9 // off season
	default:
		return 1.0
	}
}

// Confidence scores how much to trust a fallback prediction, clamped to [65,95].
func Confidence(f Features, predictedPrice float64) float64 {
	confidence := 60.0

	location := strings.ToLower(f.Location)
	for _, l := range knownLocations {
		if l == location {
			confidence += 15
			break
		}
	}

	propertyType := f.PropertyType
	if propertyType == 0 {
		propertyType = 1
	}
	if propertyType >= 1 && propertyType <= 6 {
		confidence += 10
	}

	amenitiesScore := f.AmenitiesScore
	if amenitiesScore == 0 {
		amenitiesScore = 70
	}
	if amenitiesScore > 80 {
		confidence += 10
	} else if amenitiesScore > 60 {
		confidence += 5
	}

	reviewRating := f.ReviewRating
	if reviewRating == 0 {
		reviewRating = 4.0
	}
	if reviewRating >= 4.5 {
		confidence += 10
	} else if reviewRating >= 4.0 {
		confidence += 5
	}

	basePrice := f.BasePrice
	if basePrice == 0 {
		basePrice = 100
	}
	ratio := predictedPrice / basePrice
	if ratio >= 0.8 && ratio <= 1.5 {
		confidence += 10
	} else if ratio >= 0.6 && ratio <= 2.0 {
		confidence += 5
	}

	return math.Min(95, math.Max(65, confidence))
}

// GenerateInsights derives the qualitative record from lookup rules on
// location and amenities score. It is not a statistical model.
func (e *Estimator) GenerateInsights(f Features) Insights {
	location := strings.ToLower(f.Location)
	amenitiesScore := f.AmenitiesScore
	if amenitiesScore == 0 {
		amenitiesScore = 70
	}

	demand := "Medium"
	if contains([]string{"mumbai", "delhi", "bangalore", "goa"}, location) && amenitiesScore > 80 {
		demand = "High"
	} else if amenitiesScore < 50 {
		demand = "Low"
	}

	eventImpact := "Medium"
	if contains([]string{"mumbai", "delhi", "bangalore"}, location) {
		eventImpact = "High"
	}

	seasonal := "Normal"
	month := int(e.Now().Month())
	if month >= 10 || month <= 3 {
		seasonal = "Peak"
	} else if month >= 6 && month <= 8 {
		seasonal = "Low"
	}

	weather := "Neutral"
	if contains([]string{"goa", "mumbai"}, location) {
		weather = "Positive"
	}

	return Insights{
		DemandLevel:    demand,
		EventImpact:    eventImpact,
		SeasonalFactor: seasonal,
		WeatherImpact:  weather,
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
