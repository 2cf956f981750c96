package pricing

import (
	"context"

	"wanderlust/models"
	"wanderlust/utils"
)

var propertyTypeCodes = map[string]int{
	"Hotel":           1,
	"Apartment":       2,
	"Room Rental":     3,
	"PG":              4,
	"Land for Sale":   5,
	"Business Rental": 6,
}

// PropertyTypeCode maps a category name to the ML feature code; unknown
// categories fall back to 1.
func PropertyTypeCode(propertyType string) int {
	if code, ok := propertyTypeCodes[propertyType]; ok {
		return code
	}
	return 1
}

// AmenitiesScore derives a 0-100 score from description keywords.
func AmenitiesScore(description string) float64 {
	score := 50.0

	if utils.ContainsIgnoreCase(description, "wifi") || utils.ContainsIgnoreCase(description, "internet") {
		score += 10
	}
	if utils.ContainsIgnoreCase(description, "ac") || utils.ContainsIgnoreCase(description, "air conditioning") {
		score += 15
	}
	if utils.ContainsIgnoreCase(description, "parking") {
		score += 10
	}
	if utils.ContainsIgnoreCase(description, "gym") || utils.ContainsIgnoreCase(description, "fitness") {
		score += 15
	}
	if utils.ContainsIgnoreCase(description, "pool") {
		score += 20
	}
	if utils.ContainsIgnoreCase(description, "restaurant") || utils.ContainsIgnoreCase(description, "dining") {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// AverageRating averages review ratings, defaulting to 4.0 when there are none.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 4.0
	}
	sum := 0.0
	for _, r := range reviews {
		sum += float64(r.Rating)
	}
	return sum / float64(len(reviews))
}

// InsightsForListing recomputes a prediction for an existing listing from
// its stored fields and reviews.
func (e *Estimator) InsightsForListing(ctx context.Context, listing *models.Listing, reviews []models.Review) Prediction {
	return e.Estimate(ctx, Features{
		Location:        listing.Location,
		BasePrice:       listing.Price,
		PropertyType:    PropertyTypeCode(listing.PropertyType),
		AmenitiesScore:  AmenitiesScore(listing.Description),
		ReviewRating:    AverageRating(reviews),
		BookingLeadTime: 7,
		CompetitorPrice: listing.Price * 1.1,
	})
}
