package journey

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"wanderlust/models"
	"wanderlust/normalize"
	"wanderlust/schema"
	"wanderlust/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errInvalidBody = errors.New("invalid place data")

const (
	defaultRadiusKm = 10.0
	maxNearest      = 20
)

// nearestFindOptions orders proximity matches by rating on both the geo
// path and the plain-filter fallback.
func nearestFindOptions() *options.FindOptions {
	return options.Find().
		SetLimit(maxNearest).
		SetSort(bson.D{{Key: "rating.average", Value: -1}})
}

// GET /api/journey/nearest?latitude=..&longitude=..&radius=..&type=..
func (h *Handler) GetNearestPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	q := r.URL.Query()

	lat, lng, err := parseLatLng(q.Get("latitude"), q.Get("longitude"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	radiusKm := defaultRadiusKm
	if v := q.Get("radius"); v != "" {
		radiusKm = utils.ParseFloat(v)
		if radiusKm <= 0 || radiusKm > 500 {
			utils.RespondWithError(w, http.StatusBadRequest, "Radius must be between 0 and 500 km")
			return
		}
	}

	filter := bson.M{
		"isActive": true,
		"location.geo": bson.M{
			"$near": bson.M{
				"$geometry":    normalize.MirrorGeo(lat, lng),
				"$maxDistance": radiusKm * 1000,
			},
		},
	}
	if t := q.Get("type"); t != "" {
		filter["type"] = t
	}

	opts := nearestFindOptions()
	places, err := utils.FindAndDecode[models.JourneyPlace](ctx, h.DB.JourneyCollection, filter, opts)
	if err != nil {
		// $near needs the 2dsphere index; fall back to a plain filter so
		// discovery degrades instead of erroring.
		log.Printf("geo query failed, falling back to plain filter: %v", err)
		delete(filter, "location.geo")
		places, err = utils.FindAndDecode[models.JourneyPlace](ctx, h.DB.JourneyCollection, filter, opts)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to find nearby places")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"count":   len(places),
		"places":  places,
	})
}

// GET /api/journey/search
func (h *Handler) SearchPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	q := r.URL.Query()

	if err := schema.Search(q).Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := bson.M{"isActive": true}
	if text := q.Get("q"); text != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": text, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": text, "$options": "i"}},
			bson.M{"location.name": bson.M{"$regex": text, "$options": "i"}},
		}
	}
	if t := q.Get("type"); t != "" {
		filter["type"] = t
	}

	price := bson.M{}
	var minPrice, maxPrice float64
	if v := q.Get("minPrice"); v != "" {
		minPrice = utils.ParseFloat(v)
		price["$gte"] = minPrice
	}
	if v := q.Get("maxPrice"); v != "" {
		maxPrice = utils.ParseFloat(v)
		price["$lte"] = maxPrice
	}
	if len(price) == 2 && minPrice > maxPrice {
		utils.RespondWithError(w, http.StatusBadRequest, "Minimum price cannot exceed maximum price")
		return
	}
	if len(price) > 0 {
		filter["pricing.basePrice"] = price
	}

	if v := q.Get("capacity"); v != "" {
		capacity := utils.ParseInt(v)
		if capacity < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Capacity must be at least 1")
			return
		}
		filter["capacity.min"] = bson.M{"$lte": capacity}
		filter["capacity.max"] = bson.M{"$gte": capacity}
	}
	if amenities := normalize.SplitList(q.Get("amenities")); len(amenities) > 0 {
		filter["amenities"] = bson.M{"$in": amenities}
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "rating.average", Value: -1}})

	places, err := utils.FindAndDecode[models.JourneyPlace](ctx, h.DB.JourneyCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search places")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"count":   len(places),
		"places":  places,
	})
}

// GET /api/journey/places/:placeid
func (h *Handler) GetPlaceDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("placeid")

	var place models.JourneyPlace
	if err := h.DB.JourneyCollection.FindOne(ctx, bson.M{"placeid": id}).Decode(&place); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "place": place})
}

// GET /api/journey/type/:type
func (h *Handler) GetPlacesByType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	placeType := ps.ByName("type")
	if !contains(models.JourneyTypes, placeType) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown place type")
		return
	}

	filter := bson.M{"type": placeType, "isActive": true}

	total, err := h.DB.JourneyCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count places")
		return
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "rating.average", Value: -1}})

	places, err := utils.FindAndDecode[models.JourneyPlace](ctx, h.DB.JourneyCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch places")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"count":   len(places),
		"total":   total,
		"pages":   int(math.Ceil(float64(total) / float64(limit))),
		"places":  places,
	})
}

// GET /api/journey/popular
//
// Popularity is a rating threshold, cached briefly since the set changes
// slowly.
func (h *Handler) GetPopularPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.Cache != nil {
		if cached, _ := h.Cache.Get(ctx, popularCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	filter := bson.M{"isActive": true, "rating.average": bson.M{"$gte": 4.0}}
	opts := options.Find().SetLimit(maxNearest).
		SetSort(bson.D{{Key: "rating.average", Value: -1}, {Key: "rating.count", Value: -1}})

	places, err := utils.FindAndDecode[models.JourneyPlace](ctx, h.DB.JourneyCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch popular places")
		return
	}

	response := utils.M{"success": true, "count": len(places), "places": places}
	if h.Cache != nil {
		if data, err := json.Marshal(response); err == nil {
			h.Cache.Set(ctx, popularCacheKey, string(data), 5*time.Minute)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func parseLatLng(latStr, lngStr string) (float64, float64, error) {
	if latStr == "" || lngStr == "" {
		return 0, 0, errors.New("Latitude and longitude are required")
	}
	lat, lng := utils.ParseFloat(latStr), utils.ParseFloat(lngStr)
	if err := schema.Coordinates(
		normalize.FlexFloat{Value: lat, Present: true},
		normalize.FlexFloat{Value: lng, Present: true},
	).Validate(); err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
