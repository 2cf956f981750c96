package listings

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"wanderlust/models"
	"wanderlust/schema"
	"wanderlust/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var listingSorts = map[string]bson.D{
	"newest":    {{Key: "createdAt", Value: -1}},
	"priceAsc":  {{Key: "price", Value: 1}},
	"priceDesc": {{Key: "price", Value: -1}},
}

// GET /api/listings
func (h *Handler) GetListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	if err := schema.Search(q).Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := bson.M{}
	if t := q.Get("type"); t != "" {
		filter["propertyType"] = t
	}
	if text := q.Get("q"); text != "" {
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": text, "$options": "i"}},
			bson.M{"location": bson.M{"$regex": text, "$options": "i"}},
		}
	}
	price := bson.M{}
	if v := q.Get("minPrice"); v != "" {
		price["$gte"] = utils.ParseFloat(v)
	}
	if v := q.Get("maxPrice"); v != "" {
		price["$lte"] = utils.ParseFloat(v)
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	// The unfiltered default-order index is the hot path; serve it from
	// cache when possible.
	cacheable := len(filter) == 0 && q.Get("sort") == "" && h.Cache != nil
	if cacheable {
		if cached, _ := h.Cache.Get(ctx, listCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	sort := utils.ParseSort(q.Get("sort"), listingSorts["newest"], listingSorts)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)

	results, err := utils.FindAndDecode[models.Listing](ctx, h.DB.ListingsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch listings")
		return
	}

	if cacheable {
		if data, err := json.Marshal(results); err == nil {
			h.Cache.Set(ctx, listCacheKey, string(data), 2*time.Minute)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

// GET /api/listings/:listingid
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("listingid")

	var listing models.Listing
	if err := h.DB.ListingsCollection.FindOne(ctx, bson.M{"listingid": id}).Decode(&listing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	reviews := []models.Review{}
	if len(listing.Reviews) > 0 {
		found, err := utils.FindAndDecode[models.Review](ctx, h.DB.ReviewsCollection,
			bson.M{"reviewid": bson.M{"$in": listing.Reviews}})
		if err == nil {
			reviews = found
		}
	}

	response := utils.M{
		"listing": listing,
		"reviews": reviews,
	}

	// Fresh insights are a nicety; a missing record degrades to omission,
	// it never fails the read.
	if listing.Location != "" && h.Estimator != nil {
		prediction := h.Estimator.InsightsForListing(ctx, &listing, reviews)
		response["aiInsights"] = prediction
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
