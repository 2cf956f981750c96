package listings

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"wanderlust/db"
	"wanderlust/filemgr"
	"wanderlust/middleware"
	"wanderlust/models"
	"wanderlust/mq"
	"wanderlust/payqr"
	"wanderlust/pricing"
	"wanderlust/rdx"
	"wanderlust/schema"
	"wanderlust/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// Estimator defaults for brand-new listings, which have no amenity
	// profile or reviews yet.
	defaultAmenitiesScore  = 70
	defaultReviewRating    = 4.0
	defaultBookingLeadTime = 7

	listCacheKey = "listings"
)

type Handler struct {
	DB        *db.Mongo
	Cache     *rdx.Cache
	Events    *mq.Emitter
	Estimator *pricing.Estimator
	Files     *filemgr.Store
	QR        *payqr.Generator
}

// POST /api/listings
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	payload, err := decodePayload(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Single validation pass; any violation short-circuits with no side effects.
	if err := schema.ListingCreate(payload).Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := middleware.UserID(ctx)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	listing := buildListing(payload)
	listing.ListingID = utils.GetUUID()
	listing.Owner = userID
	listing.CreatedAt = time.Now()

	image, gallery, sportsImage, err := h.mediaRefs(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if image != nil {
		listing.Image = image
	}
	if gallery != nil {
		listing.Gallery = gallery
	}
	if sportsImage != nil {
		listing.Services.Sports.Image = sportsImage
	}

	// Price prediction; the estimator absorbs upstream failures internally.
	prediction := h.Estimator.Estimate(ctx, pricing.Features{
		Location:        listing.Location,
		BasePrice:       listing.Price,
		PropertyType:    pricing.PropertyTypeCode(listing.PropertyType),
		AmenitiesScore:  defaultAmenitiesScore,
		ReviewRating:    defaultReviewRating,
		BookingLeadTime: defaultBookingLeadTime,
		CompetitorPrice: listing.Price * 1.1,
	})
	listing.AIPrice = &prediction.PredictedPrice
	listing.AIConfidence = &prediction.Confidence
	listing.AIInsights = &models.AIInsights{
		DemandLevel:    prediction.Insights.DemandLevel,
		EventImpact:    prediction.Insights.EventImpact,
		SeasonalFactor: prediction.Insights.SeasonalFactor,
		WeatherImpact:  prediction.Insights.WeatherImpact,
	}
	listing.LastAIPrediction = time.Now()

	if listing.Payment.UpiID != "" && h.QR != nil {
		if qrURL, qerr := h.QR.Generate(listing.ListingID, listing.Payment.UpiID, listing.Title); qerr != nil {
			log.Printf("payment QR for %s: %v", listing.ListingID, qerr)
		} else {
			listing.Payment.QRImageURL = qrURL
		}
	}

	if _, err := h.DB.ListingsCollection.InsertOne(ctx, listing); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "A listing with this title already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	h.invalidateCache(ctx)
	go h.Events.Emit(ctx, "listing-created", models.Index{EntityType: "listing", EntityId: listing.ListingID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, listing)
}

// PUT /api/listings/:listingid
func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("listingid")

	payload, err := decodePayload(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := schema.ListingUpdate(payload).Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	set := updateFields(payload)

	// Media joins the same $set: core fields and images land in one
	// atomic write, so no partially-updated document is ever visible.
	image, gallery, sportsImage, err := h.mediaRefs(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if image != nil {
		set["image"] = image
	}
	if gallery != nil {
		set["gallery"] = gallery
	}
	if sportsImage != nil {
		set["services.sports.image"] = sportsImage
	}

	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	set["updatedAt"] = time.Now()

	res, err := h.DB.ListingsCollection.UpdateOne(ctx, bson.M{"listingid": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "A listing with this title already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update listing")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	var updated models.Listing
	if err := h.DB.ListingsCollection.FindOne(ctx, bson.M{"listingid": id}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load updated listing")
		return
	}

	h.invalidateCache(ctx)
	go h.Events.Emit(ctx, "listing-updated", models.Index{EntityType: "listing", EntityId: id, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/listings/:listingid
//
// Reviews are deliberately not cascade-deleted; the response reports how
// many references were left behind so callers can audit them.
func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("listingid")

	var listing models.Listing
	if err := h.DB.ListingsCollection.FindOne(ctx, bson.M{"listingid": id}).Decode(&listing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	if _, err := h.DB.ListingsCollection.DeleteOne(ctx, bson.M{"listingid": id}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete listing")
		return
	}

	h.invalidateCache(ctx)
	go h.Events.Emit(ctx, "listing-deleted", models.Index{EntityType: "listing", EntityId: id, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":         true,
		"id":              id,
		"orphanedReviews": len(listing.Reviews),
	})
}

func (h *Handler) invalidateCache(ctx context.Context) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Del(ctx, listCacheKey); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}
}

// buildListing converts a validated create payload into the canonical
// document, with every nested branch scaffolded.
func buildListing(p *models.ListingPayload) *models.Listing {
	listing := &models.Listing{
		Title:          strings.TrimSpace(deref(p.Title)),
		PropertyType:   deref(p.PropertyType),
		Description:    deref(p.Description),
		Price:          p.Price.Value,
		PricingPeriod:  deref(p.PricingPeriod),
		Location:       strings.TrimSpace(deref(p.Location)),
		Country:        strings.TrimSpace(deref(p.Country)),
		Phone:          deref(p.Phone),
		Email:          deref(p.Email),
		Bedrooms:       deref(p.Bedrooms),
		Bathrooms:      deref(p.Bathrooms),
		Amenities:      []string{},
		PaymentMethods: []string{},
		Services:       p.Services.ToServices(),
		Reviews:        []string{},
	}
	if p.MaxGuests != nil {
		listing.MaxGuests = *p.MaxGuests
	}
	if listing.PricingPeriod == "" {
		listing.PricingPeriod = "per night"
	}
	if p.Amenities != nil {
		listing.Amenities = p.Amenities
	}
	if p.PaymentMethods != nil {
		listing.PaymentMethods = p.PaymentMethods
	}
	if p.Image != nil {
		listing.Image = p.Image
	}
	if p.Payment != nil {
		listing.Payment = *p.Payment
	}
	return listing
}

// updateFields maps the present fields of an update payload onto $set keys.
func updateFields(p *models.ListingPayload) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = strings.TrimSpace(*p.Title)
	}
	if p.PropertyType != nil {
		set["propertyType"] = *p.PropertyType
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price.Present {
		set["price"] = p.Price.Value
	}
	if p.PricingPeriod != nil {
		set["pricingPeriod"] = *p.PricingPeriod
	}
	if p.Location != nil {
		set["location"] = strings.TrimSpace(*p.Location)
	}
	if p.Country != nil {
		set["country"] = strings.TrimSpace(*p.Country)
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Bedrooms != nil {
		set["bedrooms"] = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		set["bathrooms"] = *p.Bathrooms
	}
	if p.MaxGuests != nil {
		set["maxGuests"] = *p.MaxGuests
	}
	if p.Amenities != nil {
		set["amenities"] = []string(p.Amenities)
	}
	if p.PaymentMethods != nil {
		set["paymentMethods"] = []string(p.PaymentMethods)
	}
	if p.Payment != nil {
		set["payment"] = *p.Payment
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Services != nil {
		set["services"] = p.Services.ToServices()
	}
	return set
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
