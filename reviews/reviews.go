package reviews

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"wanderlust/db"
	"wanderlust/models"
	"wanderlust/mq"
	"wanderlust/schema"
	"wanderlust/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Handler struct {
	DB     *db.Mongo
	Events *mq.Emitter
}

type reviewBody struct {
	Review *models.ReviewPayload `json:"review"`
}

// GET /api/listings/:listingid/reviews
func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	listingID := ps.ByName("listingid")

	var listing models.Listing
	if err := h.DB.ListingsCollection.FindOne(ctx, bson.M{"listingid": listingID}).Decode(&listing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	reviews := []models.Review{}
	if len(listing.Reviews) > 0 {
		found, err := utils.FindAndDecode[models.Review](ctx, h.DB.ReviewsCollection,
			bson.M{"reviewid": bson.M{"$in": listing.Reviews}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
			return
		}
		reviews = found
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": http.StatusOK, "ok": true, "reviews": reviews})
}

// POST /api/listings/:listingid/reviews
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	listingID := ps.ByName("listingid")

	var body reviewBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Review == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}
	if err := schema.ReviewCreate(body.Review).Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var listing models.Listing
	if err := h.DB.ListingsCollection.FindOne(ctx, bson.M{"listingid": listingID}).Decode(&listing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	review := sanitize(body.Review)
	review.ReviewID = utils.GetUUID()
	review.CreatedAt = time.Now()

	if _, err := h.DB.ReviewsCollection.InsertOne(ctx, review); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	// Atomic append: a concurrent review on the same listing cannot lose
	// this reference. The property-type backfill for legacy documents
	// rides in the same write.
	update := bson.M{"$push": bson.M{"reviews": review.ReviewID}}
	if listing.PropertyType == "" {
		update["$set"] = bson.M{"propertyType": models.DefaultPropertyType}
	}
	if _, err := h.DB.ListingsCollection.UpdateOne(ctx, bson.M{"listingid": listingID}, update); err != nil {
		// roll the standalone record back so the two sides stay consistent
		h.DB.ReviewsCollection.DeleteOne(ctx, bson.M{"reviewid": review.ReviewID})
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to attach review")
		return
	}

	go h.Events.Emit(ctx, "review-added", models.Index{
		EntityType: "review", EntityId: review.ReviewID, Method: "POST",
		ItemId: listingID, ItemType: "listing",
	})

	utils.RespondWithJSON(w, http.StatusCreated, review)
}

// PUT /api/listings/:listingid/reviews/:reviewid
func (h *Handler) EditReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	listingID := ps.ByName("listingid")
	reviewID := ps.ByName("reviewid")

	var body reviewBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Review == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}
	if err := schema.ReviewUpdate(body.Review).Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.DB.ListingsCollection.FindOne(ctx, bson.M{"listingid": listingID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	set := sanitizedFields(body.Review)
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	res, err := h.DB.ReviewsCollection.UpdateOne(ctx, bson.M{"reviewid": reviewID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	go h.Events.Emit(ctx, "review-edited", models.Index{
		EntityType: "review", EntityId: reviewID, Method: "PUT",
		ItemId: listingID, ItemType: "listing",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "id": reviewID})
}

// DELETE /api/listings/:listingid/reviews/:reviewid
//
// Both the listing and the review must resolve before anything mutates;
// a missing side fails the whole operation untouched.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	listingID := ps.ByName("listingid")
	reviewID := ps.ByName("reviewid")

	if err := h.DB.ListingsCollection.FindOne(ctx, bson.M{"listingid": listingID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}
	if err := h.DB.ReviewsCollection.FindOne(ctx, bson.M{"reviewid": reviewID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Review not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to look up review")
		return
	}

	if _, err := h.DB.ListingsCollection.UpdateOne(ctx,
		bson.M{"listingid": listingID},
		bson.M{"$pull": bson.M{"reviews": reviewID}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to detach review")
		return
	}
	if _, err := h.DB.ReviewsCollection.DeleteOne(ctx, bson.M{"reviewid": reviewID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	go h.Events.Emit(ctx, "review-deleted", models.Index{
		EntityType: "review", EntityId: reviewID, Method: "DELETE",
		ItemId: listingID, ItemType: "listing",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "id": reviewID})
}

// sanitize converts a validated payload into the stored review: strings
// trimmed, rating rounded to the nearest integer, and the anonymous author
// applied when the name is missing or too short after trimming.
func sanitize(p *models.ReviewPayload) *models.Review {
	review := &models.Review{
		Rating: int(math.Round(p.Rating.Value)),
		Author: models.AnonymousAuthor,
	}
	if p.Comment != nil {
		review.Comment = strings.TrimSpace(*p.Comment)
	}
	if p.Author != nil {
		if author := strings.TrimSpace(*p.Author); len(author) >= 2 {
			review.Author = author
		}
	}
	return review
}

// sanitizedFields applies the same sanitizing rules to the fields present
// in a partial update.
func sanitizedFields(p *models.ReviewPayload) bson.M {
	set := bson.M{}
	if p.Comment != nil {
		set["comment"] = strings.TrimSpace(*p.Comment)
	}
	if p.Rating.Present {
		set["rating"] = int(math.Round(p.Rating.Value))
	}
	if p.Author != nil {
		author := strings.TrimSpace(*p.Author)
		if len(author) < 2 {
			author = models.AnonymousAuthor
		}
		set["author"] = author
	}
	return set
}
