// Package journey manages points of interest for trip planning and their
// geospatial discovery queries.
package journey

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"wanderlust/db"
	"wanderlust/filemgr"
	"wanderlust/middleware"
	"wanderlust/models"
	"wanderlust/mq"
	"wanderlust/normalize"
	"wanderlust/rdx"
	"wanderlust/schema"
	"wanderlust/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const popularCacheKey = "journey:popular"

type Handler struct {
	DB     *db.Mongo
	Cache  *rdx.Cache
	Events *mq.Emitter
	Files  *filemgr.Store
}

type placeBody struct {
	Place *models.JourneyPayload `json:"place"`
}

func decodePlace(r *http.Request) (*models.JourneyPayload, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return nil, errInvalidBody
		}
		raw := r.FormValue("place")
		if raw == "" {
			return nil, errInvalidBody
		}
		var payload models.JourneyPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, errInvalidBody
		}
		return &payload, nil
	}

	var body placeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Place == nil {
		return nil, errInvalidBody
	}
	return body.Place, nil
}

// POST /api/journey/places
func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	payload, err := decodePlace(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := schema.JourneyCreate(payload).Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	place := buildPlace(payload)
	place.PlaceID = utils.GetUUID()
	place.Owner = middleware.UserID(ctx)
	place.CreatedAt = time.Now()

	if r.MultipartForm != nil && h.Files != nil {
		names, ferr := h.Files.SaveFormFiles(r.MultipartForm, "images", filemgr.EntityJourney)
		if ferr != nil {
			utils.RespondWithError(w, http.StatusBadRequest, ferr.Error())
			return
		}
		for _, name := range names {
			place.Images = append(place.Images, models.ImageRef{
				URL: h.Files.URLFor(filemgr.EntityJourney, name), Filename: name,
			})
		}
	}

	if _, err := h.DB.JourneyCollection.InsertOne(ctx, place); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create place")
		return
	}

	h.invalidatePopular(r)
	go h.Events.Emit(ctx, "place-created", models.Index{EntityType: "place", EntityId: place.PlaceID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "place": place})
}

// PUT /api/journey/places/:placeid
func (h *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("placeid")

	payload, err := decodePlace(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := schema.JourneyUpdate(payload).Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	set := placeFields(payload)
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	set["updatedAt"] = time.Now()

	res, err := h.DB.JourneyCollection.UpdateOne(ctx, bson.M{"placeid": id}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update place")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return
	}

	var updated models.JourneyPlace
	if err := h.DB.JourneyCollection.FindOne(ctx, bson.M{"placeid": id}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load updated place")
		return
	}

	h.invalidatePopular(r)
	go h.Events.Emit(ctx, "place-updated", models.Index{EntityType: "place", EntityId: id, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "place": updated})
}

// DELETE /api/journey/places/:placeid
func (h *Handler) DeletePlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("placeid")

	res, err := h.DB.JourneyCollection.DeleteOne(ctx, bson.M{"placeid": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete place")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Place not found")
		return
	}

	h.invalidatePopular(r)
	go h.Events.Emit(ctx, "place-deleted", models.Index{EntityType: "place", EntityId: id, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "id": id})
}

func (h *Handler) invalidatePopular(r *http.Request) {
	if h.Cache != nil {
		h.Cache.Del(r.Context(), popularCacheKey)
	}
}

// buildPlace converts a validated create payload into the canonical record.
// The GeoJSON point is derived from the human-readable coordinates here and
// nowhere else.
func buildPlace(p *models.JourneyPayload) *models.JourneyPlace {
	place := &models.JourneyPlace{
		Name:        strings.TrimSpace(strVal(p.Name)),
		Type:        strVal(p.Type),
		Description: strings.TrimSpace(strVal(p.Description)),
		Amenities:   []string{},
		Reviews:     []string{},
		Tags:        []string{},
		Pricing:     models.JourneyPricing{Currency: "INR", PricingType: "per_person"},
		Capacity:    models.JourneyCapacity{Min: 1, Max: 10},
		IsActive:    true,
	}
	if p.Amenities != nil {
		place.Amenities = normalize.CleanList(p.Amenities)
	}
	if p.Tags != nil {
		place.Tags = normalize.CleanList(p.Tags)
	}
	if p.Pricing != nil {
		place.Pricing = *p.Pricing
		if place.Pricing.Currency == "" {
			place.Pricing.Currency = "INR"
		}
		if place.Pricing.PricingType == "" {
			place.Pricing.PricingType = "per_person"
		}
	}
	if p.Capacity != nil {
		place.Capacity = *p.Capacity
	}
	if p.IsActive != nil {
		place.IsActive = *p.IsActive
	}
	if p.Location != nil {
		place.Location = buildLocation(p.Location)
	}
	return place
}

func buildLocation(l *models.JourneyLocationPayload) models.JourneyLocation {
	loc := models.JourneyLocation{
		Name:    strings.TrimSpace(strVal(l.Name)),
		Address: strVal(l.Address),
		City:    strVal(l.City),
		State:   strVal(l.State),
		Country: strVal(l.Country),
	}
	if l.Coordinates != nil {
		loc.Coordinates = models.Coordinates{
			Latitude:  l.Coordinates.Latitude.Value,
			Longitude: l.Coordinates.Longitude.Value,
		}
		geo := normalize.MirrorGeo(loc.Coordinates.Latitude, loc.Coordinates.Longitude)
		loc.Geo = &geo
	}
	return loc
}

// placeFields maps the present fields of an update payload onto $set keys.
// A coordinate write always recomputes the GeoJSON mirror in the same $set.
func placeFields(p *models.JourneyPayload) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		set["type"] = *p.Type
	}
	if p.Description != nil {
		set["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Amenities != nil {
		set["amenities"] = normalize.CleanList(p.Amenities)
	}
	if p.Tags != nil {
		set["tags"] = normalize.CleanList(p.Tags)
	}
	if p.Pricing != nil {
		set["pricing"] = *p.Pricing
	}
	if p.Capacity != nil {
		set["capacity"] = *p.Capacity
	}
	if p.IsActive != nil {
		set["isActive"] = *p.IsActive
	}
	if l := p.Location; l != nil {
		if l.Name != nil {
			set["location.name"] = strings.TrimSpace(*l.Name)
		}
		if l.Address != nil {
			set["location.address"] = *l.Address
		}
		if l.City != nil {
			set["location.city"] = *l.City
		}
		if l.State != nil {
			set["location.state"] = *l.State
		}
		if l.Country != nil {
			set["location.country"] = *l.Country
		}
		if c := l.Coordinates; c != nil && c.Latitude.Present && c.Longitude.Present {
			set["location.coordinates"] = models.Coordinates{
				Latitude:  c.Latitude.Value,
				Longitude: c.Longitude.Value,
			}
			set["location.geo"] = normalize.MirrorGeo(c.Latitude.Value, c.Longitude.Value)
		}
	}
	return set
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
