package listings

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"wanderlust/models"
)

const maxUploadSize = 10 << 20 // 10MB

// listingBody is the wire envelope of listing mutations.
type listingBody struct {
	Listing *models.ListingPayload `json:"listing"`
}

// decodePayload accepts either a JSON body {"listing": {...}} or a
// multipart form whose "listing" field holds the same JSON, with image
// files alongside.
func decodePayload(r *http.Request) (*models.ListingPayload, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, fmt.Errorf("unable to parse form")
		}
		raw := r.FormValue("listing")
		if raw == "" {
			return nil, fmt.Errorf("listing data is required")
		}
		var payload models.ListingPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("invalid listing data")
		}
		return &payload, nil
	}

	var body listingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Listing == nil {
		return nil, fmt.Errorf("invalid listing data")
	}
	return body.Listing, nil
}

// mediaRefs resolves uploaded image files into stored references. All three
// slots are optional: the primary image, the gallery, and the sports image.
func (h *Handler) mediaRefs(r *http.Request) (image *models.ImageRef, gallery []models.ImageRef, sportsImage *models.ImageRef, err error) {
	if r.MultipartForm == nil || h.Files == nil {
		return nil, nil, nil, nil
	}

	if name, ferr := h.Files.SaveFormFile(r.MultipartForm, "image", "listing", false); ferr != nil {
		return nil, nil, nil, ferr
	} else if name != "" {
		image = &models.ImageRef{URL: h.Files.URLFor("listing", name), Filename: name}
	}

	names, ferr := h.Files.SaveFormFiles(r.MultipartForm, "gallery", "listing")
	if ferr != nil {
		return nil, nil, nil, ferr
	}
	for _, name := range names {
		gallery = append(gallery, models.ImageRef{URL: h.Files.URLFor("listing", name), Filename: name})
	}

	if name, ferr := h.Files.SaveFormFile(r.MultipartForm, "sportsImage", "listing", false); ferr != nil {
		return nil, nil, nil, ferr
	} else if name != "" {
		sportsImage = &models.ImageRef{URL: h.Files.URLFor("listing", name), Filename: name}
	}

	return image, gallery, sportsImage, nil
}
