package listings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wanderlust/models"
	"wanderlust/normalize"
	"wanderlust/utils"
)

func strptr(s string) *string { return &s }

func postListing(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.CreateListing(w, req, nil)
	return w
}

// An invalid payload must be rejected before any dependency is touched;
// the zero-value handler panics if the flow reaches storage.
func TestCreateListingValidationShortCircuits(t *testing.T) {
	h := &Handler{}
	w := postListing(t, h, `{"listing":{"title":"ab","description":"too short","price":100,"location":"Goa","country":"India"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp["error"], "Title must be at least 3 characters long") {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestCreateListingRequiresAuth(t *testing.T) {
	h := &Handler{}
	w := postListing(t, h, `{"listing":{"title":"Seaside Villa","description":"A quiet villa near the beach","price":4500,"location":"Goa","country":"India"}}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCreateListingRejectsMalformedBody(t *testing.T) {
	h := &Handler{}
	if w := postListing(t, h, `{not json`); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if w := postListing(t, h, `{"other":{}}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing envelope: status = %d, want 400", w.Code)
	}
}

func TestBuildListingDefaults(t *testing.T) {
	p := &models.ListingPayload{
		Title:       strptr("  Seaside Villa  "),
		Description: strptr("A quiet villa"),
		Price:       normalize.FlexFloat{Value: 4500, Present: true},
		Location:    strptr(" Goa "),
		Country:     strptr("India"),
	}
	listing := buildListing(p)

	if listing.Title != "Seaside Villa" || listing.Location != "Goa" {
		t.Errorf("strings not trimmed: %q %q", listing.Title, listing.Location)
	}
	if listing.PricingPeriod != "per night" {
		t.Errorf("pricing period = %q, want per night", listing.PricingPeriod)
	}
	if listing.Amenities == nil || listing.PaymentMethods == nil || listing.Reviews == nil {
		t.Error("list fields must be non-nil")
	}
	if listing.Services.Chef.Cuisines == nil || listing.Services.Massage.PriceList == nil {
		t.Error("service branches not scaffolded")
	}
}

func TestUpdateFieldsOnlyPresent(t *testing.T) {
	set := updateFields(&models.ListingPayload{
		Title: strptr(" New Name "),
		Price: normalize.FlexFloat{Value: 900, Present: true},
	})
	if len(set) != 2 {
		t.Fatalf("set has %d keys: %v", len(set), set)
	}
	if set["title"] != "New Name" || set["price"] != 900.0 {
		t.Errorf("set = %v", set)
	}

	if set := updateFields(&models.ListingPayload{}); len(set) != 0 {
		t.Errorf("empty payload produced fields: %v", set)
	}
}

// A JSON null means "not supplied", never "zero": an update carrying
// {"price": null} must not touch the stored price.
func TestUpdateFieldsNullPrice(t *testing.T) {
	var body listingBody
	if err := json.Unmarshal([]byte(`{"listing":{"title":"New Name","price":null}}`), &body); err != nil {
		t.Fatal(err)
	}
	set := updateFields(body.Listing)
	if _, ok := set["price"]; ok {
		t.Fatalf("null price produced $set price=%v", set["price"])
	}
	if set["title"] != "New Name" {
		t.Errorf("set = %v", set)
	}
}

func multipartListingRequest(t *testing.T) *http.Request {
	t.Helper()
	body := &strings.Builder{}
	boundary := "testboundary"
	body.WriteString("--" + boundary + "\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"listing\"\r\n\r\n")
	body.WriteString(`{"title":"Seaside Villa","amenities":"wifi, pool"}`)
	body.WriteString("\r\n--" + boundary + "--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	return req
}

func TestDecodePayloadMultipart(t *testing.T) {
	payload, err := decodePayload(multipartListingRequest(t))
	if err != nil {
		t.Fatal(err)
	}
	if payload.Title == nil || *payload.Title != "Seaside Villa" {
		t.Errorf("title = %v", payload.Title)
	}
	if len(payload.Amenities) != 2 || payload.Amenities[0] != "wifi" {
		t.Errorf("amenities = %v", payload.Amenities)
	}
}

func TestListingSortParam(t *testing.T) {
	def := listingSorts["newest"]
	if got := utils.ParseSort("priceAsc", def, listingSorts); got[0].Key != "price" || got[0].Value != 1 {
		t.Errorf("priceAsc = %v", got)
	}
	if got := utils.ParseSort("bogus", def, listingSorts); got[0].Key != "createdAt" {
		t.Errorf("unknown sort falls back: %v", got)
	}
	if got := utils.ParseSort("", def, listingSorts); got[0].Key != "createdAt" {
		t.Errorf("default sort: %v", got)
	}
}

func TestMediaRefsWithoutStore(t *testing.T) {
	req := multipartListingRequest(t)
	if _, err := decodePayload(req); err != nil {
		t.Fatal(err)
	}

	h := &Handler{}
	image, gallery, sportsImage, err := h.mediaRefs(req)
	if err != nil {
		t.Fatalf("mediaRefs without a store: %v", err)
	}
	if image != nil || gallery != nil || sportsImage != nil {
		t.Errorf("refs without a store: %v %v %v", image, gallery, sportsImage)
	}
}
