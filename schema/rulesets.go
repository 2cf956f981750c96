package schema

import (
	"net/url"

	"wanderlust/models"
	"wanderlust/normalize"
)

// ListingCreate is the single validation pass for listing creation. The
// original system checked the same payload twice (ad hoc guards, then a
// schema); the two rule sets are merged here with the stricter constraint
// kept wherever they overlapped.
func ListingCreate(p *models.ListingPayload) RuleSet {
	return RuleSet{
		StringRule{Name: "Title", Value: p.Title, Required: true, Min: 3, Max: 100},
		StringRule{Name: "Description", Value: p.Description, Required: true, Min: 10, Max: 1000},
		NumberRule{Name: "Price", Value: p.Price, Required: true, Min: 0, Max: 1000000},
		StringRule{Name: "Location", Value: p.Location, Required: true, Min: 3, Max: 100},
		StringRule{Name: "Country", Value: p.Country, Required: true, Min: 2, Max: 100},
		EnumRule{Name: "Property type", Value: p.PropertyType, Allowed: models.PropertyTypes},
		EnumRule{Name: "Pricing period", Value: p.PricingPeriod, Allowed: models.PricingPeriods},
		URIRule{Name: "Image", Value: imageURL(p.Image)},
	}
}

// ListingUpdate relaxes required-ness; bounds still apply when a field is present.
func ListingUpdate(p *models.ListingPayload) RuleSet {
	return RuleSet{
		StringRule{Name: "Title", Value: p.Title, Min: 3, Max: 100},
		StringRule{Name: "Description", Value: p.Description, Min: 10, Max: 1000},
		NumberRule{Name: "Price", Value: p.Price, Min: 0, Max: 1000000},
		StringRule{Name: "Location", Value: p.Location, Min: 3, Max: 100},
		StringRule{Name: "Country", Value: p.Country, Min: 2, Max: 100},
		EnumRule{Name: "Property type", Value: p.PropertyType, Allowed: models.PropertyTypes},
		EnumRule{Name: "Pricing period", Value: p.PricingPeriod, Allowed: models.PricingPeriods},
		URIRule{Name: "Image", Value: imageURL(p.Image)},
	}
}

// ReviewCreate accepts fractional ratings inside [1,5]; the sanitizer
// rounds them before persistence.
func ReviewCreate(p *models.ReviewPayload) RuleSet {
	return RuleSet{
		StringRule{Name: "Review comment", Value: p.Comment, Required: true, Min: 3, Max: 500},
		ratingRule{Value: p.Rating, Required: true},
		StringRule{Name: "Author name", Value: p.Author, Min: 2, Max: 50},
	}
}

func ReviewUpdate(p *models.ReviewPayload) RuleSet {
	return RuleSet{
		StringRule{Name: "Review comment", Value: p.Comment, Min: 3, Max: 500},
		ratingRule{Value: p.Rating},
		StringRule{Name: "Author name", Value: p.Author, Min: 2, Max: 50},
	}
}

type ratingRule struct {
	Value    normalize.FlexFloat
	Required bool
}

func (r ratingRule) Check() []string {
	if !r.Value.Present {
		if r.Required {
			return []string{"Rating is required"}
		}
		return nil
	}
	var msgs []string
	if r.Value.Value < 1 {
		msgs = append(msgs, "Rating must be at least 1")
	}
	if r.Value.Value > 5 {
		msgs = append(msgs, "Rating cannot exceed 5")
	}
	return msgs
}

// JourneyCreate validates a new place of interest. Coordinates are
// mandatory because every place must be discoverable by proximity.
func JourneyCreate(p *models.JourneyPayload) RuleSet {
	rs := RuleSet{
		StringRule{Name: "Name", Value: p.Name, Required: true, Min: 2, Max: 100},
		StringRule{Name: "Description", Value: p.Description, Max: 1000},
		EnumRule{Name: "Place type", Value: p.Type, Allowed: models.JourneyTypes},
	}
	if p.Location == nil || p.Location.Coordinates == nil {
		rs = append(rs, failRule{"Location coordinates are required"})
		return rs
	}
	rs = append(rs, coordinateRules(p.Location.Coordinates, true)...)
	return rs
}

func JourneyUpdate(p *models.JourneyPayload) RuleSet {
	rs := RuleSet{
		StringRule{Name: "Name", Value: p.Name, Min: 2, Max: 100},
		StringRule{Name: "Description", Value: p.Description, Max: 1000},
		EnumRule{Name: "Place type", Value: p.Type, Allowed: models.JourneyTypes},
	}
	if p.Location != nil && p.Location.Coordinates != nil {
		c := p.Location.Coordinates
		if c.Latitude.Present != c.Longitude.Present {
			rs = append(rs, failRule{"Latitude and longitude must be provided together"})
		} else {
			rs = append(rs, coordinateRules(c, false)...)
		}
	}
	return rs
}

// Coordinates validates a latitude/longitude pair against world bounds.
func Coordinates(lat, lng normalize.FlexFloat) RuleSet {
	return coordinateRules(&models.JourneyCoordinatesPayload{Latitude: lat, Longitude: lng}, true)
}

func coordinateRules(c *models.JourneyCoordinatesPayload, required bool) RuleSet {
	return RuleSet{
		NumberRule{Name: "Latitude", Value: c.Latitude, Required: required, Min: -90, Max: 90},
		NumberRule{Name: "Longitude", Value: c.Longitude, Required: required, Min: -180, Max: 180},
	}
}

type failRule struct{ msg string }

func (f failRule) Check() []string { return []string{f.msg} }

// Search validates listing/journey search query parameters.
func Search(q url.Values) RuleSet {
	rs := RuleSet{}
	if v := q.Get("minPrice"); v != "" {
		rs = append(rs, NumberRule{Name: "Minimum price", Value: flexOf(v), Min: 0, Max: 1000000})
	}
	if v := q.Get("maxPrice"); v != "" {
		rs = append(rs, NumberRule{Name: "Maximum price", Value: flexOf(v), Min: 0, Max: 1000000})
	}
	if v := q.Get("q"); v != "" {
		rs = append(rs, StringRule{Name: "Query", Value: &v, Min: 1, Max: 100})
	}
	if v := q.Get("location"); v != "" {
		rs = append(rs, StringRule{Name: "Location", Value: &v, Min: 1, Max: 100})
	}
	if v := q.Get("country"); v != "" {
		rs = append(rs, StringRule{Name: "Country", Value: &v, Min: 1, Max: 100})
	}
	return rs
}

func flexOf(s string) normalize.FlexFloat {
	var f normalize.FlexFloat
	_ = f.UnmarshalJSON([]byte(`"` + s + `"`))
	if !f.Present {
		// a non-numeric string still violates the numeric bound
		f = normalize.FlexFloat{Value: -1, Present: true}
	}
	return f
}

func imageURL(img *models.ImageRef) string {
	if img == nil {
		return ""
	}
	return img.URL
}
