package models

import "wanderlust/normalize"

// Mutation payloads. Optional fields are pointers (or nil-able flex slices)
// so update handlers can tell "absent" from "empty". List-valued and flag
// fields use the normalize flex types, which coerce form-style submissions
// (comma-separated strings, "true"/"false" literals) while decoding.

type ChefPayload struct {
	Available    normalize.FlexBool    `json:"available"`
	Cuisines     normalize.FlexStrings `json:"cuisines"`
	PricePerMeal normalize.FlexFloat   `json:"pricePerMeal"`
}

type TrainingOfferPayload struct {
	Available       normalize.FlexBool    `json:"available"`
	Instructor      string                `json:"instructor"`
	MonthlyPrice    normalize.FlexFloat   `json:"monthlyPrice"`
	PricePerSession normalize.FlexFloat   `json:"pricePerSession"`
	DayPassPrice    normalize.FlexFloat   `json:"dayPassPrice"`
	Description     string                `json:"description"`
	Benefits        normalize.FlexStrings `json:"benefits"`
	Schedule        string                `json:"schedule"`
}

type TrainingPayload struct {
	Yoga   TrainingOfferPayload `json:"yoga"`
	Karate TrainingOfferPayload `json:"karate"`
	Gym    TrainingOfferPayload `json:"gym"`
}

type MassagePayload struct {
	Types     normalize.FlexStrings   `json:"types"`
	PriceList normalize.FlexPriceList `json:"priceList"`
}

type EventsPayload struct {
	Supported normalize.FlexStrings `json:"supported"`
}

type SportsPayload struct {
	Indoor  normalize.FlexStrings `json:"indoor"`
	Outdoor normalize.FlexStrings `json:"outdoor"`
}

type SportsGroundPayload struct {
	Available  normalize.FlexBool  `json:"available"`
	GroundType string              `json:"groundType"`
	HourlyRate normalize.FlexFloat `json:"hourlyRate"`
}

type ServicesPayload struct {
	Food               normalize.FlexStrings `json:"food"`
	Chef               ChefPayload           `json:"chef"`
	Training           TrainingPayload       `json:"training"`
	Massage            MassagePayload        `json:"massage"`
	Events             EventsPayload         `json:"events"`
	Sports             SportsPayload         `json:"sports"`
	SportsGroundForRent SportsGroundPayload  `json:"sportsGroundForRent"`
}

type ListingPayload struct {
	Title          *string               `json:"title"`
	PropertyType   *string               `json:"propertyType"`
	Description    *string               `json:"description"`
	Image          *ImageRef             `json:"image"`
	Price          normalize.FlexFloat   `json:"price"`
	PricingPeriod  *string               `json:"pricingPeriod"`
	Location       *string               `json:"location"`
	Country        *string               `json:"country"`
	Phone          *string               `json:"phone"`
	Email          *string               `json:"email"`
	Bedrooms       *string               `json:"bedrooms"`
	Bathrooms      *string               `json:"bathrooms"`
	MaxGuests      *int                  `json:"maxGuests"`
	Amenities      normalize.FlexStrings `json:"amenities"`
	PaymentMethods normalize.FlexStrings `json:"paymentMethods"`
	Payment        *PaymentInfo          `json:"payment"`
	Services       *ServicesPayload      `json:"services"`
}

type ReviewPayload struct {
	Comment *string             `json:"comment"`
	Rating  normalize.FlexFloat `json:"rating"`
	Author  *string             `json:"author"`
}

type JourneyCoordinatesPayload struct {
	Latitude  normalize.FlexFloat `json:"latitude"`
	Longitude normalize.FlexFloat `json:"longitude"`
}

type JourneyLocationPayload struct {
	Name        *string                    `json:"name"`
	Coordinates *JourneyCoordinatesPayload `json:"coordinates"`
	Address     *string                    `json:"address"`
	City        *string                    `json:"city"`
	State       *string                    `json:"state"`
	Country     *string                    `json:"country"`
}

type JourneyPayload struct {
	Name        *string                 `json:"name"`
	Type        *string                 `json:"type"`
	Description *string                 `json:"description"`
	Location    *JourneyLocationPayload `json:"location"`
	Amenities   normalize.FlexStrings   `json:"amenities"`
	Tags        normalize.FlexStrings   `json:"tags"`
	Pricing     *JourneyPricing         `json:"pricing"`
	Capacity    *JourneyCapacity        `json:"capacity"`
	IsActive    *bool                   `json:"isActive"`
}

// ToServices scaffolds the canonical services record from a payload: every
// missing branch becomes its default-constructed value, every list non-nil.
func (p *ServicesPayload) ToServices() Services {
	s := NewServices()
	if p == nil {
		return s
	}
	if p.Food != nil {
		s.Food = p.Food
	}
	s.Chef = ChefService{
		Available:    bool(p.Chef.Available),
		Cuisines:     orEmpty(p.Chef.Cuisines),
		PricePerMeal: p.Chef.PricePerMeal.Value,
	}
	s.Training = TrainingServices{
		Yoga:   p.Training.Yoga.toOffer(),
		Karate: p.Training.Karate.toOffer(),
		Gym:    p.Training.Gym.toOffer(),
	}
	s.Massage = MassageService{
		Types:     orEmpty(p.Massage.Types),
		PriceList: orEmptyPrices(p.Massage.PriceList),
	}
	s.Events = EventServices{Supported: orEmpty(p.Events.Supported)}
	s.Sports = SportsServices{
		Indoor:  orEmpty(p.Sports.Indoor),
		Outdoor: orEmpty(p.Sports.Outdoor),
	}
	s.SportsGroundForRent = SportsGround{
		Available:  bool(p.SportsGroundForRent.Available),
		GroundType: p.SportsGroundForRent.GroundType,
		HourlyRate: p.SportsGroundForRent.HourlyRate.Value,
	}
	return s
}

func (t TrainingOfferPayload) toOffer() TrainingOffer {
	return TrainingOffer{
		Available:       bool(t.Available),
		Instructor:      t.Instructor,
		MonthlyPrice:    t.MonthlyPrice.Value,
		PricePerSession: t.PricePerSession.Value,
		DayPassPrice:    t.DayPassPrice.Value,
		Description:     t.Description,
		Benefits:        orEmpty(t.Benefits),
		Schedule:        t.Schedule,
	}
}

func orEmpty(f normalize.FlexStrings) []string {
	if f == nil {
		return []string{}
	}
	return f
}

func orEmptyPrices(f normalize.FlexPriceList) []normalize.PriceItem {
	if f == nil {
		return []normalize.PriceItem{}
	}
	return f
}
