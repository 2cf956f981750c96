package normalize

// GeoPoint is the GeoJSON mirror of a latitude/longitude pair. The storage
// layer's 2dsphere index requires coordinates as [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// MirrorGeo recomputes the GeoJSON point from a lat/lng pair. Callers must
// invoke it on every write that touches the pair so the two never diverge.
func MirrorGeo(latitude, longitude float64) GeoPoint {
	return GeoPoint{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}
