package domain

import "github.com/pepiancookingclass/tasty/internal/geo"

// DefaultCountry is assumed when the customer leaves the country field blank.
// The marketplace currently only serves Guatemala.
const DefaultCountry = "Guatemala"

// Address is the structured address a customer types at checkout.
// Every field is optional free text; the engine decides whether there is
// enough to geocode.
type Address struct {
	Street       string `json:"street"`
	Municipality string `json:"municipality"`
	Department   string `json:"department"`
	Country      string `json:"country"`
}

// ValidationResult is the verdict of comparing a structured address against
// the customer's map pin. OK=true always carries DistanceKm and Matched.
// Error marks hard failures (incomplete address, geocoder HTTP failure) that
// should block checkout; Warning marks soft outcomes (timeout, no match,
// approximate match, distance exceeded) the caller may accept or flag.
type ValidationResult struct {
	OK         bool            `json:"ok"`
	DistanceKm float64         `json:"distance_km,omitempty"`
	Matched    *geo.Coordinate `json:"matched_coordinate,omitempty"`
	Warning    string          `json:"warning,omitempty"`
	Error      string          `json:"error,omitempty"`
}
