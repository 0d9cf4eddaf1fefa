package geo_test

import (
	"math"
	"testing"

	"github.com/pepiancookingclass/tasty/internal/geo"
	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_SamePointIsZero(t *testing.T) {
	p := geo.Coordinate{Lat: 14.6349, Lng: -90.5069} // Plaza de la Constitución, Guatemala City

	assert.Equal(t, 0.0, geo.DistanceKm(p, p))
}

func TestDistanceKm_Symmetry(t *testing.T) {
	points := []geo.Coordinate{
		{Lat: 14.6349, Lng: -90.5069},
		{Lat: 14.5586, Lng: -90.7295}, // Antigua Guatemala
		{Lat: 15.4710, Lng: -90.3711}, // Cobán
		{Lat: -33.4489, Lng: -70.6693},
		{Lat: 0, Lng: 0},
	}

	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, geo.DistanceKm(a, b), geo.DistanceKm(b, a))
		}
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Guatemala City center to Antigua Guatemala, roughly 25.5 km.
	gua := geo.Coordinate{Lat: 14.6349, Lng: -90.5069}
	antigua := geo.Coordinate{Lat: 14.5586, Lng: -90.7295}

	d := geo.DistanceKm(gua, antigua)
	assert.InDelta(t, 25.5, d, 1.0)
}

func TestDistanceKm_NonNegative(t *testing.T) {
	a := geo.Coordinate{Lat: 14.6349, Lng: -90.5069}
	b := geo.Coordinate{Lat: 14.6349000000001, Lng: -90.5069000000001}

	d := geo.DistanceKm(a, b)
	assert.False(t, math.IsNaN(d))
	assert.GreaterOrEqual(t, d, 0.0)
}

func TestCoordinate_Valid(t *testing.T) {
	tests := []struct {
		name  string
		coord geo.Coordinate
		want  bool
	}{
		{"guatemala city", geo.Coordinate{Lat: 14.6349, Lng: -90.5069}, true},
		{"origin", geo.Coordinate{}, true},
		{"lat out of range", geo.Coordinate{Lat: 91, Lng: 0}, false},
		{"lng out of range", geo.Coordinate{Lat: 0, Lng: -181}, false},
		{"nan lat", geo.Coordinate{Lat: math.NaN(), Lng: 0}, false},
		{"inf lng", geo.Coordinate{Lat: 0, Lng: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coord.Valid())
		})
	}
}
