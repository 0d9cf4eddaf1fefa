package geocode

import (
	"math"
	"strconv"

	"github.com/pepiancookingclass/tasty/internal/geo"
)

// Nearest picks the candidate closest to the target point. Candidates whose
// coordinates do not parse to finite numbers are dropped. Ties break toward
// the first-seen candidate (strict < while scanning in order, so the
// provider's own ranking wins). Returns false when no candidate survives.
func Nearest(candidates []Candidate, target geo.Coordinate) (geo.Coordinate, bool) {
	var (
		best     geo.Coordinate
		bestDist = math.Inf(1)
		found    bool
	)

	for _, c := range candidates {
		coord, ok := parseCandidate(c)
		if !ok {
			continue
		}
		d := geo.DistanceKm(coord, target)
		if d < bestDist {
			best = coord
			bestDist = d
			found = true
		}
	}

	return best, found
}

func parseCandidate(c Candidate) (geo.Coordinate, bool) {
	lat, err := strconv.ParseFloat(c.Lat, 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(c.Lon, 64)
	if err != nil {
		return geo.Coordinate{}, false
	}

	coord := geo.Coordinate{Lat: lat, Lng: lon}
	return coord, coord.Valid()
}
