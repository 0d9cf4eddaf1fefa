package geocode

import (
	"context"
	"errors"
	"fmt"

	"github.com/pepiancookingclass/tasty/internal/geo"
)

// ErrTimeout is returned when the geocoding service does not answer within
// the configured deadline. Callers treat this as a soft failure.
var ErrTimeout = errors.New("el geocodificador no respondió a tiempo")

// Provider defines the interface for text-search geocoding.
// Implementations issue one outbound request per call and do not retry;
// retry strategy belongs to the validation cascade, not the provider.
type Provider interface {
	// Search resolves a free-text query to candidate coordinates,
	// biased toward a viewbox around the given reference point.
	// An empty candidate list with a nil error means the service answered
	// but found nothing.
	Search(ctx context.Context, query string, bias geo.Coordinate) ([]Candidate, error)
}

// Candidate is a single geocoding result as it arrives on the wire.
// Coordinates are numeric-convertible strings; the selector parses and
// filters them.
type Candidate struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// HTTPError is returned when the geocoding service answers with a
// non-success status. It is a hard failure: the validation cascade aborts
// instead of falling through to looser queries.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Nominatim respondió %d", e.Status)
}

// IsHTTPError reports whether err is a provider HTTP failure and, if so,
// returns it.
func IsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
