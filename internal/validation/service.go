package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pepiancookingclass/tasty/internal/domain"
	"github.com/pepiancookingclass/tasty/internal/geo"
	"github.com/pepiancookingclass/tasty/internal/geocode"
	"github.com/pepiancookingclass/tasty/internal/telemetry"
)

const (
	// DefaultThresholdKm is the exact-match band used when the caller does
	// not supply a threshold (checkout default: 500 m).
	DefaultThresholdKm = 0.5

	// ApproxThresholdKm is the outer tolerance. Beyond it no coordinate
	// mismatch is accepted regardless of the caller's threshold. Fixed
	// policy, not caller-configurable.
	ApproxThresholdKm = 3.0
)

// User-facing messages. Operator and customer language is Spanish.
const (
	MsgIncompleteAddress   = "dirección incompleta"
	MsgInvalidReference    = "coordenada de referencia inválida"
	MsgAddressNotFound     = "la dirección no fue encontrada por el geocodificador"
	MsgApproximateMatch    = "coincidencia aproximada"
	MsgProviderUnreachable = "no se pudo contactar al geocodificador"
)

// Service is the single entry point the checkout workflow invokes.
type Service interface {
	// Validate decides whether the structured address and the map pin refer
	// to the same place. thresholdKm <= 0 selects the default. Every failure
	// mode comes back as a field on the result; Validate never panics and
	// never returns an error.
	Validate(ctx context.Context, addr domain.Address, pin geo.Coordinate, thresholdKm float64) domain.ValidationResult
}

type service struct {
	provider  geocode.Provider
	cache     *geocode.Cache
	logger    *slog.Logger
	threshold float64

	// group collapses concurrent identical queries into one provider call.
	group singleflight.Group
}

// NewService creates the address validation service. The cache is shared
// across all calls for the life of the process.
func NewService(provider geocode.Provider, cache *geocode.Cache, logger *slog.Logger, thresholdKm float64) Service {
	if cache == nil {
		cache = geocode.NewCache(geocode.DefaultCacheSize)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if thresholdKm <= 0 {
		thresholdKm = DefaultThresholdKm
	}

	return &service{
		provider:  provider,
		cache:     cache,
		logger:    logger,
		threshold: thresholdKm,
	}
}

// errNoCandidate signals an empty (but successful) provider answer inside
// the singleflight closure.
var errNoCandidate = errors.New("no candidate")

type tier struct {
	name  string
	query string
}

func (s *service) Validate(ctx context.Context, addr domain.Address, pin geo.Coordinate, thresholdKm float64) domain.ValidationResult {
	if thresholdKm <= 0 {
		thresholdKm = s.threshold
	}

	if !pin.Valid() {
		return s.done(domain.ValidationResult{Error: MsgInvalidReference})
	}

	primary := geocode.BuildQuery(addr)
	if primary == "" {
		return s.done(domain.ValidationResult{Error: MsgIncompleteAddress})
	}

	tiers := []tier{{name: "primary", query: primary}}
	if zoneQuery, ok := geocode.BuildZoneQuery(addr); ok && zoneQuery != primary {
		tiers = append(tiers, tier{name: "zone", query: zoneQuery})
	}
	if fallback := geocode.BuildFallbackQuery(addr); fallback != "" && fallback != tiers[len(tiers)-1].query && fallback != primary {
		tiers = append(tiers, tier{name: "fallback", query: fallback})
	}

	var (
		matched     geo.Coordinate
		matchedTier string
		found       bool
	)

	for _, t := range tiers {
		coord, ok, err := s.resolve(ctx, t.query, pin)
		if err != nil {
			// Hard provider errors abort the cascade; only empty results
			// fall through to looser queries.
			if httpErr, isHTTP := geocode.IsHTTPError(err); isHTTP {
				s.logger.Warn("geocoder rejected query",
					"tier", t.name, "status", httpErr.Status)
				return s.done(domain.ValidationResult{Error: httpErr.Error()})
			}
			if errors.Is(err, geocode.ErrTimeout) {
				s.logger.Warn("geocoder timed out", "tier", t.name)
				return s.done(domain.ValidationResult{Warning: err.Error()})
			}
			s.logger.Warn("geocoder unreachable", "tier", t.name, "error", err)
			return s.done(domain.ValidationResult{Error: MsgProviderUnreachable})
		}
		if ok {
			matched = coord
			matchedTier = t.name
			found = true
			break
		}
		s.logger.Debug("no candidates for tier", "tier", t.name, "query", t.query)
	}

	if !found {
		return s.done(domain.ValidationResult{Warning: MsgAddressNotFound})
	}

	if telemetry.Engine != nil {
		telemetry.Engine.TierResolutions.WithLabelValues(matchedTier).Inc()
	}

	return s.done(s.verdict(matched, geo.DistanceKm(matched, pin), thresholdKm))
}

// verdict applies the two-band decision to an already-computed distance.
// Both band edges are inclusive: a pin at exactly thresholdKm is an exact
// match, one at exactly ApproxThresholdKm is an approximate one.
func (s *service) verdict(matched geo.Coordinate, distance, thresholdKm float64) domain.ValidationResult {
	result := domain.ValidationResult{
		DistanceKm: distance,
		Matched:    &matched,
	}

	switch {
	case distance <= thresholdKm:
		result.OK = true
	case distance <= ApproxThresholdKm:
		result.OK = true
		result.Warning = MsgApproximateMatch
	default:
		result.Warning = fmt.Sprintf(
			"la dirección está a %.0f m del punto seleccionado (límite %.0f m)",
			distance*1000, thresholdKm*1000,
		)
	}

	return result
}

// resolve turns one query into a coordinate: cache first, then one shared
// provider call per distinct normalized query. Only successful resolutions
// are cached. Returns ok=false with a nil error when the provider answered
// with no usable candidate.
func (s *service) resolve(ctx context.Context, query string, pin geo.Coordinate) (geo.Coordinate, bool, error) {
	if coord, ok := s.cache.Get(query); ok {
		if telemetry.Engine != nil {
			telemetry.Engine.CacheHits.Inc()
		}
		return coord, true, nil
	}
	if telemetry.Engine != nil {
		telemetry.Engine.CacheMisses.Inc()
	}

	key := geocode.NormalizeQuery(query)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Another flight may have resolved this query while we waited.
		if coord, ok := s.cache.Get(query); ok {
			return coord, nil
		}

		start := time.Now()
		candidates, err := s.provider.Search(ctx, query, pin)
		s.observeProvider(candidates, err, time.Since(start))
		if err != nil {
			return nil, err
		}

		coord, ok := geocode.Nearest(candidates, pin)
		if !ok {
			return nil, errNoCandidate
		}

		s.cache.Put(query, coord)
		return coord, nil
	})
	if errors.Is(err, errNoCandidate) {
		return geo.Coordinate{}, false, nil
	}
	if err != nil {
		return geo.Coordinate{}, false, err
	}

	return v.(geo.Coordinate), true, nil
}

func (s *service) observeProvider(candidates []geocode.Candidate, err error, elapsed time.Duration) {
	if telemetry.Engine == nil {
		return
	}
	telemetry.Engine.ProviderLatency.Observe(elapsed.Seconds())

	result := "ok"
	switch {
	case errors.Is(err, geocode.ErrTimeout):
		result = "timeout"
	case err != nil:
		if _, isHTTP := geocode.IsHTTPError(err); isHTTP {
			result = "http_error"
		} else {
			result = "error"
		}
	case len(candidates) == 0:
		result = "empty"
	}
	telemetry.Engine.ProviderRequests.WithLabelValues(result).Inc()
}

// done records the final outcome metric before handing the result back.
func (s *service) done(result domain.ValidationResult) domain.ValidationResult {
	if telemetry.Engine != nil {
		outcome := "rejected"
		switch {
		case result.Error != "":
			outcome = "error"
		case result.OK && result.Warning != "":
			outcome = "accepted_approx"
		case result.OK:
			outcome = "accepted"
		}
		telemetry.Engine.ValidationsTotal.WithLabelValues(outcome).Inc()
	}
	return result
}
