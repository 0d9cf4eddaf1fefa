package pricing

import (
	"context"
	"math"
	"sort"
)

// Band defines one distance band: deliveries up to MaxKm cost FeeCents.
type Band struct {
	MaxKm    float64
	FeeCents int64
}

// BandedQuoter prices deliveries by distance band, identically for every
// creator. Used until per-creator pricing policies exist.
type BandedQuoter struct {
	bands    []Band
	radiusKm float64
	currency string
}

// NewBandedQuoter creates a distance-banded quoter. Bands are sorted by
// MaxKm; the service radius is the largest band's MaxKm unless a larger
// radius is given explicitly.
func NewBandedQuoter(bands []Band, radiusKm float64, currency string) *BandedQuoter {
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MaxKm < sorted[j].MaxKm })

	if len(sorted) > 0 && radiusKm < sorted[len(sorted)-1].MaxKm {
		radiusKm = sorted[len(sorted)-1].MaxKm
	}
	if currency == "" {
		currency = "GTQ"
	}

	return &BandedQuoter{bands: sorted, radiusKm: radiusKm, currency: currency}
}

// Quote picks the first band whose MaxKm covers the distance.
func (q *BandedQuoter) Quote(ctx context.Context, creatorID string, distanceKm float64) (Quote, error) {
	if creatorID == "" {
		return Quote{}, ErrCreatorRequired
	}
	if distanceKm < 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return Quote{}, ErrInvalidDistance
	}
	if len(q.bands) == 0 {
		return Quote{}, ErrNoBands
	}

	if distanceKm > q.radiusKm {
		return Quote{Currency: q.currency, WithinServiceRadius: false}, nil
	}

	for _, b := range q.bands {
		if distanceKm <= b.MaxKm {
			return Quote{
				FeeCents:            b.FeeCents,
				Currency:            q.currency,
				WithinServiceRadius: true,
			}, nil
		}
	}

	// Distance is inside the radius but past the last band; charge the
	// outermost band.
	last := q.bands[len(q.bands)-1]
	return Quote{
		FeeCents:            last.FeeCents,
		Currency:            q.currency,
		WithinServiceRadius: true,
	}, nil
}
