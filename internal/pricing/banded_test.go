package pricing_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/pepiancookingclass/tasty/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardQuoter() *pricing.BandedQuoter {
	return pricing.NewBandedQuoter([]pricing.Band{
		{MaxKm: 3, FeeCents: 1500},
		{MaxKm: 6, FeeCents: 2500},
		{MaxKm: 10, FeeCents: 3500},
	}, 0, "GTQ")
}

func TestBandedQuoter_PicksBandByDistance(t *testing.T) {
	q := standardQuoter()

	tests := []struct {
		distanceKm float64
		wantFee    int64
	}{
		{0, 1500},
		{2.9, 1500},
		{3.0, 1500},
		{3.1, 2500},
		{6.0, 2500},
		{9.9, 3500},
		{10.0, 3500},
	}

	for _, tt := range tests {
		quote, err := q.Quote(context.Background(), "creator-1", tt.distanceKm)
		require.NoError(t, err)
		assert.True(t, quote.WithinServiceRadius)
		assert.Equal(t, tt.wantFee, quote.FeeCents)
		assert.Equal(t, "GTQ", quote.Currency)
	}
}

func TestBandedQuoter_BeyondServiceRadius(t *testing.T) {
	q := standardQuoter()

	quote, err := q.Quote(context.Background(), "creator-1", 10.5)
	require.NoError(t, err)
	assert.False(t, quote.WithinServiceRadius)
	assert.Zero(t, quote.FeeCents)
}

func TestBandedQuoter_ExplicitWiderRadius(t *testing.T) {
	q := pricing.NewBandedQuoter([]pricing.Band{{MaxKm: 3, FeeCents: 1500}}, 8, "GTQ")

	// Inside the radius but past the last band: outermost band applies.
	quote, err := q.Quote(context.Background(), "creator-1", 5)
	require.NoError(t, err)
	assert.True(t, quote.WithinServiceRadius)
	assert.Equal(t, int64(1500), quote.FeeCents)
}

func TestBandedQuoter_RequiresCreator(t *testing.T) {
	q := standardQuoter()

	_, err := q.Quote(context.Background(), "", 1)
	assert.True(t, errors.Is(err, pricing.ErrCreatorRequired))
}

func TestBandedQuoter_RejectsInvalidDistance(t *testing.T) {
	q := standardQuoter()

	for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := q.Quote(context.Background(), "creator-1", d)
		assert.True(t, errors.Is(err, pricing.ErrInvalidDistance))
	}
}

func TestBandedQuoter_NoBandsConfigured(t *testing.T) {
	q := pricing.NewBandedQuoter(nil, 0, "GTQ")

	_, err := q.Quote(context.Background(), "creator-1", 1)
	assert.True(t, errors.Is(err, pricing.ErrNoBands))
}

func TestBandedQuoter_SortsUnorderedBands(t *testing.T) {
	q := pricing.NewBandedQuoter([]pricing.Band{
		{MaxKm: 10, FeeCents: 3500},
		{MaxKm: 3, FeeCents: 1500},
	}, 0, "")

	quote, err := q.Quote(context.Background(), "creator-1", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), quote.FeeCents)
	assert.Equal(t, "GTQ", quote.Currency, "default currency applies")
}
