package pricing

import "context"

// MockQuoter is a test implementation of Quoter.
type MockQuoter struct {
	QuoteFunc func(ctx context.Context, creatorID string, distanceKm float64) (Quote, error)
}

// Quote delegates to QuoteFunc, or returns a free in-radius quote when unset.
func (m *MockQuoter) Quote(ctx context.Context, creatorID string, distanceKm float64) (Quote, error) {
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, creatorID, distanceKm)
	}
	return Quote{Currency: "GTQ", WithinServiceRadius: true}, nil
}
