package geocode

import (
	"context"
	"sync"

	"github.com/pepiancookingclass/tasty/internal/geo"
)

// MockProvider is a test implementation of Provider. It records every query
// so tests can assert how many network calls the engine would have issued.
type MockProvider struct {
	SearchFunc func(ctx context.Context, query string, bias geo.Coordinate) ([]Candidate, error)

	mu      sync.Mutex
	queries []string
}

// Search delegates to SearchFunc, or returns no candidates when unset.
func (m *MockProvider) Search(ctx context.Context, query string, bias geo.Coordinate) ([]Candidate, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, bias)
	}
	return nil, nil
}

// Queries returns the queries seen so far, in order.
func (m *MockProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

// CallCount returns how many times Search was invoked.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}
