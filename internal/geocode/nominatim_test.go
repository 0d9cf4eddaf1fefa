package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pepiancookingclass/tasty/internal/geo"
	"github.com/pepiancookingclass/tasty/internal/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *geocode.NominatimProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return geocode.NewNominatimProvider(geocode.NominatimConfig{
		BaseURL:   srv.URL,
		UserAgent: "TastyMarketplace-test/1.0",
		Timeout:   timeout,
	}, nil)
}

func TestNominatimProvider_Search(t *testing.T) {
	var gotQuery map[string]string
	var gotUserAgent string

	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":               q.Get("q"),
			"format":          q.Get("format"),
			"limit":           q.Get("limit"),
			"viewbox":         q.Get("viewbox"),
			"bounded":         q.Get("bounded"),
			"accept-language": q.Get("accept-language"),
		}
		gotUserAgent = r.Header.Get("User-Agent")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"14.6349","lon":"-90.5069"},{"lat":"14.70","lon":"-90.55"}]`))
	}, time.Second)

	bias := geo.Coordinate{Lat: 14.6, Lng: -90.5}
	candidates, err := provider.Search(context.Background(), "zona 1, Guatemala", bias)

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, geocode.Candidate{Lat: "14.6349", Lon: "-90.5069"}, candidates[0])

	assert.Equal(t, "zona 1, Guatemala", gotQuery["q"])
	assert.Equal(t, "jsonv2", gotQuery["format"])
	assert.Equal(t, "5", gotQuery["limit"])
	assert.Equal(t, "1", gotQuery["bounded"])
	assert.Equal(t, "es", gotQuery["accept-language"])
	// left,top,right,bottom around the bias point, ±0.2°
	box := strings.Split(gotQuery["viewbox"], ",")
	require.Len(t, box, 4)
	for i, want := range []float64{-90.7, 14.8, -90.3, 14.4} {
		v, perr := strconv.ParseFloat(box[i], 64)
		require.NoError(t, perr)
		assert.InDelta(t, want, v, 1e-9)
	}
	assert.Equal(t, "TastyMarketplace-test/1.0", gotUserAgent)
}

func TestNominatimProvider_EmptyResult(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}, time.Second)

	candidates, err := provider.Search(context.Background(), "calle inexistente", geo.Coordinate{})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestNominatimProvider_HTTPError(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, time.Second)

	_, err := provider.Search(context.Background(), "zona 1", geo.Coordinate{})
	require.Error(t, err)

	httpErr, ok := geocode.IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Nominatim respondió 500", httpErr.Error())
}

func TestNominatimProvider_Timeout(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}, 20*time.Millisecond)

	_, err := provider.Search(context.Background(), "zona 1", geo.Coordinate{})
	assert.True(t, errors.Is(err, geocode.ErrTimeout))
}

func TestNominatimProvider_TimeoutWhileReadingBody(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		// Headers are out, the body never arrives.
		time.Sleep(200 * time.Millisecond)
	}, 20*time.Millisecond)

	_, err := provider.Search(context.Background(), "zona 1", geo.Coordinate{})
	assert.True(t, errors.Is(err, geocode.ErrTimeout), "got %v", err)
}

func TestNominatimProvider_BadJSON(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"`))
	}, time.Second)

	_, err := provider.Search(context.Background(), "zona 1", geo.Coordinate{})
	assert.Error(t, err)
}
