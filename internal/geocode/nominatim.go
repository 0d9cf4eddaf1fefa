package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pepiancookingclass/tasty/internal/geo"
)

// NominatimConfig configures the Nominatim search client.
type NominatimConfig struct {
	// BaseURL of the Nominatim instance, without the /search path.
	BaseURL string

	// UserAgent identifies this service to the remote API. Nominatim's usage
	// policy requires a real identifier with a contact; this is configuration,
	// not business logic.
	UserAgent string

	// Language hint for results (accept-language parameter).
	Language string

	// ResultLimit caps candidates per query.
	ResultLimit int

	// ViewboxDegrees is the half-width of the bounding box around the bias
	// point. 0.2° is roughly 22 km at Guatemala's latitude.
	ViewboxDegrees float64

	// Timeout is the hard per-request deadline.
	Timeout time.Duration
}

// NominatimProvider implements Provider against a Nominatim-compatible
// /search endpoint. One outbound GET per Search call, no retries.
type NominatimProvider struct {
	baseURL   string
	userAgent string
	language  string
	limit     int
	viewbox   float64
	timeout   time.Duration
	client    *http.Client
	logger    *slog.Logger
}

// NewNominatimProvider creates a Nominatim search client, applying defaults
// for unset config fields.
func NewNominatimProvider(cfg NominatimConfig, logger *slog.Logger) *NominatimProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "TastyMarketplace/1.0 (soporte@tasty.gt)"
	}
	if cfg.Language == "" {
		cfg.Language = "es"
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = 5
	}
	if cfg.ViewboxDegrees <= 0 {
		cfg.ViewboxDegrees = 0.2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}

	return &NominatimProvider{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		language:  cfg.Language,
		limit:     cfg.ResultLimit,
		viewbox:   cfg.ViewboxDegrees,
		timeout:   cfg.Timeout,
		client:    &http.Client{},
		logger:    logger,
	}
}

// Search issues a bounded text search biased to a viewbox around the
// reference point. Results outside the viewbox are excluded (bounded=1).
func (p *NominatimProvider) Search(ctx context.Context, query string, bias geo.Coordinate) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.searchURL(query, bias), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w (%s)", ErrTimeout, p.timeout)
		}
		return nil, fmt.Errorf("failed to reach geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	var candidates []Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		// The deadline can also strike mid-body; that is still a timeout,
		// not a malformed response.
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w (%s)", ErrTimeout, p.timeout)
		}
		return nil, fmt.Errorf("failed to parse geocoder response: %w", err)
	}

	if p.logger != nil {
		p.logger.Debug("geocoder search",
			"query", query,
			"candidates", len(candidates),
			"duration", time.Since(start),
		)
	}

	return candidates, nil
}

// searchURL builds the /search URL: free-text query, JSON format, result
// limit, language hint and a hard viewbox restriction around the bias point.
func (p *NominatimProvider) searchURL(query string, bias geo.Coordinate) string {
	d := p.viewbox
	viewbox := fmt.Sprintf("%s,%s,%s,%s",
		formatCoord(bias.Lng-d), // left
		formatCoord(bias.Lat+d), // top
		formatCoord(bias.Lng+d), // right
		formatCoord(bias.Lat-d), // bottom
	)

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(p.limit))
	params.Set("viewbox", viewbox)
	params.Set("bounded", "1")
	params.Set("accept-language", p.language)

	return p.baseURL + "/search?" + params.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
