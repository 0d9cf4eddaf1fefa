package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pepiancookingclass/tasty/internal"
	"github.com/pepiancookingclass/tasty/internal/geocode"
	"github.com/pepiancookingclass/tasty/internal/handler/api"
	"github.com/pepiancookingclass/tasty/internal/middleware"
	"github.com/pepiancookingclass/tasty/internal/pricing"
	"github.com/pepiancookingclass/tasty/internal/router"
	"github.com/pepiancookingclass/tasty/internal/telemetry"
	"github.com/pepiancookingclass/tasty/internal/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	telemetry.InitEngine("tasty")

	// Initialize geocoder
	logger.Info("Initializing Nominatim geocoder...", "base_url", cfg.Geocoder.BaseURL)
	provider := geocode.NewNominatimProvider(geocode.NominatimConfig{
		BaseURL:        cfg.Geocoder.BaseURL,
		UserAgent:      cfg.Geocoder.UserAgent,
		Language:       cfg.Geocoder.Language,
		ResultLimit:    cfg.Geocoder.ResultLimit,
		ViewboxDegrees: cfg.Geocoder.ViewboxDegrees,
		Timeout:        cfg.Geocoder.Timeout,
	}, logger)

	cache := geocode.NewCache(cfg.Validation.CacheSize)

	// Initialize validation service
	validationService := validation.NewService(provider, cache, logger, cfg.Validation.ThresholdKm)
	logger.Info("Validation service initialized",
		"threshold_km", cfg.Validation.ThresholdKm,
		"cache_size", cfg.Validation.CacheSize,
	)

	// Initialize delivery fee quoter
	bands := make([]pricing.Band, len(cfg.Delivery.BandKm))
	for i := range cfg.Delivery.BandKm {
		bands[i] = pricing.Band{MaxKm: cfg.Delivery.BandKm[i], FeeCents: cfg.Delivery.BandFeeCents[i]}
	}
	quoter := pricing.NewBandedQuoter(bands, cfg.Delivery.MaxRadiusKm, cfg.Delivery.Currency)

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID(),
		middleware.Metrics(),
		router.Logger(logger),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		promhttp.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Register route groups
	api.NewValidateAddressHandler(validationService, quoter, logger).RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
