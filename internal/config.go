package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	LogLevel   string
	Port       uint16
	Geocoder   GeocoderConfig
	Validation ValidationConfig
	Delivery   DeliveryConfig
}

// GeocoderConfig holds the Nominatim client configuration.
type GeocoderConfig struct {
	BaseURL        string
	UserAgent      string
	Language       string
	ResultLimit    int
	ViewboxDegrees float64
	Timeout        time.Duration
}

// ValidationConfig holds address validation tuning.
type ValidationConfig struct {
	// ThresholdKm is the default exact-match radius. Callers may
	// override it per request.
	ThresholdKm float64
	// CacheSize bounds the geocoding result cache (entries).
	CacheSize int
}

// DeliveryConfig holds the distance-banded delivery fee table.
// Band limits and fees are parallel lists; BandKm[i] pairs with BandFeeCents[i].
type DeliveryConfig struct {
	BandKm       []float64
	BandFeeCents []int64
	MaxRadiusKm  float64
	Currency     string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvPort("PORT", 3000),
		Geocoder: GeocoderConfig{
			BaseURL:        getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:      getEnv("NOMINATIM_USER_AGENT", "TastyMarketplace/1.0 (soporte@tasty.gt)"),
			Language:       getEnv("GEOCODER_LANGUAGE", "es"),
			ResultLimit:    getEnvInt("GEOCODER_RESULT_LIMIT", 5),
			ViewboxDegrees: getEnvFloat("GEOCODER_VIEWBOX_DEGREES", 0.2),
			Timeout:        time.Duration(getEnvInt("GEOCODER_TIMEOUT_MS", 8000)) * time.Millisecond,
		},
		Validation: ValidationConfig{
			ThresholdKm: getEnvFloat("VALIDATION_THRESHOLD_KM", 0.5),
			CacheSize:   getEnvInt("GEOCODE_CACHE_SIZE", 4096),
		},
		Delivery: DeliveryConfig{
			BandKm:       []float64{3, 6, 10},
			BandFeeCents: []int64{1500, 2500, 3500},
			MaxRadiusKm:  getEnvFloat("DELIVERY_MAX_RADIUS_KM", 10),
			Currency:     getEnv("DELIVERY_CURRENCY", "GTQ"),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Geocoder.UserAgent == "" {
		return nil, fmt.Errorf("NOMINATIM_USER_AGENT must not be empty; Nominatim rejects anonymous clients")
	}
	if cfg.Validation.ThresholdKm <= 0 {
		return nil, fmt.Errorf("VALIDATION_THRESHOLD_KM must be positive, got %v", cfg.Validation.ThresholdKm)
	}
	if len(cfg.Delivery.BandKm) != len(cfg.Delivery.BandFeeCents) {
		return nil, fmt.Errorf("delivery band limits and fees must have the same length")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvPort(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var portValue uint16
		if _, err := fmt.Sscanf(value, "%d", &portValue); err == nil {
			return portValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
