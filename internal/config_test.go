package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(3000), cfg.Port)
	assert.Equal(t, 8*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, 5, cfg.Geocoder.ResultLimit)
	assert.Equal(t, 0.5, cfg.Validation.ThresholdKm)
	assert.Equal(t, 4096, cfg.Validation.CacheSize)
}

func TestNewConfig_IntValuesBeyond16Bits(t *testing.T) {
	t.Setenv("GEOCODER_TIMEOUT_MS", "120000")
	t.Setenv("GEOCODE_CACHE_SIZE", "100000")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Geocoder.Timeout)
	assert.Equal(t, 100000, cfg.Validation.CacheSize)
}

func TestNewConfig_RejectsNonPositiveThreshold(t *testing.T) {
	t.Setenv("VALIDATION_THRESHOLD_KM", "-0.5")

	_, err := NewConfig()
	assert.Error(t, err)
}
