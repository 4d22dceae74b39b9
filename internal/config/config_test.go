package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "agro")
	t.Setenv("APP_PORT", "8080")

	cfg := LoadConfig()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "agro", cfg.DBUser)
	assert.Equal(t, "8080", cfg.AppPort)
}

func TestLoadRates_Defaults(t *testing.T) {
	t.Setenv("SHIPPING_RATE_PER_KM", "")
	t.Setenv("SHIPPING_RATE_PER_KG", "")
	t.Setenv("SHIPPING_MINIMUM_COST", "")

	rates := loadRates()

	assert.Equal(t, 2500.0, rates.PerKm)
	assert.Equal(t, 50.0, rates.PerKg)
	assert.Equal(t, 20000.0, rates.Minimum)
}

func TestLoadRates_Overrides(t *testing.T) {
	t.Setenv("SHIPPING_RATE_PER_KM", "1200")
	t.Setenv("SHIPPING_RATE_PER_KG", "30")
	t.Setenv("SHIPPING_MINIMUM_COST", "5000")

	rates := loadRates()

	assert.Equal(t, 1200.0, rates.PerKm)
	assert.Equal(t, 30.0, rates.PerKg)
	assert.Equal(t, 5000.0, rates.Minimum)
}

func TestLoadRates_InvalidValueFallsBack(t *testing.T) {
	t.Setenv("SHIPPING_RATE_PER_KM", "not-a-number")
	t.Setenv("SHIPPING_RATE_PER_KG", "-10")

	rates := loadRates()

	assert.Equal(t, 2500.0, rates.PerKm)
	assert.Equal(t, 50.0, rates.PerKg)
}
