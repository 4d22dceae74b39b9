package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"agrocampo-be/internal/shipping"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	MapsAPIKey    string
	RedisAddr     string
	RedisPassword string

	ShippingRates shipping.Rates
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),

		MapsAPIKey:    os.Getenv("MAPS_APIKEY"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ShippingRates: loadRates(),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func loadRates() shipping.Rates {
	rates := shipping.DefaultRates()
	rates.PerKm = envFloat("SHIPPING_RATE_PER_KM", rates.PerKm)
	rates.PerKg = envFloat("SHIPPING_RATE_PER_KG", rates.PerKg)
	rates.Minimum = envFloat("SHIPPING_MINIMUM_COST", rates.Minimum)
	return rates
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		log.Printf("ignoring invalid %s=%q", key, raw)
		return fallback
	}
	return v
}
