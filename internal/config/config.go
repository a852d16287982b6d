package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Upstream endpoints.
	GeocodingURL string
	ForecastURL  string

	// Language for geocoding results.
	Language string

	// DefaultCity is resolved on first run when no place is stored.
	DefaultCity string

	// HTTPTimeout applies to every outbound request.
	HTTPTimeout time.Duration

	// SuggestDebounce is how long the input must be idle before an
	// autocomplete fetch fires.
	SuggestDebounce time.Duration

	// RefreshInterval controls how often the serve mode re-fetches the
	// saved place's forecast.
	RefreshInterval time.Duration

	// StorePath is the sqlite database holding the last searched place.
	StorePath string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.GeocodingURL = getenvDefault("WEATHER_GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search")
	cfg.ForecastURL = getenvDefault("WEATHER_FORECAST_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.Language = getenvDefault("WEATHER_LANGUAGE", "pt")
	cfg.DefaultCity = getenvDefault("WEATHER_DEFAULT_CITY", "São Paulo")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	debounce, err := getenvDuration("SUGGEST_DEBOUNCE", "250ms")
	if err != nil {
		return nil, fmt.Errorf("invalid SUGGEST_DEBOUNCE: %w", err)
	}
	cfg.SuggestDebounce = debounce

	refresh, err := getenvDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.StorePath = getenvDefault("STORE_PATH", defaultStorePath())
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "weather-app.db"
	}
	return filepath.Join(dir, "weather-app", "weather-app.db")
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
