package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-sample-server/internal/weather"
	"github.com/i474232898/weather-sample-server/internal/weather/providers"
)

type AppConfig struct {
	Port string

	// Catalog document (JSON, or YAML by extension).
	CatalogPath string

	// Directories served from.
	BuildDir      string
	SoundsPath    string
	GeneratedPath string

	// External audio generation step run once before serving; skipped when empty.
	AudioGenPath        string
	AudioGenInterpreter string

	// Weather classification strategy: "stub" or "live".
	WeatherMode        string
	WeatherAPIEndpoint string
	WeatherAPIKey      string

	// HTTPTimeout bounds each outbound call; WeatherTimeout bounds the whole
	// lookup for one request including retries.
	HTTPTimeout    time.Duration
	WeatherTimeout time.Duration

	// ReadingMaxAge is how long a stored reading is reused (0 = always refetch).
	ReadingMaxAge time.Duration

	// FetchInterval controls how often readings are refreshed for Locations.
	FetchInterval time.Duration
	Locations     []weather.Location

	StoreMaxHistory int           // max number of readings per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of readings (0 = unlimited)
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.CatalogPath = os.Getenv("CONFIG_PATH")
	if cfg.CatalogPath == "" {
		return nil, errors.New("CONFIG_PATH is required")
	}

	cfg.BuildDir = getenvDefault("BUILD_DIR", "build")
	cfg.SoundsPath = getenvDefault("SOUND_PATH", "sounds")
	cfg.GeneratedPath = getenvDefault("GENERATED_PATH", "generated")
	cfg.AudioGenPath = os.Getenv("AUDIO_GEN_PATH")
	cfg.AudioGenInterpreter = getenvDefault("AUDIO_GEN_INTERPRETER", "python3")

	cfg.WeatherMode = strings.ToLower(getenvDefault("WEATHER_MODE", providers.ModeStub))
	cfg.WeatherAPIEndpoint = getenvDefault("WEATHER_API_ENDPOINT", providers.DefaultOpenWeatherEndpoint)
	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	switch cfg.WeatherMode {
	case providers.ModeStub:
	case providers.ModeLive:
		if cfg.WeatherAPIKey == "" {
			return nil, errors.New("WEATHER_API_KEY is required when WEATHER_MODE=live")
		}
	default:
		return nil, fmt.Errorf("invalid WEATHER_MODE %q", cfg.WeatherMode)
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WeatherTimeout, err = getenvDuration("WEATHER_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.ReadingMaxAge, err = getenvDuration("READING_MAX_AGE", "15m"); err != nil {
		return nil, err
	}
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	// roughly 24h at 15-minute intervals
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 96); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	locs, err := loadLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

func loadLocations() ([]weather.Location, error) {
	city := os.Getenv("WEATHER_LOCATION_CITY")
	country := os.Getenv("WEATHER_LOCATION_COUNTRY")
	if city == "" && country == "" {
		return nil, nil
	}
	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}
	var locs []weather.Location
	for i := range cities {
		locs = append(locs, weather.Location{
			City:    strings.TrimSpace(cities[i]),
			Country: strings.TrimSpace(countries[i]),
		})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
