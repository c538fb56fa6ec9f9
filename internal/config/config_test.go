package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-sample-server/internal/weather"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "collection.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "collection.json", cfg.CatalogPath)
	assert.Equal(t, "build", cfg.BuildDir)
	assert.Equal(t, "sounds", cfg.SoundsPath)
	assert.Equal(t, "generated", cfg.GeneratedPath)
	assert.Empty(t, cfg.AudioGenPath)
	assert.Equal(t, "python3", cfg.AudioGenInterpreter)
	assert.Equal(t, "stub", cfg.WeatherMode)
	assert.Equal(t, "https://api.openweathermap.org", cfg.WeatherAPIEndpoint)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, 15*time.Minute, cfg.ReadingMaxAge)
	assert.Equal(t, 15*time.Minute, cfg.FetchInterval)
	assert.Equal(t, 96, cfg.StoreMaxHistory)
	assert.Equal(t, 24*time.Hour, cfg.StoreMaxAge)
	assert.Empty(t, cfg.Locations)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/vibes/collection.yaml")
	t.Setenv("PORT", "9000")
	t.Setenv("WEATHER_MODE", "LIVE")
	t.Setenv("WEATHER_API_KEY", "k")
	t.Setenv("WEATHER_API_ENDPOINT", "http://owm.local")
	t.Setenv("READING_MAX_AGE", "0s")
	t.Setenv("WEATHER_LOCATION_CITY", "Paris, Sydney")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "FR,AU")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "live", cfg.WeatherMode)
	assert.Equal(t, "k", cfg.WeatherAPIKey)
	assert.Equal(t, "http://owm.local", cfg.WeatherAPIEndpoint)
	assert.Zero(t, cfg.ReadingMaxAge)
	assert.Equal(t, []weather.Location{{City: "Paris", Country: "FR"}, {City: "Sydney", Country: "AU"}}, cfg.Locations)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing config path", map[string]string{}, "CONFIG_PATH"},
		{"live without key", map[string]string{"CONFIG_PATH": "c.json", "WEATHER_MODE": "live"}, "WEATHER_API_KEY"},
		{"unknown mode", map[string]string{"CONFIG_PATH": "c.json", "WEATHER_MODE": "psychic"}, "WEATHER_MODE"},
		{"bad timeout", map[string]string{"CONFIG_PATH": "c.json", "WEATHER_TIMEOUT": "soon"}, "WEATHER_TIMEOUT"},
		{"bad history size", map[string]string{"CONFIG_PATH": "c.json", "STORE_MAX_HISTORY": "lots"}, "STORE_MAX_HISTORY"},
		{"negative interval", map[string]string{"CONFIG_PATH": "c.json", "FETCH_INTERVAL": "-1m"}, "FETCH_INTERVAL"},
		{"location mismatch", map[string]string{"CONFIG_PATH": "c.json", "WEATHER_LOCATION_CITY": "a,b", "WEATHER_LOCATION_COUNTRY": "x"}, "cities"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
