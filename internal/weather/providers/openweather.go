package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/weather-sample-server/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultOpenWeatherEndpoint is the public OpenWeatherMap API host.
const DefaultOpenWeatherEndpoint = "https://api.openweathermap.org"

// OpenWeatherProvider classifies current conditions reported by OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, endpoint, apiKey string) *OpenWeatherProvider {
	if endpoint == "" {
		endpoint = DefaultOpenWeatherEndpoint
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(endpoint, "/") + "/data/2.5/weather",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
		},
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch looks up the current condition id for loc and classifies it.
// Only the first entry of the "weather" array is consulted.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("%w: openweather api key is not configured", weather.ErrUnavailable)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)

		q := loc.City
		if loc.Country != "" {
			q = fmt.Sprintf("%s,%s", loc.City, loc.Country)
		}
		values.Set("q", q)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("%w: openweather: %v", weather.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Weather []struct {
			ID int `json:"id"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("%w: openweather: decode: %v", weather.ErrUnavailable, err)
	}
	if len(payload.Weather) == 0 {
		return weather.Reading{}, fmt.Errorf("%w: openweather: no conditions for %s", weather.ErrUnavailable, loc.Key())
	}

	return weather.ClassifyCode(payload.Weather[0].ID), nil
}
