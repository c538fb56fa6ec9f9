package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/i474232898/weather-sample-server/internal/weather"
)

const (
	ModeStub = "stub"
	ModeLive = "live"
)

// StubProvider reports clear weather everywhere.
type StubProvider struct{}

func (StubProvider) Name() string {
	return "stub"
}

func (StubProvider) Fetch(context.Context, weather.Location) (weather.Reading, error) {
	return weather.Reading{}, nil
}

// New selects the provider for the configured weather mode.
func New(mode string, client *http.Client, endpoint, apiKey string) (weather.Provider, error) {
	switch mode {
	case "", ModeStub:
		return StubProvider{}, nil
	case ModeLive:
		if apiKey == "" {
			return nil, fmt.Errorf("weather mode %q requires an api key", mode)
		}
		return NewOpenWeatherProvider(client, endpoint, apiKey), nil
	default:
		return nil, fmt.Errorf("unknown weather mode %q", mode)
	}
}
