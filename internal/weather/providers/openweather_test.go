package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-sample-server/internal/weather"
)

var london = weather.Location{City: "London", Country: "GB"}

func fastProvider(t *testing.T, h http.HandlerFunc) *OpenWeatherProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p := NewOpenWeatherProvider(srv.Client(), srv.URL+"/", "secret")
	p.httpCfg.Backoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
	return p
}

func TestOpenWeatherProvider_Fetch(t *testing.T) {
	p := fastProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "London,GB", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"weather":[{"id":602,"main":"Snow"},{"id":500}]}`))
	})

	got, err := p.Fetch(context.Background(), london)
	require.NoError(t, err)
	assert.Equal(t, weather.Reading{Snow: 3, Cloud: 2}, got)
}

func TestOpenWeatherProvider_EmptyConditions(t *testing.T) {
	p := fastProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"weather":[]}`))
	})

	_, err := p.Fetch(context.Background(), london)
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestOpenWeatherProvider_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	p := fastProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"weather":[{"id":501}]}`))
	})

	got, err := p.Fetch(context.Background(), london)
	require.NoError(t, err)
	assert.Equal(t, weather.Reading{Rain: 2, Cloud: 1}, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestOpenWeatherProvider_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	p := fastProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := p.Fetch(context.Background(), london)
	assert.ErrorIs(t, err, weather.ErrUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenWeatherProvider_MissingKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "", "")
	_, err := p.Fetch(context.Background(), london)
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestNew(t *testing.T) {
	p, err := New("", http.DefaultClient, "", "")
	require.NoError(t, err)
	assert.Equal(t, "stub", p.Name())

	r, err := p.Fetch(context.Background(), london)
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	p, err = New(ModeLive, http.DefaultClient, "", "key")
	require.NoError(t, err)
	assert.IsType(t, &OpenWeatherProvider{}, p)

	_, err = New(ModeLive, http.DefaultClient, "", "")
	assert.Error(t, err)

	_, err = New("psychic", http.DefaultClient, "", "")
	assert.Error(t, err)
}
