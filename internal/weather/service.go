package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/i474232898/weather-sample-server/internal/observability"
)

// Service classifies the weather for a location, reusing recent readings
// from the store and falling back to the zero reading when the provider fails.
type Service struct {
	store    Store
	provider Provider
	maxAge   time.Duration
	metrics  *observability.Metrics
}

// NewService creates a new Service. A maxAge <= 0 disables reuse of stored readings.
func NewService(store Store, provider Provider, maxAge time.Duration, metrics *observability.Metrics) *Service {
	return &Service{
		store:    store,
		provider: provider,
		maxAge:   maxAge,
		metrics:  metrics,
	}
}

// Current returns the reading to use for sample selection at loc. It never
// fails: an unavailable provider yields the zero reading.
func (s *Service) Current(ctx context.Context, loc Location) Reading {
	if snap, ok := s.recent(loc); ok {
		return snap.Reading
	}

	snap, err := s.Refresh(ctx, loc)
	if err != nil {
		log.Printf("ERROR: weather for %s unavailable, using zero reading: %v", loc.Key(), err)
		s.metrics.WeatherFallback()
		return Reading{}
	}
	return snap.Reading
}

// Refresh fetches a new reading from the provider and stores it.
func (s *Service) Refresh(ctx context.Context, loc Location) (Snapshot, error) {
	if s.provider == nil {
		return Snapshot{}, fmt.Errorf("%w: no weather provider configured", ErrUnavailable)
	}

	r, err := s.provider.Fetch(ctx, loc)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		s.metrics.WeatherFetch(s.provider.Name(), false)
		return Snapshot{}, err
	}
	s.metrics.WeatherFetch(s.provider.Name(), true)

	snap := Snapshot{
		Location:  loc,
		Timestamp: time.Now().UTC(),
		Reading:   r,
		Provider:  s.provider.Name(),
	}
	if s.store != nil {
		s.store.SaveSnapshot(loc, snap)
	}
	return snap, nil
}

func (s *Service) recent(loc Location) (Snapshot, bool) {
	if s.store == nil || s.maxAge <= 0 {
		return Snapshot{}, false
	}
	snap, err := s.store.GetLatest(loc)
	if err != nil {
		return Snapshot{}, false
	}
	if time.Since(snap.Timestamp) > s.maxAge {
		return Snapshot{}, false
	}
	return snap, true
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (Snapshot, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]Snapshot, error) {
	return s.store.GetRange(loc, from, to)
}
