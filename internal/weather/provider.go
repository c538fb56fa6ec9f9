package weather

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned by providers when no classification could be
// obtained for a location.
var ErrUnavailable = errors.New("weather unavailable")

// Provider abstracts a weather classification source (live OpenWeatherMap or a constant stub).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Reading, error)
}

// Store is the contract the in-memory reading store must satisfy.
type Store interface {
	SaveSnapshot(loc Location, snapshot Snapshot)
	GetLatest(loc Location) (Snapshot, error)
	GetRange(loc Location, from, to time.Time) ([]Snapshot, error)
}
