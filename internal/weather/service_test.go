package weather

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-sample-server/internal/observability"
)

type fakeProvider struct {
	reading Reading
	err     error
	calls   int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Fetch(context.Context, Location) (Reading, error) {
	f.calls++
	return f.reading, f.err
}

// mapStore keeps only the latest snapshot per location.
type mapStore struct {
	mu   sync.Mutex
	data map[string]Snapshot
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string]Snapshot)}
}

func (m *mapStore) SaveSnapshot(loc Location, s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[loc.Key()] = s
}

func (m *mapStore) GetLatest(loc Location) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[loc.Key()]
	if !ok {
		return Snapshot{}, errors.New("not found")
	}
	return s, nil
}

func (m *mapStore) GetRange(loc Location, _, _ time.Time) ([]Snapshot, error) {
	s, err := m.GetLatest(loc)
	if err != nil {
		return nil, err
	}
	return []Snapshot{s}, nil
}

var paris = Location{City: "Paris", Country: "FR"}

func TestService_CurrentFetchesAndStores(t *testing.T) {
	p := &fakeProvider{reading: Reading{Rain: 2, Cloud: 2}}
	st := newMapStore()
	svc := NewService(st, p, time.Minute, observability.NewMetricsForTesting())

	got := svc.Current(context.Background(), paris)
	assert.Equal(t, Reading{Rain: 2, Cloud: 2}, got)

	snap, err := st.GetLatest(paris)
	require.NoError(t, err)
	assert.Equal(t, "fake", snap.Provider)
	assert.Equal(t, got, snap.Reading)
}

func TestService_CurrentReusesFreshReading(t *testing.T) {
	p := &fakeProvider{reading: Reading{Snow: 1}}
	svc := NewService(newMapStore(), p, time.Minute, nil)

	svc.Current(context.Background(), paris)
	svc.Current(context.Background(), paris)
	assert.Equal(t, 1, p.calls)
}

func TestService_CurrentRefetchesWhenReuseDisabled(t *testing.T) {
	p := &fakeProvider{reading: Reading{Snow: 1}}
	svc := NewService(newMapStore(), p, 0, nil)

	svc.Current(context.Background(), paris)
	svc.Current(context.Background(), paris)
	assert.Equal(t, 2, p.calls)
}

func TestService_CurrentFallsBackToZero(t *testing.T) {
	p := &fakeProvider{err: errors.New("connection refused")}
	svc := NewService(newMapStore(), p, time.Minute, observability.NewMetricsForTesting())

	assert.Equal(t, Reading{}, svc.Current(context.Background(), paris))
}

func TestService_RefreshWrapsUnavailable(t *testing.T) {
	p := &fakeProvider{err: errors.New("boom")}
	svc := NewService(newMapStore(), p, time.Minute, nil)

	_, err := svc.Refresh(context.Background(), paris)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestService_NoProvider(t *testing.T) {
	svc := NewService(newMapStore(), nil, time.Minute, nil)

	_, err := svc.Refresh(context.Background(), paris)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, Reading{}, svc.Current(context.Background(), paris))
}
