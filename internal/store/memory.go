package store

import (
	"errors"
	"sync"
	"time"

	"github.com/mateusoliveiradev1/weather-app/internal/geo"
	"github.com/mateusoliveiradev1/weather-app/internal/weather"
)

// ErrNoSnapshot is returned when no forecast has been cached for a place.
var ErrNoSnapshot = errors.New("no snapshot for place")

// Entry is a cached forecast for one place.
type Entry struct {
	Place     geo.Place        `json:"place"`
	Snapshot  weather.Snapshot `json:"snapshot"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// SnapshotStore keeps the most recent forecast per place, shared between
// the periodic refresher and the HTTP handlers.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[string]Entry
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		data: make(map[string]Entry),
	}
}

// Save replaces the cached forecast for a place.
func (s *SnapshotStore) Save(p geo.Place, snap weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[p.Key()] = Entry{
		Place:     p,
		Snapshot:  snap,
		FetchedAt: time.Now().UTC(),
	}
}

// Latest returns the cached forecast for a place.
func (s *SnapshotStore) Latest(p geo.Place) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[p.Key()]
	if !ok {
		return Entry{}, ErrNoSnapshot
	}
	return entry, nil
}
