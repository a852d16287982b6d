package store

import (
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"

	"github.com/mateusoliveiradev1/weather-app/internal/geo"
)

// PlaceStore is the single-slot persistence contract for the last
// successfully searched place.
type PlaceStore interface {
	// LoadPlace returns the saved place, or ok=false when nothing usable
	// is stored.
	LoadPlace() (geo.Place, bool)
	// SavePlace overwrites the saved place. Callers treat failures as
	// non-fatal; they must never interrupt rendering.
	SavePlace(p geo.Place) error
}

const placeKey = "last_city"

// SQLiteStore persists the last searched place as a JSON value under a
// fixed key in a kv table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// placeRecord is the stored JSON shape. Coordinates are pointers so a
// missing field is distinguishable from a legitimate zero coordinate.
type placeRecord struct {
	Name        string   `json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Admin1      string   `json:"admin1,omitempty"`
	CountryCode string   `json:"country_code,omitempty"`
}

// LoadPlace reads the persisted record. Missing, malformed or partially
// populated records count as absence; nothing is surfaced to the user.
func (s *SQLiteStore) LoadPlace() (geo.Place, bool) {
	var raw string
	if err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, placeKey).Scan(&raw); err != nil {
		return geo.Place{}, false
	}

	var rec placeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return geo.Place{}, false
	}
	if rec.Name == "" || rec.Latitude == nil || rec.Longitude == nil {
		return geo.Place{}, false
	}

	return geo.Place{
		Name:        rec.Name,
		Latitude:    *rec.Latitude,
		Longitude:   *rec.Longitude,
		Admin1:      rec.Admin1,
		CountryCode: rec.CountryCode,
	}, true
}

// SavePlace overwrites the single persisted record.
func (s *SQLiteStore) SavePlace(p geo.Place) error {
	raw, err := json.Marshal(placeRecord{
		Name:        p.Name,
		Latitude:    &p.Latitude,
		Longitude:   &p.Longitude,
		Admin1:      p.Admin1,
		CountryCode: p.CountryCode,
	})
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		placeKey, string(raw),
	)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Noop is the fallback place store used when local storage is
// unavailable; loads report absence and saves are dropped.
type Noop struct{}

func (Noop) LoadPlace() (geo.Place, bool) { return geo.Place{}, false }
func (Noop) SavePlace(geo.Place) error    { return nil }
