package search

import (
	"context"
	"log"
	"strings"

	"github.com/mateusoliveiradev1/weather-app/internal/geo"
	"github.com/mateusoliveiradev1/weather-app/internal/store"
	"github.com/mateusoliveiradev1/weather-app/internal/weather"
)

// Service orchestrates geocoding, forecast fetching and persistence for a
// single user session.
type Service struct {
	geocoder    *geo.Client
	forecasts   *weather.Client
	places      store.PlaceStore
	cache       *geo.SuggestionCache
	defaultCity string
}

func NewService(geocoder *geo.Client, forecasts *weather.Client, places store.PlaceStore, defaultCity string) *Service {
	return &Service{
		geocoder:    geocoder,
		forecasts:   forecasts,
		places:      places,
		cache:       geo.NewSuggestionCache(),
		defaultCity: defaultCity,
	}
}

// Result is a completed search: the resolved place and its forecast.
type Result struct {
	Place    geo.Place
	Snapshot weather.Snapshot
}

// maxSuggestions bounds the list handed to the presentation layer.
const maxSuggestions = 8

// SearchByName resolves a free-text query to a place, persists it and
// fetches its forecast. A trailing region suffix narrows the match to
// candidates in that region; when none match, the bare name's top result
// is used.
func (s *Service) SearchByName(ctx context.Context, query string) (Result, error) {
	parsed := geo.ParseQuery(query)

	if parsed.Region != "" {
		if list := geo.FilterByRegion(s.cachedSuggest(ctx, parsed.Name), parsed.Region); len(list) > 0 {
			return s.Commit(ctx, list[0])
		}
	}

	place, err := s.geocoder.ResolveExact(ctx, parsed.Name)
	if err != nil {
		return Result{}, err
	}
	return s.Commit(ctx, place)
}

// Commit persists a chosen place and fetches its forecast without another
// geocoding round trip. Persistence failures are logged and swallowed;
// they never block rendering.
func (s *Service) Commit(ctx context.Context, p geo.Place) (Result, error) {
	if err := s.places.SavePlace(p); err != nil {
		log.Printf("place store: save failed for %s: %v", p.Name, err)
	}

	snap, err := s.forecasts.Forecast(ctx, p.Latitude, p.Longitude)
	if err != nil {
		return Result{}, err
	}
	return Result{Place: p, Snapshot: snap}, nil
}

// Suggest returns up to eight ranked candidates for a partial query. Any
// region suffix filters the list; when the filtered list is empty the raw
// query is retried with hyphens replaced by spaces. Failures degrade to an
// empty list so autocomplete never interrupts typing.
func (s *Service) Suggest(ctx context.Context, raw string) []geo.Place {
	parsed := geo.ParseQuery(raw)

	list := s.cachedSuggest(ctx, parsed.Name)
	if parsed.Region != "" {
		filtered := geo.FilterByRegion(list, parsed.Region)
		if len(filtered) == 0 {
			filtered = s.cachedSuggest(ctx, strings.ReplaceAll(strings.TrimSpace(raw), "-", " "))
		}
		list = filtered
	}

	if len(list) > maxSuggestions {
		list = list[:maxSuggestions]
	}
	return list
}

// cachedSuggest memoizes successful suggestion fetches by exact query
// string. Failed fetches are not cached so a later keystroke can retry.
func (s *Service) cachedSuggest(ctx context.Context, query string) []geo.Place {
	if list, ok := s.cache.Get(query); ok {
		return list
	}

	list, err := s.geocoder.Suggest(ctx, query)
	if err != nil {
		log.Printf("suggest failed for %q: %v", query, err)
		return nil
	}

	s.cache.Put(query, list)
	return list
}

// Startup returns the initial place and forecast: the stored place when a
// usable one exists, otherwise the default city resolved and persisted.
// When even the default resolution fails, the full search-by-name flow is
// the last resort.
func (s *Service) Startup(ctx context.Context) (Result, error) {
	if p, ok := s.places.LoadPlace(); ok {
		snap, err := s.forecasts.Forecast(ctx, p.Latitude, p.Longitude)
		if err != nil {
			return Result{}, err
		}
		return Result{Place: p, Snapshot: snap}, nil
	}

	p, err := s.geocoder.ResolveExact(ctx, s.defaultCity)
	if err != nil {
		return s.SearchByName(ctx, s.defaultCity)
	}
	return s.Commit(ctx, p)
}

// StoredPlace exposes the persisted place for read-only surfaces.
func (s *Service) StoredPlace() (geo.Place, bool) {
	return s.places.LoadPlace()
}
