package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/mateusoliveiradev1/weather-app/internal/resilience"
)

var (
	// ErrNotFound is returned when the geocoder has no match for a name.
	ErrNotFound = errors.New("place not found")

	// ErrUnavailable covers transport failures and non-success statuses.
	ErrUnavailable = errors.New("geocoding request failed")
)

// Place identifies a geocoded location. Identity is the coordinate pair;
// the name is display-only.
type Place struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Admin1      string  `json:"admin1,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
}

// Key returns a canonical string key for indexing this place in stores.
func (p Place) Key() string {
	return strconv.FormatFloat(p.Latitude, 'f', 4, 64) + ":" + strconv.FormatFloat(p.Longitude, 'f', 4, 64)
}

// Client talks to the Open-Meteo geocoding API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
	circuit    *gobreaker.CircuitBreaker
}

func NewClient(httpClient *http.Client, baseURL, language string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		language:   language,
		circuit:    resilience.NewBreaker("geocoding"),
	}
}

// ResolveExact resolves a free-text place name to its top-ranked match.
func (c *Client) ResolveExact(ctx context.Context, name string) (Place, error) {
	results, err := c.search(ctx, name, 1)
	if err != nil {
		return Place{}, err
	}
	if len(results) == 0 {
		return Place{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return results[0], nil
}

// Suggest returns up to ten ranked matches for a partial query. Callers on
// the autocomplete path are expected to treat any error as an empty list.
func (c *Client) Suggest(ctx context.Context, query string) ([]Place, error) {
	return c.search(ctx, query, 10)
}

func (c *Client) search(ctx context.Context, name string, count int) ([]Place, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", strconv.Itoa(count))
	values.Set("language", c.language)
	values.Set("format", "json")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := resilience.Do(ctx, c.httpClient, c.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			Name        string  `json:"name"`
			Admin1      string  `json:"admin1"`
			CountryCode string  `json:"country_code"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	places := make([]Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		places = append(places, Place{
			Name:        r.Name,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Admin1:      r.Admin1,
			CountryCode: r.CountryCode,
		})
	}
	return places, nil
}
