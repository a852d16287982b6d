package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mateusoliveiradev1/weather-app/internal/resilience"
)

// ErrUnavailable covers transport failures and non-success statuses from
// the forecast endpoint. There are no retries; a single failed call
// surfaces to the caller.
var ErrUnavailable = errors.New("forecast request failed")

// Upstream timestamps come as local wall-clock time without a zone.
const (
	timeLayout = "2006-01-02T15:04"
	dateLayout = "2006-01-02"
)

// Client talks to the Open-Meteo forecast API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	circuit    *gobreaker.CircuitBreaker
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		circuit:    resilience.NewBreaker("forecast"),
	}
}

// Forecast fetches current, hourly and daily fields for a coordinate pair
// in the location's local timezone, wind in km/h.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (Snapshot, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	values.Set("current", "temperature_2m,apparent_temperature,precipitation,wind_speed_10m")
	values.Set("hourly", "temperature_2m,precipitation_probability,relative_humidity_2m")
	values.Set("daily", "temperature_2m_max,temperature_2m_min,apparent_temperature_max,apparent_temperature_min,uv_index_max,precipitation_sum,sunrise,sunset")
	values.Set("timezone", "auto")
	values.Set("windspeed_unit", "kmh")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return Snapshot{}, err
	}

	resp, err := resilience.Do(ctx, c.httpClient, c.circuit, req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Time                string  `json:"time"`
			Temperature         float64 `json:"temperature_2m"`
			ApparentTemperature float64 `json:"apparent_temperature"`
			Precipitation       float64 `json:"precipitation"`
			WindSpeed           float64 `json:"wind_speed_10m"`
		} `json:"current"`
		Hourly struct {
			Time        []string  `json:"time"`
			Temperature []float64 `json:"temperature_2m"`
			Probability []float64 `json:"precipitation_probability"`
			Humidity    []float64 `json:"relative_humidity_2m"`
		} `json:"hourly"`
		Daily struct {
			Time        []string  `json:"time"`
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
			ApparentMax []float64 `json:"apparent_temperature_max"`
			ApparentMin []float64 `json:"apparent_temperature_min"`
			UVMax       []float64 `json:"uv_index_max"`
			PrecipSum   []float64 `json:"precipitation_sum"`
			Sunrise     []string  `json:"sunrise"`
			Sunset      []string  `json:"sunset"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	snap := Snapshot{
		Current: Current{
			Time:                parseLocal(payload.Current.Time),
			Temperature:         payload.Current.Temperature,
			ApparentTemperature: payload.Current.ApparentTemperature,
			Precipitation:       payload.Current.Precipitation,
			WindSpeed:           payload.Current.WindSpeed,
		},
		Hourly: Hourly{
			Times:         parseLocalAll(payload.Hourly.Time),
			Temperatures:  payload.Hourly.Temperature,
			Probabilities: payload.Hourly.Probability,
			Humidities:    payload.Hourly.Humidity,
		},
		Daily: Daily{
			Dates:       parseDates(payload.Daily.Time),
			TempMax:     payload.Daily.TempMax,
			TempMin:     payload.Daily.TempMin,
			ApparentMax: payload.Daily.ApparentMax,
			ApparentMin: payload.Daily.ApparentMin,
			UVMax:       payload.Daily.UVMax,
			PrecipSum:   payload.Daily.PrecipSum,
			Sunrises:    parseLocalAll(payload.Daily.Sunrise),
			Sunsets:     parseLocalAll(payload.Daily.Sunset),
		},
	}
	return snap, nil
}

// parseLocal parses an upstream local timestamp. Unparsable values become
// the zero time, which downstream index-aligned consumers treat as
// missing data.
func parseLocal(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseLocalAll(in []string) []time.Time {
	out := make([]time.Time, len(in))
	for i, s := range in {
		out[i] = parseLocal(s)
	}
	return out
}

func parseDates(in []string) []time.Time {
	out := make([]time.Time, len(in))
	for i, s := range in {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			continue
		}
		out[i] = t
	}
	return out
}
