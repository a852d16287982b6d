package weather

import "time"

// Snapshot is the full forecast payload for one place: current conditions
// plus hourly and daily series. All timestamps are in the location's local
// time, as delivered by the upstream API.
type Snapshot struct {
	Current Current `json:"current"`
	Hourly  Hourly  `json:"hourly"`
	Daily   Daily   `json:"daily"`
}

// Current holds the instantaneous conditions at fetch time.
type Current struct {
	Time                time.Time `json:"time"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature float64   `json:"apparentTemperature"`
	Precipitation       float64   `json:"precipitation"`
	WindSpeed           float64   `json:"windSpeed"`
}

// Hourly holds parallel arrays indexed by hour. Sibling arrays may be
// shorter than Times; the accessors treat an out-of-range index as missing
// data rather than an error.
type Hourly struct {
	Times         []time.Time `json:"times"`
	Temperatures  []float64   `json:"temperatures"`
	Probabilities []float64   `json:"precipitationProbabilities"`
	Humidities    []float64   `json:"humidities,omitempty"`
}

// ProbabilityAt returns the precipitation probability at index i, or 0
// when the index has no data.
func (h Hourly) ProbabilityAt(i int) float64 {
	if i < 0 || i >= len(h.Probabilities) {
		return 0
	}
	return h.Probabilities[i]
}

// TemperatureAt returns the temperature at index i when present.
func (h Hourly) TemperatureAt(i int) (float64, bool) {
	if i < 0 || i >= len(h.Temperatures) {
		return 0, false
	}
	return h.Temperatures[i], true
}

// HumidityAt returns the relative humidity at index i when present.
func (h Hourly) HumidityAt(i int) (float64, bool) {
	if i < 0 || i >= len(h.Humidities) {
		return 0, false
	}
	return h.Humidities[i], true
}

// Daily holds parallel arrays indexed by day, aligned with Dates.
type Daily struct {
	Dates       []time.Time `json:"dates"`
	TempMax     []float64   `json:"tempMax"`
	TempMin     []float64   `json:"tempMin"`
	ApparentMax []float64   `json:"apparentMax,omitempty"`
	ApparentMin []float64   `json:"apparentMin,omitempty"`
	UVMax       []float64   `json:"uvMax,omitempty"`
	PrecipSum   []float64   `json:"precipitationSum,omitempty"`
	Sunrises    []time.Time `json:"sunrises,omitempty"`
	Sunsets     []time.Time `json:"sunsets,omitempty"`
}

func floatAt(s []float64, i int) (float64, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}

func timeAt(s []time.Time, i int) (time.Time, bool) {
	if i < 0 || i >= len(s) {
		return time.Time{}, false
	}
	return s[i], true
}

func (d Daily) TempMaxAt(i int) (float64, bool)     { return floatAt(d.TempMax, i) }
func (d Daily) TempMinAt(i int) (float64, bool)     { return floatAt(d.TempMin, i) }
func (d Daily) ApparentMaxAt(i int) (float64, bool) { return floatAt(d.ApparentMax, i) }
func (d Daily) ApparentMinAt(i int) (float64, bool) { return floatAt(d.ApparentMin, i) }
func (d Daily) UVMaxAt(i int) (float64, bool)       { return floatAt(d.UVMax, i) }
func (d Daily) SunriseAt(i int) (time.Time, bool)   { return timeAt(d.Sunrises, i) }
func (d Daily) SunsetAt(i int) (time.Time, bool)    { return timeAt(d.Sunsets, i) }

// PrecipSumAt returns the daily precipitation total, defaulting to 0 when
// the payload omits it.
func (d Daily) PrecipSumAt(i int) float64 {
	v, _ := floatAt(d.PrecipSum, i)
	return v
}
