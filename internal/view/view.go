package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mateusoliveiradev1/weather-app/internal/format"
	"github.com/mateusoliveiradev1/weather-app/internal/weather"
)

// Model is the fully formatted widget state: plain strings and icon keys,
// ready for any presentation layer.
type Model struct {
	City      string       `json:"city"`
	Current   CurrentPanel `json:"current"`
	Hourly    []HourlyItem `json:"hourly"`
	Weekly    []DayRow     `json:"weekly"`
	UVIndex   string       `json:"uvIndex,omitempty"`
	Sparkline []float64    `json:"sparkline"`
}

// CurrentPanel carries the current-conditions strings.
type CurrentPanel struct {
	Temperature string      `json:"temperature"`
	Apparent    string      `json:"apparent"`
	Probability string      `json:"probability"`
	Wind        string      `json:"wind"`
	Icon        format.Icon `json:"icon"`
	Status      string      `json:"status"`
}

// HourlyItem is one column of the next-hours strip.
type HourlyItem struct {
	TimeLabel   string      `json:"time"`
	Icon        format.Icon `json:"icon"`
	Temperature string      `json:"temperature"`
	Humidity    string      `json:"humidity,omitempty"`
}

// DayRow is one row of the weekly list.
type DayRow struct {
	Weekday     string      `json:"weekday"`
	Icon        format.Icon `json:"icon"`
	Max         string      `json:"max"`
	Min         string      `json:"min"`
	Probability string      `json:"probability"`
	Hottest     bool        `json:"hottest,omitempty"`
	Coldest     bool        `json:"coldest,omitempty"`
	Detail      DayDetail   `json:"detail"`
}

// DayDetail is the expandable per-day panel.
type DayDetail struct {
	Precipitation string `json:"precipitation"`
	UVIndex       string `json:"uvIndex"`
	ApparentMean  string `json:"apparentMean"`
	Sunrise       string `json:"sunrise"`
	Sunset        string `json:"sunset"`
}

const (
	maxHourlyItems = 6
	maxWeeklyRows  = 7
	missing        = "-"
)

// Build renders a forecast snapshot for a place into a view model. It is a
// pure function: the reference time is explicit so rendering the same
// inputs twice yields the same model.
func Build(city string, snap weather.Snapshot, now time.Time) Model {
	m := Model{City: city}

	hourlyIdx := upcomingHours(snap.Hourly, now)
	m.Hourly = buildHourly(snap.Hourly, hourlyIdx, now)
	m.Current = buildCurrent(snap, hourlyIdx)
	m.Weekly, m.Sparkline = buildWeekly(snap)

	if uv, ok := snap.Daily.UVMaxAt(0); ok {
		m.UVIndex = strconv.Itoa(format.Round(uv))
	}

	return m
}

func buildCurrent(snap weather.Snapshot, upcoming []int) CurrentPanel {
	current := snap.Current
	hourly := snap.Hourly

	// Probability at the first hourly slot not before the current time;
	// 0 when the payload has no matching slot.
	nowIdx := -1
	for i, t := range hourly.Times {
		if !t.Before(current.Time) {
			nowIdx = i
			break
		}
	}
	probability := hourly.ProbabilityAt(nowIdx)

	cls := format.Classify(probability, current.Time)

	delta := format.Round(current.ApparentTemperature - current.Temperature)
	var feels string
	switch {
	case delta == 0:
		feels = "igual à temperatura"
	case delta > 0:
		feels = fmt.Sprintf("+%d° mais quente", delta)
	default:
		feels = fmt.Sprintf("%d° mais fria", delta)
	}

	wind := format.Round(current.WindSpeed)
	windLabel := fmt.Sprintf("%d km/h", wind)
	if wind < 1 {
		windLabel = "Calmo"
	}

	status := fmt.Sprintf(
		"Chance de chuva: %s • Atualizado às %s • %s • Sensação: %s • Próximas horas: %s",
		format.Percent(probability),
		format.Clock(current.Time),
		cls.Label,
		feels,
		nextHoursSummary(hourly, upcoming),
	)

	return CurrentPanel{
		Temperature: format.Temp(current.Temperature),
		Apparent:    format.Temp(current.ApparentTemperature),
		Probability: format.Percent(probability),
		Wind:        windLabel,
		Icon:        cls.Icon,
		Status:      status,
	}
}

// upcomingHours returns the indexes of the next hourly entries at or after
// now, at most six of them.
func upcomingHours(hourly weather.Hourly, now time.Time) []int {
	var idx []int
	for i, t := range hourly.Times {
		if !t.Before(now) {
			idx = append(idx, i)
			if len(idx) == maxHourlyItems {
				break
			}
		}
	}
	return idx
}

func buildHourly(hourly weather.Hourly, upcoming []int, now time.Time) []HourlyItem {
	items := make([]HourlyItem, 0, len(upcoming))
	for _, i := range upcoming {
		t := hourly.Times[i]

		label := format.Clock(t)
		diff := t.Sub(now)
		if diff < 0 {
			diff = -diff
		}
		if diff < time.Hour {
			label = "Agora"
		}

		p := hourly.ProbabilityAt(i)

		temp := missing
		if v, ok := hourly.TemperatureAt(i); ok {
			temp = format.Temp(v)
		}

		humidity := ""
		if v, ok := hourly.HumidityAt(i); ok {
			humidity = fmt.Sprintf("Umidade %s", format.Percent(v))
		}

		items = append(items, HourlyItem{
			TimeLabel:   label,
			Icon:        format.Classify(p, t).Icon,
			Temperature: temp,
			Humidity:    humidity,
		})
	}
	return items
}

// nextHoursSummary classifies the maximum probability among the upcoming
// hourly entries into a qualitative label.
func nextHoursSummary(hourly weather.Hourly, upcoming []int) string {
	maxProb := 0.0
	for _, i := range upcoming {
		if p := hourly.ProbabilityAt(i); p > maxProb {
			maxProb = p
		}
	}
	switch {
	case maxProb == 0:
		return "sem chuva prevista"
	case maxProb < 20:
		return "baixa probabilidade"
	case maxProb < 60:
		return "possibilidade moderada"
	default:
		return "alta chance de chuva"
	}
}

func buildWeekly(snap weather.Snapshot) ([]DayRow, []float64) {
	daily := snap.Daily

	n := len(daily.Dates)
	if n > maxWeeklyRows {
		n = maxWeeklyRows
	}

	rows := make([]DayRow, 0, n)
	maxVals := make([]float64, 0, n)
	maxKnown := make([]bool, 0, n)

	for i := 0; i < n; i++ {
		prob := dailyProbability(snap, i)
		// Weekly icons use a nominal midday hour.
		cls := format.ClassifyHour(float64(prob), 12)

		maxStr, minStr := missing, missing
		maxVal, maxOK := daily.TempMaxAt(i)
		if maxOK {
			maxStr = format.Temp(maxVal)
		}
		if v, ok := daily.TempMinAt(i); ok {
			minStr = format.Temp(v)
		}

		rows = append(rows, DayRow{
			Weekday:     format.Weekday(daily.Dates[i]),
			Icon:        cls.Icon,
			Max:         maxStr,
			Min:         minStr,
			Probability: strconv.Itoa(prob) + "%",
			Detail:      buildDetail(daily, i),
		})
		maxVals = append(maxVals, maxVal)
		maxKnown = append(maxKnown, maxOK)
	}

	markExtremes(rows, maxVals, maxKnown)
	return rows, sparkline(maxVals, maxKnown)
}

func buildDetail(daily weather.Daily, i int) DayDetail {
	d := DayDetail{
		Precipitation: fmt.Sprintf("%d mm", format.Round(daily.PrecipSumAt(i))),
		UVIndex:       missing,
		ApparentMean:  missing,
		Sunrise:       missing,
		Sunset:        missing,
	}
	if uv, ok := daily.UVMaxAt(i); ok {
		d.UVIndex = strconv.Itoa(format.Round(uv))
	}
	apMax, okMax := daily.ApparentMaxAt(i)
	apMin, okMin := daily.ApparentMinAt(i)
	if okMax && okMin {
		d.ApparentMean = format.Temp((apMax + apMin) / 2)
	}
	if t, ok := daily.SunriseAt(i); ok {
		d.Sunrise = format.Clock(t)
	}
	if t, ok := daily.SunsetAt(i); ok {
		d.Sunset = format.Clock(t)
	}
	return d
}

// dailyProbability approximates a day's precipitation probability as the
// maximum hourly probability among hours on the same calendar date. When
// the payload has no hourly probabilities at all, it falls back to a
// banded approximation of the daily precipitation total.
func dailyProbability(snap weather.Snapshot, dayIdx int) int {
	if len(snap.Hourly.Probabilities) == 0 {
		return precipBand(snap.Daily.PrecipSumAt(dayIdx))
	}

	day := snap.Daily.Dates[dayIdx]
	y, m, d := day.Date()

	maxProb := 0.0
	for i, t := range snap.Hourly.Times {
		ty, tm, td := t.Date()
		if ty == y && tm == m && td == d {
			if p := snap.Hourly.ProbabilityAt(i); p > maxProb {
				maxProb = p
			}
		}
	}
	return format.Round(maxProb)
}

func precipBand(sumMM float64) int {
	switch {
	case sumMM >= 10:
		return 80
	case sumMM >= 3:
		return 60
	case sumMM >= 1:
		return 30
	default:
		return 0
	}
}

// markExtremes flags the single hottest and coldest days by max
// temperature; the first occurrence wins ties.
func markExtremes(rows []DayRow, maxVals []float64, known []bool) {
	hotIdx, coldIdx := -1, -1
	for i := range rows {
		if !known[i] {
			continue
		}
		if hotIdx < 0 || maxVals[i] > maxVals[hotIdx] {
			hotIdx = i
		}
		if coldIdx < 0 || maxVals[i] < maxVals[coldIdx] {
			coldIdx = i
		}
	}
	if hotIdx >= 0 {
		rows[hotIdx].Hottest = true
	}
	if coldIdx >= 0 {
		rows[coldIdx].Coldest = true
	}
}

// sparkline normalizes the week's max temperatures to heights in [0, 1]:
// the coldest day maps to 0 and the warmest to 1. A flat series maps to
// all zeros, a flat line. Days with no max temperature get height 0.
func sparkline(maxVals []float64, known []bool) []float64 {
	heights := make([]float64, len(maxVals))

	lo, hi := 0.0, 0.0
	seen := false
	for i, v := range maxVals {
		if !known[i] {
			continue
		}
		if !seen || v < lo {
			lo = v
		}
		if !seen || v > hi {
			hi = v
		}
		seen = true
	}
	if !seen || hi == lo {
		return heights
	}

	for i, v := range maxVals {
		if known[i] {
			heights[i] = (v - lo) / (hi - lo)
		}
	}
	return heights
}
