package view

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mateusoliveiradev1/weather-app/internal/format"
	"github.com/mateusoliveiradev1/weather-app/internal/weather"
)

func day(d int) time.Time {
	return time.Date(2025, 3, 10+d, 0, 0, 0, 0, time.UTC)
}

func hour(h int) time.Time {
	return time.Date(2025, 3, 10, h, 0, 0, 0, time.UTC)
}

// fixture is a snapshot around 2025-03-10 14:23 local time with a rainy
// late afternoon and four forecast days peaking on the last one.
func fixture() weather.Snapshot {
	return weather.Snapshot{
		Current: weather.Current{
			Time:                time.Date(2025, 3, 10, 14, 23, 0, 0, time.UTC),
			Temperature:         27.3,
			ApparentTemperature: 29.8,
			WindSpeed:           11.6,
		},
		Hourly: weather.Hourly{
			Times:         []time.Time{hour(14), hour(15), hour(16), hour(17), hour(18), hour(19), hour(20)},
			Temperatures:  []float64{27.1, 26.8, 26.2, 25.0, 23.8, 22.5, 21.9},
			Probabilities: []float64{10, 30, 70, 85, 20, 5, 0},
			Humidities:    []float64{62, 65, 70, 78, 80, 81, 82},
		},
		Daily: weather.Daily{
			Dates:       []time.Time{day(0), day(1), day(2), day(3)},
			TempMax:     []float64{20, 25, 18, 30},
			TempMin:     []float64{15, 17, 12, 21},
			ApparentMax: []float64{30.9, 26.3, 19.0, 31.2},
			ApparentMin: []float64{20.0, 19.1, 13.2, 22.4},
			UVMax:       []float64{8.6, 7.0, 5.2, 9.1},
			PrecipSum:   []float64{0.4, 12.2, 0, 3.3},
			Sunrises:    []time.Time{time.Date(2025, 3, 10, 6, 8, 0, 0, time.UTC)},
			Sunsets:     []time.Time{time.Date(2025, 3, 10, 18, 21, 0, 0, time.UTC)},
		},
	}
}

func TestBuildCurrentPanel(t *testing.T) {
	snap := fixture()
	m := Build("São Paulo", snap, snap.Current.Time)

	cur := m.Current
	if cur.Temperature != "27°" {
		t.Errorf("temperature = %q, want 27°", cur.Temperature)
	}
	if cur.Apparent != "30°" {
		t.Errorf("apparent = %q, want 30°", cur.Apparent)
	}
	// First hourly slot not before 14:23 is 15:00, probability 30.
	if cur.Probability != "30%" {
		t.Errorf("probability = %q, want 30%%", cur.Probability)
	}
	if cur.Wind != "12 km/h" {
		t.Errorf("wind = %q, want 12 km/h", cur.Wind)
	}

	want := "Chance de chuva: 30% • Atualizado às 14:23 • Parcialmente nublado • Sensação: +3° mais quente • Próximas horas: alta chance de chuva"
	if cur.Status != want {
		t.Errorf("status = %q, want %q", cur.Status, want)
	}
}

func TestBuildFeelsLabels(t *testing.T) {
	snap := fixture()

	snap.Current.ApparentTemperature = snap.Current.Temperature
	m := Build("x", snap, snap.Current.Time)
	if want := "Sensação: igual à temperatura"; !contains(m.Current.Status, want) {
		t.Errorf("status %q missing %q", m.Current.Status, want)
	}

	snap.Current.ApparentTemperature = snap.Current.Temperature - 4.2
	m = Build("x", snap, snap.Current.Time)
	if want := "Sensação: -4° mais fria"; !contains(m.Current.Status, want) {
		t.Errorf("status %q missing %q", m.Current.Status, want)
	}
}

func TestBuildCalmWind(t *testing.T) {
	snap := fixture()
	snap.Current.WindSpeed = 0.4
	m := Build("x", snap, snap.Current.Time)
	if m.Current.Wind != "Calmo" {
		t.Errorf("wind = %q, want Calmo", m.Current.Wind)
	}
}

func TestBuildHourlyStrip(t *testing.T) {
	snap := fixture()
	m := Build("x", snap, snap.Current.Time)

	if len(m.Hourly) != 6 {
		t.Fatalf("expected 6 hourly items, got %d", len(m.Hourly))
	}
	// 15:00 is within an hour of 14:23.
	if m.Hourly[0].TimeLabel != "Agora" {
		t.Errorf("first label = %q, want Agora", m.Hourly[0].TimeLabel)
	}
	if m.Hourly[1].TimeLabel != "16:00" {
		t.Errorf("second label = %q, want 16:00", m.Hourly[1].TimeLabel)
	}
	if m.Hourly[0].Temperature != "27°" {
		t.Errorf("first temperature = %q, want 27°", m.Hourly[0].Temperature)
	}
	if m.Hourly[0].Humidity != "Umidade 65%" {
		t.Errorf("first humidity = %q, want Umidade 65%%", m.Hourly[0].Humidity)
	}
	// 17:00 has probability 85: rain icon.
	if m.Hourly[2].Icon != format.IconRain {
		t.Errorf("17:00 icon = %q, want rain", m.Hourly[2].Icon)
	}
}

func TestBuildHourlyShorterThanWindow(t *testing.T) {
	snap := fixture()
	snap.Hourly.Times = snap.Hourly.Times[:3]
	snap.Hourly.Temperatures = snap.Hourly.Temperatures[:3]
	snap.Hourly.Probabilities = snap.Hourly.Probabilities[:3]
	snap.Hourly.Humidities = nil

	m := Build("x", snap, snap.Current.Time)
	// Times 15:00 and 16:00 remain at or after 14:23.
	if len(m.Hourly) != 2 {
		t.Fatalf("expected 2 hourly items, got %d", len(m.Hourly))
	}
	if m.Hourly[0].Humidity != "" {
		t.Errorf("humidity = %q, want empty when payload has none", m.Hourly[0].Humidity)
	}
}

func TestBuildWeekly(t *testing.T) {
	snap := fixture()
	m := Build("x", snap, snap.Current.Time)

	if len(m.Weekly) != 4 {
		t.Fatalf("expected 4 weekly rows, got %d", len(m.Weekly))
	}

	// 2025-03-10 is a Monday.
	if m.Weekly[0].Weekday != "segunda-feira" {
		t.Errorf("weekday = %q, want segunda-feira", m.Weekly[0].Weekday)
	}
	// Day 0 has hourly data peaking at 85%.
	if m.Weekly[0].Probability != "85%" {
		t.Errorf("day 0 probability = %q, want 85%%", m.Weekly[0].Probability)
	}
	if m.Weekly[0].Icon != format.IconRain {
		t.Errorf("day 0 icon = %q, want rain", m.Weekly[0].Icon)
	}
	// Later days have no matching hourly data.
	if m.Weekly[1].Probability != "0%" {
		t.Errorf("day 1 probability = %q, want 0%%", m.Weekly[1].Probability)
	}

	// Max temps are [20, 25, 18, 30]: day 3 hottest, day 2 coldest.
	for i, row := range m.Weekly {
		if row.Hottest != (i == 3) {
			t.Errorf("row %d hottest = %v", i, row.Hottest)
		}
		if row.Coldest != (i == 2) {
			t.Errorf("row %d coldest = %v", i, row.Coldest)
		}
	}

	d := m.Weekly[0].Detail
	if d.Precipitation != "0 mm" {
		t.Errorf("precipitation = %q, want 0 mm", d.Precipitation)
	}
	if d.UVIndex != "9" {
		t.Errorf("uv = %q, want 9", d.UVIndex)
	}
	// Apparent mean of 30.9 and 20.0 is 25.45.
	if d.ApparentMean != "25°" {
		t.Errorf("apparent mean = %q, want 25°", d.ApparentMean)
	}
	if d.Sunrise != "06:08" || d.Sunset != "18:21" {
		t.Errorf("sun times = %q/%q", d.Sunrise, d.Sunset)
	}
	// Day 1 has no sunrise data in the payload.
	if m.Weekly[1].Detail.Sunrise != "-" {
		t.Errorf("day 1 sunrise = %q, want -", m.Weekly[1].Detail.Sunrise)
	}

	if m.UVIndex != "9" {
		t.Errorf("uv headline = %q, want 9", m.UVIndex)
	}
}

func TestExtremesFirstOccurrenceWins(t *testing.T) {
	snap := fixture()
	snap.Daily.TempMax = []float64{30, 18, 30, 18}

	m := Build("x", snap, snap.Current.Time)
	if !m.Weekly[0].Hottest || m.Weekly[2].Hottest {
		t.Error("expected first 30 to win the hottest flag")
	}
	if !m.Weekly[1].Coldest || m.Weekly[3].Coldest {
		t.Error("expected first 18 to win the coldest flag")
	}
}

func TestSparkline(t *testing.T) {
	snap := fixture()
	m := Build("x", snap, snap.Current.Time)

	// Maxes [20, 25, 18, 30]: 18 maps to the bottom, 30 to the top.
	if len(m.Sparkline) != 4 {
		t.Fatalf("expected 4 sparkline points, got %d", len(m.Sparkline))
	}
	if m.Sparkline[2] != 0 {
		t.Errorf("coldest height = %v, want 0", m.Sparkline[2])
	}
	if m.Sparkline[3] != 1 {
		t.Errorf("warmest height = %v, want 1", m.Sparkline[3])
	}
	if m.Sparkline[0] <= 0 || m.Sparkline[0] >= m.Sparkline[1] {
		t.Errorf("heights not ordered: %v", m.Sparkline)
	}
}

func TestSparklineFlat(t *testing.T) {
	snap := fixture()
	snap.Daily.TempMax = []float64{22, 22, 22, 22}

	m := Build("x", snap, snap.Current.Time)
	for i, h := range m.Sparkline {
		if h != 0 {
			t.Errorf("flat series height[%d] = %v, want 0", i, h)
		}
	}
}

func TestBandedFallbackWithoutHourly(t *testing.T) {
	snap := fixture()
	snap.Hourly.Probabilities = nil
	snap.Daily.PrecipSum = []float64{12, 5, 2, 0.5}

	m := Build("x", snap, snap.Current.Time)
	want := []string{"80%", "60%", "30%", "0%"}
	for i, row := range m.Weekly {
		if row.Probability != want[i] {
			t.Errorf("day %d probability = %q, want %q", i, row.Probability, want[i])
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	snap := fixture()
	now := snap.Current.Time

	a := Build("São Paulo", snap, now)
	b := Build("São Paulo", snap, now)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("building the same snapshot twice produced different models")
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
