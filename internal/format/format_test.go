package format

import (
	"testing"
	"time"
)

func TestClassifyThresholds(t *testing.T) {
	noon := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		probability float64
		at          time.Time
		wantCond    Condition
		wantLabel   string
		wantIcon    Icon
	}{
		{"rain day", 80, noon, ConditionRainy, "Chuvoso", IconRain},
		{"rain night", 95, midnight, ConditionRainy, "Chuvoso", IconRain},
		{"cloudy day", 60, noon, ConditionCloudy, "Nublado", IconSunClouds},
		{"cloudy night", 79, midnight, ConditionCloudy, "Nublado", IconMoonClouds},
		{"partly day", 20, noon, ConditionPartly, "Parcialmente nublado", IconSunClouds},
		{"partly night", 59, midnight, ConditionPartly, "Parcialmente nublado", IconMoonClouds},
		{"clear day", 0, noon, ConditionClear, "Limpo", IconSun},
		{"clear night", 19, midnight, ConditionClear, "Céu limpo", IconMoonClouds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.probability, tc.at)
			if got.Condition != tc.wantCond {
				t.Errorf("condition = %q, want %q", got.Condition, tc.wantCond)
			}
			if got.Label != tc.wantLabel {
				t.Errorf("label = %q, want %q", got.Label, tc.wantLabel)
			}
			if got.Icon != tc.wantIcon {
				t.Errorf("icon = %q, want %q", got.Icon, tc.wantIcon)
			}
		})
	}
}

func TestClassifyNightBoundaries(t *testing.T) {
	// Night is hour < 6 or >= 18.
	cases := []struct {
		hour  int
		night bool
	}{
		{5, true},
		{6, false},
		{17, false},
		{18, true},
	}
	for _, tc := range cases {
		got := ClassifyHour(0, tc.hour)
		wantLabel := "Limpo"
		if tc.night {
			wantLabel = "Céu limpo"
		}
		if got.Label != wantLabel {
			t.Errorf("hour %d: label = %q, want %q", tc.hour, got.Label, wantLabel)
		}
	}
}

// severity orders conditions so the monotonicity property can be checked:
// raising the probability must never downgrade the condition.
func severity(c Condition) int {
	switch c {
	case ConditionClear:
		return 0
	case ConditionPartly:
		return 1
	case ConditionCloudy:
		return 2
	case ConditionRainy:
		return 3
	}
	return -1
}

func TestClassifyMonotonic(t *testing.T) {
	for _, hour := range []int{0, 5, 6, 12, 17, 18, 23} {
		prev := -1
		for p := 0; p <= 100; p++ {
			got := severity(ClassifyHour(float64(p), hour).Condition)
			if got < prev {
				t.Fatalf("hour %d: severity dropped from %d to %d at probability %d", hour, prev, got, p)
			}
			prev = got
		}
	}
}

func TestRounding(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{2.4, 2},
		{2.5, 3},
		{-2.5, -3},
		{-2.4, -2},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round(tc.in); got != tc.want {
			t.Errorf("Round(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}

	if got := Temp(25.6); got != "26°" {
		t.Errorf("Temp(25.6) = %q, want %q", got, "26°")
	}
	if got := Temp(-0.2); got != "0°" {
		t.Errorf("Temp(-0.2) = %q, want %q", got, "0°")
	}
	if got := Percent(79.5); got != "80%" {
		t.Errorf("Percent(79.5) = %q, want %q", got, "80%")
	}
}

func TestWeekday(t *testing.T) {
	// 2025-03-10 is a Monday.
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := Weekday(monday); got != "segunda-feira" {
		t.Errorf("Weekday = %q, want %q", got, "segunda-feira")
	}
	sunday := monday.AddDate(0, 0, -1)
	if got := Weekday(sunday); got != "domingo" {
		t.Errorf("Weekday = %q, want %q", got, "domingo")
	}
}

func TestClock(t *testing.T) {
	at := time.Date(2025, 3, 10, 7, 5, 0, 0, time.UTC)
	if got := Clock(at); got != "07:05" {
		t.Errorf("Clock = %q, want %q", got, "07:05")
	}
}
