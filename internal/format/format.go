package format

import (
	"math"
	"strconv"
	"time"
)

// Condition represents a high-level weather condition derived from the
// precipitation probability.
type Condition string

const (
	ConditionClear  Condition = "clear"
	ConditionPartly Condition = "partly_cloudy"
	ConditionCloudy Condition = "cloudy"
	ConditionRainy  Condition = "rainy"
)

// Icon identifies a weather glyph, decoupled from any particular asset.
type Icon string

const (
	IconSun        Icon = "sun"
	IconSunClouds  Icon = "sun-clouds"
	IconMoonClouds Icon = "moon-clouds"
	IconRain       Icon = "rain"
)

// IconSet maps each condition to its day and night glyphs. Call sites that
// want different variants can supply their own set.
type IconSet struct {
	Rain        Icon
	DayCloudy   Icon
	NightCloudy Icon
	DayPartly   Icon
	NightPartly Icon
	DayClear    Icon
	NightClear  Icon
}

// DefaultIcons reproduces the widget's icon choices. Note the clear-night
// glyph: the moon-with-clouds art doubles as the plain night icon.
var DefaultIcons = IconSet{
	Rain:        IconRain,
	DayCloudy:   IconSunClouds,
	NightCloudy: IconMoonClouds,
	DayPartly:   IconSunClouds,
	NightPartly: IconMoonClouds,
	DayClear:    IconSun,
	NightClear:  IconMoonClouds,
}

// Classification is a condition with its user-facing label and icon.
type Classification struct {
	Condition Condition
	Label     string
	Icon      Icon
}

// Classify maps a precipitation probability and a local timestamp to a
// condition. Night is any local hour before 6 or from 18 onward.
func Classify(probability float64, t time.Time) Classification {
	return ClassifyHour(probability, t.Hour())
}

// ClassifyHour is Classify for call sites that only have an hour of day,
// such as the weekly icons rendered for a nominal midday.
func ClassifyHour(probability float64, hour int) Classification {
	return classify(DefaultIcons, probability, hour)
}

func classify(icons IconSet, probability float64, hour int) Classification {
	night := hour < 6 || hour >= 18
	switch {
	case probability >= 80:
		return Classification{ConditionRainy, "Chuvoso", icons.Rain}
	case probability >= 60:
		if night {
			return Classification{ConditionCloudy, "Nublado", icons.NightCloudy}
		}
		return Classification{ConditionCloudy, "Nublado", icons.DayCloudy}
	case probability >= 20:
		if night {
			return Classification{ConditionPartly, "Parcialmente nublado", icons.NightPartly}
		}
		return Classification{ConditionPartly, "Parcialmente nublado", icons.DayPartly}
	default:
		if night {
			return Classification{ConditionClear, "Céu limpo", icons.NightClear}
		}
		return Classification{ConditionClear, "Limpo", icons.DayClear}
	}
}

// Round rounds half away from zero, matching the display rounding used
// everywhere in the widget.
func Round(n float64) int {
	return int(math.Round(n))
}

// Temp renders a temperature as a rounded integer with a degree mark.
func Temp(celsius float64) string {
	return strconv.Itoa(Round(celsius)) + "°"
}

// Percent renders a probability as a rounded integer with a percent mark.
func Percent(v float64) string {
	return strconv.Itoa(Round(v)) + "%"
}

// The widget is fixed to the pt-BR locale.
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// Weekday returns the pt-BR weekday name for a date.
func Weekday(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// Clock renders a timestamp as a 24h clock label.
func Clock(t time.Time) string {
	return t.Format("15:04")
}
