package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mateusoliveiradev1/weather-app/internal/format"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	cityStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hotStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	coldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	activeStyle  = lipgloss.NewStyle().Reverse(true)
	tempStyle    = lipgloss.NewStyle().Bold(true)
	sparkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	hourStyle    = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
)

func iconGlyph(ic format.Icon) string {
	switch ic {
	case format.IconSun:
		return "☀"
	case format.IconSunClouds:
		return "⛅"
	case format.IconMoonClouds:
		return "☁"
	case format.IconRain:
		return "🌧"
	}
	return " "
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

func sparkRune(height float64) rune {
	idx := int(height*float64(len(sparkGlyphs)-1) + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sparkGlyphs) {
		idx = len(sparkGlyphs) - 1
	}
	return sparkGlyphs[idx]
}

func (a App) View() string {
	if !a.ready {
		return "Carregando..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("weather-app") + "\n\n")
	b.WriteString("Cidade: " + a.input.View() + "\n")

	if a.showDropdown {
		b.WriteString(a.renderDropdown())
	}

	if a.busy {
		b.WriteString("\n" + a.spinner.View() + " Buscando...\n")
	}
	if a.errText != "" {
		b.WriteString("\n" + errorStyle.Render(a.errText) + "\n")
	}

	if a.hasData {
		b.WriteString("\n" + a.renderCurrent())
		b.WriteString("\n" + a.renderHourly())
		b.WriteString("\n" + a.renderWeekly())
	}

	b.WriteString("\n" + dimStyle.Render("↑/↓ sugestões • Enter buscar • Esc fechar • 1-7 detalhes do dia • Ctrl+C sair"))
	return b.String()
}

func (a App) renderDropdown() string {
	var b strings.Builder
	if len(a.suggestions) == 0 {
		b.WriteString(dimStyle.Render("  Nenhuma cidade encontrada") + "\n")
		return b.String()
	}
	for i, p := range a.suggestions {
		line := "  " + p.Name
		meta := strings.TrimSpace(p.Admin1)
		if p.CountryCode != "" {
			if meta != "" {
				meta += " • "
			}
			meta += p.CountryCode
		}
		if meta != "" {
			line += " " + dimStyle.Render(meta)
		}
		if i == a.active {
			line = activeStyle.Render("> " + p.Name + " " + meta)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (a App) renderCurrent() string {
	cur := a.model.Current

	head := fmt.Sprintf("%s  %s %s",
		cityStyle.Render(a.model.City),
		iconGlyph(cur.Icon),
		tempStyle.Render(cur.Temperature),
	)

	details := fmt.Sprintf("Sensação %s • Vento %s • Chance de chuva %s", cur.Apparent, cur.Wind, cur.Probability)
	if a.model.UVIndex != "" {
		details += " • UV " + a.model.UVIndex
	}

	return panelStyle.Render(head+"\n"+details+"\n"+dimStyle.Render(cur.Status)) + "\n"
}

func (a App) renderHourly() string {
	if len(a.model.Hourly) == 0 {
		return ""
	}
	cols := make([]string, 0, len(a.model.Hourly))
	for _, h := range a.model.Hourly {
		col := h.TimeLabel + "\n" + iconGlyph(h.Icon) + "\n" + h.Temperature
		if h.Humidity != "" {
			col += "\n" + dimStyle.Render(h.Humidity)
		}
		cols = append(cols, hourStyle.Render(col))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n"
}

func (a App) renderWeekly() string {
	if len(a.model.Weekly) == 0 {
		return ""
	}

	var b strings.Builder
	for i, day := range a.model.Weekly {
		line := fmt.Sprintf("%d  %-14s %s  %4s %4s  %s", i+1, day.Weekday, iconGlyph(day.Icon), day.Max, day.Min, dimStyle.Render(day.Probability))
		switch {
		case day.Hottest:
			line = hotStyle.Render(line)
		case day.Coldest:
			line = coldStyle.Render(line)
		}
		b.WriteString(line + "\n")

		if a.openDays[i] {
			d := day.Detail
			b.WriteString(dimStyle.Render(fmt.Sprintf("   Chuva %s • UV %s • Sensação %s • Nascer %s • Pôr %s",
				d.Precipitation, d.UVIndex, d.ApparentMean, d.Sunrise, d.Sunset)) + "\n")
		}
	}

	b.WriteString(sparkStyle.Render(sparkline(a.model.Sparkline)) + "\n")
	return b.String()
}

// sparkline renders the week's max temperatures as block glyphs, the
// coldest day at the bottom of the glyph range and the warmest at the top.
func sparkline(heights []float64) string {
	if len(heights) == 0 {
		return ""
	}
	runes := make([]rune, len(heights))
	for i, h := range heights {
		runes[i] = sparkRune(h)
	}
	return string(runes)
}
