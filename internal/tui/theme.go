package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/askervik/stevedore/internal/dash"
)

// Theme holds all colors used by the TUI. Views reference theme fields,
// never raw color values.
type Theme struct {
	Fg       lipgloss.Color
	FgDim    lipgloss.Color
	Border   lipgloss.Color
	Accent   lipgloss.Color
	Healthy  lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color
}

// DefaultTheme returns the default theme using standard terminal colors.
func DefaultTheme() Theme {
	return Theme{
		Fg:       lipgloss.Color("7"),
		FgDim:    lipgloss.Color("8"),
		Border:   lipgloss.Color("240"),
		Accent:   lipgloss.Color("14"),
		Healthy:  lipgloss.Color("10"),
		Warning:  lipgloss.Color("11"),
		Critical: lipgloss.Color("9"),
	}
}

// ThemeFromConfig applies config overrides on top of the defaults.
func ThemeFromConfig(tc ThemeConfig) Theme {
	t := DefaultTheme()
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&t.Fg, tc.Fg)
	set(&t.FgDim, tc.FgDim)
	set(&t.Border, tc.Border)
	set(&t.Accent, tc.Accent)
	set(&t.Healthy, tc.Healthy)
	set(&t.Warning, tc.Warning)
	set(&t.Critical, tc.Critical)
	return t
}

// LevelColor maps a rank row classification to its bar color.
func (t Theme) LevelColor(l dash.Level) lipgloss.Color {
	switch l {
	case dash.LevelCrit:
		return t.Critical
	case dash.LevelWarn:
		return t.Warning
	}
	return t.Healthy
}

// StatusColor colors a status column by its running classification.
func (t Theme) StatusColor(status string) lipgloss.Color {
	if dash.IsRunning(status) {
		return t.Healthy
	}
	return t.FgDim
}
