// Package theme holds the picker's colors and pre-built styles.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme is a color palette. Colors are #rrggbb strings.
type Theme struct {
	Name   string
	IsDark bool

	Primary   string
	Secondary string
	Tertiary  string

	BgBase    string
	BgSurface string
	BgOverlay string

	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	Success string
	Warning string
	Error   string

	styles     *Styles
	stylesOnce sync.Once
}

var (
	current     *Theme
	currentOnce sync.Once
)

// Current returns the active theme.
func Current() *Theme {
	currentOnce.Do(func() { current = NewCatppuccinMocha() })
	return current
}

// S returns the theme's styles, building them on first use.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	return &Styles{
		Prompt:      lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		Input:       lipgloss.NewStyle().Foreground(c(t.FgBright)),
		Placeholder: lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BgOverlay)),
		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Primary)),
		Item:              lipgloss.NewStyle().Foreground(c(t.FgBase)),
		ItemHighlighted:   lipgloss.NewStyle().Foreground(c(t.BgBase)).Background(c(t.Secondary)).Bold(true),
		ItemSelected:      lipgloss.NewStyle().Foreground(c(t.Success)),
		Footer:            lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Italic(true),
		FooterHighlighted: lipgloss.NewStyle().Foreground(c(t.BgBase)).Background(c(t.Tertiary)).Italic(true),
		Empty:             lipgloss.NewStyle().Foreground(c(t.Warning)),
		Status:            lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		Error:             lipgloss.NewStyle().Foreground(c(t.Error)),
		HintKey:           lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		HintDesc:          lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		HintSep:           lipgloss.NewStyle().Foreground(c(t.BgOverlay)),
	}
}
