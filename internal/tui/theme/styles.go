package theme

import "charm.land/lipgloss/v2"

// Styles are the lipgloss styles the picker draws with.
type Styles struct {
	Prompt      lipgloss.Style
	Input       lipgloss.Style
	Placeholder lipgloss.Style

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style

	Item              lipgloss.Style
	ItemHighlighted   lipgloss.Style
	ItemSelected      lipgloss.Style
	Footer            lipgloss.Style
	FooterHighlighted lipgloss.Style
	Empty             lipgloss.Style

	Status lipgloss.Style
	Error  lipgloss.Style

	HintKey  lipgloss.Style
	HintDesc lipgloss.Style
	HintSep  lipgloss.Style
}
