package theme

// NewCatppuccinMocha returns the Catppuccin Mocha palette.
func NewCatppuccinMocha() *Theme {
	return &Theme{
		Name:   "catppuccin-mocha",
		IsDark: true,

		Primary:   "#cba6f7", // mauve
		Secondary: "#89b4fa", // blue
		Tertiary:  "#b4befe", // lavender

		BgBase:    "#1e1e2e",
		BgSurface: "#313244",
		BgOverlay: "#6c7086",

		FgMuted:  "#7f849c",
		FgSubtle: "#a6adc8",
		FgBase:   "#cdd6f4",
		FgBright: "#f5e0dc",

		Success: "#a6e3a1",
		Warning: "#f9e2af",
		Error:   "#f38ba8",
	}
}
