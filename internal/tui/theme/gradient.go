package theme

import (
	"strings"

	"charm.land/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Blend returns the color at pos (0 to 1) between two hex colors, blended in
// Luv space. Unparseable colors fall back to from.
func Blend(from, to string, pos float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return from
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return from
	}
	return a.BlendLuv(b, pos).Clamped().Hex()
}

// ApplyGradient colors each rune of text along a gradient from one hex color
// to another. Spaces are left unstyled.
func ApplyGradient(text, from, to string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	last := max(len(runes)-1, 1)
	for i, r := range runes {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		color := Blend(from, to, float64(i)/float64(last))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
	}
	return b.String()
}
