// Package testfixtures holds shared helpers for picker tests.
package testfixtures

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

func init() {
	// Ascii keeps rendered output free of color codes across terminals.
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for picker tests.
const (
	TestTermWidth  = 48
	TestTermHeight = 16
)

// Render draws into a fresh canvas and returns its rows as plain text with
// trailing spaces removed.
func Render(draw func(scr uv.Screen, area uv.Rectangle)) []string {
	canvas := uv.NewScreenBuffer(TestTermWidth, TestTermHeight)
	draw(canvas, canvas.Bounds())
	out := strings.Split(ansi.Strip(canvas.Render()), "\n")
	for i, line := range out {
		out[i] = strings.TrimRight(line, " \r")
	}
	return out
}

// Row returns row y of a rendering, or "" past its end.
func Row(rows []string, y int) string {
	if y < 0 || y >= len(rows) {
		return ""
	}
	return rows[y]
}
