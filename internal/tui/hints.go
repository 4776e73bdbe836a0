package tui

import (
	"strings"

	"github.com/mark3labs/pickr/internal/combobox"
	"github.com/mark3labs/pickr/internal/items"
	"github.com/mark3labs/pickr/internal/tui/theme"
)

// renderHintBar renders key/description pairs separated by dots.
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}
	s := theme.Current().S()

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSep.Render("•") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

func hintsFor(snap combobox.Snapshot[items.Item]) string {
	switch {
	case !snap.State.Focused():
		if snap.HasSelection {
			return renderHintBar("enter", "confirm", "tab", "edit", "esc", "quit")
		}
		return renderHintBar("tab", "focus", "esc", "quit")
	case snap.Open():
		return renderHintBar("↑/↓", "navigate", "enter", "select", "esc", "close")
	case snap.HasSelection:
		return renderHintBar("enter", "confirm", "↓", "open", "esc", "close")
	default:
		return renderHintBar("↓", "open", "type", "search", "esc", "close")
	}
}
