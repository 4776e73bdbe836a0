package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/mark3labs/pickr/internal/combobox"
	"github.com/mark3labs/pickr/internal/items"
	"github.com/mark3labs/pickr/internal/tui/theme"
)

// Row layout, top to bottom: input, panel border, list rows (or the empty
// notice), footer, panel border, status, hints. Without an open list the
// panel is skipped.
const (
	inputRow = 0
	listTop  = 2
)

type frame struct {
	open    bool
	rows    int // visible list rows
	offset  int
	emptyY  int
	footerY int
	statusY int
	hintsY  int
}

func (p *Picker) frame(snap combobox.Snapshot[items.Item]) frame {
	f := frame{emptyY: -1, footerY: -1, offset: p.offset}
	if !snap.Open() {
		f.statusY = listTop
		f.hintsY = listTop + 1
		return f
	}
	f.open = true
	y := listTop
	if n := len(snap.List()); n == 0 {
		f.emptyY = y
		y++
	} else {
		f.rows = min(n-p.offset, p.opts.Height)
		y += f.rows
	}
	f.footerY = y
	f.statusY = y + 2
	f.hintsY = y + 3
	return f
}

// hitTest maps a cell to the part of the picker drawn there.
func (p *Picker) hitTest(y int) hit {
	if y == inputRow {
		return hit{kind: hitInput}
	}
	f := p.frame(p.machine.Snapshot())
	if !f.open {
		return hit{}
	}
	if y >= listTop && y < listTop+f.rows {
		return hit{kind: hitItem, index: f.offset + y - listTop}
	}
	if y == f.footerY {
		return hit{kind: hitFooter}
	}
	return hit{}
}

func (p *Picker) size() (int, int) {
	w, h := p.width, p.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = p.opts.Height + 6
	}
	return w, h
}

// View renders the picker full screen with mouse motion reporting.
func (p *Picker) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion

	if p.quitting {
		view.AltScreen = false
		view.MouseMode = 0
		view.Content = lipgloss.NewLayer("")
		return view
	}

	w, h := p.size()
	canvas := uv.NewScreenBuffer(w, h)
	p.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// Draw paints the picker into area.
func (p *Picker) Draw(scr uv.Screen, area uv.Rectangle) {
	s := theme.Current().S()
	snap := p.machine.Snapshot()
	f := p.frame(snap)
	width := area.Dx()

	drawRow(scr, area, inputRow, p.input.View())

	if f.open {
		inner := max(width-2, 1)
		lines := p.listLines(snap, f, inner)
		panel := s.Panel
		if snap.State.Focused() {
			panel = s.PanelFocused
		}
		block := panel.Render(strings.Join(lines, "\n"))
		uv.NewStyledString(block).Draw(scr, uv.Rect(area.Min.X, area.Min.Y+listTop-1, width, len(lines)+2))
	}

	drawRow(scr, area, f.statusY, p.statusLine(snap, width))
	drawRow(scr, area, f.hintsY, hintsFor(snap))
}

func (p *Picker) listLines(snap combobox.Snapshot[items.Item], f frame, width int) []string {
	s := theme.Current().S()
	list := snap.List()

	var lines []string
	if f.emptyY >= 0 {
		lines = append(lines, s.Empty.Render(pad("  No results", width)))
	}
	for r := 0; r < f.rows; r++ {
		i := f.offset + r
		item := list[i]
		prefix, style := "  ", s.Item
		switch {
		case snap.Highlighted(i):
			prefix, style = "▸ ", s.ItemHighlighted
		case snap.HasSelection && items.Equal(item, snap.Selection):
			prefix, style = "✓ ", s.ItemSelected
		}
		label := ansi.Truncate(item.Label, max(width-2, 1), "…")
		lines = append(lines, style.Render(pad(prefix+label, width)))
	}

	footer := ansi.Truncate("+ "+p.opts.Footer, width, "…")
	if snap.FooterHighlighted() {
		lines = append(lines, s.FooterHighlighted.Render(pad(footer, width)))
	} else {
		lines = append(lines, s.Footer.Render(pad(footer, width)))
	}
	return lines
}

func (p *Picker) statusLine(snap combobox.Snapshot[items.Item], width int) string {
	s := theme.Current().S()
	var text string
	style := s.Status
	switch {
	case p.status != "":
		text = p.status
		if p.statusErr {
			style = s.Error
		}
	case snap.HasSelection:
		text = "selected: " + snap.Selection.Label
	case snap.Open():
		text = fmt.Sprintf("%d/%d", len(snap.List()), len(p.machine.Items()))
	}
	if text == "" {
		return ""
	}
	return style.Render(ansi.Truncate(text, width, "…"))
}

// pad right-fills s with spaces to width cells.
func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func drawRow(scr uv.Screen, area uv.Rectangle, y int, content string) {
	if y < 0 || y >= area.Dy() || content == "" {
		return
	}
	uv.NewStyledString(content).Draw(scr, uv.Rect(area.Min.X, area.Min.Y+y, area.Dx(), 1))
}
