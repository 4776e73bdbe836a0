package tui

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/pickr/internal/combobox"
	"github.com/mark3labs/pickr/internal/items"
	"github.com/mark3labs/pickr/internal/search"
	"github.com/mark3labs/pickr/internal/tui/testfixtures"
)

type eventLog struct {
	events []combobox.Event
}

func (l *eventLog) Record(ev combobox.Event) {
	l.events = append(l.events, ev)
}

func newPicker(t *testing.T, mutate func(*Options)) *Picker {
	t.Helper()
	opts := Options{
		Items:       items.Fruits(),
		Search:      search.Substring(items.Label),
		Footer:      "Can't find your item?",
		Placeholder: "Search items",
		AutoFocus:   true,
	}
	if mutate != nil {
		mutate(&opts)
	}
	p, err := New(opts)
	require.NoError(t, err)
	p.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})
	return p
}

func press(p *Picker, code rune) tea.Cmd {
	_, cmd := p.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func typeText(p *Picker, text string) {
	for _, r := range text {
		p.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func render(p *Picker) []string {
	return testfixtures.Render(p.Draw)
}

func TestPickerAutoFocusShowsAllItems(t *testing.T) {
	p := newPicker(t, nil)

	snap := p.Snapshot()
	assert.Equal(t, combobox.StateSelect, snap.State)
	assert.True(t, p.input.Focused())

	rows := render(p)
	assert.Contains(t, testfixtures.Row(rows, 0), "❯")
	assert.Contains(t, testfixtures.Row(rows, 2), "Apple")
	assert.Contains(t, testfixtures.Row(rows, 9), "Peach", "eight rows are visible")
	assert.Contains(t, testfixtures.Row(rows, 10), "Can't find your item?")
	assert.Contains(t, testfixtures.Row(rows, 12), "14/14")
}

func TestPickerNewRequiresSearch(t *testing.T) {
	_, err := New(Options{Items: items.Fruits()})
	assert.ErrorIs(t, err, combobox.ErrNoSearch)
}

func TestPickerTypeThenSelect(t *testing.T) {
	p := newPicker(t, nil)

	typeText(p, "an")
	snap := p.Snapshot()
	assert.Equal(t, combobox.StateHasResults, snap.State)
	assert.Equal(t, "an", snap.Query)
	assert.Equal(t, []string{"Banana", "Orange", "Mango"}, labels(snap.List()))

	press(p, tea.KeyDown)
	assert.Equal(t, combobox.ListPointer(0), p.Snapshot().Pointer)
	assert.Contains(t, testfixtures.Row(render(p), 2), "▸ Banana")

	press(p, tea.KeyEnter)
	snap = p.Snapshot()
	assert.Equal(t, combobox.StateIdle, snap.State)
	assert.Equal(t, "Banana", snap.Selection.Label)
	assert.Equal(t, "Banana", p.input.Value(), "input shows the selection label")
	assert.False(t, p.quitting)

	_, ok := p.Selection()
	assert.False(t, ok, "selection is not confirmed yet")

	cmd := press(p, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	item, ok := p.Selection()
	assert.True(t, ok)
	assert.Equal(t, "banana", item.ID)
}

func TestPickerQuitOnSelect(t *testing.T) {
	p := newPicker(t, func(o *Options) { o.QuitOnSelect = true })

	press(p, tea.KeyDown)
	press(p, tea.KeyEnter)

	assert.True(t, p.quitting)
	item, ok := p.Selection()
	assert.True(t, ok)
	assert.Equal(t, "Apple", item.Label)
}

func TestPickerEditingSelectionSearchesAgain(t *testing.T) {
	p := newPicker(t, nil)
	press(p, tea.KeyDown)
	press(p, tea.KeyDown)
	press(p, tea.KeyEnter)
	require.Equal(t, "Banana", p.input.Value())

	typeText(p, "s")
	snap := p.Snapshot()
	assert.Equal(t, "Bananas", snap.Query)
	assert.False(t, snap.HasSelection)
	assert.Equal(t, combobox.StateNoResults, snap.State)
}

func TestPickerEscBlursThenQuits(t *testing.T) {
	p := newPicker(t, nil)
	press(p, tea.KeyDown)
	press(p, tea.KeyEnter)

	press(p, tea.KeyEscape)
	snap := p.Snapshot()
	assert.Equal(t, combobox.StateBlurred, snap.State)
	assert.False(t, p.input.Focused())
	assert.Equal(t, "", snap.Query)
	assert.Contains(t, testfixtures.Row(render(p), 0), "Apple", "blurred input keeps the label")

	press(p, tea.KeyTab)
	snap = p.Snapshot()
	assert.Equal(t, combobox.StateSelect, snap.State)
	assert.Equal(t, combobox.ListPointer(0), snap.Pointer, "pointer starts on the selection")

	press(p, tea.KeyEscape)
	cmd := press(p, tea.KeyEscape)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	_, ok := p.Selection()
	assert.False(t, ok)
}

func TestPickerTypingWhileBlurredFocuses(t *testing.T) {
	p := newPicker(t, func(o *Options) { o.AutoFocus = false })
	require.Equal(t, combobox.StateBlurred, p.Snapshot().State)

	typeText(p, "k")
	snap := p.Snapshot()
	assert.Equal(t, combobox.StateHasResults, snap.State)
	assert.Equal(t, []string{"Kiwi"}, labels(snap.List()))
}

func TestPickerMouseHoverAndClick(t *testing.T) {
	p := newPicker(t, nil)

	p.Update(tea.MouseMotionMsg{X: 5, Y: 4})
	assert.Equal(t, combobox.ListPointer(2), p.Snapshot().Pointer)

	p.Update(tea.MouseMotionMsg{X: 5, Y: 10})
	assert.Equal(t, combobox.FooterPointer(), p.Snapshot().Pointer)

	p.Update(tea.MouseMotionMsg{X: 5, Y: 0})
	assert.Equal(t, combobox.NoPointer(), p.Snapshot().Pointer)

	p.Update(tea.MouseClickMsg{X: 5, Y: 3, Button: tea.MouseLeft})
	snap := p.Snapshot()
	assert.Equal(t, combobox.StateIdle, snap.State)
	assert.Equal(t, "Banana", snap.Selection.Label)
}

func TestPickerClickOutsideBlurs(t *testing.T) {
	p := newPicker(t, nil)

	p.Update(tea.MouseClickMsg{X: 1, Y: 15, Button: tea.MouseLeft})
	assert.Equal(t, combobox.StateBlurred, p.Snapshot().State)

	p.Update(tea.MouseClickMsg{X: 1, Y: 0, Button: tea.MouseLeft})
	assert.Equal(t, combobox.StateSelect, p.Snapshot().State)
}

func TestPickerWheelMovesPointer(t *testing.T) {
	p := newPicker(t, nil)

	p.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	p.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	assert.Equal(t, combobox.ListPointer(1), p.Snapshot().Pointer)

	p.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	assert.Equal(t, combobox.ListPointer(0), p.Snapshot().Pointer)
}

func TestPickerScrollsToPointer(t *testing.T) {
	p := newPicker(t, func(o *Options) { o.Height = 3 })

	for range 5 {
		press(p, tea.KeyDown)
	}
	assert.Equal(t, combobox.ListPointer(4), p.Snapshot().Pointer)
	assert.Equal(t, 2, p.offset)

	rows := render(p)
	assert.Contains(t, testfixtures.Row(rows, 2), "Coconut")
	assert.Contains(t, testfixtures.Row(rows, 4), "▸ Watermelon")

	p.Update(tea.MouseMotionMsg{Y: 2})
	assert.Equal(t, combobox.ListPointer(2), p.Snapshot().Pointer)
}

func TestPickerFooterRunsActionAndBlurs(t *testing.T) {
	var got string
	p := newPicker(t, func(o *Options) {
		o.FooterAction = func(query string) (string, error) {
			got = query
			return "created " + query + "\n", nil
		}
	})

	typeText(p, "zz")
	rows := render(p)
	assert.Contains(t, testfixtures.Row(rows, 2), "No results")
	assert.Contains(t, testfixtures.Row(rows, 3), "Can't find your item?")

	press(p, tea.KeyDown)
	assert.True(t, p.Snapshot().FooterHighlighted())

	press(p, tea.KeyEnter)
	assert.Equal(t, combobox.StateBlurred, p.Snapshot().State)
	assert.Equal(t, "zz", p.footerQuery)

	msg := p.runFooter(p.footerQuery)()
	assert.Equal(t, "zz", got)
	p.Update(msg)
	assert.Equal(t, "created zz", p.status)
	assert.False(t, p.statusErr)

	p.Update(FooterDoneMsg{Err: errors.New("hook failed")})
	assert.Equal(t, "hook failed", p.status)
	assert.True(t, p.statusErr)
}

func TestPickerRecordsEvents(t *testing.T) {
	log := &eventLog{}
	p := newPicker(t, func(o *Options) { o.Recorder = log })

	press(p, tea.KeyDown)
	typeText(p, "a")

	assert.Equal(t, []combobox.Event{
		combobox.Focus(),
		combobox.Down(),
		combobox.QueryChanged("a"),
	}, log.events)
}

func TestPickerReload(t *testing.T) {
	p := newPicker(t, nil)
	typeText(p, "an")

	p.Update(ItemsReloadedMsg{Items: []items.Item{items.New("Fig"), items.New("Date")}})
	snap := p.Snapshot()
	assert.Equal(t, combobox.StateSelect, snap.State, "reloaded machine keeps focus")
	assert.Equal(t, []string{"Fig", "Date"}, labels(snap.List()))
	assert.Equal(t, "", p.input.Value())
	assert.Equal(t, "items reloaded", p.status)

	p.Update(ReloadFailedMsg{Err: errors.New("bad yaml")})
	assert.Contains(t, p.status, "bad yaml")
}

func TestPickerView(t *testing.T) {
	p := newPicker(t, nil)

	view := p.View()
	assert.True(t, view.AltScreen)
	assert.Equal(t, tea.MouseModeAllMotion, view.MouseMode)

	_, _ = p.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	view = p.View()
	assert.False(t, view.AltScreen)
}

func TestHintBar(t *testing.T) {
	assert.Equal(t, "", renderHintBar("enter"))
	assert.Equal(t, "enter select • esc close", ansi.Strip(renderHintBar("enter", "select", "esc", "close")))
}

func labels(list []items.Item) []string {
	out := make([]string, len(list))
	for i, it := range list {
		out[i] = it.Label
	}
	return out
}
