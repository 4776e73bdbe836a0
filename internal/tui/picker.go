// Package tui renders a combobox machine as an interactive terminal picker.
package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/pickr/internal/combobox"
	"github.com/mark3labs/pickr/internal/items"
	"github.com/mark3labs/pickr/internal/logger"
	"github.com/mark3labs/pickr/internal/tui/theme"
)

const (
	defaultWidth  = 60
	defaultHeight = 8
)

// Recorder receives every event the picker sends to its machine.
type Recorder interface {
	Record(ev combobox.Event)
}

// Options configure a Picker.
type Options struct {
	Items       []items.Item
	Search      combobox.SearchFunc[items.Item]
	Footer      string
	Placeholder string
	// Height is the number of list rows shown before scrolling.
	Height int
	// QuitOnSelect ends the program as soon as an item is committed.
	QuitOnSelect bool
	// AutoFocus focuses the combobox when the program starts.
	AutoFocus bool
	Recorder  Recorder
	// FooterAction runs after the footer is committed, off the update loop.
	FooterAction func(query string) (string, error)
	// Watch is re-issued after every items reload.
	Watch tea.Cmd
}

type hitKind int

const (
	hitNone hitKind = iota
	hitInput
	hitItem
	hitFooter
)

type hit struct {
	kind  hitKind
	index int
}

// Picker is the bubbletea model driving a combobox.Machine over items.
type Picker struct {
	opts    Options
	machine *combobox.Machine[items.Item]
	input   textinput.Model

	width  int
	height int

	offset  int
	listKey string
	hover   hit

	footerPending bool
	footerQuery   string

	status    string
	statusErr bool

	initCmd   tea.Cmd
	quitting  bool
	confirmed bool
}

// New creates a picker over opts.Items.
func New(opts Options) (*Picker, error) {
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	p := &Picker{opts: opts, input: newInput(opts.Placeholder)}
	if err := p.rebuild(opts.Items); err != nil {
		return nil, err
	}
	if opts.AutoFocus {
		p.initCmd = p.dispatch(combobox.Focus())
	}
	return p, nil
}

func newInput(placeholder string) textinput.Model {
	t := theme.Current()
	s := t.S()
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "❯ "
	input.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        s.Input,
			Placeholder: s.Placeholder,
			Prompt:      s.Prompt,
		},
		Blurred: textinput.StyleState{
			Text:        s.Item,
			Placeholder: s.Placeholder,
			Prompt:      s.Placeholder,
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Secondary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	input.SetWidth(defaultWidth - 4)
	return input
}

// rebuild replaces the machine with a fresh one over list.
func (p *Picker) rebuild(list []items.Item) error {
	m, err := combobox.New(combobox.Config[items.Item]{
		Items:            list,
		Search:           p.opts.Search,
		Comparator:       items.Equal,
		OnFooterSelected: p.onFooterSelected,
	})
	if err != nil {
		return err
	}
	p.machine = m
	p.offset = 0
	p.listKey = ""
	p.hover = hit{}
	return nil
}

func (p *Picker) onFooterSelected() error {
	p.footerPending = true
	p.footerQuery = p.machine.Snapshot().Query
	return nil
}

// Snapshot returns the machine's current snapshot.
func (p *Picker) Snapshot() combobox.Snapshot[items.Item] {
	return p.machine.Snapshot()
}

// Selection returns the committed item once the user confirmed it.
func (p *Picker) Selection() (items.Item, bool) {
	snap := p.machine.Snapshot()
	if !p.confirmed || !snap.HasSelection {
		return items.Item{}, false
	}
	return snap.Selection, true
}

func (p *Picker) Init() tea.Cmd {
	return tea.Batch(p.initCmd, p.opts.Watch)
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.input.SetWidth(max(p.width-4, 1))
		return p, nil

	case tea.KeyPressMsg:
		return p, p.handleKey(msg)

	case tea.MouseMotionMsg:
		return p, p.hoverTo(p.hitTest(msg.Mouse().Y))

	case tea.MouseClickMsg:
		return p, p.handleClick(msg.Mouse())

	case tea.MouseWheelMsg:
		return p, p.handleWheel(msg.Mouse())

	case FooterDoneMsg:
		p.setFooterStatus(msg)
		return p, nil

	case ItemsReloadedMsg:
		return p, p.reload(msg.Items)

	case ReloadFailedMsg:
		logger.Warn("reloading items: %v", msg.Err)
		p.setStatus("reload failed: "+msg.Err.Error(), true)
		return p, p.opts.Watch
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// dispatch records ev, sends it to the machine and brings the input in line
// with the resulting snapshot.
func (p *Picker) dispatch(ev combobox.Event) tea.Cmd {
	if p.opts.Recorder != nil {
		p.opts.Recorder.Record(ev)
	}
	before := p.machine.State()
	if err := p.machine.Send(ev); err != nil {
		logger.Error("combobox %s: %v", ev, err)
		p.setStatus(err.Error(), true)
	}

	var cmds []tea.Cmd
	if p.footerPending {
		p.footerPending = false
		cmds = append(cmds, p.dispatch(combobox.Blur()), p.runFooter(p.footerQuery))
	}
	cmds = append(cmds, p.sync())

	snap := p.machine.Snapshot()
	if before != combobox.StateIdle && snap.State == combobox.StateIdle && snap.HasSelection {
		p.setStatus("", false)
		if p.opts.QuitOnSelect {
			cmds = append(cmds, p.confirm())
		}
	}
	return tea.Batch(cmds...)
}

// sync shows the selection label, or the query when nothing is selected,
// and mirrors the machine's focus onto the text input.
func (p *Picker) sync() tea.Cmd {
	snap := p.machine.Snapshot()
	want := snap.Query
	if snap.HasSelection {
		want = snap.Selection.Label
	}
	if p.input.Value() != want {
		p.input.SetValue(want)
		p.input.CursorEnd()
	}
	p.scrollToPointer(snap)

	if !snap.State.Focused() {
		p.input.Blur()
		p.hover = hit{}
		return nil
	}
	if !p.input.Focused() {
		return p.input.Focus()
	}
	return nil
}

// scrollToPointer keeps the pointed item inside the visible window.
func (p *Picker) scrollToPointer(snap combobox.Snapshot[items.Item]) {
	key := snap.State.String() + "\x00" + snap.Query
	if key != p.listKey {
		p.listKey = key
		p.offset = 0
	}
	n := len(snap.List())
	rows := p.opts.Height
	if i, ok := snap.Pointer.ListIndex(); ok {
		if i < p.offset {
			p.offset = i
		}
		if i >= p.offset+rows {
			p.offset = i - rows + 1
		}
	}
	p.offset = max(0, min(p.offset, n-rows))
}

func (p *Picker) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	snap := p.machine.Snapshot()
	focused := snap.State.Focused()

	switch msg.String() {
	case "ctrl+c":
		return p.quit()
	case "esc":
		if focused {
			return p.dispatch(combobox.Blur())
		}
		return p.quit()
	case "tab":
		if !focused {
			return p.dispatch(combobox.Focus())
		}
		return nil
	case "shift+tab":
		if focused {
			return p.dispatch(combobox.Blur())
		}
		return nil
	case "up", "ctrl+p":
		if focused {
			return p.dispatch(combobox.Up())
		}
		return nil
	case "down", "ctrl+n":
		if focused {
			return p.dispatch(combobox.Down())
		}
		return nil
	case "enter":
		if snap.Open() {
			return p.dispatch(combobox.Enter())
		}
		if snap.HasSelection {
			return p.confirm()
		}
		if !focused {
			return p.dispatch(combobox.Focus())
		}
		return nil
	}

	var cmds []tea.Cmd
	if !focused {
		cmds = append(cmds, p.dispatch(combobox.Focus()))
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	cmds = append(cmds, cmd)
	if v := p.input.Value(); v != before {
		cmds = append(cmds, p.dispatch(combobox.QueryChanged(v)))
	}
	return tea.Batch(cmds...)
}

// hoverTo moves the mouse hover to target, sending leave and enter events.
func (p *Picker) hoverTo(target hit) tea.Cmd {
	if target.kind == hitInput {
		target = hit{}
	}
	if target == p.hover {
		return nil
	}
	var cmds []tea.Cmd
	switch p.hover.kind {
	case hitItem:
		cmds = append(cmds, p.dispatch(combobox.MouseLeaveItem()))
	case hitFooter:
		cmds = append(cmds, p.dispatch(combobox.MouseLeaveFooter()))
	}
	p.hover = target
	switch target.kind {
	case hitItem:
		cmds = append(cmds, p.dispatch(combobox.MouseEnterItem(target.index)))
	case hitFooter:
		cmds = append(cmds, p.dispatch(combobox.MouseEnterFooter()))
	}
	return tea.Batch(cmds...)
}

func (p *Picker) handleClick(mouse tea.Mouse) tea.Cmd {
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	focused := p.machine.State().Focused()
	target := p.hitTest(mouse.Y)

	switch target.kind {
	case hitInput:
		if !focused {
			return p.dispatch(combobox.Focus())
		}
		return nil
	case hitItem, hitFooter:
		return tea.Batch(p.hoverTo(target), p.dispatch(combobox.Click()))
	default:
		if focused {
			return p.dispatch(combobox.Blur())
		}
		return nil
	}
}

func (p *Picker) handleWheel(mouse tea.Mouse) tea.Cmd {
	if !p.machine.Snapshot().Open() {
		return nil
	}
	switch mouse.Button {
	case tea.MouseWheelUp:
		return p.dispatch(combobox.Up())
	case tea.MouseWheelDown:
		return p.dispatch(combobox.Down())
	}
	return nil
}

func (p *Picker) reload(list []items.Item) tea.Cmd {
	focused := p.machine.State().Focused()
	if err := p.rebuild(list); err != nil {
		p.setStatus(err.Error(), true)
		return p.opts.Watch
	}
	logger.Info("items reloaded: %d items", len(list))
	p.setStatus("items reloaded", false)

	var cmds []tea.Cmd
	if focused {
		if err := p.machine.Send(combobox.Focus()); err != nil {
			p.setStatus(err.Error(), true)
		}
	}
	cmds = append(cmds, p.sync(), p.opts.Watch)
	return tea.Batch(cmds...)
}

func (p *Picker) runFooter(query string) tea.Cmd {
	action := p.opts.FooterAction
	if action == nil {
		return nil
	}
	return func() tea.Msg {
		out, err := action(query)
		return FooterDoneMsg{Output: out, Err: err}
	}
}

func (p *Picker) setFooterStatus(msg FooterDoneMsg) {
	if msg.Err != nil {
		p.setStatus(msg.Err.Error(), true)
		return
	}
	for line := range strings.Lines(msg.Output) {
		if line = strings.TrimSpace(line); line != "" {
			p.setStatus(line, false)
			return
		}
	}
	p.setStatus("footer action finished", false)
}

func (p *Picker) setStatus(text string, isErr bool) {
	p.status = text
	p.statusErr = isErr
}

func (p *Picker) confirm() tea.Cmd {
	p.confirmed = true
	p.quitting = true
	return tea.Quit
}

func (p *Picker) quit() tea.Cmd {
	p.quitting = true
	return tea.Quit
}
