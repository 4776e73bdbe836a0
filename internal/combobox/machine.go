package combobox

import (
	"errors"
	"fmt"

	"github.com/mark3labs/pickr/internal/logger"
)

var (
	// ErrNoSearch is returned by New when Config.Search is nil.
	ErrNoSearch = errors.New("combobox: search function is required")
	// ErrNoComparator is returned by New when Config.Comparator is nil.
	ErrNoComparator = errors.New("combobox: comparator is required")
)

// SearchFunc returns the sub-sequence of items matching query.
type SearchFunc[T any] func(items []T, query string) []T

// Comparator reports whether two items are the same item.
type Comparator[T any] func(a, b T) bool

// Config holds the construction inputs of a Machine.
type Config[T any] struct {
	Items      []T
	Search     SearchFunc[T]
	Comparator Comparator[T]
	// OnFooterSelected runs when the footer is committed. Its error is
	// returned from the Send call that committed the footer.
	OnFooterSelected func() error
}

// State enumerates the stable and transient states of a Machine.
type State int

const (
	StateBlurred State = iota
	StateIdle
	StateSelect
	StateSearching
	StateNoResults
	StateHasResults
)

func (s State) String() string {
	switch s {
	case StateBlurred:
		return "blurred"
	case StateIdle:
		return "focused.idle"
	case StateSelect:
		return "focused.select"
	case StateSearching:
		return "focused.searching"
	case StateNoResults:
		return "focused.noResults"
	case StateHasResults:
		return "focused.hasResults"
	default:
		return "unknown"
	}
}

// Focused reports whether s is a sub-state of "focused".
func (s State) Focused() bool {
	return s != StateBlurred
}

// displaysList reports whether s runs a List child.
func (s State) displaysList() bool {
	return s == StateSelect || s == StateNoResults || s == StateHasResults
}

// Tag labels a stable state for a renderer.
type Tag string

const (
	TagOpen        Tag = "open"
	TagShowAll     Tag = "showAll"
	TagShowResults Tag = "showResults"
)

// Tags returns the tags attached to s.
func (s State) Tags() []Tag {
	switch s {
	case StateSelect:
		return []Tag{TagOpen, TagShowAll}
	case StateNoResults:
		return []Tag{TagOpen}
	case StateHasResults:
		return []Tag{TagOpen, TagShowResults}
	default:
		return nil
	}
}

// Machine is the combobox statechart. It owns query, results, selection and
// pointer, and runs at most one List child while a list is displayed.
//
// A Machine is not safe for concurrent use; callers serialize Send.
type Machine[T any] struct {
	items      []T
	search     SearchFunc[T]
	comparator Comparator[T]
	onFooter   func() error

	state        State
	query        string
	results      []T
	selection    T
	hasSelection bool
	pointer      Pointer

	list *List[T]
}

// New creates a Machine in the blurred state.
func New[T any](cfg Config[T]) (*Machine[T], error) {
	if cfg.Search == nil {
		return nil, ErrNoSearch
	}
	if cfg.Comparator == nil {
		return nil, ErrNoComparator
	}
	m := &Machine[T]{
		items:      cfg.Items,
		search:     cfg.Search,
		comparator: cfg.Comparator,
		onFooter:   cfg.OnFooterSelected,
		state:      StateBlurred,
		pointer:    NoPointer(),
	}
	m.enter(StateBlurred)
	return m, nil
}

// State returns the current stable state.
func (m *Machine[T]) State() State {
	return m.state
}

// Items returns the full candidate set.
func (m *Machine[T]) Items() []T {
	return m.items
}

// ListState returns the state of the running List child, if any.
func (m *Machine[T]) ListState() (ListState, bool) {
	if m.list == nil {
		return ListClosed, false
	}
	return m.list.State(), true
}

// Send processes one event to completion, including every message exchanged
// with the List child. Events the current state does not react to are
// ignored. The returned error comes from the footer callback.
func (m *Machine[T]) Send(ev Event) error {
	if m.state == StateBlurred {
		if ev.Kind == EventFocus {
			return m.transition(StateSelect)
		}
		return nil
	}

	switch ev.Kind {
	case EventBlur:
		return m.transition(StateBlurred)

	case EventQueryChanged:
		m.query = ev.Query
		m.results = m.search(m.items, ev.Query)
		return m.transition(StateSearching)

	case EventUp, EventDown:
		if m.state == StateIdle {
			return m.transition(StateSelect)
		}
		kind := ListUp
		if ev.Kind == EventDown {
			kind = ListDown
		}
		return m.forward(ListEvent{Kind: kind})

	case EventEnter, EventClick:
		return m.forward(ListEvent{Kind: ListSelect})

	case EventMouseEnterItem:
		return m.forward(ListEvent{Kind: ListMouseEnterItem, Index: ev.Index})

	case EventMouseLeaveItem:
		return m.forward(ListEvent{Kind: ListMouseLeaveItem})

	case EventMouseEnterFooter:
		return m.forward(ListEvent{Kind: ListMouseEnterFooter})

	case EventMouseLeaveFooter:
		return m.forward(ListEvent{Kind: ListMouseLeaveFooter})
	}
	return nil
}

// forward hands ev to the List child and folds its replies.
func (m *Machine[T]) forward(ev ListEvent) error {
	if m.list == nil || !m.state.displaysList() {
		return nil
	}
	return m.deliver(m.list.Send(ev))
}

func (m *Machine[T]) deliver(msgs []Message[T]) error {
	for _, msg := range msgs {
		if err := m.receive(msg); err != nil {
			return err
		}
	}
	return nil
}

// receive folds one child message into the machine. All three messages are
// handled on "focused".
func (m *Machine[T]) receive(msg Message[T]) error {
	if !m.state.Focused() {
		return nil
	}
	switch msg.Kind {
	case MessagePointerMoved:
		m.pointer = msg.Pointer

	case MessageItemSelected:
		m.selection = msg.Item
		m.hasSelection = true
		return m.transition(StateIdle)

	case MessageFooterSelected:
		if m.onFooter == nil {
			return nil
		}
		if err := m.onFooter(); err != nil {
			return fmt.Errorf("footer selected: %w", err)
		}
	}
	return nil
}

// transition leaves the current state for target and then follows transient
// transitions until the machine rests in a stable state.
func (m *Machine[T]) transition(target State) error {
	for {
		from := m.state
		m.exit(target)
		m.state = target
		logger.Debug("combobox: %s -> %s", from, target)

		if err := m.enter(target); err != nil {
			return err
		}

		next, ok := m.always()
		if !ok {
			return nil
		}
		target = next
	}
}

// always evaluates the guarded eventless transitions of the current state.
func (m *Machine[T]) always() (State, bool) {
	if m.state != StateSearching {
		return m.state, false
	}
	switch {
	case m.query != "" && len(m.results) == 0:
		return StateNoResults, true
	case m.query != "" && len(m.results) > 0:
		return StateHasResults, true
	default:
		return StateIdle, true
	}
}

func (m *Machine[T]) exit(target State) {
	m.list = nil
	if m.state.Focused() && !target.Focused() {
		m.pointer = NoPointer()
	}
}

func (m *Machine[T]) enter(s State) error {
	switch s {
	case StateBlurred:
		m.query = ""

	case StateIdle:
		// No list is displayed, so the pointer is cleared rather than left on
		// the committed index. Reopening places it on the selection again.
		m.pointer = NoPointer()

	case StateSelect:
		pointer := NoIndex
		if m.hasSelection {
			pointer = FindIndex(m.items, m.selection, m.comparator)
		}
		return m.startList(ListSeed[T]{Items: m.items, Pointer: pointer})

	case StateSearching:
		var zero T
		m.selection = zero
		m.hasSelection = false
		m.pointer = NoPointer()

	case StateNoResults:
		return m.startList(ListSeed[T]{Pointer: NoIndex})

	case StateHasResults:
		return m.startList(ListSeed[T]{Items: m.results, Pointer: NoIndex})
	}
	return nil
}

// startList starts a fresh List child and opens it. Any previous child has
// already been dropped by exit.
func (m *Machine[T]) startList(seed ListSeed[T]) error {
	m.list = NewList(seed)
	return m.deliver(m.list.Send(ListEvent{Kind: ListOpen}))
}
