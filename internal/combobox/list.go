package combobox

// ListState enumerates the states of a List. Every state except ListClosed
// is a sub-state of "opened".
type ListState int

const (
	ListClosed ListState = iota
	ListIdle
	ListBrowsing
	ListFocusingFooter
)

func (s ListState) String() string {
	switch s {
	case ListClosed:
		return "closed"
	case ListIdle:
		return "opened.idle"
	case ListBrowsing:
		return "opened.browsingList"
	case ListFocusingFooter:
		return "opened.focusingFooter"
	default:
		return "unknown"
	}
}

// Opened reports whether s is a sub-state of "opened".
func (s ListState) Opened() bool {
	return s != ListClosed
}

// NoIndex marks an absent list pointer.
const NoIndex = -1

// ListSeed is the data a List is started with. Pointer is NoIndex when the
// list should not start on an item.
type ListSeed[T any] struct {
	Items   []T
	Pointer int
}

// List navigates a flat list of items followed by one footer slot. It never
// reads parent state; everything it learns arrives through its seed and
// Send, and everything it decides leaves as Messages.
type List[T any] struct {
	items   []T
	pointer int
	state   ListState
	outbox  []Message[T]
}

// NewList creates a closed List. An out-of-range seed pointer is dropped.
func NewList[T any](seed ListSeed[T]) *List[T] {
	pointer := seed.Pointer
	if pointer < 0 || pointer >= len(seed.Items) {
		pointer = NoIndex
	}
	return &List[T]{
		items:   seed.Items,
		pointer: pointer,
		state:   ListClosed,
	}
}

// State returns the current state.
func (l *List[T]) State() ListState {
	return l.state
}

// Pointer returns the current item index or NoIndex.
func (l *List[T]) Pointer() int {
	return l.pointer
}

// Items returns the seeded items.
func (l *List[T]) Items() []T {
	return l.items
}

// Send processes one message from the parent to completion and returns the
// messages addressed back to the parent, in the order they were produced.
// Messages the current state does not react to are ignored.
func (l *List[T]) Send(ev ListEvent) []Message[T] {
	l.outbox = nil
	l.handle(ev)
	out := l.outbox
	l.outbox = nil
	return out
}

func (l *List[T]) handle(ev ListEvent) {
	if l.state == ListClosed {
		if ev.Kind == ListOpen {
			l.enter(ListIdle)
		}
		return
	}

	// Handlers declared on "opened" apply in every sub-state.
	switch ev.Kind {
	case ListClose:
		l.state = ListClosed
		return
	case ListMouseEnterItem:
		if ev.Index < 0 || ev.Index >= len(l.items) {
			return
		}
		l.pointer = ev.Index
		l.enter(ListBrowsing)
		return
	case ListMouseLeaveItem, ListMouseLeaveFooter:
		l.pointer = NoIndex
		l.enter(ListIdle)
		return
	case ListMouseEnterFooter:
		l.enter(ListFocusingFooter)
		return
	}

	switch l.state {
	case ListIdle:
		if ev.Kind == ListDown {
			if len(l.items) > 0 {
				l.pointer = 0
				l.enter(ListBrowsing)
			} else {
				l.enter(ListFocusingFooter)
			}
		}

	case ListBrowsing:
		switch ev.Kind {
		case ListUp:
			if l.pointer == 0 {
				return
			}
			l.pointer--
			l.enter(ListBrowsing)
		case ListDown:
			if l.pointer == len(l.items)-1 {
				l.enter(ListFocusingFooter)
				return
			}
			l.pointer++
			l.enter(ListBrowsing)
		case ListSelect:
			l.report(Message[T]{Kind: MessageItemSelected, Item: l.items[l.pointer]})
		}

	case ListFocusingFooter:
		switch ev.Kind {
		case ListUp:
			if len(l.items) == 0 {
				return
			}
			l.pointer = len(l.items) - 1
			l.enter(ListBrowsing)
		case ListSelect:
			l.report(Message[T]{Kind: MessageFooterSelected})
		}
	}
}

// enter runs the entry action of target and then follows transient
// transitions until a stable state is reached.
func (l *List[T]) enter(target ListState) {
	for {
		l.state = target
		switch target {
		case ListIdle:
			l.reportListPointer()
			if l.pointer == NoIndex {
				return
			}
			target = ListBrowsing
		case ListBrowsing:
			l.reportListPointer()
			return
		case ListFocusingFooter:
			l.report(Message[T]{Kind: MessagePointerMoved, Pointer: FooterPointer()})
			return
		default:
			return
		}
	}
}

// reportListPointer reports list placement. An absent index is reported as
// no placement at all, so the parent never holds list(i) outside the items.
func (l *List[T]) reportListPointer() {
	pointer := NoPointer()
	if l.pointer != NoIndex {
		pointer = ListPointer(l.pointer)
	}
	l.report(Message[T]{Kind: MessagePointerMoved, Pointer: pointer})
}

func (l *List[T]) report(msg Message[T]) {
	l.outbox = append(l.outbox, msg)
}
