package combobox

import "fmt"

// EventKind enumerates the input events a Machine accepts at runtime.
type EventKind int

const (
	EventFocus EventKind = iota + 1
	EventBlur
	EventQueryChanged
	EventUp
	EventDown
	EventEnter
	EventClick
	EventMouseEnterItem
	EventMouseLeaveItem
	EventMouseEnterFooter
	EventMouseLeaveFooter
)

var eventNames = map[EventKind]string{
	EventFocus:            "FOCUS",
	EventBlur:             "BLUR",
	EventQueryChanged:     "QUERY_CHANGED",
	EventUp:               "UP",
	EventDown:             "DOWN",
	EventEnter:            "ENTER",
	EventClick:            "CLICK",
	EventMouseEnterItem:   "MOUSE_ENTER_ITEM",
	EventMouseLeaveItem:   "MOUSE_LEAVE_ITEM",
	EventMouseEnterFooter: "MOUSE_ENTER_FOOTER",
	EventMouseLeaveFooter: "MOUSE_LEAVE_FOOTER",
}

// String returns the wire name of the event kind, e.g. QUERY_CHANGED.
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EVENT(%d)", int(k))
}

// ParseEventKind parses a wire name produced by EventKind.String.
func ParseEventKind(name string) (EventKind, error) {
	for kind, n := range eventNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown event: %s", name)
}

// EventKinds returns every event kind in declaration order.
func EventKinds() []EventKind {
	kinds := make([]EventKind, 0, len(eventNames))
	for k := EventFocus; k <= EventMouseLeaveFooter; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Event is an external input to the combobox. Query is set for
// QUERY_CHANGED and Index for MOUSE_ENTER_ITEM.
type Event struct {
	Kind  EventKind
	Query string
	Index int
}

func (e Event) String() string {
	switch e.Kind {
	case EventQueryChanged:
		return fmt.Sprintf("%s{%q}", e.Kind, e.Query)
	case EventMouseEnterItem:
		return fmt.Sprintf("%s{%d}", e.Kind, e.Index)
	default:
		return e.Kind.String()
	}
}

// Focus returns an EventFocus event.
func Focus() Event { return Event{Kind: EventFocus} }

// Blur returns an EventBlur event.
func Blur() Event { return Event{Kind: EventBlur} }

// QueryChanged returns an event carrying the new input text.
func QueryChanged(query string) Event { return Event{Kind: EventQueryChanged, Query: query} }

// Up returns an EventUp event.
func Up() Event { return Event{Kind: EventUp} }

// Down returns an EventDown event.
func Down() Event { return Event{Kind: EventDown} }

// Enter returns an EventEnter event.
func Enter() Event { return Event{Kind: EventEnter} }

// Click returns an EventClick event.
func Click() Event { return Event{Kind: EventClick} }

// MouseEnterItem returns an event for the pointer entering displayed item index.
func MouseEnterItem(index int) Event { return Event{Kind: EventMouseEnterItem, Index: index} }

// MouseLeaveItem returns an EventMouseLeaveItem event.
func MouseLeaveItem() Event { return Event{Kind: EventMouseLeaveItem} }

// MouseEnterFooter returns an EventMouseEnterFooter event.
func MouseEnterFooter() Event { return Event{Kind: EventMouseEnterFooter} }

// MouseLeaveFooter returns an EventMouseLeaveFooter event.
func MouseLeaveFooter() Event { return Event{Kind: EventMouseLeaveFooter} }

// ListEventKind enumerates the messages a List accepts from its parent.
type ListEventKind int

const (
	ListOpen ListEventKind = iota + 1
	ListClose
	ListUp
	ListDown
	ListSelect
	ListMouseEnterItem
	ListMouseLeaveItem
	ListMouseEnterFooter
	ListMouseLeaveFooter
)

// ListEvent is a parent-to-child message.
type ListEvent struct {
	Kind  ListEventKind
	Index int
}

// MessageKind enumerates the child-to-parent messages.
type MessageKind int

const (
	MessagePointerMoved MessageKind = iota + 1
	MessageItemSelected
	MessageFooterSelected
)

func (k MessageKind) String() string {
	switch k {
	case MessagePointerMoved:
		return "POINTER_MOVED"
	case MessageItemSelected:
		return "ITEM_SELECTED"
	case MessageFooterSelected:
		return "FOOTER_SELECTED"
	default:
		return fmt.Sprintf("MESSAGE(%d)", int(k))
	}
}

// Message is reported by a List to its parent Machine. Pointer is set for
// POINTER_MOVED and Item for ITEM_SELECTED.
type Message[T any] struct {
	Kind    MessageKind
	Pointer Pointer
	Item    T
}
