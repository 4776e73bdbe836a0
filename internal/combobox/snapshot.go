package combobox

import "slices"

// Snapshot is a read-only view of a Machine between events.
type Snapshot[T any] struct {
	State        State   `json:"state"`
	Tags         []Tag   `json:"tags"`
	Query        string  `json:"query"`
	Results      []T     `json:"results"`
	Selection    T       `json:"selection"`
	HasSelection bool    `json:"hasSelection"`
	Pointer      Pointer `json:"pointer"`

	items []T
}

// Snapshot captures the observable state of m.
func (m *Machine[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		State:        m.state,
		Tags:         m.state.Tags(),
		Query:        m.query,
		Results:      m.results,
		Selection:    m.selection,
		HasSelection: m.hasSelection,
		Pointer:      m.pointer,
		items:        m.items,
	}
}

// HasTag reports whether the snapshot carries tag.
func (s Snapshot[T]) HasTag(tag Tag) bool {
	return slices.Contains(s.Tags, tag)
}

// Open reports whether a list is displayed.
func (s Snapshot[T]) Open() bool {
	return s.HasTag(TagOpen)
}

// List returns the items currently displayed: every item while showing all,
// the results while showing results, and nothing otherwise.
func (s Snapshot[T]) List() []T {
	switch {
	case s.HasTag(TagShowAll):
		return s.items
	case s.HasTag(TagShowResults):
		return s.Results
	default:
		return nil
	}
}

// Highlighted reports whether the pointer rests on the displayed item at i.
func (s Snapshot[T]) Highlighted(i int) bool {
	index, ok := s.Pointer.ListIndex()
	return ok && index == i
}

// FooterHighlighted reports whether the pointer rests on the footer.
func (s Snapshot[T]) FooterHighlighted() bool {
	return s.Pointer.Placement == PlacementFooter
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
