package combobox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointerMoved(p Pointer) Message[string] {
	return Message[string]{Kind: MessagePointerMoved, Pointer: p}
}

func TestListClosedOnlyOpens(t *testing.T) {
	l := NewList(ListSeed[string]{Items: []string{"a", "b"}, Pointer: NoIndex})

	for _, kind := range []ListEventKind{ListUp, ListDown, ListSelect, ListClose, ListMouseEnterFooter} {
		assert.Empty(t, l.Send(ListEvent{Kind: kind}), kind)
		assert.Equal(t, ListClosed, l.State())
	}
	assert.Empty(t, l.Send(ListEvent{Kind: ListMouseEnterItem, Index: 1}))
	assert.Equal(t, NoIndex, l.Pointer())

	msgs := l.Send(ListEvent{Kind: ListOpen})
	assert.Equal(t, []Message[string]{pointerMoved(NoPointer())}, msgs)
	assert.Equal(t, ListIdle, l.State())
	assert.True(t, l.State().Opened())
}

func TestListOpenWithSeedPointerSkipsIdle(t *testing.T) {
	l := NewList(ListSeed[string]{Items: []string{"a", "b", "c"}, Pointer: 2})

	msgs := l.Send(ListEvent{Kind: ListOpen})

	// idle reports on entry, then the transient move to browsing reports again
	assert.Equal(t, []Message[string]{
		pointerMoved(ListPointer(2)),
		pointerMoved(ListPointer(2)),
	}, msgs)
	assert.Equal(t, ListBrowsing, l.State())
	assert.Equal(t, 2, l.Pointer())
}

func TestListSeedPointerOutOfRangeDropped(t *testing.T) {
	l := NewList(ListSeed[string]{Items: []string{"a"}, Pointer: 3})
	assert.Equal(t, NoIndex, l.Pointer())

	l.Send(ListEvent{Kind: ListOpen})
	assert.Equal(t, ListIdle, l.State())
}

func TestListKeyboardNavigation(t *testing.T) {
	l := NewList(ListSeed[string]{Items: []string{"a", "b"}, Pointer: NoIndex})
	l.Send(ListEvent{Kind: ListOpen})

	assert.Equal(t, []Message[string]{pointerMoved(ListPointer(0))}, l.Send(ListEvent{Kind: ListDown}))
	assert.Empty(t, l.Send(ListEvent{Kind: ListUp}), "UP at first item is a no-op")
	assert.Equal(t, []Message[string]{pointerMoved(ListPointer(1))}, l.Send(ListEvent{Kind: ListDown}))
	assert.Equal(t, []Message[string]{pointerMoved(FooterPointer())}, l.Send(ListEvent{Kind: ListDown}))
	assert.Equal(t, ListFocusingFooter, l.State())
	assert.Empty(t, l.Send(ListEvent{Kind: ListDown}), "DOWN on footer is a no-op")
	assert.Equal(t, []Message[string]{pointerMoved(ListPointer(1))}, l.Send(ListEvent{Kind: ListUp}))
	assert.Equal(t, ListBrowsing, l.State())
}

func TestListSelect(t *testing.T) {
	l := NewList(ListSeed[string]{Items: []string{"a", "b"}, Pointer: 1})
	l.Send(ListEvent{Kind: ListOpen})

	msgs := l.Send(ListEvent{Kind: ListSelect})
	require.Len(t, msgs, 1)
	assert.Equal(t, MessageItemSelected, msgs[0].Kind)
	assert.Equal(t, "b", msgs[0].Item)

	l.Send(ListEvent{Kind: ListDown})
	msgs = l.Send(ListEvent{Kind: ListSelect})
	assert.Equal(t, []Message[string]{{Kind: MessageFooterSelected}}, msgs)
}

func TestListSelectInIdleIgnored(t *testing.T) {
	l := NewList(ListSeed[string]{Items: []string{"a"}, Pointer: NoIndex})
	l.Send(ListEvent{Kind: ListOpen})

	assert.Empty(t, l.Send(ListEvent{Kind: ListSelect}))
	assert.Empty(t, l.Send(ListEvent{Kind: ListUp}))
	assert.Equal(t, ListIdle, l.State())
}

func TestListEmptyItems(t *testing.T) {
	l := NewList(ListSeed[string]{Pointer: NoIndex})
	l.Send(ListEvent{Kind: ListOpen})

	assert.Equal(t, []Message[string]{pointerMoved(FooterPointer())}, l.Send(ListEvent{Kind: ListDown}))
	assert.Empty(t, l.Send(ListEvent{Kind: ListUp}), "UP on footer with no items is a no-op")
	assert.Equal(t, ListFocusingFooter, l.State())
}

func TestListMouse(t *testing.T) {
	l := NewList(ListSeed[string]{Items: []string{"a", "b", "c"}, Pointer: NoIndex})
	l.Send(ListEvent{Kind: ListOpen})

	assert.Equal(t, []Message[string]{pointerMoved(ListPointer(2))},
		l.Send(ListEvent{Kind: ListMouseEnterItem, Index: 2}))
	assert.Equal(t, ListBrowsing, l.State())

	assert.Empty(t, l.Send(ListEvent{Kind: ListMouseEnterItem, Index: 7}))
	assert.Equal(t, 2, l.Pointer())

	assert.Equal(t, []Message[string]{pointerMoved(NoPointer())},
		l.Send(ListEvent{Kind: ListMouseLeaveItem}))
	assert.Equal(t, ListIdle, l.State())

	assert.Equal(t, []Message[string]{pointerMoved(FooterPointer())},
		l.Send(ListEvent{Kind: ListMouseEnterFooter}))
	assert.Equal(t, []Message[string]{pointerMoved(NoPointer())},
		l.Send(ListEvent{Kind: ListMouseLeaveFooter}))
	assert.Equal(t, ListIdle, l.State())
}

func TestListClose(t *testing.T) {
	l := NewList(ListSeed[string]{Items: []string{"a"}, Pointer: 0})
	l.Send(ListEvent{Kind: ListOpen})

	assert.Empty(t, l.Send(ListEvent{Kind: ListClose}))
	assert.Equal(t, ListClosed, l.State())
	assert.Empty(t, l.Send(ListEvent{Kind: ListSelect}))
}
