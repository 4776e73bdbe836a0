package combobox

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Placement identifies what the pointer is resting on.
type Placement int

const (
	PlacementNone Placement = iota
	PlacementList
	PlacementFooter
)

// String returns the wire name of a placement.
func (p Placement) String() string {
	switch p {
	case PlacementNone:
		return "none"
	case PlacementList:
		return "list"
	case PlacementFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// ParsePlacement parses a placement wire name.
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "none", "":
		return PlacementNone, nil
	case "list":
		return PlacementList, nil
	case "footer":
		return PlacementFooter, nil
	default:
		return PlacementNone, fmt.Errorf("invalid placement: %s", s)
	}
}

// Pointer is the single focus cursor of the widget.
// Index is only meaningful when Placement is PlacementList.
type Pointer struct {
	Placement Placement
	Index     int
}

// NoPointer returns a pointer resting on nothing.
func NoPointer() Pointer {
	return Pointer{Placement: PlacementNone}
}

// ListPointer returns a pointer resting on the item at index.
func ListPointer(index int) Pointer {
	return Pointer{Placement: PlacementList, Index: index}
}

// FooterPointer returns a pointer resting on the footer.
func FooterPointer() Pointer {
	return Pointer{Placement: PlacementFooter}
}

// ListIndex returns the index the pointer rests on, if it rests on a list item.
func (p Pointer) ListIndex() (int, bool) {
	if p.Placement != PlacementList {
		return 0, false
	}
	return p.Index, true
}

// String renders the pointer as none, footer or list(i).
func (p Pointer) String() string {
	if p.Placement == PlacementList {
		return fmt.Sprintf("list(%d)", p.Index)
	}
	return p.Placement.String()
}

type pointerJSON struct {
	Placement string `json:"placement"`
	Index     *int   `json:"index,omitempty"`
}

// MarshalJSON encodes the pointer as {"placement":"list","index":3}.
func (p Pointer) MarshalJSON() ([]byte, error) {
	out := pointerJSON{Placement: p.Placement.String()}
	if p.Placement == PlacementList {
		index := p.Index
		out.Index = &index
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (p *Pointer) UnmarshalJSON(data []byte) error {
	var in pointerJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	placement, err := ParsePlacement(in.Placement)
	if err != nil {
		return err
	}
	*p = Pointer{Placement: placement}
	if placement == PlacementList {
		if in.Index == nil {
			return fmt.Errorf("list pointer without index")
		}
		p.Index = *in.Index
	}
	return nil
}

// FindIndex returns the index of the first element of items equivalent to x
// under eq, or -1.
func FindIndex[T any](items []T, x T, eq Comparator[T]) int {
	return slices.IndexFunc(items, func(y T) bool { return eq(x, y) })
}
