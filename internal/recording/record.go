// Package recording stores combobox input events in JetStream and replays
// them into fresh machines.
package recording

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/xid"

	"github.com/mark3labs/pickr/internal/combobox"
)

// Record is one recorded input event as stored on the stream.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session"`
	Event     string    `json:"event"`
	Query     string    `json:"query,omitempty"`
	Index     int       `json:"index,omitempty"`

	// Seq is the stream sequence, filled in on load.
	Seq uint64 `json:"-"`
}

// NewRecord wraps ev for session with a fresh ID.
func NewRecord(session string, ev combobox.Event) Record {
	return Record{
		ID:        xid.New().String(),
		Timestamp: time.Now(),
		Session:   session,
		Event:     ev.Kind.String(),
		Query:     ev.Query,
		Index:     ev.Index,
	}
}

// ToEvent converts the record back into a combobox event.
func (r Record) ToEvent() (combobox.Event, error) {
	kind, err := combobox.ParseEventKind(r.Event)
	if err != nil {
		return combobox.Event{}, err
	}
	ev := combobox.Event{Kind: kind}
	switch kind {
	case combobox.EventQueryChanged:
		ev.Query = r.Query
	case combobox.EventMouseEnterItem:
		ev.Index = r.Index
	}
	return ev, nil
}

// SessionName turns a user supplied name into a subject-safe token. An empty
// name yields a new unique one.
func SessionName(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return xid.New().String()
}

// Recording is a loaded session.
type Recording struct {
	Session string
	Records []Record
	// Skipped counts stored messages that could not be decoded.
	Skipped int
}

// Events returns the decoded events in stream order.
func (r *Recording) Events() []combobox.Event {
	events := make([]combobox.Event, 0, len(r.Records))
	for _, rec := range r.Records {
		ev, err := rec.ToEvent()
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events
}

// Replay sends events to m in order. step, when non-nil, observes the
// snapshot after each event.
func Replay[T any](m *combobox.Machine[T], events []combobox.Event, step func(i int, ev combobox.Event, snap combobox.Snapshot[T])) error {
	for i, ev := range events {
		if err := m.Send(ev); err != nil {
			return fmt.Errorf("replaying event %d (%s): %w", i, ev, err)
		}
		if step != nil {
			step(i, ev, m.Snapshot())
		}
	}
	return nil
}
