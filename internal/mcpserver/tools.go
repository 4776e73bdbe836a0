package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mark3labs/pickr/internal/combobox"
	"github.com/mark3labs/pickr/internal/items"
)

// View is the JSON form of a snapshot returned by every tool.
type View struct {
	State     string           `json:"state"`
	Tags      []combobox.Tag   `json:"tags"`
	Query     string           `json:"query"`
	Results   []items.Item     `json:"results"`
	Displayed []items.Item     `json:"displayed"`
	Selection *items.Item      `json:"selection,omitempty"`
	Pointer   combobox.Pointer `json:"pointer"`
	// FooterSelected is set when the dispatched event committed the footer.
	FooterSelected bool `json:"footer_selected,omitempty"`
}

// NewView converts a snapshot to its JSON form.
func NewView(snap combobox.Snapshot[items.Item]) View {
	v := View{
		State:     snap.State.String(),
		Tags:      snap.Tags,
		Query:     snap.Query,
		Results:   snap.Results,
		Displayed: snap.List(),
		Pointer:   snap.Pointer,
	}
	if v.Tags == nil {
		v.Tags = []combobox.Tag{}
	}
	if v.Results == nil {
		v.Results = []items.Item{}
	}
	if v.Displayed == nil {
		v.Displayed = []items.Item{}
	}
	if snap.HasSelection {
		sel := snap.Selection
		v.Selection = &sel
	}
	return v
}

func (s *Server) registerTools() {
	names := make([]string, 0, len(combobox.EventKinds()))
	for _, k := range combobox.EventKinds() {
		names = append(names, k.String())
	}

	s.mcpServer.AddTool(
		mcp.NewTool("combobox-send",
			mcp.WithDescription("Send one input event to the combobox and return its state afterwards"),
			mcp.WithString("event", mcp.Required(),
				mcp.Description("Event name"),
				mcp.Enum(names...),
			),
			mcp.WithString("query",
				mcp.Description("New input text, for QUERY_CHANGED"),
			),
			mcp.WithNumber("index",
				mcp.Description("Index into the displayed list, for MOUSE_ENTER_ITEM"),
			),
		),
		s.handleSend,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("combobox-snapshot",
			mcp.WithDescription("Return the combobox state without changing it"),
		),
		s.handleSnapshot,
	)
}

func (s *Server) handleSend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("event")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, err := combobox.ParseEventKind(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ev := combobox.Event{Kind: kind}
	switch kind {
	case combobox.EventQueryChanged:
		ev.Query = request.GetString("query", "")
	case combobox.EventMouseEnterItem:
		ev.Index = request.GetInt("index", -1)
	}

	view, err := s.Dispatch(ev)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", ev, err)), nil
	}
	return viewResult(view)
}

func (s *Server) handleSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return viewResult(s.Snapshot())
}

func viewResult(v View) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling view: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
