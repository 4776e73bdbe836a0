// Package mcpserver exposes a combobox over the Model Context Protocol so an
// agent can drive it with the same events a user would.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/pickr/internal/combobox"
	"github.com/mark3labs/pickr/internal/items"
	"github.com/mark3labs/pickr/internal/logger"
)

// Recorder receives every event dispatched to the machine.
type Recorder interface {
	Record(ev combobox.Event)
}

// Options configure a Server.
type Options struct {
	Items  []items.Item
	Search combobox.SearchFunc[items.Item]
	// Recorder is optional.
	Recorder Recorder
	// OnFooterSelected runs with the current query when the footer is
	// committed. It is optional.
	OnFooterSelected func(query string) error
}

// shutdownTimeout bounds how long Stop waits for in-flight tool calls.
const shutdownTimeout = 5 * time.Second

// Server owns one combobox machine and serves it over streamable HTTP.
// Tool calls are serialized.
type Server struct {
	mu       sync.Mutex // guards the machine
	machine  *combobox.Machine[items.Item]
	recorder Recorder
	onFooter func(query string) error
	footered bool

	mcpServer *server.MCPServer

	httpMu    sync.Mutex // guards stdServer and port; never held with mu
	stdServer *http.Server
	port      int
}

// New creates a server. The HTTP listener is not opened until Start.
func New(opts Options) (*Server, error) {
	s := &Server{
		recorder: opts.Recorder,
		onFooter: opts.OnFooterSelected,
	}

	m, err := combobox.New(combobox.Config[items.Item]{
		Items:            opts.Items,
		Search:           opts.Search,
		Comparator:       items.Equal,
		OnFooterSelected: s.footerSelected,
	})
	if err != nil {
		return nil, fmt.Errorf("creating combobox: %w", err)
	}
	s.machine = m

	s.mcpServer = server.NewMCPServer(
		"pickr",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s, nil
}

// footerSelected runs inside Send, with s.mu already held.
func (s *Server) footerSelected() error {
	s.footered = true
	if s.onFooter == nil {
		return nil
	}
	return s.onFooter(s.machine.Snapshot().Query)
}

// Dispatch sends ev to the machine and returns the resulting view. A footer
// commit blurs the combobox afterwards, as the picker does.
func (s *Server) Dispatch(ev combobox.Event) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.footered = false
	if s.recorder != nil {
		s.recorder.Record(ev)
	}
	err := s.machine.Send(ev)

	footered := s.footered
	if footered {
		blur := combobox.Blur()
		if s.recorder != nil {
			s.recorder.Record(blur)
		}
		err = errors.Join(err, s.machine.Send(blur))
	}

	view := NewView(s.machine.Snapshot())
	view.FooterSelected = footered
	return view, err
}

// Snapshot returns the current view.
func (s *Server) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewView(s.machine.Snapshot())
}

// Start serves MCP on addr, or on a random local port when addr is empty.
// It returns the bound port.
func (s *Server) Start(ctx context.Context, addr string) (int, error) {
	s.httpMu.Lock()
	defer s.httpMu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))
	s.stdServer = &http.Server{Handler: mux}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Debug("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down, waiting up to shutdownTimeout for
// in-flight tool calls. Stopping a stopped server is a no-op.
func (s *Server) Stop() error {
	s.httpMu.Lock()
	stdServer := s.stdServer
	s.stdServer = nil
	s.httpMu.Unlock()

	if stdServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stdServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("stopping mcp server: %w", err)
	}
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the MCP endpoint.
func (s *Server) URL() string {
	s.httpMu.Lock()
	defer s.httpMu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
