// Package nats runs the embedded JetStream server pickr records to.
package nats

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/pickr/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// StartEmbeddedNATS starts an in-process NATS server with JetStream file
// storage under dataDir. The server listens on no network port.
func StartEmbeddedNATS(dataDir string) (*server.Server, error) {
	logger.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
		NoSigs:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}
	logger.Debug("NATS server ready for connections")
	return ns, nil
}

// ConnectInProcess connects to ns without going through the network.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	conn, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		return nil, fmt.Errorf("connecting in-process: %w", err)
	}
	return conn, nil
}

// Embedded bundles a running server with a connection and JetStream context.
type Embedded struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
}

// Start starts a server under dataDir and connects to it.
func Start(dataDir string) (*Embedded, error) {
	ns, err := StartEmbeddedNATS(dataDir)
	if err != nil {
		return nil, err
	}

	nc, err := ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	return &Embedded{Server: ns, Conn: nc, JS: js}, nil
}

// Close drains the connection and stops the server.
func (e *Embedded) Close() error {
	if e == nil {
		return nil
	}
	return Shutdown(e.Conn, e.Server)
}

// Shutdown drains nc and then stops ns, bounding both steps with a timeout.
// Either argument may be nil.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		done := make(chan error, 1)
		go func() { done <- nc.Drain() }()

		select {
		case err := <-done:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(drainTimeout):
			logger.Warn("NATS drain timed out after %s, forcing close", drainTimeout)
			nc.Close()
		}
	}

	if ns == nil {
		return nil
	}

	ns.Shutdown()
	stopped := make(chan struct{})
	go func() {
		ns.WaitForShutdown()
		close(stopped)
	}()

	select {
	case <-stopped:
		logger.Debug("NATS server shut down cleanly")
		return nil
	case <-time.After(shutdownTimeout):
		logger.Error("NATS server shutdown timed out after %s", shutdownTimeout)
		return errors.New("nats server shutdown timed out")
	}
}
