package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/pickr/internal/combobox"
	"github.com/mark3labs/pickr/internal/config"
	"github.com/mark3labs/pickr/internal/hooks"
	"github.com/mark3labs/pickr/internal/items"
	"github.com/mark3labs/pickr/internal/logger"
	natsstore "github.com/mark3labs/pickr/internal/nats"
	"github.com/mark3labs/pickr/internal/recording"
	"github.com/mark3labs/pickr/internal/search"
)

// loadConfig loads and validates configuration and applies its logging
// settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	if !config.Exists() {
		logger.Debug("No config file found, using defaults")
	}
	return cfg, nil
}

// loadItems reads the items file, or returns the demo fruits when path is
// empty.
func loadItems(path, jsonPath string) ([]items.Item, error) {
	if path == "" {
		return items.Fruits(), nil
	}
	list, err := items.Load(path, jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	logger.Debug("Loaded %d items from %s", len(list), path)
	return list, nil
}

func searchFunc(mode string) (combobox.SearchFunc[items.Item], error) {
	fn, err := search.ByName(mode, items.Label)
	if err != nil {
		return nil, fmt.Errorf("invalid search mode: %w", err)
	}
	return fn, nil
}

// recorderStore is an open event stream and the server behind it.
type recorderStore struct {
	embedded *natsstore.Embedded
	store    *recording.Store
}

func openStore(ctx context.Context, dataDir string) (*recorderStore, error) {
	embedded, err := natsstore.Start(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to start event store: %w", err)
	}
	stream, err := natsstore.SetupStream(ctx, embedded.JS)
	if err != nil {
		_ = embedded.Close()
		return nil, fmt.Errorf("failed to set up stream: %w", err)
	}
	return &recorderStore{embedded: embedded, store: recording.NewStore(embedded.JS, stream)}, nil
}

func (r *recorderStore) Close() {
	if r == nil {
		return
	}
	if err := r.embedded.Close(); err != nil {
		logger.Warn("Closing event store: %v", err)
	}
}

// footerHook returns the configured footer_selected hook bound to session, or
// nil when no hook is configured.
func footerHook(ctx context.Context, session string) (func(query string) (string, error), error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	hooksCfg, err := hooks.LoadConfig(workDir)
	if err != nil {
		return nil, err
	}
	hook := hooksCfg.FooterSelected()
	if hook == nil {
		return nil, nil
	}
	return func(query string) (string, error) {
		return hooks.Execute(ctx, hook, workDir, hooks.Variables{Query: query, Session: session})
	}, nil
}
