package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mark3labs/pickr/internal/logger"
	"github.com/mark3labs/pickr/internal/mcpserver"
	"github.com/mark3labs/pickr/internal/recording"
)

var serveFlags struct {
	addr    string
	search  string
	record  bool
	session string
}

var serveCmd = &cobra.Command{
	Use:   "serve [items-file]",
	Short: "Serve a combobox over MCP",
	Long: `Start an MCP server whose combobox-send and combobox-snapshot tools drive
one combobox over the items in items-file. Blocks until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.addr, "addr", "a", "127.0.0.1:0", "Listen address")
	serveCmd.Flags().StringVarP(&serveFlags.search, "search", "s", "", "Search mode: substring or fuzzy")
	serveCmd.Flags().BoolVarP(&serveFlags.record, "record", "r", false, "Record dispatched events to the event store")
	serveCmd.Flags().StringVarP(&serveFlags.session, "session", "n", "", "Recording session name (default: generated)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.search != "" {
		cfg.Search = serveFlags.search
	}

	itemsPath := ""
	if len(args) == 1 {
		itemsPath = args[0]
	}
	list, err := loadItems(itemsPath, cfg.ItemsPath)
	if err != nil {
		return err
	}
	searchFn, err := searchFunc(cfg.Search)
	if err != nil {
		return err
	}

	session := recording.SessionName(serveFlags.session)
	opts := mcpserver.Options{Items: list, Search: searchFn}

	if cfg.Record || serveFlags.record {
		rs, err := openStore(ctx, cfg.DataDir)
		if err != nil {
			return err
		}
		defer rs.Close()
		opts.Recorder = recording.NewRecorder(rs.store, session)
	}

	action, err := footerHook(ctx, session)
	if err != nil {
		return err
	}
	if action != nil {
		opts.OnFooterSelected = func(query string) error {
			out, err := action(query)
			logger.Info("footer hook output: %s", out)
			return err
		}
	}

	srv, err := mcpserver.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	if _, err := srv.Start(ctx, serveFlags.addr); err != nil {
		return err
	}
	defer func() {
		if err := srv.Stop(); err != nil {
			logger.Warn("%v", err)
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", srv.URL())
	if opts.Recorder != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Recording session %s\n", session)
	}

	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")
	return nil
}
