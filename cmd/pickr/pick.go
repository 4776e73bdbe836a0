package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/mark3labs/pickr/internal/items"
	"github.com/mark3labs/pickr/internal/itemswatch"
	"github.com/mark3labs/pickr/internal/logger"
	"github.com/mark3labs/pickr/internal/recording"
	"github.com/mark3labs/pickr/internal/tui"
)

var pickFlags struct {
	search      string
	footer      string
	placeholder string
	height      int
	record      bool
	session     string
	reset       bool
	watch       bool
	keepOpen    bool
}

var pickCmd = &cobra.Command{
	Use:   "pick [items-file]",
	Short: "Pick one item interactively",
	Long: `Open the picker over the items in items-file and print the committed
label to stdout.

Items files may be YAML, JSON, TOML or plain text (one label per line). Without
a file the built-in fruit list is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringVarP(&pickFlags.search, "search", "s", "", "Search mode: substring or fuzzy")
	pickCmd.Flags().StringVarP(&pickFlags.footer, "footer", "f", "", "Footer label")
	pickCmd.Flags().StringVar(&pickFlags.placeholder, "placeholder", "", "Input placeholder")
	pickCmd.Flags().IntVar(&pickFlags.height, "height", 0, "Visible list rows")
	pickCmd.Flags().BoolVarP(&pickFlags.record, "record", "r", false, "Record input events to the event store")
	pickCmd.Flags().StringVarP(&pickFlags.session, "session", "n", "", "Recording session name (default: generated)")
	pickCmd.Flags().BoolVar(&pickFlags.reset, "reset", false, "Clear the session's recorded events before starting")
	pickCmd.Flags().BoolVarP(&pickFlags.watch, "watch", "w", false, "Reload items when the file changes")
	pickCmd.Flags().BoolVar(&pickFlags.keepOpen, "keep-open", false, "Stay open after an item is committed; confirm with enter")
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if pickFlags.search != "" {
		cfg.Search = pickFlags.search
	}
	if pickFlags.footer != "" {
		cfg.Footer = pickFlags.footer
	}
	if pickFlags.placeholder != "" {
		cfg.Placeholder = pickFlags.placeholder
	}
	if pickFlags.height > 0 {
		cfg.Height = pickFlags.height
	}
	if pickFlags.record {
		cfg.Record = true
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

	session := recording.SessionName(pickFlags.session)
	opts := tui.Options{
		Items:        list,
		Search:       searchFn,
		Footer:       cfg.Footer,
		Placeholder:  cfg.Placeholder,
		Height:       cfg.Height,
		QuitOnSelect: !pickFlags.keepOpen,
		AutoFocus:    true,
	}

	if cfg.Record {
		rs, err := openStore(ctx, cfg.DataDir)
		if err != nil {
			return err
		}
		defer rs.Close()
		if pickFlags.reset {
			if err := rs.store.Reset(ctx, session); err != nil {
				return fmt.Errorf("failed to reset session: %w", err)
			}
		}
		opts.Recorder = recording.NewRecorder(rs.store, session)
		logger.Info("Recording session %s", session)
	}

	if opts.FooterAction, err = footerHook(ctx, session); err != nil {
		return err
	}

	if pickFlags.watch {
		if itemsPath == "" {
			return fmt.Errorf("--watch needs an items file")
		}
		w, err := itemswatch.New(itemsPath)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
		opts.Watch = tui.WatchItems(w, func() ([]items.Item, error) {
			return items.Load(itemsPath, cfg.ItemsPath)
		})
	}

	picker, err := tui.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create picker: %w", err)
	}

	// The TUI owns the terminal, so render to stderr and keep stdout for the
	// result.
	p := tea.NewProgram(picker, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	if cfg.Record {
		fmt.Fprintf(os.Stderr, "session: %s\n", session)
	}
	item, ok := picker.Selection()
	if !ok {
		return fmt.Errorf("no item selected")
	}
	fmt.Fprintln(cmd.OutOrStdout(), item.Label)
	return nil
}
