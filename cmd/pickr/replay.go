package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark3labs/pickr/internal/combobox"
	"github.com/mark3labs/pickr/internal/items"
	"github.com/mark3labs/pickr/internal/mcpserver"
	"github.com/mark3labs/pickr/internal/recording"
)

var replayFlags struct {
	session string
	search  string
	steps   bool
	list    bool
}

var replayCmd = &cobra.Command{
	Use:   "replay [items-file]",
	Short: "Replay a recorded session",
	Long: `Replay the events recorded for a session into a fresh combobox over the
items in items-file and print the resulting snapshot as JSON.

Use the same items file and search mode the session was recorded with.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayFlags.session, "session", "n", "", "Session to replay")
	replayCmd.Flags().StringVarP(&replayFlags.search, "search", "s", "", "Search mode: substring or fuzzy")
	replayCmd.Flags().BoolVar(&replayFlags.steps, "steps", false, "Print the state after every event")
	replayCmd.Flags().BoolVarP(&replayFlags.list, "list", "l", false, "List recorded sessions")
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if replayFlags.search != "" {
		cfg.Search = replayFlags.search
	}

	rs, err := openStore(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer rs.Close()

	if replayFlags.list {
		sessions, err := rs.store.Sessions(ctx)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		for _, s := range sessions {
			fmt.Fprintln(out, s)
		}
		return nil
	}
	if replayFlags.session == "" {
		return fmt.Errorf("--session is required")
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

	rec, err := rs.store.Load(ctx, replayFlags.session)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if len(rec.Records) == 0 {
		return fmt.Errorf("session %s has no recorded events", replayFlags.session)
	}

	m, err := combobox.New(combobox.Config[items.Item]{
		Items:      list,
		Search:     searchFn,
		Comparator: items.Equal,
	})
	if err != nil {
		return err
	}

	var step func(int, combobox.Event, combobox.Snapshot[items.Item])
	if replayFlags.steps {
		step = func(i int, ev combobox.Event, snap combobox.Snapshot[items.Item]) {
			fmt.Fprintf(out, "%4d  %-22s %-20s pointer=%s query=%q\n", i+1, ev, snap.State, snap.Pointer, snap.Query)
		}
	}
	if err := recording.Replay(m, rec.Events(), step); err != nil {
		return err
	}
	if rec.Skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d malformed events\n", rec.Skipped)
	}

	data, err := json.MarshalIndent(mcpserver.NewView(m.Snapshot()), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
