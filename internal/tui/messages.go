package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/pickr/internal/items"
	"github.com/mark3labs/pickr/internal/itemswatch"
)

// FooterDoneMsg carries the outcome of the footer action.
type FooterDoneMsg struct {
	Output string
	Err    error
}

// ItemsReloadedMsg replaces the candidate set after the items file changed.
type ItemsReloadedMsg struct {
	Items []items.Item
}

// ReloadFailedMsg reports an items file that changed but could not be read.
type ReloadFailedMsg struct {
	Err error
}

// WatchItems waits for the next change reported by w and reloads the items
// with load. The picker re-issues the command after every reload.
func WatchItems(w *itemswatch.Watcher, load func() ([]items.Item, error)) tea.Cmd {
	return func() tea.Msg {
		<-w.Events()
		list, err := load()
		if err != nil {
			return ReloadFailedMsg{Err: err}
		}
		return ItemsReloadedMsg{Items: list}
	}
}
