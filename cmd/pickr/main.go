package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mark3labs/pickr/internal/logger"
	"github.com/mark3labs/pickr/internal/tui/theme"
)

const (
	logoText1 = "█▀█ █ █▀▀ █▄▀ █▀█"
	logoText2 = "█▀▀ █ █▄▄ █ █ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pickr",
	Short: "Searchable single-choice combobox for the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.Current()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

var logoCmd = &cobra.Command{
	Use:    "logo",
	Short:  "Print the pickr logo",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		// Downsample the gradient to what the terminal supports.
		w := colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
		fmt.Fprintln(w, renderLogo())
	},
}

func init() {
	rootCmd.Long = renderLogo() + `

pickr is a searchable single-choice combobox. Type to filter a list of items,
move through the matches with the keyboard or mouse, and commit one. A footer
entry is always offered below the list for "can't find it" actions.

The widget is a two-level state machine. Its input events can be recorded to
an embedded NATS JetStream stream and replayed, and an MCP server lets agents
drive the same machine.`

	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(logoCmd)
}
