package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive browser",
	Long: `Start dash in interactive browser mode.

Use arrow keys or j/k to navigate, Enter to play a level.
M or Esc on a level's title screen returns to the browser.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play level
  R            - Rescan level directory and library
  Q            - Quit

Examples:
  dash menu
  dash menu --levels ./levels
  dash menu --fps 30`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	runner, err := runnerConfig()
	if err != nil {
		fatal("could not load tuning", "error", err)
	}

	cat, closeCatalog, err := openCatalog()
	if err != nil {
		fatal("could not build level catalog", "error", err)
	}
	defer closeCatalog()

	if err := tui.RunMenu(cat, runner, runtimeConfig()); err != nil {
		fatal("error running menu", "error", err)
	}
}
