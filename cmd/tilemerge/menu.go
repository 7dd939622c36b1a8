package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilemerge/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a board picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a board, then pick a
difficulty. Leaving a game returns to the menu. Tab opens the history
browser.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - History
  Esc/B        - Back
  Q            - Quit

Examples:
  tilemerge menu
  tilemerge menu --fps 30
  tilemerge menu --db ./history.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
