package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilemerge/internal/games/t2048"
	"github.com/vovakirdan/tilemerge/internal/platform/tui"
	"github.com/vovakirdan/tilemerge/internal/registry"
	"github.com/vovakirdan/tilemerge/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [board]",
	Short: "Show recorded games",
	Long: `Display recently finished games and per-board statistics.

Only summaries are stored: a recorded game cannot be resumed.

Examples:
  tilemerge history
  tilemerge history 2048_5x5 --limit 50
  tilemerge history --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Open the interactive history browser")
}

func runHistory(_ *cobra.Command, args []string) error {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			return fmt.Errorf("unknown board %q (run 'tilemerge list')", variant)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if flagHistoryTUI {
		cfg := runtimeConfig()
		_, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	runs, err := store.RecentRuns(variant, flagHistoryLimit)
	if err != nil {
		return err
	}

	title := "all boards"
	if variant != "" {
		title = variant
	}
	fmt.Printf("History - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tilemerge play' and finish a game to record it.")
		return nil
	}

	fmt.Printf("  %-10s  %-6s  %-6s  %-6s  %-10s  %s\n", "Board", "Best", "Moves", "Merges", "Outcome", "Date")
	fmt.Printf("  %-10s  %-6s  %-6s  %-6s  %-10s  %s\n", "-----", "----", "-----", "------", "-------", "----")
	for _, r := range runs {
		fmt.Printf("  %-10s  %-6s  %-6d  %-6d  %-10s  %s\n",
			r.Variant, bestTile(r.MaxRank), r.Moves, r.Merges, r.Outcome,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	variants := []string{variant}
	if variant == "" {
		if variants, err = store.Variants(); err != nil {
			return err
		}
	}

	fmt.Println()
	for _, v := range variants {
		stats, err := store.Stats(v)
		if err != nil {
			return err
		}
		fmt.Printf("%-10s  %d games, %d finished, best tile %s\n",
			v, stats.Runs, stats.Completed, bestTile(stats.BestMaxRank))
	}
	return nil
}

func bestTile(rank int) string {
	if rank < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", t2048.RankValue(rank))
}
