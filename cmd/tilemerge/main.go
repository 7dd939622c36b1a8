// tilemerge is a terminal sliding tile merging puzzle.
//
// Usage:
//
//	tilemerge list               - List available boards
//	tilemerge play [board]       - Play a board (default 2048)
//	tilemerge menu               - Pick boards interactively
//	tilemerge serve              - Start SSH server for remote play
//	tilemerge history [board]    - Show recorded games
//	tilemerge autoplay [board]   - Play headless games with a strategy
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set history database path (default: ~/.tilemerge/history.db)
//	--config <path>   - Custom game config YAML
//	--log <path>      - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilemerge/internal/config"
	"github.com/vovakirdan/tilemerge/internal/core"
	"github.com/vovakirdan/tilemerge/internal/games/t2048"
	"github.com/vovakirdan/tilemerge/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilemerge",
	Short: "Slide and merge numbered tiles in your terminal",
	Long: `tilemerge is a terminal version of the sliding tile merging puzzle.
Slide every tile in one direction; equal neighbours merge into the next
value. The game ends when the board is full and nothing can move.

Available commands:
  list      - Show all boards
  play      - Play a board directly
  menu      - Interactive board picker
  serve     - Start SSH server for remote play
  history   - View recorded games
  autoplay  - Run headless games with a strategy

Examples:
  tilemerge play
  tilemerge play 2048_5x5 --difficulty hard
  tilemerge menu
  tilemerge serve --ssh :2222
  tilemerge autoplay --games 100 --strategy corner`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		t2048.SetConfigPath(flagConfig)
		t2048.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(autoplayCmd)
}

// newLogger builds the logger for commands that own the terminal. Without
// --log, output is discarded so it cannot corrupt the TUI.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	closer := func() {}
	if flagLogPath != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilemerge",
		Level:           level,
	})
	t2048.SetLogger(logger)
	return logger, closer, nil
}

// openStore opens the history database. Failure is reported and the game
// continues without history.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
