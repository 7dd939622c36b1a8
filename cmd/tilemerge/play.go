package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilemerge/internal/platform/tui"
	"github.com/vovakirdan/tilemerge/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default 2048).

Controls:
  Arrows/WASD/HJKL - Slide tiles
  P/Space          - Pause
  R                - New game
  Esc/B            - Leave the game
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Rarely spawns 4s, slow progression
  normal - Spawn bias grows with moves
  hard   - Starts with a high spawn bias
  fixed  - No progression, uses the config's spawn bias

Examples:
  tilemerge play
  tilemerge play 2048_3x3
  tilemerge play --difficulty hard
  tilemerge play --config ./my-2048.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "2048"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q (run 'tilemerge list')", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	var recorder tui.Recorder
	if store := openStore(); store != nil {
		defer store.Close()
		recorder = store
	}

	logger.Info("starting game", "board", gameID, "seed", flagSeed, "difficulty", flagDifficulty)
	if err := tui.Run(game, recorder, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
