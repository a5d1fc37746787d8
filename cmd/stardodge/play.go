package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-dodge/internal/audio/music"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/platform/tui"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [skin]",
	Short: "Play in the terminal",
	Long: `Start playing with the given ship (default: starship).

Controls:
  Left/A/H   - Steer left
  Right/D/L  - Steer right
  Mouse drag - Steer towards the pointer
  Enter      - Start / play again
  P/Esc      - Pause
  M          - Mute music
  B          - Back to the menu (start screen, pause or game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slow spawns, more lives
  normal - The config's own cadence
  hard   - Fast spawns, a single life
  fixed  - No spawn-rate ramp

Examples:
  stardodge play
  stardodge play rocket
  stardodge play starship --difficulty hard
  stardodge play --config ./my-balance.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	skin, err := lookupSkin(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(logger)

	runErr := playSkin(skin, flagDifficulty, store, terminalConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playSkin runs one terminal game with music until the player quits.
func playSkin(skin registry.Skin, difficulty string, store *storage.Store, rt core.RuntimeConfig, logger *log.Logger) error {
	game, err := gameConfig(skin, difficulty)
	if err != nil {
		return err
	}

	player := music.NewPlayer(skin.Theme(), game.Audio, logger)
	defer player.Stop()

	logger.Info("game starting", "skin", skin.ID(), "variant", game.Variant, "difficulty", difficulty)
	return tui.Run(tui.Options{
		Config:  game,
		Skin:    skin,
		Runtime: rt,
		Player:  playerName(),
		Store:   store,
		Audio:   player,
		Logger:  logger,
	})
}
