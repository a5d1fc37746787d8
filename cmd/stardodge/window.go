package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/platform/window"
)

var (
	flagAssets string
	flagWidth  int
	flagHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window [skin]",
	Short: "Play in a desktop window",
	Long: `Open a resizable window and play with the given ship.

Sprites are loaded from --assets in the background; until they are
available the ships and asteroids are drawn as vector shapes.

Controls:
  Left/Right, A/D  - Steer
  Mouse or touch   - Drag to steer
  Enter/Space/tap  - Start / play again
  P                - Pause
  M                - Mute music
  Esc/Q            - Quit

Examples:
  stardodge window
  stardodge window rocket --width 480 --height 800
  stardodge window --assets ./assets`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagAssets, "assets", "assets", "Directory holding the sprite sheets")
	windowCmd.Flags().IntVar(&flagWidth, "width", 800, "Initial window width in pixels")
	windowCmd.Flags().IntVar(&flagHeight, "height", 600, "Initial window height in pixels")
}

func runWindow(_ *cobra.Command, args []string) {
	skin, err := lookupSkin(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := gameConfig(skin, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	runErr := window.Run(window.Options{
		Config: game,
		Skin:   skin,
		Runtime: core.RuntimeConfig{
			ScreenW:  flagWidth,
			ScreenH:  flagHeight,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		AssetsDir: flagAssets,
		Player:    playerName(),
		Store:     store,
		Logger:    logger,
	})
	if runErr != nil {
		logger.Error("window closed with error", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
