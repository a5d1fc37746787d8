package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/platform/tui"
	"github.com/vovakirdan/star-dodge/internal/registry"
)

// runMenu is the root command: pick a ship, play, and come back.
//
// Controls:
//
//	Up/Down/j/k  - Navigate ships
//	Left/Right   - Change difficulty
//	Enter/Space  - Play
//	Tab          - Scoreboard
//	Q            - Quit
func runMenu(_ *cobra.Command, _ []string) {
	difficulty, err := config.ParseDifficulty(flagDifficulty)
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
	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, difficulty, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size and difficulty changes made in the menu
		cfg = menuResult.Config
		difficulty = menuResult.Difficulty

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, logger)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.SkinID == "" {
			break
		}

		skin, err := registry.Create(menuResult.SkinID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating skin: %v\n", err)
			continue
		}

		// Fresh seed for each game unless one was pinned
		rt := cfg
		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}

		if err := playSkin(skin, string(difficulty), store, rt, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
