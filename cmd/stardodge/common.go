package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/storage"
)

// newLogger builds the logger for a frontend. The terminal is owned by the
// game, so without --log-file interactive commands log nowhere.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, func() { f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "stardodge",
		Level:           level,
	})
	return logger, closer, nil
}

// terminalConfig returns the runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// lookupSkin creates the named skin, or the first registered one.
func lookupSkin(args []string) (registry.Skin, error) {
	id := "starship"
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown skin %q, run 'stardodge skins' to see available ships", id)
	}
	return registry.Create(id)
}

// gameConfig resolves the balance for a skin: the variant (flag, the
// file's variant key, then the skin's own), the config file over it, then
// the difficulty preset.
func gameConfig(skin registry.Skin, difficulty string) (config.GameConfig, error) {
	return config.Resolve(flagConfig, config.Presets{
		Variant:     flagVariant,
		SkinVariant: skin.Variant(),
		Difficulty:  difficulty,
	})
}

// openStore opens the score database. Games still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
		return nil
	}
	return store
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
