package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/star-dodge/internal/config"
)

func TestLookupSkin(t *testing.T) {
	skin, err := lookupSkin(nil)
	if err != nil {
		t.Fatalf("default skin: %v", err)
	}
	if skin.ID() != "starship" {
		t.Errorf("default skin = %q, expected starship", skin.ID())
	}

	if _, err := lookupSkin([]string{"ufo"}); err == nil {
		t.Error("unknown skin should fail")
	}
}

func TestGameConfigUsesSkinVariant(t *testing.T) {
	flagConfig, flagVariant = "", ""
	defer func() { flagVariant = "" }()

	rocket, err := lookupSkin([]string{"rocket"})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := gameConfig(rocket, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != config.VariantRocket {
		t.Errorf("variant = %q, expected rocket", cfg.Variant)
	}

	flagVariant = "starship"
	cfg, err = gameConfig(rocket, "hard")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != config.VariantStarship {
		t.Errorf("--variant should win over the skin, got %q", cfg.Variant)
	}

	if _, err := gameConfig(rocket, "impossible"); err == nil {
		t.Error("unknown difficulty should fail")
	}
}

func TestGameConfigKeepsFileGeometry(t *testing.T) {
	flagConfig = filepath.Join(t.TempDir(), "balance.yaml")
	flagVariant = ""
	defer func() { flagConfig = "" }()
	if err := os.WriteFile(flagConfig, []byte("player:\n  width_ratio: 0.3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"starship", "rocket"} {
		skin, err := lookupSkin([]string{id})
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := gameConfig(skin, "")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Player.WidthRatio != 0.3 {
			t.Errorf("%s: width_ratio = %v, expected the file's 0.3", id, cfg.Player.WidthRatio)
		}
	}
}

func TestRootHelpReward(t *testing.T) {
	reward := config.DefaultConfig().Scoring.DodgeReward
	if want := fmt.Sprintf("scores %d points", reward); !strings.Contains(rootCmd.Long, want) {
		t.Errorf("root help should say %q", want)
	}
}

func TestPort(t *testing.T) {
	tests := []struct{ addr, want string }{
		{":23234", "23234"},
		{"localhost:2222", "2222"},
		{"bogus", "bogus"},
	}
	for _, tt := range tests {
		if got := port(tt.addr); got != tt.want {
			t.Errorf("port(%q) = %q, expected %q", tt.addr, got, tt.want)
		}
	}
}
