package registry

import (
	"testing"

	"github.com/vovakirdan/star-dodge/internal/audio"
	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/sim"
)

type stubSkin struct{ id string }

func (s stubSkin) ID() string { return s.id }
func (s stubSkin) Title() string { return "Stub " + s.id }
func (s stubSkin) Variant() config.Variant { return config.VariantRocket }
func (s stubSkin) Theme() audio.Theme { return audio.ThemeOrbit }
func (s stubSkin) Sprites() []core.Sprite { return nil }
func (s stubSkin) DrawPlayer(core.Surface, sim.Player, int) {}
func (s stubSkin) DrawObstacle(core.Surface, sim.Obstacle) {}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", func() Skin { return stubSkin{id: "zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered skin should exist")
	}

	s, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if s.ID() != "zz-stub" {
		t.Errorf("ID = %q, expected zz-stub", s.ID())
	}

	var found bool
	list := List()
	for i, info := range list {
		if i > 0 && list[i-1].ID >= info.ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, info.ID)
		}
		if info.ID == "zz-stub" {
			found = true
			if info.Title != "Stub zz-stub" || info.Variant != config.VariantRocket {
				t.Errorf("info = %+v", info)
			}
		}
	}
	if !found {
		t.Error("List() is missing the registered skin")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); err == nil {
		t.Error("Create() should fail for unknown skins")
	}
	if Exists("does-not-exist") {
		t.Error("Exists() should be false for unknown skins")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Skin { return stubSkin{id: "zz-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("zz-dup", func() Skin { return stubSkin{id: "zz-dup"} })
}
