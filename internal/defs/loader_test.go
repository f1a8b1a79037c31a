package defs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-companion-combat/internal/config"
	"go-companion-combat/internal/types"
)

func TestDefaultLibraryCoversCatalog(t *testing.T) {
	lib := Default()

	for lvl := config.MinLevel; lvl <= config.MaxLevel; lvl++ {
		if got := lib.Level(lvl).Level; got != lvl {
			t.Errorf("Level(%d) returned definition for level %d", lvl, got)
		}
	}
	for _, e := range types.Elements {
		if lib.Element(e).ID != e {
			t.Errorf("missing element %s", e)
		}
	}
	for _, id := range types.Enchantments {
		def, ok := lib.Enchantment(id)
		if !ok {
			t.Errorf("missing enchantment %s", id)
			continue
		}
		if def.MaxLevel < 1 || def.MaxLevel > 3 {
			t.Errorf("%s: max level %d out of range", id, def.MaxLevel)
		}
	}
	if len(lib.PolymorphTable()) == 0 {
		t.Error("polymorph table should not be empty")
	}
}

func TestLevelLookupClamps(t *testing.T) {
	lib := Default()
	if lib.Level(-3).Level != 1 {
		t.Error("levels below range should clamp to 1")
	}
	if lib.Level(99).Level != config.MaxLevel {
		t.Error("levels above range should clamp to max")
	}
}

func TestUnknownElementFallsBackToFire(t *testing.T) {
	lib := Default()
	if lib.Element("plasma").ID != types.ElementFire {
		t.Error("unknown element should resolve to fire")
	}
}

func TestIsHome(t *testing.T) {
	lib := Default()
	if !lib.IsHome(types.ElementSand, "desert") {
		t.Error("desert should be home for sand")
	}
	if lib.IsHome(types.ElementIce, "desert") {
		t.Error("desert should not be home for ice")
	}
}

func TestParseRejectsIncompleteLevels(t *testing.T) {
	_, err := Parse([]byte(`{"levels":[{"level":1}],"elements":[]}`))
	if !errors.Is(err, ErrMissingLevel) {
		t.Errorf("expected ErrMissingLevel, got %v", err)
	}
}

func TestStoreReloadKeepsPreviousOnError(t *testing.T) {
	store := NewStore(nil)
	before := store.Current()

	if err := store.Reload(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if store.Current() != before {
		t.Error("failed reload must not replace the active snapshot")
	}

	path := filepath.Join(t.TempDir(), "balance.json")
	if err := os.WriteFile(path, defaultBalance, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(path); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if store.Current() == before {
		t.Error("successful reload should swap the snapshot")
	}
}
