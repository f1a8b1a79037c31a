package codec

import (
	"errors"
	"math/rand"
	"testing"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/system"
	"go-companion-combat/internal/types"

	"github.com/fxamacker/cbor/v2"
	"github.com/oklog/ulid/v2"
)

// randomState builds a valid state within documented bounds.
func randomState(r *rand.Rand, lib *defs.Library) component.CreatureState {
	level := 1 + r.Intn(config.MaxLevel)
	state := component.CreatureState{
		ID:        ulid.Make(),
		Level:     level,
		Element:   types.Elements[r.Intn(len(types.Elements))],
		Satiation: r.Float64() * system.MaxSatiation(lib, level),
	}
	if next := system.ExperienceToNext(lib, level); next > 0 {
		state.Experience = r.Intn(next)
	}
	for i := range state.Enchantments {
		if r.Intn(4) == 0 {
			continue
		}
		t := types.Enchantments[r.Intn(len(types.Enchantments))]
		def, _ := lib.Enchantment(t)
		state.Enchantments[i] = component.EnchantmentSlot{Type: t, Level: 1 + r.Intn(def.MaxLevel)}
	}
	return state
}

func TestCreatureRoundTrip(t *testing.T) {
	lib := defs.Default()
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		want := randomState(r, lib)
		data, err := EncodeCreature(want)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := DecodeCreature(data, lib)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != want {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
		}
	}
}

func TestDecodeNormalizes(t *testing.T) {
	data, err := cbor.Marshal(creatureRecord{
		Version:   formatVersion,
		Level:     99,
		Element:   "plasma",
		Satiation: -5,
		Enchantments: []slotRecord{
			{Slot: 0, Type: "gravity", Level: 12},
			{Slot: 1, Type: "sharpness", Level: 2},
			{Slot: 7, Type: "charm", Level: 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecodeCreature(data, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Level != config.MaxLevel || got.Element != types.ElementFire || got.Satiation != 0 {
		t.Errorf("state = %+v", got)
	}
	if got.Enchantments[0] != (component.EnchantmentSlot{Type: types.EnchantGravity, Level: 3}) {
		t.Errorf("slot 0 = %+v, want gravity clamped to 3", got.Enchantments[0])
	}
	if !got.Enchantments[1].Empty() || !got.Enchantments[2].Empty() {
		t.Errorf("unknown or out-of-range slots should be empty: %+v", got.Enchantments)
	}
}

func TestDecodeErrors(t *testing.T) {
	badVersion, _ := cbor.Marshal(creatureRecord{Version: 7, Level: 1})
	if _, err := DecodeCreature(badVersion, nil); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("version 7: err = %v", err)
	}
	badID, _ := cbor.Marshal(creatureRecord{Version: formatVersion, ID: "not-a-ulid", Level: 1})
	if _, err := DecodeCreature(badID, nil); !errors.Is(err, ErrInvalidID) {
		t.Errorf("bad id: err = %v", err)
	}
	if _, err := DecodeCreature([]byte{0xff, 0x00}, nil); err == nil {
		t.Error("garbage input should fail")
	}
}
