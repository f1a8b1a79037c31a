// Package codec encodes creature state for the persistence layer.
// The format is CBOR with integer keys; decoding always yields a
// normalized state.
package codec

import (
	"errors"
	"fmt"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/system"
	"go-companion-combat/internal/types"

	"github.com/fxamacker/cbor/v2"
	"github.com/oklog/ulid/v2"
)

const formatVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported creature format version")
	ErrInvalidID          = errors.New("invalid creature id")
)

type creatureRecord struct {
	Version      int          `cbor:"1,keyasint"`
	ID           string       `cbor:"2,keyasint,omitempty"`
	Level        int          `cbor:"3,keyasint"`
	Experience   int          `cbor:"4,keyasint"`
	Element      string       `cbor:"5,keyasint"`
	Satiation    float64      `cbor:"6,keyasint"`
	Enchantments []slotRecord `cbor:"7,keyasint,omitempty"`
}

type slotRecord struct {
	Slot  int    `cbor:"1,keyasint"`
	Type  string `cbor:"2,keyasint"`
	Level int    `cbor:"3,keyasint"`
}

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: cbor enc mode: %v", err))
	}
	return em
}

// EncodeCreature serializes state. Empty enchantment slots are omitted.
func EncodeCreature(state component.CreatureState) ([]byte, error) {
	rec := creatureRecord{
		Version:    formatVersion,
		Level:      state.Level,
		Experience: state.Experience,
		Element:    string(state.Element),
		Satiation:  state.Satiation,
	}
	if state.ID != (ulid.ULID{}) {
		rec.ID = state.ID.String()
	}
	for i, slot := range state.Enchantments {
		if slot.Empty() {
			continue
		}
		rec.Enchantments = append(rec.Enchantments, slotRecord{Slot: i, Type: string(slot.Type), Level: slot.Level})
	}

	data, err := encMode.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode creature: %w", err)
	}
	return data, nil
}

// DecodeCreature parses data and clamps the result into bounds with lib.
// Unknown elements become fire, unknown enchantments empty slots.
func DecodeCreature(data []byte, lib *defs.Library) (component.CreatureState, error) {
	var rec creatureRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return component.CreatureState{}, fmt.Errorf("decode creature: %w", err)
	}
	if rec.Version != formatVersion {
		return component.CreatureState{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, rec.Version)
	}

	state := component.CreatureState{
		Level:      rec.Level,
		Experience: rec.Experience,
		Element:    types.ParseElement(rec.Element),
		Satiation:  rec.Satiation,
	}
	if rec.ID != "" {
		id, err := ulid.Parse(rec.ID)
		if err != nil {
			return component.CreatureState{}, fmt.Errorf("%w: %v", ErrInvalidID, err)
		}
		state.ID = id
	}
	for _, s := range rec.Enchantments {
		if s.Slot < 0 || s.Slot >= component.EnchantmentSlotCount {
			continue
		}
		state.Enchantments[s.Slot] = component.EnchantmentSlot{
			Type:  types.ParseEnchantment(s.Type),
			Level: s.Level,
		}
	}

	if lib == nil {
		lib = defs.Default()
	}
	system.NormalizeState(&state, lib)
	return state, nil
}
