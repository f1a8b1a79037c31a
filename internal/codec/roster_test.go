package codec

import (
	"errors"
	"math/rand"
	"testing"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/defs"

	"github.com/fxamacker/cbor/v2"
)

func TestRosterRoundTrip(t *testing.T) {
	lib := defs.Default()
	r := rand.New(rand.NewSource(7))
	states := []component.CreatureState{randomState(r, lib), randomState(r, lib), randomState(r, lib)}

	data, err := EncodeRoster(states)
	if err != nil {
		t.Fatalf("EncodeRoster: %v", err)
	}
	got, err := DecodeRoster(data, lib)
	if err != nil {
		t.Fatalf("DecodeRoster: %v", err)
	}
	if len(got) != len(states) {
		t.Fatalf("len = %d, want %d", len(got), len(states))
	}
	for i := range states {
		if got[i] != states[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], states[i])
		}
	}
}

func TestRosterEmpty(t *testing.T) {
	data, err := EncodeRoster(nil)
	if err != nil {
		t.Fatalf("EncodeRoster: %v", err)
	}
	got, err := DecodeRoster(data, nil)
	if err != nil {
		t.Fatalf("DecodeRoster: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestRosterRejectsBadEntry(t *testing.T) {
	good, err := EncodeCreature(randomState(rand.New(rand.NewSource(1)), defs.Default()))
	if err != nil {
		t.Fatal(err)
	}
	bad, err := encMode.Marshal(creatureRecord{Version: 99})
	if err != nil {
		t.Fatal(err)
	}
	raw, err := encMode.Marshal([]cbor.RawMessage{good, bad})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeRoster(raw, nil); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("err = %v, want ErrUnsupportedVersion", err)
	}
}
