package codec

import (
	"fmt"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/defs"

	"github.com/fxamacker/cbor/v2"
)

// EncodeRoster serializes several creatures as a CBOR array of encoded records.
func EncodeRoster(states []component.CreatureState) ([]byte, error) {
	records := make([]cbor.RawMessage, 0, len(states))
	for i, st := range states {
		data, err := EncodeCreature(st)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		records = append(records, data)
	}
	data, err := encMode.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}
	return data, nil
}

// DecodeRoster is the inverse of EncodeRoster. A bad entry fails the whole roster.
func DecodeRoster(data []byte, lib *defs.Library) ([]component.CreatureState, error) {
	var records []cbor.RawMessage
	if err := cbor.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	out := make([]component.CreatureState, 0, len(records))
	for i, raw := range records {
		st, err := DecodeCreature(raw, lib)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		out = append(out, st)
	}
	return out, nil
}
