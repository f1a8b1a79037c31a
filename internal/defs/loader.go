// internal/defs/loader.go
package defs

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"go-companion-combat/internal/config"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/logger"
	"go-companion-combat/pkg/utils"
)

//go:embed data/balance.json
var defaultBalance []byte

var (
	ErrMissingLevel   = errors.New("level table must cover every level from 1 to max")
	ErrMissingElement = errors.New("element table must describe every element")
)

// balanceFile — формат файла баланса на диске.
type balanceFile struct {
	Levels         []LevelDefinition       `json:"levels"`
	Elements       []ElementDefinition     `json:"elements"`
	Enchantments   []EnchantmentDefinition `json:"enchantments"`
	PolymorphTable []WeightedEntry         `json:"polymorph_table"`
}

// Library is an immutable snapshot of the balance tables. It is built once
// by Parse and never mutated afterwards; a reload produces a new Library.
type Library struct {
	levels         [config.MaxLevel]LevelDefinition
	elements       map[types.Element]ElementDefinition
	enchantments   map[types.EnchantmentType]EnchantmentDefinition
	polymorphTable []WeightedEntry
}

// Load reads a balance file from disk.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance file: %w", err)
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return lib, nil
}

// Default returns the library built from the embedded balance file.
func Default() *Library {
	lib, err := Parse(defaultBalance)
	if err != nil {
		panic(fmt.Sprintf("embedded balance is invalid: %v", err))
	}
	return lib
}

// Parse validates and indexes raw balance JSON.
func Parse(data []byte) (*Library, error) {
	var f balanceFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance: %w", err)
	}

	lib := &Library{
		elements:     make(map[types.Element]ElementDefinition, len(f.Elements)),
		enchantments: make(map[types.EnchantmentType]EnchantmentDefinition, len(f.Enchantments)),
	}

	seen := make(map[int]bool, len(f.Levels))
	for _, def := range f.Levels {
		if def.Level < config.MinLevel || def.Level > config.MaxLevel {
			return nil, fmt.Errorf("level %d out of range: %w", def.Level, ErrMissingLevel)
		}
		lib.levels[def.Level-1] = def
		seen[def.Level] = true
	}
	for lvl := config.MinLevel; lvl <= config.MaxLevel; lvl++ {
		if !seen[lvl] {
			return nil, fmt.Errorf("level %d: %w", lvl, ErrMissingLevel)
		}
	}

	for _, def := range f.Elements {
		if !def.ID.Valid() {
			logger.Log.WithField("element", def.ID).Warn("defs: unknown element skipped")
			continue
		}
		lib.elements[def.ID] = def
	}
	for _, e := range types.Elements {
		if _, ok := lib.elements[e]; !ok {
			return nil, fmt.Errorf("%s: %w", e, ErrMissingElement)
		}
	}

	for _, def := range f.Enchantments {
		id := types.ParseEnchantment(string(def.ID))
		if id == types.EnchantNone {
			logger.Log.WithField("enchantment", def.ID).Warn("defs: unknown enchantment skipped")
			continue
		}
		def.ID = id
		def.MaxLevel = utils.ClampInt(def.MaxLevel, 1, 3)
		def.RequiredLevel = utils.ClampInt(def.RequiredLevel, config.MinLevel, config.MaxLevel)
		lib.enchantments[id] = def
	}
	// Каталог фиксирован: отсутствующие записи получают безопасные значения.
	for _, id := range types.Enchantments {
		if _, ok := lib.enchantments[id]; !ok {
			lib.enchantments[id] = EnchantmentDefinition{ID: id, Name: string(id), RequiredLevel: config.MinLevel, MaxLevel: 1}
		}
	}

	lib.polymorphTable = f.PolymorphTable
	if len(lib.polymorphTable) == 0 {
		lib.polymorphTable = defaultPolymorphTable
	}

	return lib, nil
}

// Level returns the definition for level, clamped into [1, MaxLevel].
func (l *Library) Level(level int) LevelDefinition {
	return l.levels[utils.ClampInt(level, config.MinLevel, config.MaxLevel)-1]
}

// Element returns the definition for e. Unknown elements resolve to Fire.
func (l *Library) Element(e types.Element) ElementDefinition {
	if def, ok := l.elements[e]; ok {
		return def
	}
	return l.elements[types.ElementFire]
}

// Enchantment returns the catalog entry for t.
func (l *Library) Enchantment(t types.EnchantmentType) (EnchantmentDefinition, bool) {
	def, ok := l.enchantments[t]
	return def, ok
}

// IsHome reports whether biome is a home environment of element e.
func (l *Library) IsHome(e types.Element, biome types.Biome) bool {
	return l.Element(e).IsHome(biome)
}

// PolymorphTable returns the weighted table of species used by polymorph.
func (l *Library) PolymorphTable() []WeightedEntry {
	return l.polymorphTable
}

// Store holds the active Library. Readers take a snapshot with Current and
// keep using it for the whole tick; Reload swaps the pointer atomically.
type Store struct {
	current atomic.Pointer[Library]
}

// NewStore creates a store seeded with lib (or the embedded default when nil).
func NewStore(lib *Library) *Store {
	if lib == nil {
		lib = Default()
	}
	s := &Store{}
	s.current.Store(lib)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() *Library {
	return s.current.Load()
}

// Reload loads path and makes it the active snapshot. On error the previous
// snapshot stays active.
func (s *Store) Reload(path string) error {
	lib, err := Load(path)
	if err != nil {
		return err
	}
	s.current.Store(lib)
	logger.Log.WithField("path", path).Info("defs: balance reloaded")
	return nil
}
