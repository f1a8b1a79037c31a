// internal/defs/loot_tables.go
package defs

// WeightedEntry представляет одну запись во взвешенной таблице.
// ID - идентификатор вида существа, а Weight - его относительный шанс.
type WeightedEntry struct {
	ID     string `json:"id"`
	Weight int    `json:"weight"`
}

// defaultPolymorphTable используется, если в файле баланса таблица пуста.
var defaultPolymorphTable = []WeightedEntry{
	{ID: "sheep", Weight: 3},
	{ID: "pig", Weight: 3},
	{ID: "cow", Weight: 2},
	{ID: "chicken", Weight: 3},
	{ID: "rabbit", Weight: 1},
}
