// internal/component/status_effect.go
package component

import "go-companion-combat/internal/types"

// TimedEffect — временный эффект: тип, длительность в тиках и сила (0 = I).
type TimedEffect struct {
	Tag       types.EffectTag
	Duration  int
	Amplifier int
}

// ActiveEffect — эффект, висящий на сущности.
type ActiveEffect struct {
	Amplifier int
	Remaining int // Сколько тиков осталось
}
