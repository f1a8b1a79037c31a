package world

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/types"
)

// ApplyTimedEffect накладывает эффект. Более сильный эффект заменяет слабый,
// при равной силе продлевается до большей длительности.
func (w *World) ApplyTimedEffect(target types.EntityID, tag types.EffectTag, duration, amplifier int) {
	if duration <= 0 {
		return
	}
	if amplifier < 0 {
		amplifier = 0
	}
	entry, ok := w.entry(target)
	if !ok {
		return
	}
	if e := EntityComponent.Get(entry); !e.Alive || !e.Kind.IsLiving() {
		return
	}
	effects := EffectsComponent.Get(entry)
	current, has := effects.Active[tag]
	switch {
	case !has, amplifier > current.Amplifier:
		effects.Active[tag] = component.ActiveEffect{Amplifier: amplifier, Remaining: duration}
	case amplifier == current.Amplifier && duration > current.Remaining:
		current.Remaining = duration
		effects.Active[tag] = current
	}
}

// Effect returns the active effect tag on id.
func (w *World) Effect(id types.EntityID, tag types.EffectTag) (component.ActiveEffect, bool) {
	entry, ok := w.entry(id)
	if !ok {
		return component.ActiveEffect{}, false
	}
	eff, has := EffectsComponent.Get(entry).Active[tag]
	return eff, has
}

func (w *World) tickEffects(id types.EntityID) {
	entry, ok := w.entry(id)
	if !ok {
		return
	}
	effects := EffectsComponent.Get(entry)
	e := EntityComponent.Get(entry)

	for tag, eff := range effects.Active {
		switch tag {
		case types.EffectRegeneration:
			// Регенерация: 1 ед. здоровья каждые 50>>amp тиков
			period := 50 >> eff.Amplifier
			if period < 1 {
				period = 1
			}
			if eff.Remaining%period == 0 && e.Health < e.MaxHealth {
				e.Health++
				if e.Health > e.MaxHealth {
					e.Health = e.MaxHealth
				}
			}
		}

		eff.Remaining--
		if eff.Remaining <= 0 {
			delete(effects.Active, tag)
		} else {
			effects.Active[tag] = eff
		}
	}

	if burn, burning := effects.Active[types.EffectBurning]; burning && burn.Remaining%burnIntervalTicks == 0 {
		w.ApplyDamage(id, burnDamage, component.DamageSource{Kind: types.DamageFireball})
	}
}
