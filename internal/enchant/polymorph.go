package enchant

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/internal/utils"
	"go-companion-combat/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	polymorphPulseTicks   = 5
	polymorphMaxProcessed = 10
)

var polymorphChance = []float64{0.33, 0.66, 1.0}

// Polymorph превращает враждебных мобов в облаке в мирных животных.
// Каждый моб превращается не больше одного раза за жизнь облака.
type Polymorph struct {
	rng       *utils.PRNGService
	table     []defs.WeightedEntry
	events    *event.Dispatcher
	pulse     pulse
	converted map[types.EntityID]struct{}
}

// NewPolymorph is the registry factory for Polymorph.
func NewPolymorph(d Deps) Processor {
	p := &Polymorph{
		rng:       d.RNG,
		events:    d.Events,
		pulse:     pulse{every: polymorphPulseTicks},
		converted: make(map[types.EntityID]struct{}),
	}
	if p.rng == nil {
		p.rng = utils.NewPRNGService(0)
	}
	if d.Library != nil {
		p.table = d.Library.PolymorphTable()
	}
	if len(p.table) == 0 {
		p.table = defs.Default().PolymorphTable()
	}
	return p
}

func (p *Polymorph) Type() types.EnchantmentType { return types.EnchantPolymorph }

func (p *Polymorph) ApplyToCloud(cloud *component.AreaCloud, level int) {
	cloud.Particle = "witch"
}

func (p *Polymorph) Process(w interfaces.World, cloud *component.AreaCloud, level int) {
	if !p.pulse.ready() {
		return
	}
	chance := polymorphChance[levelIndex(level, len(polymorphChance))]

	processed := 0
	for _, h := range w.FindEntities(cloud.Sphere(), isHostile) {
		if _, done := p.converted[h.ID]; done {
			continue
		}
		if processed >= polymorphMaxProcessed {
			break
		}
		processed++
		if !p.rng.Chance(chance) {
			continue
		}
		p.convert(w, cloud, h)
	}
}

func (p *Polymorph) convert(w interfaces.World, cloud *component.AreaCloud, h component.Entity) {
	species := p.rng.ChooseWeighted(p.table)
	p.converted[h.ID] = struct{}{}

	newID := w.SpawnCreature(interfaces.CreatureSpec{
		Kind:       types.KindPassive,
		Species:    species,
		Region:     h.Region,
		Position:   h.Position,
		Yaw:        h.Yaw,
		Pitch:      h.Pitch,
		CustomName: h.CustomName,
	})
	// Без добычи: превращённый моб не должен ронять предметы.
	w.RemoveEntity(h.ID, false)

	logger.Log.WithFields(logrus.Fields{
		"cloud":   cloud.ID,
		"from":    h.ID,
		"to":      newID,
		"species": species,
	}).Debug("polymorph: hostile converted")
	p.events.Dispatch(event.Event{Type: event.EntityPolymorphed, Data: event.PolymorphData{
		CloudID: cloud.ID, From: h.ID, To: newID, Species: species,
	}})
}

// Converted reports whether id was already converted by this processor.
func (p *Polymorph) Converted(id types.EntityID) bool {
	_, ok := p.converted[id]
	return ok
}
