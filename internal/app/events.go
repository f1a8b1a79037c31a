// internal/app/events.go
package app

import (
	"go-companion-combat/internal/event"
	"go-companion-combat/pkg/logger"

	"github.com/sirupsen/logrus"
)

// LogListener пишет события ядра в лог песочницы.
type LogListener struct{}

// OnEvent реализует интерфейс event.Listener.
func (LogListener) OnEvent(e event.Event) {
	entry := logger.Log.WithField("event", e.Type)
	switch data := e.Data.(type) {
	case event.LevelUpData:
		entry.WithFields(logrus.Fields{"creature": data.CreatureID, "level": data.Level}).Info("sandbox: level up")
	case event.CloudData:
		entry.WithFields(logrus.Fields{
			"owner":     data.OwnerID,
			"cloud":     data.CloudID,
			"processor": data.Processor,
			"reason":    data.Reason,
		}).Debug("sandbox: cloud")
	case event.PolymorphData:
		entry.WithFields(logrus.Fields{"from": data.From, "to": data.To, "species": data.Species}).Info("sandbox: polymorph")
	case event.KillData:
		entry.WithFields(logrus.Fields{"victim": data.VictimID, "kind": data.VictimKind, "killer": data.KillerID}).Debug("sandbox: kill")
	case event.ProjectileData:
		entry.WithFields(logrus.Fields{"owner": data.OwnerID, "projectile": data.ProjectileID}).Trace("sandbox: projectile")
	default:
		entry.Debug("sandbox: event")
	}
}

func subscribeLogging(events *event.Dispatcher) {
	var l LogListener
	for _, t := range []event.EventType{
		event.LevelUp,
		event.ProjectileFired,
		event.ProjectileEvicted,
		event.CloudSpawned,
		event.CloudRemoved,
		event.EntityPolymorphed,
		event.EntityKilled,
	} {
		events.Subscribe(t, l)
	}
}
