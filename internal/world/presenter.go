package world

import (
	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/grid"
)

// Presenter mirrors world changes visually. Notifications are delivered
// synchronously at the moment of the lifecycle event. The collaborator may
// be entirely absent (nil) — the simulation must behave identically.
type Presenter interface {
	EntityAdded(id ecs.EntityID, kind string, at grid.Point)
	EntityRemoved(id ecs.EntityID)
	GameEnded(victory bool)
}

func (w *World) notifyAdded(id ecs.EntityID, kind string, at grid.Point) {
	if w.presenter != nil {
		w.presenter.EntityAdded(id, kind, at)
	}
}

func (w *World) notifyRemoved(id ecs.EntityID) {
	if w.presenter != nil {
		w.presenter.EntityRemoved(id)
	}
}
