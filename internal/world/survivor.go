package world

import (
	"time"

	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/grid"
)

// Survivor is an unattached ally: it walks toward the nearest living depot
// and despawns on arrival. A zombie at arm's length makes it scream, which
// carries.
type Survivor struct {
	id  ecs.EntityID
	Pos grid.Point

	moveTimer  time.Duration
	panicTimer time.Duration
}

func NewSurvivor(at grid.Point) *Survivor {
	return &Survivor{Pos: at}
}

func (s *Survivor) ID() ecs.EntityID { return s.id }

func (s *Survivor) Update(w *World, dt time.Duration) {
	if s.panicTimer > 0 {
		s.panicTimer -= dt
	} else if w.zombieAdjacent(s.Pos) {
		s.panicTimer = w.params.SurvivorPanicCooldown
		w.EmitNoise(s.Pos, NoiseLow)
	}

	if s.moveTimer > 0 {
		s.moveTimer -= dt
		return
	}
	s.moveTimer = w.params.SurvivorMoveInterval

	depot, ok := w.FindNearestDepot(s.Pos, 0)
	if !ok {
		return // nowhere to run — hold position
	}
	if s.Pos.Dist(depot.pos) <= 1 {
		// made it inside
		w.RemoveSurvivor(s)
		return
	}
	if step, ok := w.terrain.NextStep(s.Pos, depot.pos); ok {
		s.Pos = step
	}
}

func (w *World) zombieAdjacent(p grid.Point) bool {
	for _, z := range w.zombies {
		if !z.Dead && z.Pos.Dist(p) <= 1 {
			return true
		}
	}
	return false
}
