package world

import (
	"time"

	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/grid"
)

// Vehicle loops over a fixed waypoint route. Its engine is noisy: every
// noise interval it emits a medium noise at its position, which is how
// players bait zombies away from the depots.
type Vehicle struct {
	id  ecs.EntityID
	Pos grid.Point

	Route []grid.Point
	leg   int

	moveTimer  time.Duration
	noiseTimer time.Duration
}

// NewVehicle builds a vehicle at the first waypoint of its route.
func NewVehicle(route []grid.Point) *Vehicle {
	v := &Vehicle{Route: route}
	if len(route) > 0 {
		v.Pos = route[0]
	}
	return v
}

func (v *Vehicle) ID() ecs.EntityID { return v.id }

func (v *Vehicle) Update(w *World, dt time.Duration) {
	if len(v.Route) < 2 {
		return
	}

	if v.noiseTimer > 0 {
		v.noiseTimer -= dt
	} else {
		v.noiseTimer = w.params.VehicleNoiseInterval
		w.EmitNoise(v.Pos, NoiseMedium)
	}

	if v.moveTimer > 0 {
		v.moveTimer -= dt
		return
	}
	v.moveTimer = w.params.VehicleMoveInterval

	waypoint := v.Route[v.leg]
	if v.Pos == waypoint {
		v.leg = (v.leg + 1) % len(v.Route)
		waypoint = v.Route[v.leg]
	}
	if step, ok := w.terrain.NextStep(v.Pos, waypoint); ok {
		v.Pos = step
	} else {
		// route blocked (fresh barricade?) — skip to the next leg
		v.leg = (v.leg + 1) % len(v.Route)
	}
}
