package world

import (
	"time"

	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/grid"
)

// Pickup is a ground resource drop. It sits on its tile until collected by
// an external actor or until its TTL runs out.
type Pickup struct {
	id  ecs.EntityID
	Pos grid.Point
	TTL time.Duration
}

func (p *Pickup) ID() ecs.EntityID { return p.id }
