package event

import (
	"time"

	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/grid"
)

// Telemetry events emitted by the simulation core.

// WaveSpawned fires once per round-timer trigger that actually produced
// zombies (a trigger with no functional bridge is silent).
type WaveSpawned struct {
	BridgeID int32
	Count    int
	Anchor   grid.Point
}

// ZombieKilled fires when a zombie is removed through the kill path.
type ZombieKilled struct {
	ID ecs.EntityID
	At grid.Point
}

// StructureDestroyed fires when a player structure leaves its collection.
type StructureDestroyed struct {
	ID   ecs.EntityID
	Kind string
	At   grid.Point
}

// BridgeDemolished fires after a bridge is taken off the map.
type BridgeDemolished struct {
	BridgeID int32
}

// GameEnded fires exactly once per session, on either terminal flag.
type GameEnded struct {
	Victory bool
	Elapsed time.Duration
}
