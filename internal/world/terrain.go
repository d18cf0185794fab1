package world

import (
	"math/rand"

	"github.com/bridgefall/server/internal/grid"
)

// TerrainMap is the narrow interface the simulation consumes from the town
// map. The map owns tile data, the bridge registry, placement adjacency
// rules and the city building index; the world never sees its internals.
type TerrainMap interface {
	// RandomFunctionalBridge picks a uniformly random non-demolished bridge.
	// ok is false when none remain.
	RandomFunctionalBridge(rng *rand.Rand) (Bridge, bool)
	// FunctionalBridges lists all non-demolished bridges.
	FunctionalBridges() []Bridge
	// DemolishBridge marks a bridge destroyed. Returns false for unknown or
	// already-demolished IDs.
	DemolishBridge(id int32) bool

	// CanPlace reports whether a structure of the given kind may occupy the
	// position, given the current living depot layout.
	CanPlace(kind StructureKind, at grid.Point, depots []grid.Point) bool
	// RegisterStructure marks the tile occupied by a placed structure.
	RegisterStructure(kind StructureKind, at grid.Point)
	// UnregisterStructure frees the tile of a destroyed structure.
	UnregisterStructure(kind StructureKind, at grid.Point)

	// BuildingsInRadius returns city-owned buildings whose door lies within
	// radius of center and which still hold latent zombies.
	BuildingsInRadius(center grid.Point, radius int32) []*Building

	// NextStep returns the next walkable tile on a path from→to.
	// ok is false when no route exists.
	NextStep(from, to grid.Point) (grid.Point, bool)
	// Passable reports whether entities can stand on the tile.
	Passable(p grid.Point) bool
}

// Bridge is a river crossing. Tiles[0] is the city-side anchor used as the
// wave spawn point.
type Bridge struct {
	ID    int32
	Tiles []grid.Point
}

// Building is a city-owned structure that may still hold latent zombies.
// Owned by the map; the world only decrements its latent count.
type Building struct {
	Door   grid.Point
	Latent int
}

// TakeLatent removes one latent zombie from the building. Returns false when
// the building is already empty.
func (b *Building) TakeLatent() bool {
	if b.Latent <= 0 {
		return false
	}
	b.Latent--
	return true
}
