// Package townmap is the concrete spatial map backing the simulation: tile
// passability, the bridge registry, structure placement rules and the city
// building index. The world consumes it only through world.TerrainMap.
package townmap

import (
	"math/rand"

	"github.com/bridgefall/server/internal/grid"
	"github.com/bridgefall/server/internal/world"
)

const (
	// Non-depot structures must sit within supply range of a depot; depots
	// themselves keep a minimum spacing from each other.
	defaultSupplyRange  = 12
	defaultDepotSpacing = 2

	// BFS budget per NextStep query. Enough for any sane town size; a
	// blown budget reads as "no route".
	pathSearchLimit = 8192
)

type bridgeEntry struct {
	bridge    world.Bridge
	destroyed bool
}

// Map is a rectangular tile grid. Single-goroutine access only (game loop).
type Map struct {
	width   int32
	height  int32
	blocked []bool

	occupied  map[grid.Point]world.StructureKind
	bridges   []*bridgeEntry
	buildings []*world.Building

	SupplyRange  int32
	DepotSpacing int32
}

func New(width, height int32) *Map {
	return &Map{
		width:        width,
		height:       height,
		blocked:      make([]bool, width*height),
		occupied:     make(map[grid.Point]world.StructureKind),
		SupplyRange:  defaultSupplyRange,
		DepotSpacing: defaultDepotSpacing,
	}
}

func (m *Map) Width() int32  { return m.width }
func (m *Map) Height() int32 { return m.height }

func (m *Map) inBounds(p grid.Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// SetBlocked marks static terrain (river, rubble) impassable.
func (m *Map) SetBlocked(p grid.Point, blocked bool) {
	if m.inBounds(p) {
		m.blocked[p.Y*m.width+p.X] = blocked
	}
}

func (m *Map) Passable(p grid.Point) bool {
	if !m.inBounds(p) {
		return false
	}
	if m.blocked[p.Y*m.width+p.X] {
		return false
	}
	_, taken := m.occupied[p]
	return !taken
}

// ---------- bridges ----------

// AddBridge registers a crossing and clears its tiles. Tiles[0] is the
// city-side anchor. Returns the bridge ID.
func (m *Map) AddBridge(tiles []grid.Point) int32 {
	id := int32(len(m.bridges) + 1)
	cp := append([]grid.Point(nil), tiles...)
	for _, t := range cp {
		m.SetBlocked(t, false)
	}
	m.bridges = append(m.bridges, &bridgeEntry{
		bridge: world.Bridge{ID: id, Tiles: cp},
	})
	return id
}

func (m *Map) FunctionalBridges() []world.Bridge {
	out := make([]world.Bridge, 0, len(m.bridges))
	for _, e := range m.bridges {
		if !e.destroyed {
			out = append(out, e.bridge)
		}
	}
	return out
}

func (m *Map) RandomFunctionalBridge(rng *rand.Rand) (world.Bridge, bool) {
	functional := m.FunctionalBridges()
	if len(functional) == 0 {
		return world.Bridge{}, false
	}
	return functional[rng.Intn(len(functional))], true
}

// DemolishBridge drops a bridge; its tiles become river again.
func (m *Map) DemolishBridge(id int32) bool {
	for _, e := range m.bridges {
		if e.bridge.ID != id || e.destroyed {
			continue
		}
		e.destroyed = true
		for _, t := range e.bridge.Tiles {
			m.SetBlocked(t, true)
		}
		return true
	}
	return false
}

// ---------- buildings ----------

func (m *Map) AddBuilding(door grid.Point, latent int) {
	m.buildings = append(m.buildings, &world.Building{Door: door, Latent: latent})
}

// BuildingsInRadius returns buildings with latent zombies whose door lies
// within radius of center.
func (m *Map) BuildingsInRadius(center grid.Point, radius int32) []*world.Building {
	var out []*world.Building
	for _, b := range m.buildings {
		if b.Latent > 0 && b.Door.InRadius(center, radius) {
			out = append(out, b)
		}
	}
	return out
}

// ---------- placement ----------

// CanPlace applies the map-side placement rules: the tile must be open, a
// depot must keep its spacing from other depots, and any other kind must be
// inside some depot's supply range.
func (m *Map) CanPlace(kind world.StructureKind, at grid.Point, depots []grid.Point) bool {
	if !m.Passable(at) {
		return false
	}
	// 橋面不可建築
	for _, e := range m.bridges {
		if e.destroyed {
			continue
		}
		for _, t := range e.bridge.Tiles {
			if t == at {
				return false
			}
		}
	}
	if kind == world.StructureDepot {
		for _, d := range depots {
			if at.Dist(d) < m.DepotSpacing {
				return false
			}
		}
		return true
	}
	for _, d := range depots {
		if at.InRadius(d, m.SupplyRange) {
			return true
		}
	}
	return false
}

func (m *Map) RegisterStructure(kind world.StructureKind, at grid.Point) {
	m.occupied[at] = kind
}

func (m *Map) UnregisterStructure(_ world.StructureKind, at grid.Point) {
	delete(m.occupied, at)
}
