package world

import (
	"time"

	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/core/event"
	"github.com/bridgefall/server/internal/grid"
)

// StructureKind tags the concrete variant of a player structure. Destruction
// dispatches on this tag to reach the right typed collection — no type
// introspection.
type StructureKind int

const (
	StructureDepot StructureKind = iota
	StructureWorkshop
	StructureTower
	StructureObstacle
)

func (k StructureKind) String() string {
	switch k {
	case StructureDepot:
		return "depot"
	case StructureWorkshop:
		return "workshop"
	case StructureTower:
		return "tower"
	case StructureObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Structure is the capability set shared by all player-built structures.
type Structure interface {
	ID() ecs.EntityID
	Kind() StructureKind
	Pos() grid.Point
	Destroyed() bool
}

// Depot is a supply depot: the routing anchor for all other structures and
// the thing zombies tear down. All depots destroyed = game over.
type Depot struct {
	id        ecs.EntityID
	pos       grid.Point
	HP        int32
	destroyed bool
}

func (d *Depot) ID() ecs.EntityID    { return d.id }
func (d *Depot) Kind() StructureKind { return StructureDepot }
func (d *Depot) Pos() grid.Point     { return d.pos }
func (d *Depot) Destroyed() bool     { return d.destroyed }

// MarkDestroyed flags the depot dead without removing it from its
// collection. Routing lookups skip destroyed depots; the loss check observes
// the flag on the next evaluation.
func (d *Depot) MarkDestroyed() { d.destroyed = true }

// Workshop generates scrap: every production interval it drops a pickup on a
// free neighboring tile.
type Workshop struct {
	id           ecs.EntityID
	pos          grid.Point
	sourceDepot  ecs.EntityID
	destroyed    bool
	produceTimer time.Duration
}

func (ws *Workshop) ID() ecs.EntityID          { return ws.id }
func (ws *Workshop) Kind() StructureKind       { return StructureWorkshop }
func (ws *Workshop) Pos() grid.Point           { return ws.pos }
func (ws *Workshop) Destroyed() bool           { return ws.destroyed }
func (ws *Workshop) SourceDepot() ecs.EntityID { return ws.sourceDepot }

func (ws *Workshop) Update(w *World, dt time.Duration) {
	if ws.destroyed {
		return
	}
	if ws.produceTimer > 0 {
		ws.produceTimer -= dt
		return
	}
	ws.produceTimer = w.params.WorkshopInterval
	if at, ok := w.freeNeighbor(ws.pos); ok {
		w.AddPickup(&Pickup{Pos: at})
	}
}

// Tower is a ranged defense: shoots the nearest zombie in range on a
// cooldown. Gunfire is loud — every shot emits high noise at the tower.
type Tower struct {
	id          ecs.EntityID
	pos         grid.Point
	sourceDepot ecs.EntityID
	destroyed   bool
	cooldown    time.Duration
}

func (t *Tower) ID() ecs.EntityID          { return t.id }
func (t *Tower) Kind() StructureKind       { return StructureTower }
func (t *Tower) Pos() grid.Point           { return t.pos }
func (t *Tower) Destroyed() bool           { return t.destroyed }
func (t *Tower) SourceDepot() ecs.EntityID { return t.sourceDepot }

func (t *Tower) Update(w *World, dt time.Duration) {
	if t.destroyed {
		return
	}
	if t.cooldown > 0 {
		t.cooldown -= dt
		return
	}
	target := w.nearestZombie(t.pos, w.params.TowerRange)
	if target == nil {
		return
	}
	t.cooldown = w.params.TowerCooldown
	target.HP -= w.params.TowerDamage
	if target.HP <= 0 {
		w.KillZombie(target)
	}
	w.EmitNoise(t.pos, NoiseHigh)
}

// Obstacle is a passive barricade. It has no per-tick behavior; the map
// routes movement around its tile.
type Obstacle struct {
	id          ecs.EntityID
	pos         grid.Point
	sourceDepot ecs.EntityID
	destroyed   bool
}

func (o *Obstacle) ID() ecs.EntityID          { return o.id }
func (o *Obstacle) Kind() StructureKind       { return StructureObstacle }
func (o *Obstacle) Pos() grid.Point           { return o.pos }
func (o *Obstacle) Destroyed() bool           { return o.destroyed }
func (o *Obstacle) SourceDepot() ecs.EntityID { return o.sourceDepot }

// ---------- collection accessors ----------

func (w *World) Depots() []*Depot       { return w.depots }
func (w *World) Workshops() []*Workshop { return w.workshops }
func (w *World) Towers() []*Tower       { return w.towers }
func (w *World) Obstacles() []*Obstacle { return w.obstacles }

// Structures returns a read-only concatenated view of every player-built
// structure, in placement order per kind.
func (w *World) Structures() []Structure {
	out := make([]Structure, 0,
		len(w.depots)+len(w.workshops)+len(w.towers)+len(w.obstacles))
	for _, d := range w.depots {
		out = append(out, d)
	}
	for _, ws := range w.workshops {
		out = append(out, ws)
	}
	for _, t := range w.towers {
		out = append(out, t)
	}
	for _, o := range w.obstacles {
		out = append(out, o)
	}
	return out
}

// DestroyStructure removes a structure from the world: typed collection
// first (dispatch on kind), then map unregistration, then the presenter.
func (w *World) DestroyStructure(s Structure) {
	if s == nil {
		return
	}
	removed := false
	switch s.Kind() {
	case StructureDepot:
		for i, d := range w.depots {
			if d.id == s.ID() {
				d.destroyed = true
				w.depots = append(w.depots[:i], w.depots[i+1:]...)
				removed = true
				break
			}
		}
	case StructureWorkshop:
		for i, ws := range w.workshops {
			if ws.id == s.ID() {
				ws.destroyed = true
				w.workshops = append(w.workshops[:i], w.workshops[i+1:]...)
				removed = true
				break
			}
		}
	case StructureTower:
		for i, t := range w.towers {
			if t.id == s.ID() {
				t.destroyed = true
				w.towers = append(w.towers[:i], w.towers[i+1:]...)
				removed = true
				break
			}
		}
	case StructureObstacle:
		for i, o := range w.obstacles {
			if o.id == s.ID() {
				o.destroyed = true
				w.obstacles = append(w.obstacles[:i], w.obstacles[i+1:]...)
				removed = true
				break
			}
		}
	}
	if !removed {
		return // already gone — destruction is idempotent
	}
	w.terrain.UnregisterStructure(s.Kind(), s.Pos())
	w.notifyRemoved(s.ID())
	w.pool.Destroy(s.ID())
	event.Emit(w.bus, event.StructureDestroyed{
		ID:   s.ID(),
		Kind: s.Kind().String(),
		At:   s.Pos(),
	})
	w.log.Debug("structure destroyed",
		zapKind(s.Kind()), zapPoint(s.Pos()))
}

// nearestZombie returns the closest living zombie within range, ties broken
// by collection order.
func (w *World) nearestZombie(from grid.Point, within int32) *Zombie {
	var best *Zombie
	bestDist := within + 1
	for _, z := range w.zombies {
		if z.Dead {
			continue
		}
		if d := z.Pos.Dist(from); d < bestDist {
			bestDist = d
			best = z
		}
	}
	return best
}

// freeNeighbor finds the first passable tile adjacent to p.
func (w *World) freeNeighbor(p grid.Point) (grid.Point, bool) {
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := p.Offset(dx, dy)
			if w.terrain.Passable(n) {
				return n, true
			}
		}
	}
	return grid.Point{}, false
}
