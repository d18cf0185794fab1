package world

import (
	"errors"

	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/grid"
)

var (
	// ErrPlacementRejected: the map's adjacency/overlap rules refused the
	// position. Recoverable; the caller re-prompts. No world mutation.
	ErrPlacementRejected = errors.New("placement rejected")
	// ErrNoDepot: a non-depot structure needs a living depot to route from
	// and none exists. Recoverable; no world mutation.
	ErrNoDepot = errors.New("no living depot to route from")
)

// AddStructure places a player structure. The map rules on legality first;
// every non-depot kind additionally requires a nearest living depot, bound
// as its source at placement time. On any failure nothing is mutated.
func (w *World) AddStructure(kind StructureKind, at grid.Point) (Structure, error) {
	if !w.terrain.CanPlace(kind, at, w.livingDepotPositions()) {
		return nil, ErrPlacementRejected
	}

	var source *Depot
	if kind != StructureDepot {
		near, ok := w.FindNearestDepot(at, 0)
		if !ok {
			return nil, ErrNoDepot
		}
		source = near
	}

	id := w.pool.Create()
	var s Structure
	switch kind {
	case StructureDepot:
		d := &Depot{id: id, pos: at, HP: w.params.DepotHP}
		w.depots = append(w.depots, d)
		s = d
	case StructureWorkshop:
		ws := &Workshop{
			id: id, pos: at,
			sourceDepot:  source.id,
			produceTimer: w.params.WorkshopInterval,
		}
		w.workshops = append(w.workshops, ws)
		s = ws
	case StructureTower:
		t := &Tower{
			id: id, pos: at,
			sourceDepot: source.id,
			cooldown:    w.params.TowerCooldown,
		}
		w.towers = append(w.towers, t)
		s = t
	case StructureObstacle:
		o := &Obstacle{id: id, pos: at, sourceDepot: source.id}
		w.obstacles = append(w.obstacles, o)
		s = o
	default:
		w.pool.Destroy(id)
		return nil, ErrPlacementRejected
	}

	w.terrain.RegisterStructure(kind, at)
	w.notifyAdded(id, kind.String(), at)
	w.log.Debug("structure placed", zapKind(kind), zapPoint(at))
	return s, nil
}

// FindNearestDepot scans living (non-destroyed) depots linearly by grid
// distance. Ties break in first-added order — reproducible, not random.
// excluding skips one depot by ID (zero excludes nothing).
func (w *World) FindNearestDepot(to grid.Point, excluding ecs.EntityID) (*Depot, bool) {
	var best *Depot
	var bestDist int32
	for _, d := range w.depots {
		if d.destroyed || d.id == excluding {
			continue
		}
		dist := d.pos.Dist(to)
		if best == nil || dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	return best, best != nil
}

func (w *World) depotByID(id ecs.EntityID) *Depot {
	if id.IsZero() {
		return nil
	}
	for _, d := range w.depots {
		if d.id == id {
			return d
		}
	}
	return nil
}

func (w *World) livingDepotPositions() []grid.Point {
	out := make([]grid.Point, 0, len(w.depots))
	for _, d := range w.depots {
		if !d.destroyed {
			out = append(out, d.pos)
		}
	}
	return out
}
