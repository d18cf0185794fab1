package world_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/grid"
	"github.com/bridgefall/server/internal/world"
)

func pt(x, y int32) grid.Point { return grid.Point{X: x, Y: y} }

// stubTerrain is a minimal TerrainMap: an open plain with a configurable
// bridge list, a building list and a fixed placement verdict. NextStep walks
// straight toward the target one tile at a time.
type stubTerrain struct {
	bridges    []world.Bridge
	demolished map[int32]bool
	buildings  []*world.Building

	canPlace bool
	routable bool

	registered   int
	unregistered int
}

func newStubTerrain(bridges ...world.Bridge) *stubTerrain {
	return &stubTerrain{
		bridges:    bridges,
		demolished: map[int32]bool{},
		canPlace:   true,
		routable:   true,
	}
}

func (st *stubTerrain) FunctionalBridges() []world.Bridge {
	var out []world.Bridge
	for _, b := range st.bridges {
		if !st.demolished[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

func (st *stubTerrain) RandomFunctionalBridge(rng *rand.Rand) (world.Bridge, bool) {
	left := st.FunctionalBridges()
	if len(left) == 0 {
		return world.Bridge{}, false
	}
	return left[rng.Intn(len(left))], true
}

func (st *stubTerrain) DemolishBridge(id int32) bool {
	for _, b := range st.bridges {
		if b.ID == id && !st.demolished[id] {
			st.demolished[id] = true
			return true
		}
	}
	return false
}

func (st *stubTerrain) CanPlace(world.StructureKind, grid.Point, []grid.Point) bool {
	return st.canPlace
}

func (st *stubTerrain) RegisterStructure(world.StructureKind, grid.Point) {
	st.registered++
}

func (st *stubTerrain) UnregisterStructure(world.StructureKind, grid.Point) {
	st.unregistered++
}

func (st *stubTerrain) BuildingsInRadius(center grid.Point, radius int32) []*world.Building {
	var out []*world.Building
	for _, b := range st.buildings {
		if b.Latent > 0 && b.Door.InRadius(center, radius) {
			out = append(out, b)
		}
	}
	return out
}

func (st *stubTerrain) NextStep(from, to grid.Point) (grid.Point, bool) {
	if !st.routable || from == to {
		return from, false
	}
	return from.Offset(sign(to.X-from.X), sign(to.Y-from.Y)), true
}

func (st *stubTerrain) Passable(grid.Point) bool { return true }

func sign(v int32) int32 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// recordingPresenter captures every lifecycle notification in order.
type addRecord struct {
	id   ecs.EntityID
	kind string
	at   grid.Point
}

type recordingPresenter struct {
	added   []addRecord
	removed []ecs.EntityID
	ended   []bool
}

func (p *recordingPresenter) EntityAdded(id ecs.EntityID, kind string, at grid.Point) {
	p.added = append(p.added, addRecord{id: id, kind: kind, at: at})
}

func (p *recordingPresenter) EntityRemoved(id ecs.EntityID) {
	p.removed = append(p.removed, id)
}

func (p *recordingPresenter) GameEnded(victory bool) {
	p.ended = append(p.ended, victory)
}

func (p *recordingPresenter) removals(id ecs.EntityID) int {
	n := 0
	for _, r := range p.removed {
		if r == id {
			n++
		}
	}
	return n
}

type fixture struct {
	w  *world.World
	st *stubTerrain
	pr *recordingPresenter
}

// newTestWorld builds a world over stubTerrain with one bridge anchored at
// (16,4). The round timer defaults to an hour so waves only fire in tests
// that shorten it.
func newTestWorld(t *testing.T, tweak func(*world.Params, *stubTerrain)) fixture {
	t.Helper()
	st := newStubTerrain(world.Bridge{ID: 1, Tiles: []grid.Point{pt(16, 4), pt(17, 4)}})
	pr := &recordingPresenter{}
	params := world.DefaultParams()
	params.RoundDuration = time.Hour
	if tweak != nil {
		tweak(&params, st)
	}
	w := world.New(world.Deps{
		Terrain:   st,
		Rand:      rand.New(rand.NewSource(7)),
		Presenter: pr,
	}, params)
	return fixture{w: w, st: st, pr: pr}
}

func placeDepot(t *testing.T, w *world.World, at grid.Point) *world.Depot {
	t.Helper()
	s, err := w.AddStructure(world.StructureDepot, at)
	require.NoError(t, err)
	return s.(*world.Depot)
}
