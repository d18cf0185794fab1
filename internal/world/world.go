package world

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/core/event"
	"github.com/bridgefall/server/internal/grid"
)

// TimeScale is the world's time-control mode. The numeric value doubles as
// the delta-time multiplier: paused advances nothing, fast runs at 2×.
type TimeScale int

const (
	TimeScalePaused TimeScale = iota
	TimeScaleNormal
	TimeScaleFast
)

func (s TimeScale) Factor() float64 { return float64(s) }

func (s TimeScale) String() string {
	switch s {
	case TimeScalePaused:
		return "paused"
	case TimeScaleNormal:
		return "normal"
	case TimeScaleFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Deps wires the world's collaborators. Terrain is required; everything else
// has a safe default (nop logger, wall-clock RNG, absent presenter, built-in
// zombie brain, fresh bus).
type Deps struct {
	Terrain   TerrainMap
	Log       *zap.Logger
	Rand      *rand.Rand
	Presenter Presenter
	Brain     Brain
	Bus       *event.Bus
}

// World is the simulation core: one per active game session. It owns every
// entity collection, advances simulation time, drives the round timer,
// dispatches noise events and evaluates win/loss.
// Accessed only from the game loop goroutine — no locks.
type World struct {
	id        uuid.UUID
	log       *zap.Logger
	terrain   TerrainMap
	presenter Presenter
	bus       *event.Bus
	rng       *rand.Rand
	brain     Brain
	pool      *ecs.EntityPool
	params    Params

	scale     TimeScale
	elapsed   time.Duration
	countdown time.Duration
	gameOver  bool
	victory   bool

	zombies   []*Zombie
	vehicles  []*Vehicle
	survivors []*Survivor
	depots    []*Depot
	workshops []*Workshop
	towers    []*Tower
	obstacles []*Obstacle
	pickups   []*Pickup

	// 可重用快照 buffer（遊戲迴圈單線程，無需鎖）
	zbuf []*Zombie
}

func New(deps Deps, params Params) *World {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Bus == nil {
		deps.Bus = event.NewBus()
	}
	return &World{
		id:        uuid.New(),
		log:       deps.Log,
		terrain:   deps.Terrain,
		presenter: deps.Presenter,
		bus:       deps.Bus,
		rng:       deps.Rand,
		brain:     deps.Brain,
		pool:      ecs.NewEntityPool(),
		params:    params,
		scale:     TimeScaleNormal,
		countdown: params.RoundDuration,
	}
}

// Advance moves the simulation forward by one frame. No-op while paused or
// after a terminal flag. Phase order is fixed: round timer (and any wave
// spawn) first so new zombies exist before hostile AI runs, loss evaluation
// last so a depot destroyed mid-tick is observed this tick.
func (w *World) Advance(dt time.Duration) {
	if w.scale == TimeScalePaused || w.gameOver {
		return
	}
	scaled := time.Duration(float64(dt) * w.scale.Factor())
	w.elapsed += scaled

	w.tickRoundTimer(scaled)
	w.updateZombies(scaled)
	w.updateVehicles(scaled)
	w.updateSurvivors(scaled)
	w.updateWorkshops(scaled)
	w.updateTowers(scaled)
	w.evaluateDefeat()
}

func (w *World) updateZombies(dt time.Duration) {
	// 快照迭代：更新途中的增刪不影響本輪走訪
	w.zbuf = append(w.zbuf[:0], w.zombies...)
	for _, z := range w.zbuf {
		if z.Dead {
			continue
		}
		z.Update(w, dt)
	}
}

func (w *World) updateVehicles(dt time.Duration) {
	for _, v := range append([]*Vehicle(nil), w.vehicles...) {
		v.Update(w, dt)
	}
}

func (w *World) updateSurvivors(dt time.Duration) {
	for _, s := range append([]*Survivor(nil), w.survivors...) {
		s.Update(w, dt)
	}
}

func (w *World) updateWorkshops(dt time.Duration) {
	for _, ws := range append([]*Workshop(nil), w.workshops...) {
		ws.Update(w, dt)
	}
	w.tickPickups(dt)
}

func (w *World) updateTowers(dt time.Duration) {
	for _, t := range append([]*Tower(nil), w.towers...) {
		t.Update(w, dt)
	}
}

// ---------- time & state accessors ----------

func (w *World) ID() uuid.UUID            { return w.id }
func (w *World) Bus() *event.Bus          { return w.bus }
func (w *World) Elapsed() time.Duration   { return w.elapsed }
func (w *World) Countdown() time.Duration { return w.countdown }
func (w *World) Scale() TimeScale         { return w.scale }
func (w *World) GameOver() bool           { return w.gameOver }
func (w *World) Victory() bool            { return w.victory }

func (w *World) SetScale(s TimeScale) {
	if s < TimeScalePaused || s > TimeScaleFast {
		return
	}
	w.scale = s
}

// ---------- zombie lifecycle ----------

// SpawnZombie creates a zombie of the given kind without registering it.
// Callers stamp targeting/destination fields, then AddZombie it.
func (w *World) SpawnZombie(kind ZombieKind, at grid.Point) *Zombie {
	stats := w.params.zombieStats(kind)
	return &Zombie{
		id:          w.pool.Create(),
		Kind:        kind,
		Pos:         at,
		HP:          stats.HP,
		stats:       stats,
		moveTimer:   stats.MoveInterval,
		attackTimer: stats.AttackInterval,
	}
}

func (w *World) AddZombie(z *Zombie) {
	w.zombies = append(w.zombies, z)
	w.notifyAdded(z.id, "zombie", z.Pos)
}

// KillZombie marks the zombie dead, detaches its visual, then removes it
// from the collection by identity. Idempotent: a second call on the same
// zombie is a no-op. The dead flag is set before removal so in-flight tick
// logic observing the zombie sees the death.
func (w *World) KillZombie(z *Zombie) {
	if z == nil || z.Dead {
		return
	}
	z.Dead = true
	w.notifyRemoved(z.id)
	for i, cur := range w.zombies {
		if cur.id == z.id {
			w.zombies = append(w.zombies[:i], w.zombies[i+1:]...)
			break
		}
	}
	w.pool.Destroy(z.id)
	event.Emit(w.bus, event.ZombieKilled{ID: z.id, At: z.Pos})
}

func (w *World) Zombies() []*Zombie { return w.zombies }

// ---------- vehicle lifecycle ----------

func (w *World) AddVehicle(v *Vehicle) {
	if v.id.IsZero() {
		v.id = w.pool.Create()
	}
	w.vehicles = append(w.vehicles, v)
	w.notifyAdded(v.id, "vehicle", v.Pos)
}

func (w *World) RemoveVehicle(v *Vehicle) {
	if v == nil {
		return
	}
	for i, cur := range w.vehicles {
		if cur.id == v.id {
			w.notifyRemoved(v.id)
			w.vehicles = append(w.vehicles[:i], w.vehicles[i+1:]...)
			w.pool.Destroy(v.id)
			return
		}
	}
}

func (w *World) Vehicles() []*Vehicle { return w.vehicles }

// ---------- survivor lifecycle ----------

func (w *World) AddSurvivor(s *Survivor) {
	if s.id.IsZero() {
		s.id = w.pool.Create()
	}
	w.survivors = append(w.survivors, s)
	w.notifyAdded(s.id, "survivor", s.Pos)
}

func (w *World) RemoveSurvivor(s *Survivor) {
	if s == nil {
		return
	}
	for i, cur := range w.survivors {
		if cur.id == s.id {
			w.notifyRemoved(s.id)
			w.survivors = append(w.survivors[:i], w.survivors[i+1:]...)
			w.pool.Destroy(s.id)
			return
		}
	}
}

func (w *World) Survivors() []*Survivor { return w.survivors }

// ---------- pickup lifecycle ----------

func (w *World) AddPickup(p *Pickup) {
	if p.id.IsZero() {
		p.id = w.pool.Create()
	}
	if p.TTL <= 0 {
		p.TTL = w.params.PickupTTL
	}
	w.pickups = append(w.pickups, p)
	w.notifyAdded(p.id, "pickup", p.Pos)
}

func (w *World) RemovePickup(p *Pickup) {
	if p == nil {
		return
	}
	for i, cur := range w.pickups {
		if cur.id == p.id {
			w.notifyRemoved(p.id)
			w.pickups = append(w.pickups[:i], w.pickups[i+1:]...)
			w.pool.Destroy(p.id)
			return
		}
	}
}

// tickPickups expires ground pickups whose TTL ran out.
func (w *World) tickPickups(dt time.Duration) {
	var expired []*Pickup
	for _, p := range w.pickups {
		p.TTL -= dt
		if p.TTL <= 0 {
			expired = append(expired, p)
		}
	}
	for _, p := range expired {
		w.RemovePickup(p)
	}
}

func (w *World) Pickups() []*Pickup { return w.pickups }
