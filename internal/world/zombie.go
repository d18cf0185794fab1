package world

import (
	"time"

	"github.com/bridgefall/server/internal/core/ecs"
	"github.com/bridgefall/server/internal/grid"
)

// ZombieKind selects a stat template. Bridge-type zombies come in over the
// river on wave spawns; normal-type zombies crawl out of city buildings when
// noise wakes them.
type ZombieKind string

const (
	ZombieBridge ZombieKind = "bridge"
	ZombieNormal ZombieKind = "normal"
)

// Zombie is a hostile. Go owns sensing and command execution; the decision
// between attack/pursue/wander comes from the Brain (Lua when wired, the
// built-in policy otherwise).
type Zombie struct {
	id   ecs.EntityID
	Kind ZombieKind
	Pos  grid.Point
	HP   int32

	// Dead is set before collection removal so in-flight logic in the same
	// frame can observe the death.
	Dead bool

	// TargetDepot is a routing relation, not ownership: the depot may be
	// destroyed out from under the zombie, which then re-resolves.
	TargetDepot ecs.EntityID
	Dest        grid.Point
	HasDest     bool

	stats       ZombieStats
	moveTimer   time.Duration
	attackTimer time.Duration
}

func (z *Zombie) ID() ecs.EntityID { return z.id }

// ZombieSense is the pre-packed view of the world a brain decides from.
type ZombieSense struct {
	Kind        string
	TargetDist  int32 // Chebyshev distance to target depot; -1 = no target
	HasDest     bool
	AttackReady bool
	MoveReady   bool
}

// ZombieDecision is the brain's chosen intent for this frame.
type ZombieDecision int

const (
	DecideIdle ZombieDecision = iota
	DecideWander
	DecidePursue
	DecideAttack
)

// Brain decides a zombie's intent from its senses. Implemented by the Lua
// scripting engine; nil falls back to DefaultDecision.
type Brain interface {
	Decide(ZombieSense) ZombieDecision
}

// DefaultDecision is the built-in policy: attack an adjacent target, pursue
// any known target or destination, otherwise wander.
func DefaultDecision(s ZombieSense) ZombieDecision {
	if s.TargetDist >= 0 && s.TargetDist <= 1 && s.AttackReady {
		return DecideAttack
	}
	if s.TargetDist >= 0 || s.HasDest {
		return DecidePursue
	}
	return DecideWander
}

func (w *World) decide(s ZombieSense) ZombieDecision {
	if w.brain == nil {
		return DefaultDecision(s)
	}
	return w.brain.Decide(s)
}

// Update runs one frame of zombie behavior. Timers are armed on spawn and
// re-armed after each action, so a freshly spawned zombie never acts in its
// spawn frame.
func (z *Zombie) Update(w *World, dt time.Duration) {
	// 目標檢核：目標據點失效時就地重新鎖定（機會式重算，無排程重試）
	target := w.depotByID(z.TargetDepot)
	if target == nil || target.destroyed {
		if !z.TargetDepot.IsZero() {
			// the depot it was marching on is gone — drop the stale
			// destination so the re-resolved one takes over
			z.TargetDepot = 0
			z.HasDest = false
		}
		target = nil
		if near, ok := w.FindNearestDepot(z.Pos, 0); ok {
			z.TargetDepot = near.id
			target = near
		}
	}
	if target != nil && !z.HasDest {
		z.Dest = target.pos
		z.HasDest = true
	}

	sense := ZombieSense{
		Kind:        string(z.Kind),
		TargetDist:  -1,
		HasDest:     z.HasDest,
		AttackReady: z.attackTimer <= 0,
		MoveReady:   z.moveTimer <= 0,
	}
	if target != nil {
		sense.TargetDist = z.Pos.Dist(target.pos)
	}

	switch w.decide(sense) {
	case DecideAttack:
		if target != nil && z.Pos.Dist(target.pos) <= 1 && z.attackTimer <= 0 {
			z.attack(w, target, dt)
			return
		}
		fallthrough // illegal attack clamps to pursuit
	case DecidePursue:
		z.pursue(w, dt)
	case DecideWander:
		z.wander(w, dt)
	case DecideIdle:
		z.tickTimers(dt)
	}
}

func (z *Zombie) tickTimers(dt time.Duration) {
	if z.moveTimer > 0 {
		z.moveTimer -= dt
	}
	if z.attackTimer > 0 {
		z.attackTimer -= dt
	}
}

func (z *Zombie) attack(w *World, d *Depot, dt time.Duration) {
	z.attackTimer = z.stats.AttackInterval
	if z.moveTimer > 0 {
		z.moveTimer -= dt
	}
	d.HP -= z.stats.Damage
	if d.HP <= 0 && !d.destroyed {
		w.log.Info("depot torn down by zombies", zapPoint(d.pos))
		w.DestroyStructure(d)
	}
}

func (z *Zombie) pursue(w *World, dt time.Duration) {
	if z.moveTimer > 0 || !z.HasDest {
		z.tickTimers(dt)
		return
	}
	z.moveTimer = z.stats.MoveInterval
	if z.attackTimer > 0 {
		z.attackTimer -= dt
	}
	step, ok := w.terrain.NextStep(z.Pos, z.Dest)
	if !ok {
		// 無路可走：放棄目的地，下一輪機會式重算
		z.HasDest = false
		return
	}
	z.Pos = step
	if z.Pos == z.Dest {
		z.HasDest = false
	}
}

func (z *Zombie) wander(w *World, dt time.Duration) {
	if z.moveTimer > 0 {
		z.tickTimers(dt)
		return
	}
	z.moveTimer = z.stats.MoveInterval
	if z.attackTimer > 0 {
		z.attackTimer -= dt
	}
	n := z.Pos.Offset(int32(w.rng.Intn(3)-1), int32(w.rng.Intn(3)-1))
	if n != z.Pos && w.terrain.Passable(n) {
		z.Pos = n
	}
}

// HearNoise is the zombie's noise-response behavior: retarget toward the
// source unless already engaging its depot at arm's length.
func (z *Zombie) HearNoise(w *World, level NoiseLevel, src grid.Point) {
	if level == NoiseNone || z.Dead {
		return
	}
	if target := w.depotByID(z.TargetDepot); target != nil && !target.destroyed &&
		z.Pos.Dist(target.pos) <= 1 {
		return // mid-assault, noise doesn't peel it off
	}
	z.Dest = src
	z.HasDest = true
}
