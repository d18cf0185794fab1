package world

import (
	"github.com/bridgefall/server/internal/grid"
)

// NoiseLevel grades an emission. Each level maps to a radius and a
// latent-building trigger chance in Params.
type NoiseLevel int

const (
	NoiseNone NoiseLevel = iota
	NoiseLow
	NoiseMedium
	NoiseHigh

	noiseLevels = 4
)

func (l NoiseLevel) String() string {
	switch l {
	case NoiseNone:
		return "none"
	case NoiseLow:
		return "low"
	case NoiseMedium:
		return "medium"
	case NoiseHigh:
		return "high"
	default:
		return "unknown"
	}
}

// EmitNoise fans a noise event out from a position. Two independent effects:
//
//  1. Latent spawn trigger — each city building in radius that still holds
//     latent zombies rolls once against the level's chance; on success one
//     normal-type zombie spawns at its door and is routed as if it had heard
//     the same noise itself. The spawned zombie never re-queries buildings,
//     so one emission cannot chain-trigger the city.
//  2. Alert propagation — every living zombie in radius gets the signal and
//     decides its own reaction.
//
// Level none is a strict no-op.
func (w *World) EmitNoise(at grid.Point, level NoiseLevel) {
	if level <= NoiseNone || level >= noiseLevels {
		return
	}
	radius := w.params.Noise.Radius[level]
	chance := w.params.Noise.Chance[level]

	// 先快照：事件中生出的殭屍不在本次警示走訪裡（避免重複驚動）
	alerted := append([]*Zombie(nil), w.zombies...)

	for _, b := range w.terrain.BuildingsInRadius(at, radius) {
		if w.rng.Float64() > chance {
			continue
		}
		if !b.TakeLatent() {
			continue
		}
		z := w.SpawnZombie(ZombieNormal, b.Door)
		w.AddZombie(z)
		z.HearNoise(w, level, at)
		w.log.Debug("latent zombie woken",
			zapPoint(b.Door), zapNoise(level))
	}

	for _, z := range alerted {
		if z.Dead {
			continue
		}
		if z.Pos.InRadius(at, radius) {
			z.HearNoise(w, level, at)
		}
	}
}
