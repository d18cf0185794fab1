package world

import (
	"time"

	"github.com/bridgefall/server/internal/core/event"
	"go.uber.org/zap"
)

// tickRoundTimer advances the wave countdown. Crossing zero triggers a wave
// and re-arms the timer by the fixed round duration; a large delta can
// trigger multiple waves. The timer never stalls: a failed wave (no bridge)
// still resets it.
func (w *World) tickRoundTimer(dt time.Duration) {
	w.countdown -= dt
	for w.countdown <= 0 {
		w.spawnWave()
		w.countdown += w.params.RoundDuration
	}
}

// spawnWave pours one wave of bridge-type zombies in over a random
// functional bridge. Silent skip when no bridge remains.
func (w *World) spawnWave() {
	bridge, ok := w.terrain.RandomFunctionalBridge(w.rng)
	if !ok || len(bridge.Tiles) == 0 {
		w.log.Debug("wave skipped: no functional bridge")
		return
	}
	anchor := bridge.Tiles[0]

	// 最近補給站（可能不存在，波次照常生成）
	depot, hasDepot := w.FindNearestDepot(anchor, 0)

	for i := 0; i < w.params.WaveSize; i++ {
		// deterministic 3-wide pattern around the anchor, no exact overlap
		at := anchor.Offset(int32(i%3-1), int32(i/3-1))
		z := w.SpawnZombie(ZombieBridge, at)
		if hasDepot {
			z.TargetDepot = depot.id
			if _, routable := w.terrain.NextStep(at, depot.pos); routable {
				z.Dest = depot.pos
				z.HasDest = true
			}
			// no route: spawns without a destination, re-resolves later
		}
		w.AddZombie(z)
	}

	event.Emit(w.bus, event.WaveSpawned{
		BridgeID: bridge.ID,
		Count:    w.params.WaveSize,
		Anchor:   anchor,
	})
	w.log.Info("wave spawned",
		zap.Int32("bridge", bridge.ID),
		zap.Int("count", w.params.WaveSize),
		zapPoint(anchor))
}
