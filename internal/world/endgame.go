package world

import (
	"github.com/bridgefall/server/internal/core/event"
	"go.uber.org/zap"
)

// evaluateDefeat runs last in every tick: the city falls when the depot
// collection is empty or every remaining depot is destroyed. One-shot.
func (w *World) evaluateDefeat() {
	if w.gameOver {
		return
	}
	for _, d := range w.depots {
		if !d.destroyed {
			return
		}
	}
	w.gameOver = true
	w.victory = false
	if w.presenter != nil {
		w.presenter.GameEnded(false)
	}
	event.Emit(w.bus, event.GameEnded{Victory: false, Elapsed: w.elapsed})
	w.log.Info("game over: all depots lost",
		zap.Duration("elapsed", w.elapsed))
}

// DemolishBridge is the player action that cuts a crossing. Returns false
// for unknown or already-demolished bridges. Victory is re-evaluated
// immediately — it is driven by structural map changes, not by the tick.
func (w *World) DemolishBridge(id int32) bool {
	if !w.terrain.DemolishBridge(id) {
		return false
	}
	event.Emit(w.bus, event.BridgeDemolished{BridgeID: id})
	w.log.Info("bridge demolished", zap.Int32("bridge", id))
	w.CheckVictory()
	return true
}

// CheckVictory flips the terminal flags when no functional bridge remains.
// One-shot and irreversible within the session; a loss already on the books
// is never overturned.
func (w *World) CheckVictory() {
	if w.gameOver {
		return
	}
	if len(w.terrain.FunctionalBridges()) > 0 {
		return
	}
	w.gameOver = true
	w.victory = true
	if w.presenter != nil {
		w.presenter.GameEnded(true)
	}
	event.Emit(w.bus, event.GameEnded{Victory: true, Elapsed: w.elapsed})
	w.log.Info("victory: every bridge is down",
		zap.Duration("elapsed", w.elapsed))
}
