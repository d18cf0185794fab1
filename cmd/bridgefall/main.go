package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bridgefall/server/internal/config"
	"github.com/bridgefall/server/internal/core/event"
	"github.com/bridgefall/server/internal/data"
	"github.com/bridgefall/server/internal/grid"
	"github.com/bridgefall/server/internal/scripting"
	"github.com/bridgefall/server/internal/townmap"
	"github.com/bridgefall/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           Bridgefall  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      bridge-defense simulation core       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mscenario:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main driver logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("BRIDGEFALL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load content data
	scenarioPath := "data/yaml/scenario.yaml"
	if p := os.Getenv("BRIDGEFALL_SCENARIO"); p != "" {
		scenarioPath = p
	}
	sc, err := data.LoadScenario(scenarioPath)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	printBanner(sc.Name)
	printSection("content")

	zombieTable, err := data.LoadZombieTable("data/yaml/zombie_list.yaml")
	if err != nil {
		return fmt.Errorf("load zombie table: %w", err)
	}
	printStat("zombie templates", zombieTable.Count())

	// 4. Build the town map from the scenario
	tm := buildMap(sc)
	printStat("bridges", len(tm.FunctionalBridges()))
	printStat("city buildings", len(sc.Buildings))

	// 5. Lua AI engine (embedded scripts + optional overrides)
	engine, err := scripting.NewEngine(log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	if err := engine.LoadDir("scripts/ai"); err != nil {
		return fmt.Errorf("lua overrides: %w", err)
	}
	printOK("lua scripts loaded")

	// 6. Create the world
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := world.New(world.Deps{
		Terrain: tm,
		Log:     log,
		Rand:    rand.New(rand.NewSource(seed)),
		Brain:   engine,
	}, worldParams(cfg, zombieTable))

	subscribeTelemetry(w.Bus(), log)

	placed := seedWorld(w, sc, log)
	printStat("structures placed", placed)
	printStat("vehicles", len(w.Vehicles()))
	printStat("survivors", len(w.Survivors()))
	fmt.Println()

	// 7. Run the frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate.Duration)
	defer ticker.Stop()

	printSection("simulation ready")
	printReady(fmt.Sprintf("frame loop started (tick: %s)", cfg.Simulation.TickRate))
	printReady(fmt.Sprintf("session %s (seed %d)", w.ID(), seed))
	fmt.Println()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			w.Bus().SwapBuffers()
			w.Bus().DispatchAll()
			w.Advance(dt)
			if w.GameOver() {
				// flush the final frame's telemetry before reporting
				w.Bus().SwapBuffers()
				w.Bus().DispatchAll()
				reportOutcome(w)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// buildMap translates a scenario layout into a live town map.
func buildMap(sc *data.Scenario) *townmap.Map {
	tm := townmap.New(sc.Width, sc.Height)
	for y, row := range sc.Terrain {
		for x, c := range row {
			if c == '#' {
				tm.SetBlocked(grid.Point{X: int32(x), Y: int32(y)}, true)
			}
		}
	}
	for _, b := range sc.Bridges {
		tiles := make([]grid.Point, len(b.Tiles))
		for i, t := range b.Tiles {
			tiles[i] = grid.Point{X: t.X, Y: t.Y}
		}
		tm.AddBridge(tiles)
	}
	for _, b := range sc.Buildings {
		tm.AddBuilding(grid.Point{X: b.Door.X, Y: b.Door.Y}, b.Latent)
	}
	return tm
}

// worldParams merges TOML config with YAML zombie templates.
func worldParams(cfg *config.Config, zombies *data.ZombieTable) world.Params {
	p := world.DefaultParams()
	p.RoundDuration = cfg.Waves.RoundDuration.Duration
	p.WaveSize = cfg.Waves.Size
	p.Noise.Radius = [4]int32{0, cfg.Noise.LowRadius, cfg.Noise.MediumRadius, cfg.Noise.HighRadius}
	p.Noise.Chance = [4]float64{0, cfg.Noise.LowChance, cfg.Noise.MediumChance, cfg.Noise.HighChance}
	p.DepotHP = cfg.Structures.DepotHP
	p.TowerRange = cfg.Structures.TowerRange
	p.TowerDamage = cfg.Structures.TowerDamage
	p.TowerCooldown = cfg.Structures.TowerCooldown.Duration
	p.WorkshopInterval = cfg.Structures.WorkshopInterval.Duration
	p.PickupTTL = cfg.Structures.PickupTTL.Duration
	zombies.All(func(t *data.ZombieTemplate) {
		p.Zombies[world.ZombieKind(t.Kind)] = world.ZombieStats{
			HP:             t.HP,
			Damage:         t.Damage,
			MoveInterval:   t.MoveInterval(),
			AttackInterval: t.AttackInterval(),
		}
	})
	return p
}

// seedWorld places the scenario's starting structures and roamers.
// Depots go first — everything else routes off them.
func seedWorld(w *world.World, sc *data.Scenario, log *zap.Logger) int {
	placed := 0
	place := func(kind world.StructureKind, specs []data.PointSpec) {
		for _, p := range specs {
			at := grid.Point{X: p.X, Y: p.Y}
			if _, err := w.AddStructure(kind, at); err != nil {
				log.Warn("scenario placement skipped",
					zap.String("kind", kind.String()),
					zap.Int32("x", p.X), zap.Int32("y", p.Y),
					zap.Error(err))
				continue
			}
			placed++
		}
	}
	place(world.StructureDepot, sc.Depots)
	place(world.StructureWorkshop, sc.Workshops)
	place(world.StructureTower, sc.Towers)
	place(world.StructureObstacle, sc.Obstacles)

	for _, r := range sc.Vehicles {
		route := make([]grid.Point, len(r.Waypoints))
		for i, wp := range r.Waypoints {
			route[i] = grid.Point{X: wp.X, Y: wp.Y}
		}
		w.AddVehicle(world.NewVehicle(route))
	}
	for _, p := range sc.Survivors {
		w.AddSurvivor(world.NewSurvivor(grid.Point{X: p.X, Y: p.Y}))
	}
	return placed
}

// subscribeTelemetry logs the world's event stream.
func subscribeTelemetry(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.WaveSpawned) {
		log.Info("wave incoming",
			zap.Int32("bridge", ev.BridgeID),
			zap.Int("count", ev.Count))
	})
	event.Subscribe(bus, func(ev event.StructureDestroyed) {
		log.Warn("structure lost", zap.String("kind", ev.Kind))
	})
	event.Subscribe(bus, func(ev event.BridgeDemolished) {
		log.Info("bridge down", zap.Int32("bridge", ev.BridgeID))
	})
	event.Subscribe(bus, func(ev event.GameEnded) {
		log.Info("session ended",
			zap.Bool("victory", ev.Victory),
			zap.Duration("elapsed", ev.Elapsed))
	})
}

func reportOutcome(w *world.World) {
	fmt.Println()
	if w.Victory() {
		printOK(fmt.Sprintf("victory — every bridge down after %s", w.Elapsed().Round(time.Second)))
	} else {
		printReady(fmt.Sprintf("defeat — depots overrun after %s", w.Elapsed().Round(time.Second)))
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
