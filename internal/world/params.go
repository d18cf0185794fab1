package world

import "time"

// ZombieStats holds the per-kind tuning a zombie instance is stamped from.
type ZombieStats struct {
	HP             int32
	Damage         int32
	MoveInterval   time.Duration
	AttackInterval time.Duration
}

// NoiseParams maps each noise level to a radius and a latent-trigger chance.
// Index by NoiseLevel; NoiseNone entries stay zero.
type NoiseParams struct {
	Radius [noiseLevels]int32
	Chance [noiseLevels]float64
}

// Params collects every simulation tunable. The driver fills this from TOML
// config and YAML templates; tests use DefaultParams with overrides.
type Params struct {
	RoundDuration time.Duration
	WaveSize      int

	Noise NoiseParams

	DepotHP          int32
	TowerRange       int32
	TowerDamage      int32
	TowerCooldown    time.Duration
	WorkshopInterval time.Duration
	PickupTTL        time.Duration

	VehicleMoveInterval   time.Duration
	VehicleNoiseInterval  time.Duration
	SurvivorMoveInterval  time.Duration
	SurvivorPanicCooldown time.Duration

	Zombies map[ZombieKind]ZombieStats
}

func DefaultParams() Params {
	p := Params{
		RoundDuration: 20 * time.Second,
		WaveSize:      5,

		DepotHP:          200,
		TowerRange:       6,
		TowerDamage:      10,
		TowerCooldown:    1200 * time.Millisecond,
		WorkshopInterval: 15 * time.Second,
		PickupTTL:        60 * time.Second,

		VehicleMoveInterval:   400 * time.Millisecond,
		VehicleNoiseInterval:  3 * time.Second,
		SurvivorMoveInterval:  600 * time.Millisecond,
		SurvivorPanicCooldown: 5 * time.Second,

		Zombies: map[ZombieKind]ZombieStats{
			ZombieBridge: {
				HP:             40,
				Damage:         5,
				MoveInterval:   600 * time.Millisecond,
				AttackInterval: 1500 * time.Millisecond,
			},
			ZombieNormal: {
				HP:             25,
				Damage:         3,
				MoveInterval:   800 * time.Millisecond,
				AttackInterval: 1800 * time.Millisecond,
			},
		},
	}
	p.Noise.Radius = [noiseLevels]int32{0, 3, 6, 10}
	p.Noise.Chance = [noiseLevels]float64{0, 0.15, 0.35, 0.60}
	return p
}

// zombieStats resolves stats for a kind, falling back to bridge stats so a
// template gap never produces a zero-HP zombie.
func (p *Params) zombieStats(kind ZombieKind) ZombieStats {
	if s, ok := p.Zombies[kind]; ok {
		return s
	}
	return p.Zombies[ZombieBridge]
}
