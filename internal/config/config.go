package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML values can be written as "200ms",
// "20s" and so on.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Waves      WavesConfig      `toml:"waves"`
	Noise      NoiseConfig      `toml:"noise"`
	Structures StructuresConfig `toml:"structures"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate Duration `toml:"tick_rate"`
	Seed     int64    `toml:"seed"` // 0 = seed from wall clock
}

type WavesConfig struct {
	RoundDuration Duration `toml:"round_duration"`
	Size          int      `toml:"size"`
}

// NoiseConfig maps each noise level to a propagation radius (tiles) and the
// chance a latent building in range releases a zombie.
type NoiseConfig struct {
	LowRadius     int32   `toml:"low_radius"`
	MediumRadius  int32   `toml:"medium_radius"`
	HighRadius    int32   `toml:"high_radius"`
	LowChance     float64 `toml:"low_chance"`
	MediumChance  float64 `toml:"medium_chance"`
	HighChance    float64 `toml:"high_chance"`
}

type StructuresConfig struct {
	DepotHP          int32    `toml:"depot_hp"`
	TowerRange       int32    `toml:"tower_range"`
	TowerDamage      int32    `toml:"tower_damage"`
	TowerCooldown    Duration `toml:"tower_cooldown"`
	WorkshopInterval Duration `toml:"workshop_interval"`
	PickupTTL        Duration `toml:"pickup_ttl"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate: Duration{200 * time.Millisecond},
		},
		Waves: WavesConfig{
			RoundDuration: Duration{20 * time.Second},
			Size:          5,
		},
		Noise: NoiseConfig{
			LowRadius:    3,
			MediumRadius: 6,
			HighRadius:   10,
			LowChance:    0.15,
			MediumChance: 0.35,
			HighChance:   0.60,
		},
		Structures: StructuresConfig{
			DepotHP:          200,
			TowerRange:       6,
			TowerDamage:      10,
			TowerCooldown:    Duration{1200 * time.Millisecond},
			WorkshopInterval: Duration{15 * time.Second},
			PickupTTL:        Duration{60 * time.Second},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
