package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PointSpec is an (x,y) pair in scenario files.
type PointSpec struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

// BridgeSpec lists a bridge's tiles; the first tile is the city-side anchor
// used as the wave spawn point.
type BridgeSpec struct {
	Tiles []PointSpec `yaml:"tiles"`
}

// BuildingSpec is a city building with latent zombies behind its door.
type BuildingSpec struct {
	Door   PointSpec `yaml:"door"`
	Latent int       `yaml:"latent"`
}

// RouteSpec is a vehicle patrol route (looped).
type RouteSpec struct {
	Waypoints []PointSpec `yaml:"waypoints"`
}

// Scenario describes a full starting layout: terrain, river crossings, the
// latent city, and the initial placements and roamers.
type Scenario struct {
	Name   string `yaml:"name"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`

	// Terrain rows, top to bottom: '.' open ground, '#' blocked (river,
	// rubble). Bridges re-open the tiles they cross. Missing rows/columns
	// default to open.
	Terrain []string `yaml:"terrain"`

	Bridges   []BridgeSpec   `yaml:"bridges"`
	Buildings []BuildingSpec `yaml:"buildings"`

	Depots    []PointSpec `yaml:"depots"`
	Workshops []PointSpec `yaml:"workshops"`
	Towers    []PointSpec `yaml:"towers"`
	Obstacles []PointSpec `yaml:"obstacles"`
	Vehicles  []RouteSpec `yaml:"vehicles"`
	Survivors []PointSpec `yaml:"survivors"`
}

// LoadScenario loads a scenario layout from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return nil, fmt.Errorf("scenario %s: width/height must be positive", path)
	}
	return &sc, nil
}
