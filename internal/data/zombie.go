package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ZombieTemplate holds static tuning for one zombie kind loaded from YAML.
// Intervals are in milliseconds to keep the files plain-number.
type ZombieTemplate struct {
	Kind           string `yaml:"kind"` // "bridge", "normal"
	Name           string `yaml:"name"`
	HP             int32  `yaml:"hp"`
	Damage         int32  `yaml:"damage"`
	MoveIntervalMs int    `yaml:"move_interval_ms"`
	AtkIntervalMs  int    `yaml:"atk_interval_ms"`
}

func (t *ZombieTemplate) MoveInterval() time.Duration {
	return time.Duration(t.MoveIntervalMs) * time.Millisecond
}

func (t *ZombieTemplate) AttackInterval() time.Duration {
	return time.Duration(t.AtkIntervalMs) * time.Millisecond
}

type zombieListFile struct {
	Zombies []ZombieTemplate `yaml:"zombies"`
}

// ZombieTable holds all zombie templates indexed by kind.
type ZombieTable struct {
	templates map[string]*ZombieTemplate
}

// LoadZombieTable loads zombie templates from a YAML file.
func LoadZombieTable(path string) (*ZombieTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zombie_list: %w", err)
	}
	var f zombieListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse zombie_list: %w", err)
	}
	t := &ZombieTable{templates: make(map[string]*ZombieTemplate, len(f.Zombies))}
	for i := range f.Zombies {
		z := &f.Zombies[i]
		t.templates[z.Kind] = z
	}
	return t, nil
}

// Get returns the template for a kind, or nil.
func (t *ZombieTable) Get(kind string) *ZombieTemplate {
	return t.templates[kind]
}

func (t *ZombieTable) Count() int {
	return len(t.templates)
}

// All iterates every template.
func (t *ZombieTable) All(fn func(*ZombieTemplate)) {
	for _, tpl := range t.templates {
		fn(tpl)
	}
}
