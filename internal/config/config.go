// Package config provides YAML-based configuration loading for the pet.
package config

import (
	"time"

	"github.com/vovakirdan/tui-pet/internal/pet"
	"github.com/vovakirdan/tui-pet/internal/storage"
)

// PetConfig contains all configuration for a pet session and its screen.
type PetConfig struct {
	Rules   RulesConfig   `yaml:"rules"`
	Decay   DecayConfig   `yaml:"decay"`
	Display DisplayConfig `yaml:"display"`
}

// RulesConfig defines the happiness bounds and per-action deltas.
type RulesConfig struct {
	MaxHappiness     int  `yaml:"max_happiness"`
	MinHappiness     int  `yaml:"min_happiness"`
	DefaultHappiness int  `yaml:"default_happiness"`
	StartingTreats   int  `yaml:"starting_treats"`
	MakeHappyDelta   int  `yaml:"make_happy_delta"`
	SwipeDelta       int  `yaml:"swipe_delta"`
	PetDelta         int  `yaml:"pet_delta"`
	TreatDelta       int  `yaml:"treat_delta"`
	CapTreats        bool `yaml:"cap_treats"`
}

// DecayConfig defines the autonomous happiness decay.
type DecayConfig struct {
	Interval time.Duration `yaml:"interval"` // e.g. "5s"
	Step     int           `yaml:"step"`
}

// DisplayConfig defines presentation settings.
type DisplayConfig struct {
	FPS         int  `yaml:"fps"`          // Redraw rate
	Bell        bool `yaml:"bell"`         // Ring the terminal bell for sound cues
	HistoryRows int  `yaml:"history_rows"` // Rows in the history panel
}

// PetRules converts the rules section to session rules.
func (c PetConfig) PetRules() pet.Rules {
	return pet.Rules{
		MaxHappiness:     c.Rules.MaxHappiness,
		MinHappiness:     c.Rules.MinHappiness,
		DefaultHappiness: c.Rules.DefaultHappiness,
		StartingTreats:   c.Rules.StartingTreats,
		MakeHappyDelta:   c.Rules.MakeHappyDelta,
		SwipeDelta:       c.Rules.SwipeDelta,
		PetDelta:         c.Rules.PetDelta,
		TreatDelta:       c.Rules.TreatDelta,
		DecayStep:        c.Decay.Step,
		CapTreats:        c.Rules.CapTreats,
	}
}

// SessionConfig builds a pet.Config from this configuration.
// Feedback, journal and logger are left for the caller to set.
func (c PetConfig) SessionConfig() pet.Config {
	return pet.Config{
		Rules:         c.PetRules(),
		DecayInterval: c.Decay.Interval,
	}
}

// StoreOptions returns the storage options this configuration implies.
func (c PetConfig) StoreOptions() []storage.Option {
	return []storage.Option{
		storage.WithDefaultHappiness(c.Rules.DefaultHappiness),
	}
}
