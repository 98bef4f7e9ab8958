package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-pet/internal/pet"
)

//go:embed defaults/pet.yaml
var defaultPetYAML []byte

// DefaultPetConfig returns the default pet configuration.
func DefaultPetConfig() PetConfig {
	r := pet.DefaultRules()
	return PetConfig{
		Rules: RulesConfig{
			MaxHappiness:     r.MaxHappiness,
			MinHappiness:     r.MinHappiness,
			DefaultHappiness: r.DefaultHappiness,
			StartingTreats:   r.StartingTreats,
			MakeHappyDelta:   r.MakeHappyDelta,
			SwipeDelta:       r.SwipeDelta,
			PetDelta:         r.PetDelta,
			TreatDelta:       r.TreatDelta,
			CapTreats:        r.CapTreats,
		},
		Decay: DecayConfig{
			Interval: pet.DefaultDecayInterval,
			Step:     r.DecayStep,
		},
		Display: DisplayConfig{
			FPS:         10,
			Bell:        true,
			HistoryRows: 8,
		},
	}
}

// minDecayInterval keeps a typo like "5ms" from draining the pet instantly.
const minDecayInterval = 100 * time.Millisecond
