package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigPath is checked relative to the working directory.
const LocalConfigPath = "configs/pet.yaml"

// LoadPet loads the pet configuration.
// Search order: customPath -> ~/.tuipet/config.yaml -> ./configs/pet.yaml -> embedded default.
// Files only need to set the keys they change; everything else keeps its
// default. An explicit customPath must exist and be valid; the other
// locations are skipped when missing or broken.
func LoadPet(customPath string) (PetConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PetConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parsePet(data)
		if err != nil {
			return PetConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parsePet(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(LocalConfigPath); err == nil {
		if cfg, err := parsePet(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parsePet(defaultPetYAML)
	if err != nil {
		return DefaultPetConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parsePet decodes YAML on top of the defaults and validates the result.
func parsePet(data []byte) (PetConfig, error) {
	cfg := DefaultPetConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PetConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return PetConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tuipet", filename)
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultPetYAML...)
}

// Validate checks that the configuration describes a playable pet.
func (c PetConfig) Validate() error {
	var errs []error

	r := c.Rules
	if r.MinHappiness < 0 {
		errs = append(errs, fmt.Errorf("rules.min_happiness (%d) must not be negative", r.MinHappiness))
	}
	if r.MaxHappiness <= r.MinHappiness {
		errs = append(errs, fmt.Errorf("rules.max_happiness (%d) must be above rules.min_happiness (%d)", r.MaxHappiness, r.MinHappiness))
	}
	if r.DefaultHappiness < r.MinHappiness || r.DefaultHappiness > r.MaxHappiness {
		errs = append(errs, fmt.Errorf("rules.default_happiness (%d) must be within [%d, %d]", r.DefaultHappiness, r.MinHappiness, r.MaxHappiness))
	}
	if r.StartingTreats < 0 {
		errs = append(errs, fmt.Errorf("rules.starting_treats must not be negative"))
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"rules.make_happy_delta", r.MakeHappyDelta},
		{"rules.swipe_delta", r.SwipeDelta},
		{"rules.pet_delta", r.PetDelta},
		{"rules.treat_delta", r.TreatDelta},
		{"decay.step", c.Decay.Step},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", f.name))
		}
	}

	if c.Decay.Interval < minDecayInterval {
		errs = append(errs, fmt.Errorf("decay.interval (%s) must be at least %s", c.Decay.Interval, minDecayInterval))
	}
	if c.Display.FPS <= 0 {
		errs = append(errs, fmt.Errorf("display.fps must be positive"))
	}
	if c.Display.HistoryRows <= 0 {
		errs = append(errs, fmt.Errorf("display.history_rows must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
