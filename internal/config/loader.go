package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const runnerFile = "runner.yaml"

// Load loads runner tuning.
// Search order: customPath -> ~/.dash/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Files are decoded over the defaults so a partial file only overrides what it sets.
func Load(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(runnerFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := DefaultRunnerConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", runnerFile)); err == nil {
		candidate := DefaultRunnerConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate rejects tuning that would make the runner unplayable.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("config: physics.gravity must be > 0")
	case c.Physics.JumpVelocity <= 0:
		return fmt.Errorf("config: physics.jump_velocity must be > 0")
	case c.Physics.CoyoteTime < 0 || c.Physics.JumpBuffer < 0:
		return fmt.Errorf("config: coyote_time and jump_buffer must be >= 0")
	case c.Player.Size <= 0:
		return fmt.Errorf("config: player.size must be > 0")
	case c.Obstacles.Height <= 0:
		return fmt.Errorf("config: obstacles.height must be > 0")
	case c.View.WorldWidth <= 0 || c.View.WorldHeight <= 0:
		return fmt.Errorf("config: view dimensions must be > 0")
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dash", "configs", filename)
}
