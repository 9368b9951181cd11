package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("embedded YAML drifted from DefaultRunnerConfig():\n%+v\n%+v", cfg, DefaultRunnerConfig())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 2400\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.Gravity != 2400 {
		t.Errorf("gravity = %g, expected override 2400", cfg.Physics.Gravity)
	}
	if cfg.Physics.JumpVelocity != 820 {
		t.Errorf("unset fields should keep defaults, jump_velocity = %g", cfg.Physics.JumpVelocity)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [oops\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(bad)
	if err == nil {
		t.Error("expected error for malformed config")
	}
	if cfg != DefaultRunnerConfig() {
		t.Error("malformed config should return defaults alongside the error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("player:\n  size: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error for zero player size")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.0},
	}

	for _, tc := range tests {
		cfg := DefaultRunnerConfig()
		ApplyPreset(&cfg, tc.preset)
		if cfg.Difficulty.Enabled != tc.enabled || cfg.Difficulty.InitialLevel != tc.level {
			t.Errorf("%s: enabled=%v level=%g, expected %v %g",
				tc.preset, cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel, tc.enabled, tc.level)
		}
	}

	cfg := DefaultRunnerConfig()
	ApplyPreset(&cfg, "")
	if cfg != DefaultRunnerConfig() {
		t.Error("empty preset should not change config")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should parse to empty")
	}
}

func TestDifficultySpeed(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: "distance", MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
	})

	if got := dm.Speed(360, 0, 0); got != 360 {
		t.Errorf("Speed at start = %g, expected 360", got)
	}
	if got := dm.Speed(360, 500, 0); got != 450 {
		t.Errorf("Speed halfway = %g, expected 450", got)
	}
	if got := dm.Speed(360, 5000, 0); got != 540 {
		t.Errorf("Speed past max = %g, expected 540", got)
	}
}

func TestDifficultyDisabledKeepsBaseSpeed(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.7,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	})

	if dm.IsEnabled() {
		t.Error("manager should report disabled")
	}
	if got := dm.Level(1e6, 1e6); got != 0 {
		t.Errorf("Level() = %g, expected 0 while disabled", got)
	}
	if got := dm.Speed(360, 1e6, 1e6); got != 360 {
		t.Errorf("Speed() = %g, expected the base speed 360", got)
	}
}
