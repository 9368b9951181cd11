package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner tuning.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:      1800,
			JumpVelocity: 820,
			CoyoteTime:   0.08,
			JumpBuffer:   0.10,
			FallLimit:    -200,
		},
		Player: RunnerPlayer{
			Size: 48,
		},
		Obstacles: RunnerObstacles{
			Height: 36,
		},
		Coins: RunnerCoins{
			Size:   16,
			Points: 10,
		},
		View: RunnerView{
			WorldWidth:  960,
			WorldHeight: 540,
		},
		Scoring: RunnerScoring{
			PointsPerSecond: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
