// Package config provides YAML-based tuning for the runner: physics, sizes,
// view projection and difficulty presets. Level layout lives in level
// descriptors, not here.
package config

// RunnerConfig contains all tuning for the runner session.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Player     RunnerPlayer     `yaml:"player"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Coins      RunnerCoins      `yaml:"coins"`
	View       RunnerView       `yaml:"view"`
	Scoring    RunnerScoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines vertical motion in world units and seconds.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`       // Downward acceleration, units/s^2
	JumpVelocity float64 `yaml:"jump_velocity"` // Upward launch speed, units/s
	CoyoteTime   float64 `yaml:"coyote_time"`   // Seconds a jump is still allowed after leaving ground
	JumpBuffer   float64 `yaml:"jump_buffer"`   // Seconds an early jump press is remembered
	FallLimit    float64 `yaml:"fall_limit"`    // Player dies below this world y; raise above floor_y to make the floor lethal
}

// RunnerPlayer defines the player hitbox.
type RunnerPlayer struct {
	Size float64 `yaml:"size"`
}

// RunnerObstacles defines obstacle hitbox height; width comes from the level.
type RunnerObstacles struct {
	Height float64 `yaml:"height"`
}

// RunnerCoins defines coin pickups.
type RunnerCoins struct {
	Size   float64 `yaml:"size"`
	Points int     `yaml:"points"`
}

// RunnerView defines the world rectangle projected onto the terminal.
type RunnerView struct {
	WorldWidth  float64 `yaml:"world_width"`
	WorldHeight float64 `yaml:"world_height"`
}

// RunnerScoring defines time-based scoring.
type RunnerScoring struct {
	PointsPerSecond float64 `yaml:"points_per_second"`
}

// DifficultyConfig defines the scroll speed scaling.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "distance", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // Distance (world units) or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the speed factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
