// Package session runs runner playthroughs on top of validated level specs.
//
// A Session is owned by its caller and holds everything a playthrough needs:
// the current mode, the loaded level and the run state. There is no
// package-level game state, so several sessions (one per SSH connection, for
// example) can coexist.
package session

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/level"
)

// spawnMargin is how far past the right edge of the view world x = 0 starts.
const spawnMargin = 80.0

// Effect durations in seconds.
const (
	sparkleTime = 0.5
	shakeTime   = 0.35
)

// Source produces a freshly loaded level on every call.
type Source interface {
	ID() string
	Load() (*level.Spec, error)
}

// FileSource loads a descriptor from a path on every call.
type FileSource string

// ID returns the file name without its extension.
func (f FileSource) ID() string {
	base := filepath.Base(string(f))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load re-reads and validates the file.
func (f FileSource) Load() (*level.Spec, error) {
	return level.Load(string(f))
}

// Snapshot is a read-only view of the session for front ends.
type Snapshot struct {
	Mode      Mode
	LevelID   string
	LevelName string
	Score     int
	Coins     int
	Elapsed   float64
	Distance  float64
	Speed     float64
	Progress  float64 // 0..1 through the level
	Err       error   // Last load failure, nil if the last load succeeded
}

// Session is one player's runner state.
type Session struct {
	cfg    config.RunnerConfig
	source Source
	spec   *level.Spec
	mode   Mode
	run    run
	err    error
}

// run holds the time-varying state of one playthrough.
// It is rebuilt from the spec on every (re)start.
type run struct {
	placements   []level.Placement
	nextObstacle int
	coins        []level.Coin
	collected    []bool
	sparkles     []float64 // Remaining sparkle time per collected coin
	portals      []level.SpeedPortal
	nextPortal   int
	finish       float64

	difficulty *config.DifficultyManager
	baseSpeed  float64
	speed      float64
	distance   float64
	elapsed    float64

	playerY    float64 // Height of the player's feet above the floor
	velY       float64
	onGround   bool
	coyote     float64
	jumpBuffer float64

	coinCount  int
	coinPoints int

	shake float64 // Remaining death shake time
}

// New creates a session in menu mode. Nothing is loaded until Start.
func New(src Source, cfg config.RunnerConfig) *Session {
	return &Session{
		cfg:    cfg,
		source: src,
		mode:   ModeMenu,
	}
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Spec returns the level of the current playthrough, or nil before the first start.
func (s *Session) Spec() *level.Spec {
	return s.spec
}

// Source returns the level source restarts read from.
func (s *Session) Source() Source {
	return s.source
}

// Err returns the last load failure.
func (s *Session) Err() error {
	return s.err
}

// SetSource switches the level used by the next Start or Restart.
// The current playthrough is left to the caller to end.
func (s *Session) SetSource(src Source) {
	s.source = src
	s.err = nil
}

// Start loads the level and begins playing. Valid only from the menu.
// On a load failure the session stays in the menu and the error is kept.
func (s *Session) Start() error {
	if _, ok := Transition(s.mode, EventStart); !ok {
		return nil
	}
	return s.load(EventStart)
}

// Restart discards the current level, re-reads the source and plays again.
// On failure the previous level and mode are kept.
func (s *Session) Restart() error {
	if _, ok := Transition(s.mode, EventRestart); !ok {
		return nil
	}
	return s.load(EventRestart)
}

// Reload re-reads the source after it changed on disk.
// In the menu it only refreshes the validation result.
func (s *Session) Reload() error {
	if s.mode == ModeMenu {
		_, err := s.source.Load()
		s.err = err
		return err
	}
	return s.Restart()
}

// Pause toggles between playing and paused.
func (s *Session) Pause() {
	if s.mode == ModePaused {
		s.apply(EventResume)
		return
	}
	s.apply(EventPause)
}

// ToMenu leaves the playthrough.
func (s *Session) ToMenu() {
	s.apply(EventMenu)
}

func (s *Session) load(e Event) error {
	spec, err := s.source.Load()
	if err != nil {
		s.err = err
		return err
	}
	s.spec = spec
	s.err = nil
	s.run = newRun(spec, s.cfg)
	s.apply(e)
	return nil
}

func (s *Session) apply(e Event) bool {
	next, ok := Transition(s.mode, e)
	if ok {
		s.mode = next
	}
	return ok
}

func newRun(spec *level.Spec, cfg config.RunnerConfig) run {
	portals := spec.SpeedPortals()
	sort.SliceStable(portals, func(i, j int) bool {
		return portals[i].X < portals[j].X
	})

	coins := spec.Coins()
	finish := spec.Length()
	for _, c := range coins {
		finish = max(finish, c.X)
	}
	for _, p := range portals {
		finish = max(finish, p.X)
	}

	r := run{
		placements: spec.Placements(),
		coins:      coins,
		collected:  make([]bool, len(coins)),
		sparkles:   make([]float64, len(coins)),
		portals:    portals,
		finish:     finish,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		baseSpeed:  spec.ScrollSpeed(),
		onGround:   true,
	}
	r.speed = r.difficulty.Speed(r.baseSpeed, 0, 0)
	return r
}

// Update applies the frame's input and advances the simulation by dt seconds.
// A frame that starts, restarts or switches mode does not also advance the
// world, so a fresh run begins at zero.
func (s *Session) Update(dt float64, in core.InputFrame) {
	if s.handleInput(in) || dt <= 0 {
		return
	}
	switch s.mode {
	case ModePlaying:
		s.step(dt)
	case ModeGameOver, ModeCleared:
		s.fadeEffects(dt)
	}
}

// handleInput reports whether the frame loaded a level or changed the mode.
func (s *Session) handleInput(in core.InputFrame) bool {
	mode, spec := s.mode, s.spec

	switch s.mode {
	case ModeMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			//nolint:errcheck // Failure is kept in s.err and shown on the menu
			s.Start()
		}

	case ModePlaying:
		switch {
		case in.Has(core.ActionRestart):
			//nolint:errcheck // Failure is kept in s.err; the old run continues
			s.Restart()
		case in.Has(core.ActionMenu):
			s.ToMenu()
		case in.Has(core.ActionPause):
			s.Pause()
		case in.Has(core.ActionJump):
			s.queueJump()
		}

	case ModePaused:
		switch {
		case in.Has(core.ActionRestart):
			//nolint:errcheck // Failure is kept in s.err
			s.Restart()
		case in.Has(core.ActionMenu):
			s.ToMenu()
		case in.Has(core.ActionPause):
			s.Pause()
		}

	case ModeGameOver, ModeCleared:
		switch {
		case in.Has(core.ActionRestart), in.Has(core.ActionConfirm):
			//nolint:errcheck // Failure is kept in s.err
			s.Restart()
		case in.Has(core.ActionMenu):
			s.ToMenu()
		}
	}

	return s.mode != mode || s.spec != spec
}

// Snapshot returns the current state for display and scoring.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:     s.mode,
		LevelID:  s.source.ID(),
		Score:    s.score(),
		Coins:    s.run.coinCount,
		Elapsed:  s.run.elapsed,
		Distance: s.run.distance,
		Speed:    s.run.speed,
		Err:      s.err,
	}
	if s.spec != nil {
		snap.LevelName = s.spec.Name()
	}
	if snap.LevelName == "" {
		snap.LevelName = snap.LevelID
	}
	if s.run.finish > 0 {
		snap.Progress = core.ClampF(s.playerWorldX()/s.run.finish, 0, 1)
	}
	return snap
}

func (s *Session) score() int {
	return int(s.run.elapsed*s.cfg.Scoring.PointsPerSecond) + s.run.coinPoints
}
