// Package level loads and validates runner level descriptors.
//
// A descriptor is a JSON (or YAML) object describing one playthrough: the
// scroll speed, the floor baseline, the player column and an ordered list of
// obstacles separated by gaps. Loading is a pure function from bytes to a
// validated *Spec or a descriptive *Error; nothing is cached between calls.
package level

// Defaults applied when optional descriptor fields are absent.
const (
	DefaultObstacleWidth = 30.0
	WorldOrigin          = 0.0 // World x from which the first gap is measured
)

// Obstacle is one validated obstacle entry with its width already resolved.
type Obstacle struct {
	Gap   float64 // Distance from the previous trailing edge (or the origin)
	Width float64 // Horizontal extent, always > 0
}

// Coin is a pickup placed at an absolute world x, Y units above the floor.
type Coin struct {
	X float64
	Y float64
}

// SpeedPortal changes the scroll speed once the player passes world x.
type SpeedPortal struct {
	X     float64
	Speed float64
}

// Placement is the absolute world position of an obstacle's leading edge.
type Placement struct {
	Index int
	X     float64
	Width float64
}

// Right returns the world x of the trailing edge.
func (p Placement) Right() float64 {
	return p.X + p.Width
}

// Spec is a validated level descriptor. It is immutable: accessors return
// copies so a loaded level cannot be altered during a playthrough.
type Spec struct {
	name                 string
	scrollSpeed          float64
	floorY               float64
	playerX              float64
	defaultObstacleWidth float64
	obstacles            []Obstacle
	coins                []Coin
	portals              []SpeedPortal
	placements           []Placement
}

// Name returns the optional display name from the descriptor.
func (s *Spec) Name() string { return s.name }

// ScrollSpeed returns the world units per second the level scrolls at.
func (s *Spec) ScrollSpeed() float64 { return s.scrollSpeed }

// FloorY returns the vertical baseline for the player and obstacles.
func (s *Spec) FloorY() float64 { return s.floorY }

// PlayerX returns the fixed horizontal screen position of the player.
func (s *Spec) PlayerX() float64 { return s.playerX }

// DefaultObstacleWidth returns the width used for entries that omit one.
func (s *Spec) DefaultObstacleWidth() float64 { return s.defaultObstacleWidth }

// Len returns the number of obstacles.
func (s *Spec) Len() int { return len(s.obstacles) }

// Obstacles returns the obstacles in encounter order.
func (s *Spec) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// Coins returns the coin pickups in descriptor order.
func (s *Spec) Coins() []Coin {
	out := make([]Coin, len(s.coins))
	copy(out, s.coins)
	return out
}

// SpeedPortals returns the speed portals in descriptor order.
func (s *Spec) SpeedPortals() []SpeedPortal {
	out := make([]SpeedPortal, len(s.portals))
	copy(out, s.portals)
	return out
}

// Placements returns the leading-edge positions computed at load time.
func (s *Spec) Placements() []Placement {
	out := make([]Placement, len(s.placements))
	copy(out, s.placements)
	return out
}

// Length returns the world x of the last obstacle's trailing edge, or the
// origin for an obstacle-free level.
func (s *Spec) Length() float64 {
	if len(s.placements) == 0 {
		return WorldOrigin
	}
	return s.placements[len(s.placements)-1].Right()
}

// Place accumulates gaps and widths from WorldOrigin into leading edges.
// The result has one entry per obstacle and is non-decreasing in X.
func Place(obstacles []Obstacle) []Placement {
	placements := make([]Placement, 0, len(obstacles))
	x := WorldOrigin
	for i, ob := range obstacles {
		x += ob.Gap
		placements = append(placements, Placement{Index: i, X: x, Width: ob.Width})
		x += ob.Width
	}
	return placements
}
