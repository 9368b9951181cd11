// Package core provides fundamental types shared by the runner simulation and
// the terminal front end. It has no external dependencies (especially no Bubble
// Tea) so gameplay stays pure and testable.
package core

// Rect is an integer cell rectangle used for drawing on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned hitbox in world units.
// Y grows upward from the floor, matching level descriptors.
type Box struct {
	X, Y float64 // Bottom-left corner
	W, H float64
}

// NewBox creates a hitbox from its bottom-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the world x of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Top returns the world y of the top edge.
func (b Box) Top() float64 {
	return b.Y + b.H
}

// Overlaps reports whether two hitboxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Top() || other.Y >= b.Top() {
		return false
	}
	return true
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
