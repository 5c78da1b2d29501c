// Package physics provides axis-aligned rectangles and collision helpers.
package physics

// Size is a width/height pair in logical pixels.
type Size struct {
	W, H int
}

// Rect is an axis-aligned bounding box. X/Y is the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns the center point.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// MidBottom returns the middle of the bottom edge.
func (r Rect) MidBottom() (int, int) {
	return r.X + r.W/2, r.Bottom()
}

// MidTop returns the middle of the top edge.
func (r Rect) MidTop() (int, int) {
	return r.X + r.W/2, r.Y
}

// Move returns the rectangle translated by dx, dy.
func (r Rect) Move(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether the two rectangles share a non-empty area.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains reports whether other lies entirely inside r.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Clamp moves r inside bounds. A rectangle larger than bounds on an axis is
// centered on that axis instead.
func (r Rect) Clamp(bounds Rect) Rect {
	r.X = clampAxis(r.X, r.W, bounds.X, bounds.W)
	r.Y = clampAxis(r.Y, r.H, bounds.Y, bounds.H)
	return r
}

func clampAxis(pos, length, min, span int) int {
	if length >= span {
		return min + span/2 - length/2
	}
	if pos < min {
		return min
	}
	if pos+length > min+span {
		return min + span - length
	}
	return pos
}

// RectAtMidBottom places a rectangle of size s with its mid-bottom at (x, y).
func RectAtMidBottom(s Size, x, y int) Rect {
	return Rect{X: x - s.W/2, Y: y - s.H, W: s.W, H: s.H}
}

// RectAtMidTop places a rectangle of size s with its mid-top at (x, y).
func RectAtMidTop(s Size, x, y int) Rect {
	return Rect{X: x - s.W/2, Y: y, W: s.W, H: s.H}
}

// RectAtCenter places a rectangle of size s centered on (x, y).
func RectAtCenter(s Size, x, y int) Rect {
	return Rect{X: x - s.W/2, Y: y - s.H/2, W: s.W, H: s.H}
}
