package object

import "github.com/tomz197/aliens/internal/physics"

// Alien tuning.
const (
	AlienSpeed     = 13
	AlienAnimCycle = 12 // Ticks per animation frame
	AlienFrames    = 3
)

// Alien is an invader sweeping across the field and stepping down a row at
// each edge.
type Alien struct {
	Base
	frame int
}

// NewAlien creates an alien at the field's left edge in the given vertical
// band, moving right when direction > 0 and left otherwise.
func NewAlien(field physics.Rect, size physics.Size, band, direction int) *Alien {
	vx := AlienSpeed
	if direction < 0 {
		vx = -AlienSpeed
	}
	r := physics.NewRect(field.X, field.Y+band*size.H, size.W, size.H)
	return &Alien{
		Base: Base{Rect: r.Clamp(field), VX: vx},
	}
}

// Kind implements Object.
func (a *Alien) Kind() Kind { return KindAlien }

// Frame cycles through the alien frames every AlienAnimCycle ticks.
func (a *Alien) Frame() int {
	return a.frame / AlienAnimCycle % AlienFrames
}

// Update moves the alien sideways. Leaving the field reverses it and drops
// it one row.
func (a *Alien) Update(ctx UpdateContext) {
	r := a.Rect.Move(a.VX, 0)
	if !ctx.Field.Contains(r) {
		a.VX = -a.VX
		r.Y = r.Bottom() + 1
		r = r.Clamp(ctx.Field)
	}
	a.Rect = r
	a.frame++
}
