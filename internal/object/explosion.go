package object

import "github.com/tomz197/aliens/internal/physics"

// Explosion tuning.
const (
	ExplosionLife      = 12 // Ticks on screen
	ExplosionAnimCycle = 3
	ExplosionFrames    = 2

	FireworkSpeed = -10
)

// Explosion is a short-lived, stationary visual effect.
type Explosion struct {
	Base
	Life int
}

// NewExplosion creates an explosion centered on at.
func NewExplosion(field physics.Rect, size physics.Size, at physics.Rect) *Explosion {
	x, y := at.Center()
	return &Explosion{
		Base: Base{Rect: physics.RectAtCenter(size, x, y).Clamp(field)},
		Life: ExplosionLife,
	}
}

// Kind implements Object.
func (e *Explosion) Kind() Kind { return KindExplosion }

// Frame alternates between the two explosion frames.
func (e *Explosion) Frame() int {
	return e.Life / ExplosionAnimCycle % ExplosionFrames
}

// Update counts down the remaining life.
func (e *Explosion) Update(_ UpdateContext) {
	e.Life--
	if e.Life <= 0 {
		e.Kill()
	}
}

// Firework rises from the bottom edge and bursts at the top.
type Firework struct {
	Base
	burst physics.Size // Size of the explosion spawned at the top
}

// NewFirework creates a firework with its mid-bottom at (x, field bottom).
func NewFirework(field physics.Rect, size, burst physics.Size, x int) *Firework {
	return &Firework{
		Base:  Base{Rect: physics.RectAtMidBottom(size, x, field.Bottom()).Clamp(field), VY: FireworkSpeed},
		burst: burst,
	}
}

// Kind implements Object.
func (f *Firework) Kind() Kind { return KindFirework }

// Frame implements Object.
func (f *Firework) Frame() int { return 0 }

// Update moves the firework up; at the top it bursts into an explosion.
func (f *Firework) Update(ctx UpdateContext) {
	f.Rect = f.Rect.Move(0, f.VY)
	if f.Rect.Y <= ctx.Field.Y {
		if ctx.Spawner != nil {
			ctx.Spawner.Spawn(NewExplosion(ctx.Field, f.burst, f.Rect))
		}
		f.Kill()
	}
}
