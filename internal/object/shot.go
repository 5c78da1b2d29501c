package object

import "github.com/tomz197/aliens/internal/physics"

// Projectile speeds in logical pixels per tick. Negative is up.
const (
	ShotSpeed = -11
	BombSpeed = 9
)

// Shot is a bullet fired by the player.
type Shot struct {
	Base
}

// NewShot creates a shot with its mid-bottom at (x, y).
func NewShot(field physics.Rect, size physics.Size, x, y int) *Shot {
	return &Shot{
		Base: Base{Rect: physics.RectAtMidBottom(size, x, y).Clamp(field), VY: ShotSpeed},
	}
}

// Kind implements Object.
func (s *Shot) Kind() Kind { return KindShot }

// Frame implements Object.
func (s *Shot) Frame() int { return 0 }

// Update moves the shot up and kills it once its top reaches the field top.
func (s *Shot) Update(ctx UpdateContext) {
	s.Rect = s.Rect.Move(0, s.VY)
	if s.Rect.Y <= ctx.Field.Y || s.Rect.Bottom() >= ctx.Field.Bottom() {
		s.Kill()
	}
}

// Bomb is dropped by an alien and falls toward the player.
type Bomb struct {
	Base
}

// NewBomb creates a bomb hanging from the bottom of from.
func NewBomb(field physics.Rect, size physics.Size, from physics.Rect) *Bomb {
	x, y := from.MidBottom()
	return &Bomb{
		Base: Base{Rect: physics.RectAtMidTop(size, x, y).Clamp(field), VY: BombSpeed},
	}
}

// Kind implements Object.
func (b *Bomb) Kind() Kind { return KindBomb }

// Frame implements Object.
func (b *Bomb) Frame() int { return 0 }

// Update moves the bomb down and kills it at the field bottom.
func (b *Bomb) Update(ctx UpdateContext) {
	b.Rect = b.Rect.Move(0, b.VY)
	if b.Rect.Bottom() >= ctx.Field.Bottom() {
		b.Kill()
	}
}
