package object

import "github.com/tomz197/aliens/internal/physics"

// Player tuning.
const (
	PlayerSpeed     = 10
	PlayerGunOffset = -11
)

// Player is the ship at the bottom of the field.
type Player struct {
	Base
	Facing int // -1 left, 1 right

	// Reload counts ticks until the gun may fire again.
	Reload int

	Invincible      bool
	InvincibleUntil uint64 // First tick at which invincibility is over
}

// NewPlayer creates the player with its mid-bottom on the field's mid-bottom.
func NewPlayer(field physics.Rect, size physics.Size) *Player {
	x, y := field.MidBottom()
	return &Player{
		Base:   Base{Rect: physics.RectAtMidBottom(size, x, y).Clamp(field)},
		Facing: -1,
	}
}

// Kind implements Object.
func (p *Player) Kind() Kind { return KindPlayer }

// Frame is 0 when facing right and 1 when facing left.
func (p *Player) Frame() int {
	if p.Facing < 0 {
		return 1
	}
	return 0
}

// Update moves the ship, counts down the reload and expires invincibility.
func (p *Player) Update(ctx UpdateContext) {
	p.Move(ctx.Input.Direction, ctx.Field)

	if p.Reload > 0 {
		p.Reload--
	}

	if p.Invincible && ctx.Tick >= p.InvincibleUntil {
		p.Invincible = false
	}
}

// Move shifts the ship horizontally by one step in direction and keeps it
// inside field.
func (p *Player) Move(direction int, field physics.Rect) {
	if direction == 0 {
		return
	}
	if direction < 0 {
		direction = -1
	} else {
		direction = 1
	}
	p.Rect = p.Rect.Move(direction*PlayerSpeed, 0).Clamp(field)
	p.Facing = direction
}

// GunPos returns the point a new shot leaves from.
func (p *Player) GunPos() (int, int) {
	cx, _ := p.Rect.Center()
	return cx + p.Facing*PlayerGunOffset, p.Rect.Y
}

// CanFire reports whether the gun has reloaded.
func (p *Player) CanFire() bool {
	return p.Reload == 0
}

// ActivateInvincibility makes the ship immune for ticks [now, now+ticks).
func (p *Player) ActivateInvincibility(now, ticks uint64) {
	if ticks == 0 {
		return
	}
	p.Invincible = true
	p.InvincibleUntil = now + ticks
}

// Vulnerable reports whether alien and bomb hits are lethal.
func (p *Player) Vulnerable() bool {
	return p.Alive() && !p.Invincible
}
