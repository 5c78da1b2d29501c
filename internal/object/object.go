// Package object defines the game entities and their per-tick movement rules.
package object

import (
	"github.com/tomz197/aliens/internal/input"
	"github.com/tomz197/aliens/internal/physics"
)

// Kind identifies the concrete entity type.
type Kind int

const (
	KindPlayer Kind = iota
	KindAlien
	KindShot
	KindBomb
	KindExplosion
	KindFirework
	kindCount
)

// Kinds lists every entity kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAlien:
		return "alien"
	case KindShot:
		return "shot"
	case KindBomb:
		return "bomb"
	case KindExplosion:
		return "explosion"
	case KindFirework:
		return "firework"
	default:
		return "unknown"
	}
}

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Snapshot type.
type Input = input.Snapshot

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Tick    uint64
	Input   Input
	Field   physics.Rect
	Spawner Spawner
}

// Object is an updatable, collidable game entity.
type Object interface {
	Kind() Kind
	// Bounds returns the current collision rectangle.
	Bounds() physics.Rect
	Alive() bool
	// Kill clears the alive flag. The world drops dead objects at the end of the tick.
	Kill()
	// Frame returns the animation frame index to render.
	Frame() int
	// Update advances the object by one tick.
	Update(ctx UpdateContext)
}

// Base carries the state shared by every entity kind.
type Base struct {
	Rect   physics.Rect
	VX, VY int
	dead   bool
}

// Bounds returns the entity rectangle.
func (b *Base) Bounds() physics.Rect {
	return b.Rect
}

// Alive reports whether the entity has not been killed.
func (b *Base) Alive() bool {
	return !b.dead
}

// Kill marks the entity dead.
func (b *Base) Kill() {
	b.dead = true
}

// Sizes holds the rectangle size of each entity kind, normally taken from
// the sprite catalog.
type Sizes struct {
	Player    physics.Size
	Alien     physics.Size
	Shot      physics.Size
	Bomb      physics.Size
	Explosion physics.Size
	Firework  physics.Size
}

// DefaultSizes matches the embedded sprite set.
func DefaultSizes() Sizes {
	return Sizes{
		Player:    physics.Size{W: 64, H: 40},
		Alien:     physics.Size{W: 80, H: 40},
		Shot:      physics.Size{W: 8, H: 16},
		Bomb:      physics.Size{W: 12, H: 20},
		Explosion: physics.Size{W: 64, H: 64},
		Firework:  physics.Size{W: 16, H: 32},
	}
}

// Of returns the size for kind k.
func (s Sizes) Of(k Kind) physics.Size {
	switch k {
	case KindPlayer:
		return s.Player
	case KindAlien:
		return s.Alien
	case KindShot:
		return s.Shot
	case KindBomb:
		return s.Bomb
	case KindExplosion:
		return s.Explosion
	case KindFirework:
		return s.Firework
	default:
		return physics.Size{}
	}
}
