// Package render draws game frames to a terminal.
package render

import (
	"github.com/tomz197/aliens/internal/object"
	"github.com/tomz197/aliens/internal/physics"
)

// Sprite is one entity to draw.
type Sprite struct {
	Kind  object.Kind
	Rect  physics.Rect
	Frame int
}

// Frame is everything drawn for one tick.
type Frame struct {
	Sprites    []Sprite
	Score      int
	Invincible bool
	Tick       uint64
}

// Renderer is the rendering collaborator of the game loop.
type Renderer interface {
	Render(f Frame) error
	ToggleFullscreen()
}
