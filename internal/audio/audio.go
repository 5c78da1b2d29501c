// Package audio plays sound cues and background music.
package audio

import "time"

// Cue identifies a one-shot sound effect.
type Cue int

const (
	CueShot Cue = iota
	CueExplosion
)

func (c Cue) String() string {
	switch c {
	case CueShot:
		return "shot"
	case CueExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Player is the audio collaborator of the game loop.
type Player interface {
	Play(c Cue)
	StartMusic()
	// FadeOut ramps the music down to silence over d.
	FadeOut(d time.Duration)
	Close() error
}

// Nop is a Player that makes no sound.
type Nop struct{}

var _ Player = Nop{}

func (Nop) Play(Cue)              {}
func (Nop) StartMusic()           {}
func (Nop) FadeOut(time.Duration) {}
func (Nop) Close() error          { return nil }
