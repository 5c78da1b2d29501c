// Package spawn decides each tick whether new aliens, bombs and fireworks
// enter the field.
package spawn

import (
	"github.com/tomz197/aliens/internal/object"
	"github.com/tomz197/aliens/internal/physics"
)

// Rand is the subset of *math/rand.Rand the spawner draws from.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// World receives spawned objects and tells the spawner which alien dropped
// in last.
type World interface {
	Spawn(obj object.Object)
	LastAlien() object.Object
}

// Roll runs one Bernoulli trial that succeeds with probability 1/odds.
// It always consumes exactly one draw.
func Roll(r Rand, odds int) bool {
	return int(r.Float64()*float64(odds)) == 0
}

// Settings configures a Spawner.
type Settings struct {
	AlienOdds    int
	BombOdds     int
	FireworkOdds int
	AlienReload  int // Minimum ticks between two aliens
	AlienBands   int // Number of rows a new alien may start in

	Field physics.Rect
	Sizes object.Sizes
}

// Spawner creates aliens, bombs and fireworks at random.
type Spawner struct {
	settings Settings
	rng      Rand
	reload   int
}

// New creates a spawner. The alien reload starts full, so the first random
// alien can appear only after AlienReload ticks.
func New(settings Settings, rng Rand) *Spawner {
	if settings.AlienBands < 1 {
		settings.AlienBands = 1
	}
	return &Spawner{
		settings: settings,
		rng:      rng,
		reload:   settings.AlienReload,
	}
}

// Tick runs the three spawn trials in order: alien, bomb, firework.
func (s *Spawner) Tick(w World) {
	s.tickAlien(w)
	s.tickBomb(w)
	s.tickFirework(w)
}

func (s *Spawner) tickAlien(w World) {
	if s.reload > 0 {
		s.reload--
		return
	}
	if !Roll(s.rng, s.settings.AlienOdds) {
		return
	}
	s.SpawnAlien(w)
	s.reload = s.settings.AlienReload
}

// SpawnAlien adds an alien with a random direction and band, drawing the
// direction first. It does not touch the reload counter.
func (s *Spawner) SpawnAlien(w World) *object.Alien {
	direction := 1
	if s.rng.Intn(2) == 0 {
		direction = -1
	}
	band := s.rng.Intn(s.settings.AlienBands)
	a := object.NewAlien(s.settings.Field, s.settings.Sizes.Alien, band, direction)
	w.Spawn(a)
	return a
}

func (s *Spawner) tickBomb(w World) {
	last := w.LastAlien()
	if last == nil || !last.Alive() {
		return
	}
	if !Roll(s.rng, s.settings.BombOdds) {
		return
	}
	w.Spawn(object.NewBomb(s.settings.Field, s.settings.Sizes.Bomb, last.Bounds()))
}

func (s *Spawner) tickFirework(w World) {
	if !Roll(s.rng, s.settings.FireworkOdds) {
		return
	}
	x := s.settings.Field.X + s.rng.Intn(s.settings.Field.W+1)
	w.Spawn(object.NewFirework(s.settings.Field, s.settings.Sizes.Firework, s.settings.Sizes.Explosion, x))
}
