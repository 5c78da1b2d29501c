package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/aliens/internal/audio"
	"github.com/tomz197/aliens/internal/config"
	"github.com/tomz197/aliens/internal/input"
	"github.com/tomz197/aliens/internal/object"
	"github.com/tomz197/aliens/internal/physics"
	"github.com/tomz197/aliens/internal/render"
	"github.com/tomz197/aliens/internal/spawn"
	"github.com/tomz197/aliens/internal/world"
)

// NewRand returns a random source for seed, or a clock-seeded one when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// StepResult reports what happened during one tick.
type StepResult struct {
	Cues             []audio.Cue
	ToggleFullscreen bool
	Over             bool
}

// Game is one play session: the world, the spawner and the score.
type Game struct {
	cfg     config.Config
	field   physics.Rect
	sizes   object.Sizes
	world   *world.World
	spawner *spawn.Spawner
	player  *object.Player
	grid    *physics.Grid
	cues    []audio.Cue
	quit    bool

	State State
}

// NewGame sets up the player and one alien and puts the game in PhaseRunning.
func NewGame(cfg config.Config, sizes object.Sizes, rng spawn.Rand) *Game {
	field := physics.NewRect(0, 0, cfg.ScreenWidth, cfg.ScreenHeight)
	g := &Game{
		cfg:   cfg,
		field: field,
		sizes: sizes,
		world: world.New(),
		grid:  physics.NewGrid(field, max(sizes.Alien.W, sizes.Alien.H, sizes.Firework.H)),
		State: State{Phase: PhaseInit},
	}
	g.world.OnSpawn(g.cueFor)

	g.spawner = spawn.New(spawn.Settings{
		AlienOdds:    cfg.AlienOdds,
		BombOdds:     cfg.BombOdds,
		FireworkOdds: cfg.FireworkOdds,
		AlienReload:  cfg.AlienReload,
		AlienBands:   cfg.AlienBands,
		Field:        field,
		Sizes:        sizes,
	}, rng)

	g.player = object.NewPlayer(field, sizes.Player)
	g.world.Add(g.player)
	g.spawner.SpawnAlien(g.world)

	g.State.Phase = PhaseRunning
	return g
}

// cueFor maps spawned entities to sound cues.
func (g *Game) cueFor(obj object.Object) {
	switch obj.Kind() {
	case object.KindShot:
		g.cues = append(g.cues, audio.CueShot)
	case object.KindExplosion:
		g.cues = append(g.cues, audio.CueExplosion)
	}
}

// Step advances the game by one tick. It does nothing once the game is over.
func (g *Game) Step(in input.Snapshot) StepResult {
	if g.State.Phase != PhaseRunning {
		return StepResult{Over: true}
	}
	res := StepResult{ToggleFullscreen: in.ToggleFullscreen}
	if in.Quit {
		g.quit = true
		g.State.Phase = PhaseGameOver
		res.Over = true
		return res
	}

	tick := g.State.Tick
	if in.ToggleInvincible {
		g.player.ActivateInvincibility(tick, g.cfg.InvincibilityTicks())
	}

	g.spawner.Tick(g.world)

	ctx := object.UpdateContext{
		Tick:    tick,
		Input:   in,
		Field:   g.field,
		Spawner: g.world,
	}
	for _, obj := range g.world.Members(world.All) {
		obj.Update(ctx)
	}

	g.fire(in)
	g.checkCollisions()
	g.world.Prune()
	g.State.Tick++

	if !g.player.Alive() {
		g.State.Phase = PhaseGameOver
		res.Over = true
	}

	res.Cues = g.cues
	g.cues = nil
	return res
}

// fire launches a shot when the gun is loaded and the shot limit allows it.
func (g *Game) fire(in input.Snapshot) {
	if !in.Fire || !g.player.Alive() || !g.player.CanFire() {
		return
	}
	if g.world.Count(world.Shots) >= g.cfg.MaxShots {
		return
	}
	x, y := g.player.GunPos()
	g.world.Spawn(object.NewShot(g.field, g.sizes.Shot, x, y))
	g.player.Reload = g.cfg.ShotReload
}

// Frame returns the drawable state of the current tick.
func (g *Game) Frame() render.Frame {
	objs := g.world.Members(world.All)
	sprites := make([]render.Sprite, 0, len(objs))
	for _, obj := range objs {
		sprites = append(sprites, render.Sprite{
			Kind:  obj.Kind(),
			Rect:  obj.Bounds(),
			Frame: obj.Frame(),
		})
	}
	return render.Frame{
		Sprites:    sprites,
		Score:      g.State.Score,
		Invincible: g.player.Invincible,
		Tick:       g.State.Tick,
	}
}

// Result summarizes the game so far.
func (g *Game) Result() Result {
	return Result{Score: g.State.Score, Ticks: g.State.Tick, Quit: g.quit}
}

// Player returns the player's ship.
func (g *Game) Player() *object.Player {
	return g.player
}

// World returns the entity arena.
func (g *Game) World() *world.World {
	return g.world
}

// Field returns the play area.
func (g *Game) Field() physics.Rect {
	return g.field
}
