package loop

import (
	"github.com/tomz197/aliens/internal/object"
	"github.com/tomz197/aliens/internal/physics"
	"github.com/tomz197/aliens/internal/world"
)

// checkCollisions runs the collision rules in order. An entity killed by an
// earlier rule is skipped by later ones.
func (g *Game) checkCollisions() {
	g.checkPlayerAliens()
	g.checkShotAliens()
	g.checkPlayerBombs()
	g.checkAlienFireworks()
}

// alienDown kills alien a, leaves a bomb and an explosion behind and scores.
func (g *Game) alienDown(a object.Object, bomb bool) {
	a.Kill()
	if bomb {
		g.world.Spawn(object.NewBomb(g.field, g.sizes.Bomb, a.Bounds()))
	}
	g.world.Spawn(object.NewExplosion(g.field, g.sizes.Explosion, a.Bounds()))
	g.State.Score++
}

func (g *Game) playerDown() {
	g.player.Kill()
	g.world.Spawn(object.NewExplosion(g.field, g.sizes.Explosion, g.player.Bounds()))
}

// checkPlayerAliens kills every alien touching a vulnerable player, and the player.
func (g *Game) checkPlayerAliens() {
	if !g.player.Vulnerable() {
		return
	}
	hit := false
	pr := g.player.Bounds()
	for _, a := range g.world.Members(world.Aliens) {
		if a.Alive() && a.Bounds().Intersects(pr) {
			g.alienDown(a, true)
			hit = true
		}
	}
	if hit {
		g.playerDown()
	}
}

// checkShotAliens pairs each shot with the first alien it overlaps.
func (g *Game) checkShotAliens() {
	shots := g.world.Members(world.Shots)
	if len(shots) == 0 {
		return
	}
	aliens := g.world.Members(world.Aliens)
	g.index(aliens)

	for _, s := range shots {
		if !s.Alive() {
			continue
		}
		if i := g.firstOverlap(s.Bounds(), aliens); i >= 0 {
			s.Kill()
			g.alienDown(aliens[i], true)
		}
	}
}

// checkPlayerBombs kills every bomb touching a vulnerable player, and the player.
func (g *Game) checkPlayerBombs() {
	if !g.player.Vulnerable() {
		return
	}
	hit := false
	pr := g.player.Bounds()
	for _, b := range g.world.Members(world.Bombs) {
		if b.Alive() && b.Bounds().Intersects(pr) {
			b.Kill()
			g.world.Spawn(object.NewExplosion(g.field, g.sizes.Explosion, b.Bounds()))
			hit = true
		}
	}
	if hit {
		g.playerDown()
	}
}

// checkAlienFireworks kills every alien touching a firework. Fireworks survive.
func (g *Game) checkAlienFireworks() {
	fireworks := g.world.Members(world.Fireworks)
	if len(fireworks) == 0 {
		return
	}
	g.index(fireworks)

	for _, a := range g.world.Members(world.Aliens) {
		if !a.Alive() {
			continue
		}
		if g.firstOverlap(a.Bounds(), fireworks) >= 0 {
			g.alienDown(a, false)
		}
	}
}

// index rebuilds the broad-phase grid from objs; grid indexes are positions in objs.
func (g *Game) index(objs []object.Object) {
	g.grid.Clear()
	for i, obj := range objs {
		g.grid.Insert(obj.Bounds(), i)
	}
}

// firstOverlap returns the lowest index of a live entry of objs overlapping
// r, or -1. objs must be the slice last passed to index.
func (g *Game) firstOverlap(r physics.Rect, objs []object.Object) int {
	best := -1
	g.grid.Query(r, func(i int) bool {
		if (best < 0 || i < best) && objs[i].Alive() && objs[i].Bounds().Intersects(r) {
			best = i
		}
		return false
	})
	return best
}
