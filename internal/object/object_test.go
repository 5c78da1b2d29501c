package object

import (
	"testing"

	"github.com/tomz197/aliens/internal/physics"
)

var field = physics.NewRect(0, 0, 640, 480)

type spawnRecorder struct {
	spawned []Object
}

func (s *spawnRecorder) Spawn(obj Object) {
	s.spawned = append(s.spawned, obj)
}

func ctxAt(tick uint64) UpdateContext {
	return UpdateContext{Tick: tick, Field: field}
}

func TestPlayerStartsAtMidBottom(t *testing.T) {
	sizes := DefaultSizes()
	p := NewPlayer(field, sizes.Player)

	x, y := p.Bounds().MidBottom()
	if x != 320 || y != 480 {
		t.Errorf("MidBottom = (%d, %d), want (320, 480)", x, y)
	}
	if !p.Alive() || p.Invincible || p.Reload != 0 {
		t.Errorf("unexpected initial state: %+v", p)
	}
}

func TestPlayerMoveClampsAndFaces(t *testing.T) {
	p := NewPlayer(field, DefaultSizes().Player)
	ctx := ctxAt(0)

	ctx.Input.Direction = 1
	for i := 0; i < 100; i++ {
		p.Update(ctx)
	}
	if p.Bounds().Right() != field.Right() {
		t.Errorf("right edge = %d, want %d", p.Bounds().Right(), field.Right())
	}
	if p.Facing != 1 || p.Frame() != 0 {
		t.Errorf("facing right: Facing=%d Frame=%d", p.Facing, p.Frame())
	}

	ctx.Input.Direction = -1
	for i := 0; i < 100; i++ {
		p.Update(ctx)
	}
	if p.Bounds().X != 0 {
		t.Errorf("left edge = %d, want 0", p.Bounds().X)
	}
	if p.Facing != -1 || p.Frame() != 1 {
		t.Errorf("facing left: Facing=%d Frame=%d", p.Facing, p.Frame())
	}
}

func TestPlayerGunPos(t *testing.T) {
	p := NewPlayer(field, DefaultSizes().Player)
	cx, _ := p.Bounds().Center()

	p.Facing = 1
	if x, y := p.GunPos(); x != cx+PlayerGunOffset || y != p.Bounds().Y {
		t.Errorf("facing right GunPos = (%d, %d)", x, y)
	}
	p.Facing = -1
	if x, _ := p.GunPos(); x != cx-PlayerGunOffset {
		t.Errorf("facing left GunPos x = %d, want %d", x, cx-PlayerGunOffset)
	}
}

func TestPlayerReloadCountsDown(t *testing.T) {
	p := NewPlayer(field, DefaultSizes().Player)
	p.Reload = 2

	p.Update(ctxAt(0))
	if p.CanFire() {
		t.Fatal("should still be reloading")
	}
	p.Update(ctxAt(1))
	if !p.CanFire() {
		t.Fatal("should have reloaded")
	}
	p.Update(ctxAt(2))
	if p.Reload != 0 {
		t.Errorf("reload went below zero: %d", p.Reload)
	}
}

func TestPlayerInvincibilityWindow(t *testing.T) {
	p := NewPlayer(field, DefaultSizes().Player)
	const start, duration = 10, 400

	p.ActivateInvincibility(start, duration)
	for tick := uint64(start); tick < start+duration; tick++ {
		p.Update(ctxAt(tick))
		if p.Vulnerable() {
			t.Fatalf("vulnerable at tick %d inside window", tick)
		}
	}

	p.Update(ctxAt(start + duration))
	if p.Invincible || !p.Vulnerable() {
		t.Errorf("invincibility should clear at tick %d", start+duration)
	}
}

func TestAlienReversesAtRightEdge(t *testing.T) {
	size := DefaultSizes().Alien
	a := NewAlien(field, size, 0, 1)
	if a.Bounds().X != 0 || a.VX != AlienSpeed {
		t.Fatalf("unexpected start: %+v", a.Bounds())
	}

	// (640-80)/13 = 43.08, so the 44th move crosses the edge.
	want := (field.W - size.W + AlienSpeed - 1) / AlienSpeed
	for i := 1; i < want; i++ {
		a.Update(ctxAt(uint64(i)))
		if a.VX != AlienSpeed || a.Bounds().Y != 0 {
			t.Fatalf("reversed early at tick %d: %+v vx=%d", i, a.Bounds(), a.VX)
		}
	}

	a.Update(ctxAt(uint64(want)))
	if a.VX != -AlienSpeed {
		t.Errorf("VX = %d after %d ticks, want %d", a.VX, want, -AlienSpeed)
	}
	if a.Bounds().Y != size.H+1 {
		t.Errorf("Y = %d, want %d (one row down)", a.Bounds().Y, size.H+1)
	}
	if a.Bounds().Right() != field.Right() {
		t.Errorf("alien not clamped to right edge: %+v", a.Bounds())
	}
}

func TestAlienMovingLeftFromEdgeReversesImmediately(t *testing.T) {
	a := NewAlien(field, DefaultSizes().Alien, 0, -1)
	a.Update(ctxAt(0))

	if a.VX != AlienSpeed {
		t.Errorf("VX = %d, want %d", a.VX, AlienSpeed)
	}
	if !field.Contains(a.Bounds()) {
		t.Errorf("alien left the field: %+v", a.Bounds())
	}
}

func TestAlienBandAndAnimation(t *testing.T) {
	size := DefaultSizes().Alien
	a := NewAlien(field, size, 2, 1)
	if a.Bounds().Y != 2*size.H {
		t.Errorf("band 2 top = %d, want %d", a.Bounds().Y, 2*size.H)
	}

	frames := map[int]int{}
	for i := 0; i < AlienAnimCycle*AlienFrames; i++ {
		frames[a.Frame()]++
		a.Update(ctxAt(uint64(i)))
	}
	for f := 0; f < AlienFrames; f++ {
		if frames[f] != AlienAnimCycle {
			t.Errorf("frame %d shown %d ticks, want %d", f, frames[f], AlienAnimCycle)
		}
	}
	if a.Frame() != 0 {
		t.Errorf("animation should wrap to frame 0, got %d", a.Frame())
	}
}

func TestShotDiesWhenTopReachesZero(t *testing.T) {
	p := NewPlayer(field, DefaultSizes().Player)
	x, y := p.GunPos()
	s := NewShot(field, DefaultSizes().Shot, x, y)

	for tick := 0; s.Alive(); tick++ {
		prevTop := s.Bounds().Y
		s.Update(ctxAt(uint64(tick)))
		if s.Bounds().Y != prevTop+ShotSpeed {
			t.Fatalf("shot moved %d, want %d", s.Bounds().Y-prevTop, ShotSpeed)
		}
		if s.Alive() && s.Bounds().Y <= 0 {
			t.Fatalf("shot alive with top %d", s.Bounds().Y)
		}
		if !s.Alive() && s.Bounds().Y > 0 {
			t.Fatalf("shot died early with top %d", s.Bounds().Y)
		}
		if tick > 100 {
			t.Fatal("shot never died")
		}
	}
}

func TestBombFallsAndDiesAtBottom(t *testing.T) {
	alienRect := physics.NewRect(100, 100, 80, 40)
	b := NewBomb(field, DefaultSizes().Bomb, alienRect)

	bx, by := b.Bounds().MidTop()
	ax, ay := alienRect.MidBottom()
	if bx != ax || by != ay {
		t.Errorf("bomb mid-top (%d, %d), want alien mid-bottom (%d, %d)", bx, by, ax, ay)
	}

	ticks := 0
	for b.Alive() {
		b.Update(ctxAt(uint64(ticks)))
		ticks++
		if b.Alive() && b.Bounds().Bottom() >= field.Bottom() {
			t.Fatalf("bomb alive at bottom %d", b.Bounds().Bottom())
		}
		if ticks > 100 {
			t.Fatal("bomb never died")
		}
	}
}

func TestBombFromBottomRowIsClamped(t *testing.T) {
	alienRect := physics.NewRect(0, 440, 80, 40)
	b := NewBomb(field, DefaultSizes().Bomb, alienRect)

	if !field.Contains(b.Bounds()) {
		t.Fatalf("bomb spawned outside field: %+v", b.Bounds())
	}
	b.Update(ctxAt(0))
	if b.Alive() {
		t.Error("bomb at the bottom should die on its first update")
	}
}

func TestExplosionLifetime(t *testing.T) {
	at := physics.NewRect(300, 200, 80, 40)
	e := NewExplosion(field, DefaultSizes().Explosion, at)

	ex, ey := e.Bounds().Center()
	ax, ay := at.Center()
	if ex != ax || ey != ay {
		t.Errorf("explosion center (%d, %d), want (%d, %d)", ex, ey, ax, ay)
	}

	frames := map[int]bool{}
	ticks := 0
	for e.Alive() {
		frames[e.Frame()] = true
		e.Update(ctxAt(uint64(ticks)))
		ticks++
	}
	if ticks != ExplosionLife {
		t.Errorf("explosion lived %d ticks, want %d", ticks, ExplosionLife)
	}
	if len(frames) != ExplosionFrames {
		t.Errorf("saw %d frames, want %d", len(frames), ExplosionFrames)
	}
}

func TestExplosionClampedAtCorner(t *testing.T) {
	e := NewExplosion(field, DefaultSizes().Explosion, physics.NewRect(0, 0, 8, 8))
	if e.Bounds().X < 0 || e.Bounds().Y < 0 {
		t.Errorf("explosion has negative coordinates: %+v", e.Bounds())
	}
}

func TestFireworkBurstsAtTop(t *testing.T) {
	sizes := DefaultSizes()
	rec := &spawnRecorder{}
	f := NewFirework(field, sizes.Firework, sizes.Explosion, 200)

	if f.Bounds().Bottom() != field.Bottom() {
		t.Fatalf("firework bottom = %d, want %d", f.Bounds().Bottom(), field.Bottom())
	}

	ctx := ctxAt(0)
	ctx.Spawner = rec
	ticks := 0
	for f.Alive() {
		f.Update(ctx)
		ticks++
		if ticks > 100 {
			t.Fatal("firework never burst")
		}
	}

	if f.Bounds().Y > 0 {
		t.Errorf("firework died with top %d", f.Bounds().Y)
	}
	if len(rec.spawned) != 1 || rec.spawned[0].Kind() != KindExplosion {
		t.Fatalf("spawned %v, want one explosion", rec.spawned)
	}
	if rec.spawned[0].Bounds().Y < 0 {
		t.Errorf("burst explosion not clamped: %+v", rec.spawned[0].Bounds())
	}
}

func TestKindString(t *testing.T) {
	for _, k := range Kinds() {
		if k.String() == "unknown" {
			t.Errorf("kind %d has no name", int(k))
		}
	}
	if len(Kinds()) != 6 {
		t.Errorf("Kinds() = %d kinds, want 6", len(Kinds()))
	}
}
