// Package world holds the live entities of a game and the named groups they
// belong to.
package world

import (
	"fmt"

	"github.com/tomz197/aliens/internal/object"
)

// Group names a set of entities.
type Group string

// Entity groups. Every entity is in All; LastAlien holds at most the most
// recently added alien.
const (
	All       Group = "all"
	Aliens    Group = "aliens"
	Shots     Group = "shots"
	Bombs     Group = "bombs"
	Fireworks Group = "fireworks"
	LastAlien Group = "lastAlien"
)

// ID is a stable entity handle, unique for the lifetime of a World.
type ID uint64

// groupsOf returns the multi-member groups an entity of kind k joins.
func groupsOf(k object.Kind) []Group {
	switch k {
	case object.KindAlien:
		return []Group{All, Aliens}
	case object.KindShot:
		return []Group{All, Shots}
	case object.KindBomb:
		return []Group{All, Bombs}
	case object.KindFirework:
		return []Group{All, Fireworks}
	default:
		return []Group{All}
	}
}

// World is the entity arena. Group membership is kept in insertion order,
// which is the order collisions are resolved in.
type World struct {
	next      ID
	objects   map[ID]object.Object
	groups    map[Group][]ID
	lastAlien ID
	player    ID

	onSpawn func(obj object.Object)
}

// New creates an empty world.
func New() *World {
	w := &World{}
	w.Reset()
	return w
}

// Reset removes every entity. IDs are not reused.
func (w *World) Reset() {
	w.objects = make(map[ID]object.Object)
	w.groups = make(map[Group][]ID)
	w.lastAlien = 0
	w.player = 0
}

// OnSpawn registers fn to be called for every entity added to the world.
func (w *World) OnSpawn(fn func(obj object.Object)) {
	w.onSpawn = fn
}

// Add inserts obj into All and its kind's groups and returns its ID.
// Adding a second live player panics.
func (w *World) Add(obj object.Object) ID {
	if obj.Kind() == object.KindPlayer {
		if cur, ok := w.objects[w.player]; ok && cur.Alive() {
			panic(fmt.Sprintf("world: second live player added (existing id %d)", w.player))
		}
	}

	w.next++
	id := w.next
	w.objects[id] = obj
	for _, g := range groupsOf(obj.Kind()) {
		w.groups[g] = append(w.groups[g], id)
	}

	switch obj.Kind() {
	case object.KindAlien:
		w.lastAlien = id
	case object.KindPlayer:
		w.player = id
	}

	if w.onSpawn != nil {
		w.onSpawn(obj)
	}
	return id
}

// Spawn adds obj. It implements object.Spawner.
func (w *World) Spawn(obj object.Object) {
	w.Add(obj)
}

// Get returns the entity with the given ID, dead or alive, until it is pruned.
func (w *World) Get(id ID) (object.Object, bool) {
	obj, ok := w.objects[id]
	return obj, ok
}

// IDs returns a copy of the IDs in group g.
func (w *World) IDs(g Group) []ID {
	if g == LastAlien {
		if _, ok := w.Get(w.lastAlien); ok {
			return []ID{w.lastAlien}
		}
		return nil
	}
	ids := w.groups[g]
	out := make([]ID, len(ids))
	copy(out, ids)
	return out
}

// Members returns the live entities of group g in insertion order.
func (w *World) Members(g Group) []object.Object {
	ids := w.IDs(g)
	out := make([]object.Object, 0, len(ids))
	for _, id := range ids {
		if obj := w.objects[id]; obj.Alive() {
			out = append(out, obj)
		}
	}
	return out
}

// Count returns the number of live entities in group g.
func (w *World) Count(g Group) int {
	n := 0
	for _, id := range w.IDs(g) {
		if w.objects[id].Alive() {
			n++
		}
	}
	return n
}

// LastAlien returns the most recently added alien, or nil once it has been
// pruned. The returned alien may be dead if Prune has not run yet.
func (w *World) LastAlien() object.Object {
	obj, ok := w.Get(w.lastAlien)
	if !ok {
		return nil
	}
	return obj
}

// Len returns the number of entities held, including dead ones not yet pruned.
func (w *World) Len() int {
	return len(w.objects)
}

// Prune removes dead entities from every group and returns how many were
// removed.
func (w *World) Prune() int {
	removed := 0
	for id, obj := range w.objects {
		if !obj.Alive() {
			delete(w.objects, id)
			removed++
		}
	}
	if removed == 0 {
		return 0
	}

	// Compact in place, preserving order.
	for g, ids := range w.groups {
		n := 0
		for _, id := range ids {
			if _, ok := w.objects[id]; ok {
				ids[n] = id
				n++
			}
		}
		clear(ids[n:])
		w.groups[g] = ids[:n]
	}
	return removed
}
