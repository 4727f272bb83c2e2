package ecs

import (
	"slices"

	"github.com/google/uuid"
)

// Scene owns a set of entities and the component lifecycle events that
// systems subscribe to.
//
// A Scene is driven from a single goroutine; it has no internal locking.
type Scene struct {
	// ComponentCreated fires after a component is attached and its owner bound.
	ComponentCreated Event[ComponentEvent]

	// ComponentDestroyed fires after a component's OnDestroy hook, before
	// its owner reference is cleared.
	ComponentDestroyed Event[ComponentEvent]

	entities []*Entity
	byID     map[uuid.UUID]*Entity
	byPick   map[uint32]*Entity
	nextPick uint32
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		byID:   make(map[uuid.UUID]*Entity),
		byPick: make(map[uint32]*Entity),
	}
}

// CreateEntity adds a new, empty entity.
func (s *Scene) CreateEntity(name string) *Entity {
	s.nextPick++
	e := &Entity{
		id:     uuid.New(),
		name:   name,
		pickID: s.nextPick,
		scene:  s,
	}
	s.entities = append(s.entities, e)
	s.byID[e.id] = e
	s.byPick[e.pickID] = e
	return e
}

// DestroyEntity removes e's components in reverse insertion order and
// drops e from the scene. It reports whether e belonged to s.
func (s *Scene) DestroyEntity(e *Entity) bool {
	if e == nil || e.scene != s {
		return false
	}
	e.removeAll()
	s.entities = slices.DeleteFunc(s.entities, func(x *Entity) bool { return x == e })
	delete(s.byID, e.id)
	delete(s.byPick, e.pickID)
	e.scene = nil
	return true
}

// Entity returns the entity with the given id, or nil.
func (s *Scene) Entity(id uuid.UUID) *Entity {
	return s.byID[id]
}

// EntityByPickID returns the entity with the given pick id, or nil.
// Pick id 0 is the background.
func (s *Scene) EntityByPickID(id uint32) *Entity {
	return s.byPick[id]
}

// Entities returns the entities in creation order.
func (s *Scene) Entities() []*Entity {
	return slices.Clone(s.entities)
}

// Len returns the number of entities.
func (s *Scene) Len() int { return len(s.entities) }

// Update ticks every entity in creation order.
func (s *Scene) Update(dt float64) {
	for _, e := range slices.Clone(s.entities) {
		if e.scene == s {
			e.Update(dt)
		}
	}
}

// Clear destroys every entity, newest first. Subscriptions are kept.
func (s *Scene) Clear() {
	for len(s.entities) > 0 {
		s.DestroyEntity(s.entities[len(s.entities)-1])
	}
}
