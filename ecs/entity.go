package ecs

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/internal/assert"
)

type slot struct {
	c       Component
	caps    CapabilitySet
	started bool
}

// Entity is an identity container owning an ordered list of components.
// Create entities with Scene.CreateEntity.
type Entity struct {
	id     uuid.UUID
	name   string
	pickID uint32
	scene  *Scene
	slots  []slot

	// notifying counts creation notifications in flight for this entity.
	notifying int
}

// ID returns the entity's unique id.
func (e *Entity) ID() uuid.UUID { return e.id }

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// SetName renames the entity.
func (e *Entity) SetName(name string) { e.name = name }

// PickID returns the non-zero id written by the selection pass.
func (e *Entity) PickID() uint32 { return e.pickID }

// Scene returns the owning scene, or nil after the entity is destroyed.
func (e *Entity) Scene() *Scene { return e.scene }

// String implements fmt.Stringer.
func (e *Entity) String() string {
	return fmt.Sprintf("%s(%s)", e.name, e.id)
}

// AddComponent allocates a T, attaches it to e and returns it.
//
//	cam := ecs.AddComponent[scene.Camera](e)
func AddComponent[T any, PT interface {
	*T
	Component
}](e *Entity) PT {
	c := PT(new(T))
	e.attach(c)
	return c
}

// Add attaches a caller-constructed component.
func (e *Entity) Add(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	if c.Owner() != nil {
		return fmt.Errorf("%w: %T on %s", ErrComponentAttached, c, c.Owner())
	}
	e.attach(c)
	return nil
}

// attach appends c, runs OnConstructed, binds the owner and publishes
// the creation event.
func (e *Entity) attach(c Component) {
	if e.notifying > 0 {
		varlet.Logger().Error("component added to entity from its own creation notification",
			zap.Stringer("entity", e), zap.String("component", fmt.Sprintf("%T", c)))
		assert.That(false, "re-entrant AddComponent on %s", e)
	}

	e.slots = append(e.slots, slot{c: c, caps: c.Capabilities()})
	c.OnConstructed()
	c.setOwner(e)

	if e.scene != nil {
		e.notifying++
		defer func() { e.notifying-- }()
		e.scene.ComponentCreated.Publish(ComponentEvent{Entity: e, Component: c})
	}
}

// GetComponent returns the first component of e assignable to T, in
// insertion order. T may be a pointer type or an interface.
func GetComponent[T any](e *Entity) T {
	for _, s := range e.slots {
		if c, ok := s.c.(T); ok {
			return c
		}
	}
	var zero T
	return zero
}

// HasComponent reports whether e has a component assignable to T.
func HasComponent[T any](e *Entity) bool {
	for _, s := range e.slots {
		if _, ok := s.c.(T); ok {
			return true
		}
	}
	return false
}

// Find returns the first component whose recorded capabilities include c.
func (e *Entity) Find(c Capability) Component {
	for _, s := range e.slots {
		if s.caps.Has(c) {
			return s.c
		}
	}
	return nil
}

// Has reports whether any component of e declares capability c.
func (e *Entity) Has(c Capability) bool {
	return e.Find(c) != nil
}

// Capabilities returns the union of the component capability sets.
func (e *Entity) Capabilities() CapabilitySet {
	var set CapabilitySet
	for _, s := range e.slots {
		set |= s.caps
	}
	return set
}

// Components returns the components in insertion order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.slots))
	for i, s := range e.slots {
		out[i] = s.c
	}
	return out
}

// Len returns the number of attached components.
func (e *Entity) Len() int { return len(e.slots) }

// Remove detaches c, runs its OnDestroy hook and publishes the
// destruction event. It reports whether c was attached to e.
func (e *Entity) Remove(c Component) bool {
	i := slices.IndexFunc(e.slots, func(s slot) bool { return s.c == c })
	if i < 0 {
		return false
	}
	e.slots = slices.Delete(e.slots, i, i+1)
	e.detach(c)
	return true
}

func (e *Entity) detach(c Component) {
	if d, ok := c.(Destroyer); ok {
		d.OnDestroy()
	}
	if e.scene != nil {
		e.scene.ComponentDestroyed.Publish(ComponentEvent{Entity: e, Component: c})
	}
	c.setOwner(nil)
}

// removeAll detaches every component in reverse insertion order.
func (e *Entity) removeAll() {
	for len(e.slots) > 0 {
		last := e.slots[len(e.slots)-1].c
		e.slots = e.slots[:len(e.slots)-1]
		e.detach(last)
	}
}

// Update starts components that have not run yet, then updates them, in
// insertion order. It walks the components attached at entry: components
// removed during the walk are skipped and components added during it are
// picked up on the next call.
func (e *Entity) Update(dt float64) {
	comps := make([]Component, len(e.slots))
	for i, s := range e.slots {
		comps[i] = s.c
	}
	for _, c := range comps {
		if c.Owner() != e {
			continue
		}
		if s := e.slot(c); s != nil && !s.started {
			s.started = true
			if st, ok := c.(Starter); ok {
				st.Start()
			}
			if c.Owner() != e {
				continue
			}
		}
		if u, ok := c.(Updater); ok {
			u.Update(dt)
		}
	}
}

func (e *Entity) slot(c Component) *slot {
	for i := range e.slots {
		if e.slots[i].c == c {
			return &e.slots[i]
		}
	}
	return nil
}
