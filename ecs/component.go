package ecs

// Component is a unit of data or behavior attached to exactly one Entity.
//
// Concrete components embed Base, which supplies the owner
// back-reference and no-op hooks, and override Capabilities to declare
// the roles they fulfil:
//
//	type Camera struct {
//		ecs.Base
//		active bool
//	}
//
//	func (*Camera) Capabilities() ecs.CapabilitySet {
//		return render.CapabilityCamera.Set()
//	}
type Component interface {
	// Owner returns the entity the component is attached to, or nil
	// before attachment and after removal.
	Owner() *Entity

	// Capabilities returns the roles the component fulfils. The entity
	// records the set once, at attach time.
	Capabilities() CapabilitySet

	// OnConstructed runs after the component joins its entity's list and
	// before the owner is bound.
	OnConstructed()

	setOwner(e *Entity)
}

// Starter is implemented by components that run setup once before their
// first Update.
type Starter interface {
	Start()
}

// Updater is implemented by components with per-tick behavior.
type Updater interface {
	Update(dt float64)
}

// Destroyer is implemented by components that release resources when
// they are removed from their entity.
type Destroyer interface {
	OnDestroy()
}

// Base is embedded by every component.
type Base struct {
	owner *Entity
}

// Owner returns the owning entity. The reference does not keep the
// entity alive in its scene.
func (b *Base) Owner() *Entity { return b.owner }

// Capabilities returns the empty set.
func (b *Base) Capabilities() CapabilitySet { return 0 }

// OnConstructed does nothing.
func (b *Base) OnConstructed() {}

func (b *Base) setOwner(e *Entity) { b.owner = e }
