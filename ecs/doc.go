// Package ecs provides the entity/component model and the component
// lifecycle events that tie scene objects to engine systems.
//
// An Entity owns an ordered list of Components. Components are attached
// with AddComponent (or Entity.Add) and looked up either by Go type
// (GetComponent, HasComponent) or by capability (Entity.Find,
// Entity.Has). Lookups scan in insertion order and return the first match.
//
// Attaching a component publishes Scene.ComponentCreated synchronously,
// in subscription order. Subscribers must not add components to the same
// entity from inside the notification; doing so is logged as an error
// and panics in builds tagged varletdebug.
//
// Capabilities are registered by name once per process:
//
//	var CapabilityCamera = ecs.RegisterCapability("camera")
//
// Components declare them by overriding Capabilities, and the entity
// records the set when the component is attached.
package ecs
