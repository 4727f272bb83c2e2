package ecs

import "errors"

var (
	// ErrComponentAttached is returned by Entity.Add for a component that
	// already belongs to an entity.
	ErrComponentAttached = errors.New("ecs: component already attached")

	// ErrNilComponent is returned by Entity.Add for a nil component.
	ErrNilComponent = errors.New("ecs: nil component")

	// ErrTooManyCapabilities is returned when more than MaxCapabilities
	// names are registered.
	ErrTooManyCapabilities = errors.New("ecs: too many capabilities")
)
