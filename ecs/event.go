package ecs

import (
	"slices"

	"github.com/google/uuid"
)

// Subscription is the handle returned by Event.Subscribe.
type Subscription struct {
	id     uuid.UUID
	active bool
	cancel func()
}

// ID returns the subscription identifier.
func (s *Subscription) ID() uuid.UUID { return s.id }

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool { return s.active }

// Cancel stops delivery. It takes effect immediately, including for the
// remaining subscribers of an in-flight Publish. Calling Cancel more than
// once is a no-op.
func (s *Subscription) Cancel() {
	if !s.active {
		return
	}
	s.active = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

type handler[T any] struct {
	sub *Subscription
	fn  func(T)
}

// Event is a synchronous publish/subscribe channel. Handlers run on the
// publishing goroutine in subscription order. Event is not safe for
// concurrent use.
type Event[T any] struct {
	handlers []handler[T]
}

// Subscribe registers fn and returns its cancellation handle.
// A subscription made while Publish is running does not receive the
// in-flight value.
func (e *Event[T]) Subscribe(fn func(T)) *Subscription {
	sub := &Subscription{id: uuid.New(), active: true}
	sub.cancel = func() {
		e.handlers = slices.DeleteFunc(e.handlers, func(h handler[T]) bool {
			return h.sub == sub
		})
	}
	e.handlers = append(e.handlers, handler[T]{sub: sub, fn: fn})
	return sub
}

// Publish delivers v to every active subscriber.
func (e *Event[T]) Publish(v T) {
	if len(e.handlers) == 0 {
		return
	}
	snapshot := slices.Clone(e.handlers)
	for _, h := range snapshot {
		if h.sub.active {
			h.fn(v)
		}
	}
}

// Len returns the number of active subscriptions.
func (e *Event[T]) Len() int {
	return len(e.handlers)
}

// Reset cancels every subscription.
func (e *Event[T]) Reset() {
	for _, h := range slices.Clone(e.handlers) {
		h.sub.Cancel()
	}
}

// ComponentEvent is the payload of the scene's component lifecycle events.
type ComponentEvent struct {
	Entity    *Entity
	Component Component
}
