package property

// Subscription is the handle returned by Event.Subscribe. Disposing it
// detaches the handler; teardown is always explicit.
type Subscription struct {
	disposed bool
	detach   func()
}

// Dispose detaches the handler. It is safe to call more than once.
func (s *Subscription) Dispose() {
	if s == nil || s.disposed {
		return
	}
	s.disposed = true
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

// Disposed reports whether Dispose has been called.
func (s *Subscription) Disposed() bool {
	return s == nil || s.disposed
}

type handler[T any] struct {
	fn  func(T)
	sub *Subscription
}

// Event is a multi-subscriber notification source.
//
// Handlers run synchronously in subscription order. A handler subscribed
// while an emission is in progress is first called on the next emission;
// a handler disposed during an emission is not called for the rest of it.
//
// The zero value is ready to use. Event is not safe for concurrent use.
type Event[T any] struct {
	handlers []*handler[T]
}

// Subscribe registers fn and returns the handle that detaches it.
func (e *Event[T]) Subscribe(fn func(T)) *Subscription {
	h := &handler[T]{fn: fn}
	h.sub = &Subscription{detach: func() { e.remove(h) }}
	e.handlers = append(e.handlers, h)
	return h.sub
}

// Len returns the number of live subscriptions.
func (e *Event[T]) Len() int {
	return len(e.handlers)
}

// Emit calls every handler with v.
func (e *Event[T]) Emit(v T) {
	for _, h := range e.handlers {
		if !h.sub.disposed {
			h.fn(v)
		}
	}
}

// emitCurrent calls every handler with the value current at the time of the
// call, so a handler that changes the source is observed by later handlers
// in the same pass.
func (e *Event[T]) emitCurrent(current func() T) {
	for _, h := range e.handlers {
		if !h.sub.disposed {
			h.fn(current())
		}
	}
}

// remove rebuilds the slice instead of editing it in place; an emission in
// progress keeps iterating its own copy.
func (e *Event[T]) remove(target *handler[T]) {
	kept := make([]*handler[T], 0, len(e.handlers))
	for _, h := range e.handlers {
		if h != target {
			kept = append(kept, h)
		}
	}
	e.handlers = kept
}
