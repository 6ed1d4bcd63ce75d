package property

import (
	"fmt"

	"github.com/gogpu/gui"
)

// Owner is the UI element a property belongs to. The property keeps a
// non-owning reference: it is a field of its owner and never outlives it.
type Owner interface {
	// Name identifies the owner in diagnostics, e.g. "Label".
	Name() string

	// Invalidate is called after every effective change of an owned
	// property so the owner can schedule a repaint.
	Invalidate()
}

// Option configures a Property during creation.
type Option func(*options)

type options struct {
	owner    Owner
	bindable bool
}

func defaultOptions() options {
	return options{bindable: true}
}

// WithOwner attaches the property to an element. Effective changes call
// owner.Invalidate and the owner's name qualifies the property name.
func WithOwner(owner Owner) Option {
	return func(o *options) {
		o.owner = owner
	}
}

// WithBindingUpdates controls whether a Link may write into the property.
// Properties default to accepting binding updates.
func WithBindingUpdates(allowed bool) Option {
	return func(o *options) {
		o.bindable = allowed
	}
}

// Property is a typed, observable value cell.
//
// Property is not safe for concurrent use; every method must be called on
// the UI thread of its Env.
type Property[T any] struct {
	env      *gui.Env
	name     string
	owner    Owner
	value    T
	equal    func(a, b T) bool
	changed  Event[T]
	target   *Link
	bindable bool
}

// New creates a property whose values are compared with ==.
func New[T comparable](env *gui.Env, name string, initial T, opts ...Option) *Property[T] {
	return NewFunc(env, name, initial, func(a, b T) bool { return a == b }, opts...)
}

// NewFunc creates a property with a custom equality, for value types that
// are not comparable (slices, maps) or need approximate comparison.
func NewFunc[T any](env *gui.Env, name string, initial T, equal func(a, b T) bool, opts ...Option) *Property[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Property[T]{
		env:      env,
		name:     name,
		owner:    o.owner,
		value:    initial,
		equal:    equal,
		bindable: o.bindable,
	}
}

// Name returns the owner-qualified name, e.g. "Label.Text".
func (p *Property[T]) Name() string {
	if p.owner != nil {
		return p.owner.Name() + "." + p.name
	}
	return p.name
}

func (p *Property[T]) String() string {
	return "Property(" + p.Name() + ")"
}

// Get returns the current value.
func (p *Property[T]) Get() (T, error) {
	if err := p.check("Get"); err != nil {
		var zero T
		return zero, err
	}
	return p.value, nil
}

// Set stores v. When v equals the current value nothing happens. Otherwise
// subscribers are notified in subscription order, each receiving the value
// current when it is called, and the owner is invalidated.
func (p *Property[T]) Set(v T) error {
	if err := p.check("Set"); err != nil {
		return err
	}
	p.setValue(v)
	return nil
}

// Changed returns the event raised after every effective change.
// Subscribing must happen on the UI thread.
func (p *Property[T]) Changed() *Event[T] {
	return &p.changed
}

// IsBindingTarget reports whether a Link currently writes into p.
func (p *Property[T]) IsBindingTarget() bool {
	return p.target != nil
}

// BindingTarget returns the link writing into p, or nil.
func (p *Property[T]) BindingTarget() *Link {
	return p.target
}

// CanReceiveBindingUpdates reports whether a Link may write into p.
func (p *Property[T]) CanReceiveBindingUpdates() bool {
	return p.bindable
}

// Env returns the environment the property was created with.
func (p *Property[T]) Env() *gui.Env {
	return p.env
}

func (p *Property[T]) check(method string) error {
	if err := p.env.Check("Property." + method); err != nil {
		return fmt.Errorf("property %s: %w", p.Name(), err)
	}
	return nil
}

// setValue is the unchecked setter shared by Set and binding propagation.
// It reports whether the value changed.
func (p *Property[T]) setValue(v T) bool {
	if p.equal(p.value, v) {
		return false
	}
	p.value = v
	p.changed.emitCurrent(p.current)
	if p.owner != nil {
		p.owner.Invalidate()
	}
	return true
}

func (p *Property[T]) current() T { return p.value }

// endpoint implementation used by Link.

func (p *Property[T]) bindingLink() *Link { return p.target }

func (p *Property[T]) setBindingLink(l *Link) { p.target = l }

func (p *Property[T]) environment() *gui.Env { return p.env }

func (p *Property[T]) acceptsBindingUpdates() bool { return p.bindable }
