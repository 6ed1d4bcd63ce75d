package property

import (
	"fmt"

	"github.com/gogpu/gui"
)

// endpoint is the type-erased view of a bindable object.
type endpoint interface {
	Name() string
	bindingLink() *Link
	setBindingLink(*Link)
	environment() *gui.Env
	acceptsBindingUpdates() bool
}

// BindOption configures Bind and BindSame.
type BindOption func(*bindOptions)

type bindOptions struct {
	replace bool
}

// WithReplace lets the new link supersede a link that already drives one of
// its target endpoints. The old link is fully torn down before the new one
// subscribes, so there is never more than one writer.
func WithReplace() BindOption {
	return func(o *bindOptions) {
		o.replace = true
	}
}

// Link is an active binding between two properties.
//
// A Link does not own its endpoints. It must be unbound before either
// endpoint's owner is discarded.
type Link struct {
	source      endpoint
	destination endpoint
	direction   Direction
	subs        []*Subscription
	active      bool

	// toDst and toSrc write the other endpoint's current value through the
	// converter and report whether a subscriber coerced it.
	toDst func() bool
	toSrc func() bool

	// forwarding and backwarding are set while the link writes in that
	// direction; the opposite handler ignores the echo.
	forwarding  bool
	backwarding bool
}

// maxSettle bounds the corrections exchanged after a coerced write, so
// converters that never round-trip still terminate.
const maxSettle = 4

// Bind creates a link between src and dst.
//
// The target endpoints are dst for SourceToDestination, src for
// DestinationToSource and both for TwoWays. Every target must accept
// binding updates and must not already be driven by another link (unless
// WithReplace is given). On success the targets are marked, the link
// subscribes to the relevant change events, and one synchronization pass
// runs immediately: source into destination for SourceToDestination and
// TwoWays, destination into source for DestinationToSource.
//
// On failure Bind returns a *BindingError and changes nothing.
func Bind[S, D any](src *Property[S], dst *Property[D], dir Direction, conv Converter[S, D], opts ...BindOption) (*Link, error) {
	var o bindOptions
	for _, opt := range opts {
		opt(&o)
	}

	l := &Link{
		source:      src,
		destination: dst,
		direction:   dir,
		toDst:       func() bool { return store(dst, conv.Forward(src.value)) },
		toSrc:       func() bool { return store(src, conv.Backward(dst.value)) },
	}
	if err := l.checkThread("property.Bind"); err != nil {
		return nil, err
	}
	if err := l.validate(any(src) == any(dst), conv.supports(dir), o.replace); err != nil {
		return nil, err
	}

	if o.replace {
		for _, t := range l.targets() {
			if old := t.bindingLink(); old != nil {
				old.teardown()
			}
		}
	}
	for _, t := range l.targets() {
		t.setBindingLink(l)
	}
	l.active = true

	if dir.Has(SourceToDestination) {
		l.subs = append(l.subs, src.changed.Subscribe(func(S) { l.forward() }))
	}
	if dir.Has(DestinationToSource) {
		l.subs = append(l.subs, dst.changed.Subscribe(func(D) { l.backward() }))
	}

	if dir.Has(SourceToDestination) {
		l.forward()
	} else {
		l.backward()
	}

	gui.Logger().Debug("property: bound", "link", l.String())
	return l, nil
}

// BindSame binds two properties of the same type with the identity converter.
func BindSame[T any](src, dst *Property[T], dir Direction, opts ...BindOption) (*Link, error) {
	return Bind(src, dst, dir, Identity[T](), opts...)
}

// Unbind removes the link's subscriptions and clears the binding-target
// mark of its target endpoints. Unbinding an inactive link is a no-op.
func (l *Link) Unbind() error {
	if err := l.checkThread("Link.Unbind"); err != nil {
		return err
	}
	if l.active {
		l.teardown()
		gui.Logger().Debug("property: unbound", "link", l.String())
	}
	return nil
}

// Active reports whether the link is still bound.
func (l *Link) Active() bool {
	return l.active
}

// Direction returns the propagation direction.
func (l *Link) Direction() Direction {
	return l.direction
}

// String describes the link, e.g. "Label.Text -> Text (DestinationToSource)".
func (l *Link) String() string {
	return fmt.Sprintf("%s -> %s (%s)", l.source.Name(), l.destination.Name(), l.direction)
}

func (l *Link) targets() []endpoint {
	switch l.direction {
	case SourceToDestination:
		return []endpoint{l.destination}
	case DestinationToSource:
		return []endpoint{l.source}
	case TwoWays:
		return []endpoint{l.source, l.destination}
	}
	return nil
}

func (l *Link) checkThread(op string) error {
	if err := l.source.environment().Check(op); err != nil {
		return fmt.Errorf("%s: %w", l.String(), err)
	}
	if l.destination.environment() != l.source.environment() {
		if err := l.destination.environment().Check(op); err != nil {
			return fmt.Errorf("%s: %w", l.String(), err)
		}
	}
	return nil
}

func (l *Link) validate(self, convOK, replace bool) error {
	fail := func(ep endpoint, err error) *BindingError {
		be := &BindingError{
			Source:      l.source.Name(),
			Destination: l.destination.Name(),
			Direction:   l.direction,
			Err:         err,
		}
		if ep != nil {
			be.Endpoint = ep.Name()
		}
		return be
	}

	if !l.direction.Valid() {
		return fail(nil, ErrInvalidDirection)
	}
	if self {
		return fail(l.source, ErrSelfBinding)
	}
	if !convOK {
		return fail(nil, ErrMissingConverter)
	}
	for _, t := range l.targets() {
		if !t.acceptsBindingUpdates() {
			return fail(t, ErrBindingRefused)
		}
		if existing := t.bindingLink(); existing != nil && !replace {
			be := fail(t, ErrAlreadyBound)
			be.Existing = existing.String()
			return be
		}
	}
	return nil
}

// forward writes the source into the destination. The destination's echo
// is ignored, but a value one of its subscribers coerced during the write
// is sent back to the source on a TwoWays link.
func (l *Link) forward() {
	if !l.active || l.backwarding {
		return
	}
	prev := l.forwarding
	l.forwarding = true
	coerced := l.toDst()
	l.forwarding = prev
	if coerced && !prev && l.direction == TwoWays {
		l.settle(true)
	}
}

func (l *Link) backward() {
	if !l.active || l.forwarding {
		return
	}
	prev := l.backwarding
	l.backwarding = true
	coerced := l.toSrc()
	l.backwarding = prev
	if coerced && !prev && l.direction == TwoWays {
		l.settle(false)
	}
}

// settle alternates writes, starting towards the source when reverse is
// set, until a write sticks or maxSettle writes have been made.
func (l *Link) settle(reverse bool) {
	for i := 0; i < maxSettle && l.active; i++ {
		var coerced bool
		if reverse {
			l.backwarding = true
			coerced = l.toSrc()
			l.backwarding = false
		} else {
			l.forwarding = true
			coerced = l.toDst()
			l.forwarding = false
		}
		if !coerced {
			return
		}
		reverse = !reverse
	}
}

// store writes v into p and reports whether a subscriber of p replaced it
// with a different value before the write returned.
func store[T any](p *Property[T], v T) bool {
	p.setValue(v)
	return !p.equal(p.value, v)
}

func (l *Link) teardown() {
	for _, s := range l.subs {
		s.Dispose()
	}
	l.subs = nil
	for _, t := range l.targets() {
		if t.bindingLink() == l {
			t.setBindingLink(nil)
		}
	}
	l.active = false
}
