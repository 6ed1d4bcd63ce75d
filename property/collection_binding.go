package property

import (
	"fmt"

	"github.com/gogpu/gui"
)

// CollectionLink keeps two collections element-for-element synchronized.
type CollectionLink struct {
	source      string
	destination string
	direction   Direction
	env         *gui.Env
	subs        []*Subscription
	active      bool

	// mirroring is set while the link copies an edit, so the copy is not
	// propagated back by this link. Other links still see it, which keeps
	// chains of links working and stops cycles at the link that started.
	mirroring bool

	// release undoes the target marks and read-only restrictions.
	release func()
}

// BindCollections binds src and dst.
//
// The receiving side (dst for SourceToDestination and TwoWays, src for
// DestinationToSource) must be empty and not already bound; it is filled
// with the converted elements of the authoritative side. For the one-way
// directions the receiving side becomes read-only until the link is
// disposed. Inserts and removals on a propagating side are mirrored at the
// same index through the converter, and keep flowing through other links
// bound to the receiving side.
func BindCollections[S, D any](src *Collection[S], dst *Collection[D], dir Direction, conv Converter[S, D]) (*CollectionLink, error) {
	l := &CollectionLink{
		source:      src.name,
		destination: dst.name,
		direction:   dir,
		env:         src.env,
	}
	if err := src.env.Check("property.BindCollections"); err != nil {
		return nil, fmt.Errorf("%s: %w", l.String(), err)
	}
	if dst.env != src.env {
		if err := dst.env.Check("property.BindCollections"); err != nil {
			return nil, fmt.Errorf("%s: %w", l.String(), err)
		}
	}

	fail := func(endpoint string, err error) error {
		return &BindingError{
			Source:      src.name,
			Destination: dst.name,
			Direction:   dir,
			Endpoint:    endpoint,
			Err:         err,
		}
	}
	switch {
	case !dir.Valid():
		return nil, fail("", ErrInvalidDirection)
	case any(src) == any(dst):
		return nil, fail(src.name, ErrSelfBinding)
	case !conv.supports(dir):
		return nil, fail("", ErrMissingConverter)
	}
	if dir.Has(SourceToDestination) {
		if dst.target != nil {
			be := fail(dst.name, ErrAlreadyBound).(*BindingError)
			be.Existing = dst.target.String()
			return nil, be
		}
		if len(dst.items) != 0 {
			return nil, fail(dst.name, ErrNotEmpty)
		}
	}
	if dir.Has(DestinationToSource) {
		if src.target != nil {
			be := fail(src.name, ErrAlreadyBound).(*BindingError)
			be.Existing = src.target.String()
			return nil, be
		}
		if dir == DestinationToSource && len(src.items) != 0 {
			return nil, fail(src.name, ErrNotEmpty)
		}
	}

	switch dir {
	case SourceToDestination:
		dst.target, dst.readOnly = l, true
	case DestinationToSource:
		src.target, src.readOnly = l, true
	case TwoWays:
		src.target, dst.target = l, l
	}
	l.release = func() {
		if src.target == l {
			src.target, src.readOnly = nil, false
		}
		if dst.target == l {
			dst.target, dst.readOnly = nil, false
		}
	}
	l.active = true

	if dir.Has(SourceToDestination) {
		l.subs = append(l.subs,
			src.inserted.Subscribe(func(c Change[S]) {
				l.mirror(func() { dst.insert(c.Index, conv.Forward(c.Value)) })
			}),
			src.removed.Subscribe(func(c Change[S]) {
				l.mirror(func() { dst.removeAt(c.Index) })
			}),
		)
	}
	if dir.Has(DestinationToSource) {
		l.subs = append(l.subs,
			dst.inserted.Subscribe(func(c Change[D]) {
				l.mirror(func() { src.insert(c.Index, conv.Backward(c.Value)) })
			}),
			dst.removed.Subscribe(func(c Change[D]) {
				l.mirror(func() { src.removeAt(c.Index) })
			}),
		)
	}

	if dir.Has(SourceToDestination) {
		l.mirror(func() { fill(dst, src.items, conv.Forward) })
	} else {
		l.mirror(func() { fill(src, dst.items, conv.Backward) })
	}

	gui.Logger().Debug("property: collections bound", "link", l.String(), "items", len(src.items))
	return l, nil
}

// Dispose removes the link's subscriptions and lifts the read-only
// restriction on the receiving collection. Disposing twice is a no-op.
func (l *CollectionLink) Dispose() error {
	if err := l.env.Check("CollectionLink.Dispose"); err != nil {
		return fmt.Errorf("%s: %w", l.String(), err)
	}
	if !l.active {
		return nil
	}
	for _, s := range l.subs {
		s.Dispose()
	}
	l.subs = nil
	l.release()
	l.active = false
	gui.Logger().Debug("property: collections unbound", "link", l.String())
	return nil
}

// Active reports whether the link is still bound.
func (l *CollectionLink) Active() bool {
	return l.active
}

// Direction returns the propagation direction.
func (l *CollectionLink) Direction() Direction {
	return l.direction
}

func (l *CollectionLink) String() string {
	return fmt.Sprintf("%s -> %s (%s)", l.source, l.destination, l.direction)
}

// mirror runs edit unless the link is already copying an edit.
func (l *CollectionLink) mirror(edit func()) {
	if !l.active || l.mirroring {
		return
	}
	l.mirroring = true
	defer func() { l.mirroring = false }()
	edit()
}

// fill appends the converted items to the empty collection dst.
func fill[S, D any](dst *Collection[D], items []S, convert func(S) D) {
	// Iterate over a copy; an Inserted handler may edit the source.
	snapshot := append([]S(nil), items...)
	for _, v := range snapshot {
		dst.insert(len(dst.items), convert(v))
	}
}
