package property

import (
	"fmt"

	"github.com/gogpu/gui"
)

// Change describes one structural edit of a Collection.
type Change[T any] struct {
	Index int
	Value T
}

// Collection is an ordered, observable list.
//
// While a collection is the receiving side of a one-way CollectionLink it
// is read-only: Insert, Append, RemoveAt and Clear fail with ErrReadOnly.
type Collection[T any] struct {
	env      *gui.Env
	name     string
	items    []T
	inserted Event[Change[T]]
	removed  Event[Change[T]]

	target   *CollectionLink
	readOnly bool
}

// NewCollection creates a collection holding a copy of items.
func NewCollection[T any](env *gui.Env, name string, items ...T) *Collection[T] {
	return &Collection[T]{
		env:   env,
		name:  name,
		items: append([]T(nil), items...),
	}
}

// Name returns the collection name used in diagnostics.
func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) String() string {
	return "Collection(" + c.name + ")"
}

// Len returns the number of elements.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// At returns the element at index i.
func (c *Collection[T]) At(i int) (T, error) {
	var zero T
	if err := c.check("At"); err != nil {
		return zero, err
	}
	if i < 0 || i >= len(c.items) {
		return zero, c.rangeError(i)
	}
	return c.items[i], nil
}

// Items returns a copy of the elements.
func (c *Collection[T]) Items() ([]T, error) {
	if err := c.check("Items"); err != nil {
		return nil, err
	}
	return append([]T(nil), c.items...), nil
}

// Insert places v at index i, shifting later elements, and raises Inserted.
// i may equal Len to append.
func (c *Collection[T]) Insert(i int, v T) error {
	if err := c.checkWritable("Insert"); err != nil {
		return err
	}
	if i < 0 || i > len(c.items) {
		return c.rangeError(i)
	}
	c.insert(i, v)
	return nil
}

// Append adds v at the end.
func (c *Collection[T]) Append(v T) error {
	if err := c.checkWritable("Append"); err != nil {
		return err
	}
	c.insert(len(c.items), v)
	return nil
}

// RemoveAt deletes the element at index i and raises Removed.
func (c *Collection[T]) RemoveAt(i int) error {
	if err := c.checkWritable("RemoveAt"); err != nil {
		return err
	}
	if i < 0 || i >= len(c.items) {
		return c.rangeError(i)
	}
	c.removeAt(i)
	return nil
}

// Clear removes every element, last to first, raising Removed for each.
func (c *Collection[T]) Clear() error {
	if err := c.checkWritable("Clear"); err != nil {
		return err
	}
	for i := len(c.items) - 1; i >= 0; i-- {
		c.removeAt(i)
	}
	return nil
}

// Inserted returns the event raised after every insertion.
func (c *Collection[T]) Inserted() *Event[Change[T]] {
	return &c.inserted
}

// Removed returns the event raised after every removal. The change carries
// the removed value.
func (c *Collection[T]) Removed() *Event[Change[T]] {
	return &c.removed
}

// ReadOnly reports whether direct edits are currently rejected.
func (c *Collection[T]) ReadOnly() bool {
	return c.readOnly
}

// IsBindingTarget reports whether a CollectionLink writes into c.
func (c *Collection[T]) IsBindingTarget() bool {
	return c.target != nil
}

func (c *Collection[T]) check(method string) error {
	if err := c.env.Check("Collection." + method); err != nil {
		return fmt.Errorf("collection %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) checkWritable(method string) error {
	if err := c.check(method); err != nil {
		return err
	}
	if c.readOnly {
		return fmt.Errorf("collection %s: %s: %w", c.name, method, ErrReadOnly)
	}
	return nil
}

func (c *Collection[T]) rangeError(i int) error {
	return fmt.Errorf("collection %s: index %d (len %d): %w", c.name, i, len(c.items), ErrIndexOutOfRange)
}

func (c *Collection[T]) insert(i int, v T) {
	var zero T
	c.items = append(c.items, zero)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = v
	c.inserted.Emit(Change[T]{Index: i, Value: v})
}

func (c *Collection[T]) removeAt(i int) {
	v := c.items[i]
	copy(c.items[i:], c.items[i+1:])
	var zero T
	c.items[len(c.items)-1] = zero
	c.items = c.items[:len(c.items)-1]
	c.removed.Emit(Change[T]{Index: i, Value: v})
}
