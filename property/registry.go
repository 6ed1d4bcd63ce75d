package property

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/gui"
)

// Registry maps attribute keys of one element type to typed setters.
//
// Loaders that read attributes as strings (scene files, markup) apply them
// through a Registry instead of discovering properties by reflection. The
// registry is filled once, at package initialization of the element type.
type Registry[E any] struct {
	elementType string
	setters     map[string]func(E, string) error
}

// NewRegistry creates an empty registry for elementType.
func NewRegistry[E any](elementType string) *Registry[E] {
	return &Registry[E]{
		elementType: elementType,
		setters:     make(map[string]func(E, string) error),
	}
}

// Register binds key to the property returned by accessor. Raw strings are
// converted with parse and stored with Property.Set. Registering an
// existing key replaces it.
func Register[E, T any](r *Registry[E], key string, accessor func(E) *Property[T], parse func(string) (T, error)) {
	r.setters[key] = func(e E, raw string) error {
		v, err := parse(raw)
		if err != nil {
			return err
		}
		return accessor(e).Set(v)
	}
}

// ElementType returns the element type name given to NewRegistry.
func (r *Registry[E]) ElementType() string {
	return r.elementType
}

// Has reports whether key is registered.
func (r *Registry[E]) Has(key string) bool {
	_, ok := r.setters[key]
	return ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry[E]) Keys() []string {
	keys := make([]string, 0, len(r.setters))
	for k := range r.setters {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Set parses raw and stores it in the property registered under key.
func (r *Registry[E]) Set(e E, key, raw string) error {
	set, ok := r.setters[key]
	if !ok {
		return &AttributeError{ElementType: r.elementType, Key: key, Raw: raw, Err: ErrUnknownAttribute}
	}
	if err := set(e, raw); err != nil {
		return &AttributeError{ElementType: r.elementType, Key: key, Raw: raw, Err: err}
	}
	return nil
}

// Apply sets every attribute in attrs, in key order. It continues past
// failures and returns them joined.
func (r *Registry[E]) Apply(e E, attrs map[string]string) error {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var errs []error
	for _, k := range keys {
		if err := r.Set(e, k, attrs[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AttributeError reports an attribute that could not be applied.
type AttributeError struct {
	ElementType string
	Key         string
	Raw         string
	Err         error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("property: %s.%s = %q: %v", e.ElementType, e.Key, e.Raw, e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }

// Stock parsers for Register.

// ParseString returns s unchanged.
func ParseString(s string) (string, error) { return s, nil }

// ParseBool accepts the forms understood by strconv.ParseBool.
func ParseBool(s string) (bool, error) { return strconv.ParseBool(strings.TrimSpace(s)) }

// ParseInt parses a base-10 integer.
func ParseInt(s string) (int, error) { return strconv.Atoi(strings.TrimSpace(s)) }

// ParseFloat parses a 64-bit float.
func ParseFloat(s string) (float64, error) { return strconv.ParseFloat(strings.TrimSpace(s), 64) }

// ParseColor parses a named or hex color.
func ParseColor(s string) (gui.RGBA, error) { return gui.ParseColor(s) }
