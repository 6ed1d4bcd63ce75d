package property

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors wrapped by BindingError and the collection operations.
var (
	// ErrAlreadyBound is returned when an endpoint is already driven by a link.
	ErrAlreadyBound = errors.New("property: endpoint is already a binding target")

	// ErrBindingRefused is returned when an endpoint does not accept binding updates.
	ErrBindingRefused = errors.New("property: endpoint does not accept binding updates")

	// ErrMissingConverter is returned when the converter lacks a function the direction needs.
	ErrMissingConverter = errors.New("property: converter does not support direction")

	// ErrInvalidDirection is returned for a Direction outside the three defined values.
	ErrInvalidDirection = errors.New("property: invalid binding direction")

	// ErrSelfBinding is returned when both endpoints are the same object.
	ErrSelfBinding = errors.New("property: cannot bind an endpoint to itself")

	// ErrNotEmpty is returned when the receiving collection of a binding has elements.
	ErrNotEmpty = errors.New("property: receiving collection is not empty")

	// ErrReadOnly is returned when a bound receiving collection is edited directly.
	ErrReadOnly = errors.New("property: collection is read-only while bound")

	// ErrIndexOutOfRange is returned for collection indices outside [0, Len].
	ErrIndexOutOfRange = errors.New("property: index out of range")

	// ErrUnknownAttribute is returned by Registry.Set for unregistered keys.
	ErrUnknownAttribute = errors.New("property: unknown attribute")
)

// BindingError describes a rejected bind. The state of both endpoints is
// exactly what it was before the call.
type BindingError struct {
	// Source and Destination name the endpoints of the rejected link.
	Source      string
	Destination string
	Direction   Direction

	// Endpoint names the endpoint that violated Err, when there is one.
	Endpoint string

	// Existing describes the link already driving Endpoint for ErrAlreadyBound.
	Existing string

	Err error
}

func (e *BindingError) Error() string {
	msg := fmt.Sprintf("property: bind %s -> %s (%s)", e.Source, e.Destination, e.Direction)
	if e.Endpoint != "" {
		msg += ": " + e.Endpoint
	}
	msg += ": " + strings.TrimPrefix(e.Err.Error(), "property: ")
	if e.Existing != "" {
		msg += " by " + e.Existing
	}
	return msg
}

func (e *BindingError) Unwrap() error { return e.Err }
