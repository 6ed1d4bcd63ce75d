package shape

import "errors"

// ErrAttached is returned when a shape that belongs to one canvas is added
// to another without being removed first.
var ErrAttached = errors.New("shape: already attached to another canvas")
