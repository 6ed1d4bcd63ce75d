package property

// Direction selects which way a binding propagates values.
type Direction uint8

const (
	// SourceToDestination copies source changes into the destination.
	SourceToDestination Direction = 1 << iota

	// DestinationToSource copies destination changes into the source.
	DestinationToSource

	// TwoWays propagates in both directions.
	TwoWays = SourceToDestination | DestinationToSource
)

// Valid reports whether d is one of the three defined directions.
func (d Direction) Valid() bool {
	return d == SourceToDestination || d == DestinationToSource || d == TwoWays
}

// Has reports whether d includes the propagation step other.
func (d Direction) Has(other Direction) bool {
	return d&other == other && other != 0
}

func (d Direction) String() string {
	switch d {
	case SourceToDestination:
		return "SourceToDestination"
	case DestinationToSource:
		return "DestinationToSource"
	case TwoWays:
		return "TwoWays"
	default:
		return "Direction(invalid)"
	}
}

// Converter translates values between the source and destination types of
// a binding. Forward is required for directions that include
// SourceToDestination, Backward for those that include DestinationToSource.
type Converter[S, D any] struct {
	Forward  func(S) D
	Backward func(D) S
}

// Identity returns the converter used by BindSame.
func Identity[T any]() Converter[T, T] {
	id := func(v T) T { return v }
	return Converter[T, T]{Forward: id, Backward: id}
}

// Func returns a converter from a pair of functions.
func Func[S, D any](forward func(S) D, backward func(D) S) Converter[S, D] {
	return Converter[S, D]{Forward: forward, Backward: backward}
}

func (c Converter[S, D]) supports(d Direction) bool {
	if d.Has(SourceToDestination) && c.Forward == nil {
		return false
	}
	if d.Has(DestinationToSource) && c.Backward == nil {
		return false
	}
	return true
}
