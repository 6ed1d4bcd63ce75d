package shape

// Z-index range. User z-indices outside [MinZIndex, MaxZIndex] are clamped.
const (
	MinZIndex = -(1 << 14)
	MaxZIndex = 1<<14 - 1

	// ZIndexCount is the number of distinct z-indices.
	ZIndexCount = MaxZIndex - MinZIndex + 1

	// LayerCount is the number of engine sub-layers: every z-index owns a
	// background and a foreground sub-layer.
	LayerCount = 2 * ZIndexCount
)

// ClampZIndex restricts z to the representable range.
func ClampZIndex(z int) int {
	if z < MinZIndex {
		return MinZIndex
	}
	if z > MaxZIndex {
		return MaxZIndex
	}
	return z
}

// Layers expands a user z-index into its two engine sub-layers. The fill of
// a shape goes to background and its border or glyphs to foreground, so a
// shape never z-fights with itself. The mapping is monotonic: a higher z
// yields higher sub-layers than every lower z.
func Layers(z int) (background, foreground int) {
	base := 2 * (ClampZIndex(z) - MinZIndex)
	return base, base + 1
}

// Depth converts a sub-layer into a depth value in (-1, 1) for a
// less-than depth test against a buffer cleared to 1. Higher sub-layers
// get smaller depths and therefore win the test.
func Depth(layer int) float32 {
	if layer < 0 {
		layer = 0
	}
	if layer >= LayerCount {
		layer = LayerCount - 1
	}
	return float32(1 - 2*float64(layer+1)/float64(LayerCount+1))
}

// ClearDepth is the depth a buffer is reset to at the start of a frame.
const ClearDepth float32 = 1
