package gui

import (
	"fmt"
	"math"
)

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width and height pair.
type Size struct {
	W, H float64
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
// A rectangle with a non-positive width or height is empty.
type Rect struct {
	X, Y, W, H float64
}

// R is a convenience function to create a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Unbounded returns a rectangle that contains every representable area.
// It is the ambient clip when nothing restricts drawing.
func Unbounded() Rect {
	const half = math.MaxFloat32 / 4
	return Rect{X: -half, Y: -half, W: 2 * half, H: 2 * half}
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{X: r.X + r.W, Y: r.Y + r.H} }

// Size returns the width and height.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translate returns the rectangle moved by the vector d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Intersect returns the largest rectangle contained in both r and s.
// The result is the zero Rect when they do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	x0 := math.Max(r.X, s.X)
	y0 := math.Max(r.Y, s.Y)
	x1 := math.Min(r.X+r.W, s.X+s.W)
	y1 := math.Min(r.Y+r.H, s.Y+s.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Inset returns r shrunk by d on every side. The result never has a
// negative size.
func (r Rect) Inset(d float64) Rect {
	r.X += d
	r.Y += d
	r.W = math.Max(0, r.W-2*d)
	r.H = math.Max(0, r.H-2*d)
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

// DefaultFontFamily is the family every render engine provides without
// registration (Go Regular).
const DefaultFontFamily = "Go"

// Font describes the face used to draw and measure text.
// The zero value selects DefaultFontFamily at DefaultFontSize.
type Font struct {
	Family string
	Size   float64
}

// DefaultFontSize is the size, in pixels, used when Font.Size is zero.
const DefaultFontSize = 14

// Normalized fills in the defaults for empty fields.
func (f Font) Normalized() Font {
	if f.Family == "" {
		f.Family = DefaultFontFamily
	}
	if f.Size <= 0 {
		f.Size = DefaultFontSize
	}
	return f
}

func (f Font) String() string {
	f = f.Normalized()
	return fmt.Sprintf("%s %gpx", f.Family, f.Size)
}

// TextureID identifies a texture created by a render engine.
// The zero value means "no texture".
type TextureID uint32

// NoTexture is the zero TextureID.
const NoTexture TextureID = 0
