// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"math"

	"github.com/gogpu/gui"
)

// coverageFunc returns the fraction of the pixel centered at (x, y)
// covered by a primitive.
type coverageFunc func(x, y float64) float64

// paintFunc returns the straight-alpha color at (x, y).
type paintFunc func(x, y float64) gui.RGBA

func solid(c gui.RGBA) paintFunc {
	return func(float64, float64) gui.RGBA { return c }
}

// distanceCoverage turns a signed distance (negative inside) into a one
// pixel wide anti-aliased edge.
func distanceCoverage(d float64) float64 {
	return math.Max(0, math.Min(1, 0.5-d))
}

// roundedRect covers r with corners of the given radius.
func roundedRect(r gui.Rect, radius float64) coverageFunc {
	if r.Empty() {
		return func(float64, float64) float64 { return 0 }
	}
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	hx, hy := r.W/2-radius, r.H/2-radius
	return func(x, y float64) float64 {
		qx := math.Abs(x-cx) - hx
		qy := math.Abs(y-cy) - hy
		outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
		inside := math.Min(math.Max(qx, qy), 0)
		return distanceCoverage(outside + inside - radius)
	}
}

// ellipse covers the ellipse inscribed in r.
func ellipse(r gui.Rect) coverageFunc {
	if r.Empty() {
		return func(float64, float64) float64 { return 0 }
	}
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	a, b := r.W/2, r.H/2
	scale := math.Min(a, b)
	return func(x, y float64) float64 {
		dx, dy := (x-cx)/a, (y-cy)/b
		return distanceCoverage((math.Hypot(dx, dy) - 1) * scale)
	}
}

// ring covers outer minus inner.
func ring(outer, inner coverageFunc) coverageFunc {
	return func(x, y float64) float64 {
		return math.Max(0, outer(x, y)-inner(x, y))
	}
}

// maskCoverage samples an alpha mask; pixels outside it are uncovered.
func maskCoverage(mask *image.Alpha) coverageFunc {
	return func(x, y float64) float64 {
		p := image.Pt(int(math.Floor(x)), int(math.Floor(y)))
		if !p.In(mask.Rect) {
			return 0
		}
		return float64(mask.AlphaAt(p.X, p.Y).A) / 255
	}
}

// pixelSpan returns the pixels whose centers lie inside r.
// r must already be limited to the target.
func pixelSpan(r gui.Rect) image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Ceil(r.X-0.5)),
		int(math.Ceil(r.Y-0.5)),
		int(math.Ceil(r.X+r.W-0.5)),
		int(math.Ceil(r.Y+r.H-0.5)),
	)
}

// blend composites c with coverage-scaled alpha a over a premultiplied
// RGBA pixel.
func blend(dst []uint8, c gui.RGBA, a float64) {
	if a >= 1 {
		dst[0], dst[1], dst[2], dst[3] = unit8(c.R), unit8(c.G), unit8(c.B), 0xff
		return
	}
	inv := 1 - a
	dst[0] = unit8(c.R*a + float64(dst[0])/255*inv)
	dst[1] = unit8(c.G*a + float64(dst[1])/255*inv)
	dst[2] = unit8(c.B*a + float64(dst[2])/255*inv)
	dst[3] = unit8(a + float64(dst[3])/255*inv)
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
