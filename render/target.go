// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gui"
)

// PixmapTarget is the CPU-backed color buffer of the software engine.
// Pixels are premultiplied RGBA, as in *image.RGBA.
//
//	eng, _ := render.NewSoftwareEngine(env, 800, 600)
//	... frames ...
//	img := eng.Target().Image()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a cleared target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Bounds returns the target rectangle in engine coordinates.
func (t *PixmapTarget) Bounds() gui.Rect {
	return gui.R(0, 0, float64(t.Width()), float64(t.Height()))
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with c.
func (t *PixmapTarget) Clear(c gui.RGBA) {
	p := c.Premultiply()
	px := [4]uint8{unit8(p.R), unit8(p.G), unit8(p.B), unit8(p.A)}
	pix := t.img.Pix
	for i := 0; i+4 <= len(pix); i += 4 {
		copy(pix[i:i+4], px[:])
	}
}

// At returns the straight-alpha color of a pixel.
func (t *PixmapTarget) At(x, y int) gui.RGBA {
	return gui.FromColor(t.img.RGBAAt(x, y))
}

// SetPixel sets a single pixel.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	t.img.Set(x, y, c)
}

// Resize replaces the buffer. The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// SavePNG writes the target to a PNG file.
func (t *PixmapTarget) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := png.Encode(f, t.img); err != nil {
		_ = f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return f.Close()
}
