// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gui"
)

// Image is raw pixel data handed to CreateTexture. Rows are tightly packed.
type Image struct {
	Width, Height int
	Format        gputypes.TextureFormat
	Pix           []byte
}

// ImageFromRGBA wraps an *image.RGBA, copying rows when the stride has
// padding.
func ImageFromRGBA(img *image.RGBA) Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := img.Pix
	if img.Stride != w*4 || b.Min != (image.Point{}) {
		pix = make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			row := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pix[y*w*4:(y+1)*w*4], img.Pix[row:row+w*4])
		}
	}
	return Image{Width: w, Height: h, Format: gputypes.TextureFormatRGBA8Unorm, Pix: pix}
}

// BytesPerPixel returns the size of one pixel of a supported texture
// format, or 0 when the format is not supported.
func BytesPerPixel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRG8Unorm:
		return 2
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return 4
	default:
		return 0
	}
}

// texture is an engine-owned copy of an Image, converted to straight
// (non-premultiplied) RGBA.
type texture struct {
	width, height int
	pix           []uint8
	interpolate   bool
	opaque        bool
}

func newTexture(img Image, interpolate bool) (*texture, error) {
	bpp := BytesPerPixel(img.Format)
	if bpp == 0 {
		return nil, &gui.ResourceError{
			Op: "CreateTexture", Resource: "texture",
			Detail: img.Format.String(), Err: gui.ErrTextureFormat,
		}
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*bpp {
		return nil, &gui.ResourceError{
			Op: "CreateTexture", Resource: "texture",
			Detail: fmt.Sprintf("%dx%d %s needs %d bytes, got %d",
				img.Width, img.Height, img.Format, max(img.Width*img.Height*bpp, 0), len(img.Pix)),
			Err: gui.ErrTextureSize,
		}
	}

	n := img.Width * img.Height
	t := &texture{
		width:       img.Width,
		height:      img.Height,
		pix:         make([]uint8, n*4),
		interpolate: interpolate,
		opaque:      true,
	}
	for i := 0; i < n; i++ {
		src := img.Pix[i*bpp : (i+1)*bpp]
		dst := t.pix[i*4 : i*4+4]
		switch img.Format {
		case gputypes.TextureFormatR8Unorm:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 0xff
		case gputypes.TextureFormatRG8Unorm:
			// Luminance plus alpha.
			dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], src[1]
		case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
			dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], src[3]
		default:
			copy(dst, src)
		}
		if dst[3] != 0xff {
			t.opaque = false
		}
	}
	return t, nil
}

// sample returns the straight-alpha color at texture coordinates u, v in
// [0, 1]. Bilinear filtering samples texel centers and clamps at edges.
func (t *texture) sample(u, v float64) gui.RGBA {
	if !t.interpolate {
		x := clampInt(int(u*float64(t.width)), 0, t.width-1)
		y := clampInt(int(v*float64(t.height)), 0, t.height-1)
		return t.texel(x, y)
	}

	fx := u*float64(t.width) - 0.5
	fy := v*float64(t.height) - 0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)

	c00 := t.texel(clampInt(x0, 0, t.width-1), clampInt(y0, 0, t.height-1)).Premultiply()
	c10 := t.texel(clampInt(x0+1, 0, t.width-1), clampInt(y0, 0, t.height-1)).Premultiply()
	c01 := t.texel(clampInt(x0, 0, t.width-1), clampInt(y0+1, 0, t.height-1)).Premultiply()
	c11 := t.texel(clampInt(x0+1, 0, t.width-1), clampInt(y0+1, 0, t.height-1)).Premultiply()
	c := c00.Lerp(c10, tx).Lerp(c01.Lerp(c11, tx), ty)
	if c.A == 0 {
		return gui.Transparent
	}
	return gui.RGBA{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

func (t *texture) texel(x, y int) gui.RGBA {
	i := (y*t.width + x) * 4
	p := t.pix[i : i+4]
	return gui.RGBA{
		R: float64(p[0]) / 255,
		G: float64(p[1]) / 255,
		B: float64(p[2]) / 255,
		A: float64(p[3]) / 255,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
