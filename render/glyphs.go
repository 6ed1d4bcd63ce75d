// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func newFace(fam *fontFamily, size float64) (font.Face, error) {
	return opentype.NewFace(fam.outline, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func faceMetrics(fam *fontFamily, size float64) (font.Metrics, error) {
	face, err := newFace(fam, size)
	if err != nil {
		return font.Metrics{}, err
	}
	defer func() {
		_ = face.Close()
	}()
	return face.Metrics(), nil
}

// glyphMask rasterizes text into a coverage mask of bounds. The first
// line's top-left corner is at origin, in the mask's coordinate space;
// following lines advance by ascent plus descent.
func glyphMask(fam *fontFamily, text string, size float64, bounds image.Rectangle, origin fixed.Point26_6) (*image.Alpha, error) {
	face, err := newFace(fam, size)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = face.Close()
	}()

	m := face.Metrics()
	mask := image.NewAlpha(bounds)
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
	}
	lineHeight := m.Ascent + m.Descent
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.Point26_6{
			X: origin.X,
			Y: origin.Y + m.Ascent + fixed.Int26_6(i)*lineHeight,
		}
		d.DrawString(line)
	}
	return mask, nil
}
