// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gui"
)

func TestPixmapTargetClear(t *testing.T) {
	target := NewPixmapTarget(4, 3)
	if target.Width() != 4 || target.Height() != 3 {
		t.Fatalf("expected 4x3, got %dx%d", target.Width(), target.Height())
	}
	if got := target.Bounds(); got != gui.R(0, 0, 4, 3) {
		t.Errorf("expected bounds R(0,0,4,3), got %v", got)
	}
	if target.Stride() != 16 || len(target.Pixels()) != 48 {
		t.Errorf("unexpected layout: stride %d, %d bytes", target.Stride(), len(target.Pixels()))
	}

	target.Clear(gui.Red.WithAlpha(0.5))
	if got := target.Image().RGBAAt(3, 2); got != (color.RGBA{0x80, 0, 0, 0x80}) {
		t.Errorf("expected premultiplied storage, got %v", got)
	}
	c := target.At(0, 0)
	if c.R != 1 || math.Abs(c.A-0.5) > 0.01 {
		t.Errorf("expected straight half-transparent red, got %v", c)
	}

	target.SetPixel(1, 1, color.RGBA{0, 0, 0xff, 0xff})
	if got := target.At(1, 1); got != gui.Blue {
		t.Errorf("expected blue, got %v", got)
	}

	target.Resize(2, 2)
	if target.Width() != 2 || target.At(0, 0) != gui.Transparent {
		t.Error("expected a cleared 2x2 target after Resize")
	}
}

func TestPixmapTargetSavePNG(t *testing.T) {
	target := NewPixmapTarget(5, 6)
	target.Clear(gui.Green)
	path := filepath.Join(t.TempDir(), "frame.png")

	if err := target.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 6 {
		t.Errorf("expected 5x6 image, got %v", b)
	}
	if got := gui.FromColor(img.At(2, 2)); got != gui.Green {
		t.Errorf("expected green, got %v", got)
	}

	if err := target.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
