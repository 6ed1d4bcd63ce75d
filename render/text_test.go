// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-text/typesetting/di"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/shape"
)

func TestComputeTextSize(t *testing.T) {
	_, e := newTestEngine(t, 4, 4)
	f := gui.Font{}

	line, err := e.ComputeTextMaximumHeight(f)
	if err != nil {
		t.Fatalf("ComputeTextMaximumHeight failed: %v", err)
	}
	if line <= 0 {
		t.Fatalf("expected positive line height, got %v", line)
	}

	hello, err := e.ComputeTextSize("Hello", f)
	if err != nil {
		t.Fatalf("ComputeTextSize failed: %v", err)
	}
	if hello.W <= 0 || hello.H != line {
		t.Errorf("expected one line of positive width, got %v", hello)
	}

	longer, _ := e.ComputeTextSize("Hello, world", f)
	if longer.W <= hello.W {
		t.Errorf("expected longer text to be wider: %v vs %v", longer.W, hello.W)
	}

	twoLines, _ := e.ComputeTextSize("Hello\nHi", f)
	if twoLines.W != hello.W || twoLines.H != 2*line {
		t.Errorf("expected widest line by two line heights, got %v", twoLines)
	}

	empty, _ := e.ComputeTextSize("", f)
	if empty.W != 0 || empty.H != line {
		t.Errorf("expected empty text to take one empty line, got %v", empty)
	}

	big, _ := e.ComputeTextSize("Hello", gui.Font{Size: 2 * gui.DefaultFontSize})
	if big.W <= hello.W {
		t.Errorf("expected a larger font to be wider: %v vs %v", big.W, hello.W)
	}
}

func TestComputeTextSizeCached(t *testing.T) {
	_, e := newTestEngine(t, 4, 4)
	first, _ := e.ComputeTextSize("cached", gui.Font{})
	before := e.text.sizes.Stats()
	second, _ := e.ComputeTextSize("cached", gui.Font{})
	after := e.text.sizes.Stats()

	if first != second {
		t.Errorf("expected identical measurements, got %v and %v", first, second)
	}
	if after.Hits != before.Hits+1 || after.Misses != before.Misses {
		t.Errorf("expected a cache hit, stats before %+v after %+v", before, after)
	}
}

func TestUnknownFont(t *testing.T) {
	env, e := newTestEngine(t, 4, 4)
	missing := gui.Font{Family: "Missing"}

	if _, err := e.ComputeTextSize("x", missing); !errors.Is(err, gui.ErrUnknownFont) {
		t.Errorf("expected ErrUnknownFont, got %v", err)
	}
	if _, err := e.ComputeTextMaximumHeight(missing); !errors.Is(err, gui.ErrUnknownFont) {
		t.Errorf("expected ErrUnknownFont, got %v", err)
	}

	s := shape.NewText(env, "x", missing)
	add(t, e, s)
	_ = e.InitializeFrame(gui.White)
	defer func() { _ = e.FinalizeFrame() }()
	s.Resolve(gui.Point{}, gui.Unbounded(), 1)
	if err := e.Submit(s); !errors.Is(err, gui.ErrUnknownFont) {
		t.Errorf("expected ErrUnknownFont on submit, got %v", err)
	}
}

func TestRegisterFont(t *testing.T) {
	_, e := newTestEngine(t, 4, 4)
	if err := e.RegisterFont("Bad", []byte("not a font")); err == nil {
		t.Error("expected an error for invalid font data")
	}
	if err := e.RegisterFont("Alt", goregular.TTF); err != nil {
		t.Fatalf("RegisterFont failed: %v", err)
	}

	want, _ := e.ComputeTextSize("Same", gui.Font{})
	got, err := e.ComputeTextSize("Same", gui.Font{Family: "Alt"})
	if err != nil {
		t.Fatalf("ComputeTextSize failed: %v", err)
	}
	if got != want {
		t.Errorf("expected %v for the same face under another name, got %v", want, got)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		text string
		want di.Direction
	}{
		{"", di.DirectionLTR},
		{"Hello", di.DirectionLTR},
		{"שלום", di.DirectionRTL},
	}
	for _, tt := range tests {
		if got := direction(tt.text); got != tt.want {
			t.Errorf("direction(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestTextDrawn(t *testing.T) {
	env, e := newTestEngine(t, 40, 40)
	s := shape.NewText(env, "H", gui.Font{Size: 24})
	_ = s.SetArea(gui.R(0, 0, 40, 40))
	add(t, e, s)

	frame(t, e, gui.White, s)
	if got := e.TransparentSet(); len(got) != 1 || got[0] != s {
		t.Errorf("expected text in the transparent set, got %v", got)
	}
	inked := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if pixel(e, x, y) != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("expected glyph pixels drawn")
	}

	_ = s.SetText("")
	frame(t, e, gui.White, s)
	if got := pixel(e, 10, 10); got != white {
		t.Errorf("expected nothing drawn for empty text, got %v", got)
	}
}
