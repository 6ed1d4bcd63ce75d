// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/internal/lru"
)

// fontFamily is one registered font, parsed once for shaping and once for
// metrics and glyph rasterization.
type fontFamily struct {
	name    string
	shaping *font.Font
	outline *opentype.Font
}

func parseFamily(name string, ttf []byte) (*fontFamily, error) {
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("render: parse font %q for shaping: %w", name, err)
	}
	outline, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("render: parse font %q outlines: %w", name, err)
	}
	return &fontFamily{name: name, shaping: face.Font, outline: outline}, nil
}

// textKey identifies one measurement.
type textKey struct {
	family string
	size   float64
	text   string
}

// textMeasurer shapes text with HarfBuzz and caches the results.
//
// font.Font is read-only and safe to share; faces and shapers are created
// per call.
type textMeasurer struct {
	mu       sync.RWMutex
	families map[string]*fontFamily

	sizes   *lru.Cache[textKey, gui.Size]
	heights *lru.Cache[textKey, float64]
}

func newTextMeasurer(cacheSize int) (*textMeasurer, error) {
	m := &textMeasurer{
		families: make(map[string]*fontFamily),
		sizes:    lru.New[textKey, gui.Size](cacheSize),
		heights:  lru.New[textKey, float64](64),
	}
	if err := m.register(gui.DefaultFontFamily, goregular.TTF); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *textMeasurer) register(name string, ttf []byte) error {
	f, err := parseFamily(name, ttf)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.families[name] = f
	m.mu.Unlock()

	// Measurements of a replaced family are stale.
	stale := func(k textKey) bool { return k.family == name }
	m.sizes.DeleteFunc(stale)
	m.heights.DeleteFunc(stale)
	return nil
}

func (m *textMeasurer) family(f gui.Font) (*fontFamily, error) {
	m.mu.RLock()
	fam, ok := m.families[f.Family]
	m.mu.RUnlock()
	if !ok {
		return nil, &gui.ResourceError{Op: "font", Resource: f.Family, Err: gui.ErrUnknownFont}
	}
	return fam, nil
}

// size returns the extent of text: the widest line's shaped advance by
// the line height times the number of lines.
func (m *textMeasurer) size(text string, f gui.Font) (gui.Size, error) {
	f = f.Normalized()
	return m.sizes.GetOrCreate(textKey{f.Family, f.Size, text}, func() (gui.Size, error) {
		fam, err := m.family(f)
		if err != nil {
			return gui.Size{}, err
		}
		lineHeight, err := m.lineHeight(f)
		if err != nil {
			return gui.Size{}, err
		}
		lines := strings.Split(text, "\n")
		width := 0.0
		for _, line := range lines {
			width = math.Max(width, advance(fam, line, f.Size))
		}
		return gui.Size{W: width, H: lineHeight * float64(len(lines))}, nil
	})
}

// lineHeight is ascent plus descent at the font size.
func (m *textMeasurer) lineHeight(f gui.Font) (float64, error) {
	f = f.Normalized()
	return m.heights.GetOrCreate(textKey{family: f.Family, size: f.Size}, func() (float64, error) {
		fam, err := m.family(f)
		if err != nil {
			return 0, err
		}
		metrics, err := faceMetrics(fam, f.Size)
		if err != nil {
			return 0, err
		}
		return fixedToFloat(metrics.Ascent + metrics.Descent), nil
	})
}

// advance shapes one line and returns its horizontal advance.
func advance(fam *fontFamily, line string, size float64) float64 {
	if line == "" {
		return 0
	}
	runes := []rune(line)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: direction(line),
		Face:      font.NewFace(fam.shaping),
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	out := (&shaping.HarfbuzzShaper{}).Shape(input)
	return math.Abs(fixedToFloat(out.Advance))
}

// direction returns the direction of the first logical bidi run.
func direction(text string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	if run := ordering.Run(0); run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
