// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"math"
	"slices"
	"strings"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/shape"
)

// EngineOption configures a SoftwareEngine during creation.
type EngineOption func(*engineOptions)

type engineOptions struct {
	textCacheSize int
	antialias     bool
	fonts         map[string][]byte
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		textCacheSize: 1024,
		antialias:     true,
	}
}

// WithTextCacheSize sets how many text measurements are cached.
func WithTextCacheSize(n int) EngineOption {
	return func(o *engineOptions) {
		o.textCacheSize = n
	}
}

// WithAntialias toggles edge anti-aliasing in the transparent pass.
// The opaque pass never anti-aliases: a partially covered pixel would not
// be opaque.
func WithAntialias(enabled bool) EngineOption {
	return func(o *engineOptions) {
		o.antialias = enabled
	}
}

// WithFont registers an additional font family at creation.
func WithFont(family string, ttf []byte) EngineOption {
	return func(o *engineOptions) {
		if o.fonts == nil {
			o.fonts = make(map[string][]byte)
		}
		o.fonts[family] = ttf
	}
}

// entry is the engine's copy of a retained shape, refreshed by Submit.
type entry struct {
	shape *shape.Shape
	seq   uint64

	submitted bool
	kind      shape.Kind
	attrs     shape.Attributes
	resolved  shape.Resolved
	layer     int
	opaque    bool

	mask    *image.Alpha
	maskKey maskKey
}

type maskKey struct {
	text  string
	font  gui.Font
	area  gui.Rect
	span  image.Rectangle
	valid bool
}

// SoftwareEngine is a CPU implementation of Engine with a depth buffer.
//
// Opaque shapes are drawn first, with depth writes and in any order.
// Transparent shapes are drawn second, back to front by background
// sub-layer, tested against but not writing depth. The transparent set is
// re-sorted at most once per frame, when its membership or ordering keys
// changed.
type SoftwareEngine struct {
	env   *gui.Env
	opts  engineOptions
	phase Phase

	target *PixmapTarget
	depth  []float32

	retained    map[*shape.Shape]*entry
	order       []*entry
	opaque      []*entry
	transparent []*entry
	dirty       bool
	seq         uint64

	textures    map[gui.TextureID]*texture
	nextTexture gui.TextureID

	text *textMeasurer

	frame  FrameStats
	last   FrameStats
	frames uint64

	presented gpucontext.Texture
}

var _ Engine = (*SoftwareEngine)(nil)

// NewSoftwareEngine creates an idle engine rendering into a width×height
// pixmap. It must be called on the UI thread.
func NewSoftwareEngine(env *gui.Env, width, height int, opts ...EngineOption) (*SoftwareEngine, error) {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := env.Check("NewSoftwareEngine"); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid target size %dx%d", width, height)
	}

	text, err := newTextMeasurer(o.textCacheSize)
	if err != nil {
		return nil, err
	}
	for family, ttf := range o.fonts {
		if err := text.register(family, ttf); err != nil {
			return nil, err
		}
	}

	e := &SoftwareEngine{
		env:      env,
		opts:     o,
		target:   NewPixmapTarget(width, height),
		depth:    make([]float32, width*height),
		retained: make(map[*shape.Shape]*entry),
		textures: make(map[gui.TextureID]*texture),
		text:     text,
	}
	gui.Logger().Debug("render: software engine created", "width", width, "height", height)
	return e, nil
}

// check verifies the calling thread and that the engine is in one of the
// allowed phases.
func (e *SoftwareEngine) check(op string, allowed ...Phase) error {
	if err := e.env.Check("Engine." + op); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if e.phase == PhaseClosed || !slices.Contains(allowed, e.phase) {
		want := make([]string, len(allowed))
		for i, p := range allowed {
			want[i] = p.String()
		}
		return &gui.PhaseError{Op: op, Phase: e.phase.String(), Want: strings.Join(want, " or ")}
	}
	return nil
}

// Phase returns the lifecycle phase.
func (e *SoftwareEngine) Phase() Phase { return e.phase }

// Target returns the color buffer.
func (e *SoftwareEngine) Target() *PixmapTarget { return e.target }

// Stats returns the statistics of the last finalized frame.
func (e *SoftwareEngine) Stats() FrameStats { return e.last }

// Frames returns the number of finalized frames.
func (e *SoftwareEngine) Frames() uint64 { return e.frames }

// Retained reports whether s is in the retained set.
func (e *SoftwareEngine) Retained(s *shape.Shape) bool {
	_, ok := e.retained[s]
	return ok
}

// RetainedCount returns the size of the retained set.
func (e *SoftwareEngine) RetainedCount() int { return len(e.order) }

// OpaqueSet returns the shapes of the opaque pass.
func (e *SoftwareEngine) OpaqueSet() []*shape.Shape { return shapesOf(e.opaque) }

// TransparentSet returns the shapes of the transparent pass in their
// current order, which is back to front once a frame has been finalized.
func (e *SoftwareEngine) TransparentSet() []*shape.Shape { return shapesOf(e.transparent) }

func shapesOf(entries []*entry) []*shape.Shape {
	out := make([]*shape.Shape, len(entries))
	for i, en := range entries {
		out[i] = en.shape
	}
	return out
}

// RegisterFont makes a TrueType or OpenType font available under family.
// Registering an existing family replaces it.
func (e *SoftwareEngine) RegisterFont(family string, ttf []byte) error {
	if err := e.check("RegisterFont", PhaseIdle, PhaseFrame); err != nil {
		return err
	}
	return e.text.register(family, ttf)
}

// CreateTexture copies img into an engine-owned texture. interpolate
// selects bilinear instead of nearest sampling.
func (e *SoftwareEngine) CreateTexture(img Image, interpolate bool) (gui.TextureID, error) {
	if err := e.check("CreateTexture", PhaseIdle, PhaseFrame); err != nil {
		return gui.NoTexture, err
	}
	t, err := newTexture(img, interpolate)
	if err != nil {
		return gui.NoTexture, err
	}
	e.nextTexture++
	e.textures[e.nextTexture] = t
	gui.Logger().Debug("render: texture created",
		"id", e.nextTexture, "width", t.width, "height", t.height, "interpolate", interpolate)
	return e.nextTexture, nil
}

// DeleteTexture releases a texture. Retained shapes still referencing it
// draw without their fill until resubmitted with another texture.
func (e *SoftwareEngine) DeleteTexture(id gui.TextureID) error {
	if err := e.check("DeleteTexture", PhaseIdle, PhaseFrame); err != nil {
		return err
	}
	if _, ok := e.textures[id]; !ok {
		return &gui.ResourceError{Op: "DeleteTexture", Resource: "texture", Detail: fmt.Sprintf("id %d", id), Err: gui.ErrUnknownTexture}
	}
	delete(e.textures, id)
	return nil
}

// Add puts s into the retained set. Adding a retained shape is a no-op.
// The shape is drawn once it has been submitted.
func (e *SoftwareEngine) Add(s *shape.Shape) error {
	if err := e.check("Add", PhaseIdle, PhaseFrame); err != nil {
		return err
	}
	if s == nil {
		return ErrNilShape
	}
	if _, ok := e.retained[s]; ok {
		return nil
	}
	e.seq++
	en := &entry{shape: s, seq: e.seq}
	e.retained[s] = en
	e.order = append(e.order, en)
	return nil
}

// Remove drops s from the retained set and from its pass.
// Removing an unknown shape is a no-op.
func (e *SoftwareEngine) Remove(s *shape.Shape) error {
	if err := e.check("Remove", PhaseIdle, PhaseFrame); err != nil {
		return err
	}
	en, ok := e.retained[s]
	if !ok {
		return nil
	}
	delete(e.retained, s)
	e.order = slices.DeleteFunc(e.order, func(x *entry) bool { return x == en })
	e.unclassify(en)
	return nil
}

// Submit refreshes the engine's copy of s from its attributes and
// resolved state and reclassifies it as opaque or transparent.
//
// A shape with an impossible border or corner radius, an unknown texture
// or an unknown font is rejected with a *gui.ResourceError; the previous
// copy stays in the retained set.
func (e *SoftwareEngine) Submit(s *shape.Shape) error {
	if err := e.check("Submit", PhaseFrame); err != nil {
		return err
	}
	if s == nil {
		return ErrNilShape
	}
	en, ok := e.retained[s]
	if !ok {
		return fmt.Errorf("render: submit %v: %w", s, ErrNotRetained)
	}

	attrs, resolved := s.Attributes(), s.Resolved()
	if err := validateGeometry(s.Kind(), attrs); err != nil {
		return err
	}

	opaque := s.IsOpaque()
	if s.Kind() == shape.Rectangle && attrs.Texture != gui.NoTexture {
		t, ok := e.textures[attrs.Texture]
		if !ok {
			return &gui.ResourceError{Op: "Submit", Resource: "texture",
				Detail: fmt.Sprintf("id %d", attrs.Texture), Err: gui.ErrUnknownTexture}
		}
		opaque = opaque && t.opaque && resolved.Opacity >= 1
	}
	if s.Kind() == shape.Text {
		if _, err := e.text.family(attrs.Font.Normalized()); err != nil {
			return err
		}
	}

	bg, _ := shape.Layers(attrs.ZIndex)
	if !en.submitted || en.opaque != opaque {
		e.unclassify(en)
		if opaque {
			e.opaque = append(e.opaque, en)
		} else {
			e.transparent = append(e.transparent, en)
			e.dirty = true
		}
	} else if !opaque && en.layer != bg {
		e.dirty = true
	}

	en.submitted = true
	en.kind = s.Kind()
	en.attrs = attrs
	en.resolved = resolved
	en.layer = bg
	en.opaque = opaque
	e.frame.Submitted++
	return nil
}

// unclassify removes en from whichever pass holds it.
func (e *SoftwareEngine) unclassify(en *entry) {
	if !en.submitted {
		return
	}
	if en.opaque {
		e.opaque = slices.DeleteFunc(e.opaque, func(x *entry) bool { return x == en })
		return
	}
	e.transparent = slices.DeleteFunc(e.transparent, func(x *entry) bool { return x == en })
	e.dirty = true
}

func validateGeometry(kind shape.Kind, a shape.Attributes) error {
	fail := func(detail string) error {
		return &gui.ResourceError{Op: "Submit", Resource: kind.String(), Detail: detail, Err: gui.ErrGeometry}
	}
	if a.Area.W < 0 || a.Area.H < 0 {
		return fail(fmt.Sprintf("negative area %v", a.Area))
	}
	if a.BorderThickness < 0 || a.CornerRadius < 0 {
		return fail("negative border or corner radius")
	}
	short := math.Min(a.Area.W, a.Area.H)
	if kind != shape.Text && a.BorderThickness*2 > short {
		return fail(fmt.Sprintf("border %g does not fit %v", a.BorderThickness, a.Area))
	}
	if a.CornerRadius*2 > short {
		return fail(fmt.Sprintf("corner radius %g does not fit %v", a.CornerRadius, a.Area))
	}
	return nil
}

// InitializeFrame clears the color buffer to background and the depth
// buffer to shape.ClearDepth.
func (e *SoftwareEngine) InitializeFrame(background gui.RGBA) error {
	if err := e.check("InitializeFrame", PhaseIdle); err != nil {
		return err
	}
	e.target.Clear(background)
	for i := range e.depth {
		e.depth[i] = shape.ClearDepth
	}
	e.frame = FrameStats{}
	e.phase = PhaseFrame
	return nil
}

// FinalizeFrame draws the retained set: the opaque pass, then the
// transparent pass back to front.
func (e *SoftwareEngine) FinalizeFrame() error {
	if err := e.check("FinalizeFrame", PhaseFrame); err != nil {
		return err
	}
	if e.dirty {
		slices.SortStableFunc(e.transparent, func(a, b *entry) int {
			if a.layer != b.layer {
				return a.layer - b.layer
			}
			return int(a.seq) - int(b.seq)
		})
		e.dirty = false
		e.frame.Sorted = true
	}

	for _, en := range e.opaque {
		if e.draw(en, true, false) {
			e.frame.Opaque++
		} else {
			e.frame.Skipped++
		}
	}
	for _, en := range e.transparent {
		if e.draw(en, false, e.opts.antialias) {
			e.frame.Transparent++
		} else {
			e.frame.Skipped++
		}
	}
	e.frame.Skipped += len(e.order) - len(e.opaque) - len(e.transparent)

	e.frames++
	e.last = e.frame
	e.phase = PhaseIdle
	gui.Logger().Debug("render: frame finalized",
		"frame", e.frames,
		"submitted", e.frame.Submitted,
		"opaque", e.frame.Opaque,
		"transparent", e.frame.Transparent,
		"skipped", e.frame.Skipped,
		"sorted", e.frame.Sorted)
	return nil
}

// Resize changes the target size between frames.
func (e *SoftwareEngine) Resize(width, height int) error {
	if err := e.check("Resize", PhaseIdle); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: invalid target size %dx%d", width, height)
	}
	e.target.Resize(width, height)
	e.depth = make([]float32, width*height)
	return nil
}

// ComputeTextSize returns the extent of text drawn with font.
func (e *SoftwareEngine) ComputeTextSize(text string, font gui.Font) (gui.Size, error) {
	if err := e.check("ComputeTextSize", PhaseIdle, PhaseFrame); err != nil {
		return gui.Size{}, err
	}
	return e.text.size(text, font)
}

// ComputeTextMaximumHeight returns the height of one line of any text
// drawn with font.
func (e *SoftwareEngine) ComputeTextMaximumHeight(font gui.Font) (float64, error) {
	if err := e.check("ComputeTextMaximumHeight", PhaseIdle, PhaseFrame); err != nil {
		return 0, err
	}
	return e.text.lineHeight(font)
}

// Close releases every resource. The engine cannot be used afterwards.
// Closing twice is a no-op.
func (e *SoftwareEngine) Close() error {
	if err := e.env.Check("Engine.Close"); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if e.phase == PhaseClosed {
		return nil
	}
	e.phase = PhaseClosed
	e.retained, e.order, e.opaque, e.transparent = nil, nil, nil, nil
	e.textures = nil
	e.depth = nil
	e.releasePresented()
	gui.Logger().Info("render: engine closed", "frames", e.frames)
	return nil
}

// draw rasterizes one entry. It reports false when nothing could be drawn.
func (e *SoftwareEngine) draw(en *entry, writeDepth, aa bool) bool {
	a, r := en.attrs, en.resolved
	if !a.Visible {
		return false
	}
	visible := r.Area.Intersect(r.Clip).Intersect(e.target.Bounds())
	span := pixelSpan(visible)
	if span.Empty() {
		return false
	}

	bg, fg := shape.Layers(a.ZIndex)
	bgDepth, fgDepth := shape.Depth(bg), shape.Depth(fg)

	var fill coverageFunc
	switch en.kind {
	case shape.Circle:
		fill = ellipse(r.Area)
	default:
		fill = roundedRect(r.Area, a.CornerRadius)
	}

	if t := e.textures[a.Texture]; en.kind == shape.Rectangle && a.Texture != gui.NoTexture {
		if t != nil {
			area, opacity := r.Area, r.Opacity
			e.fill(span, bgDepth, writeDepth, aa, fill, func(x, y float64) gui.RGBA {
				return t.sample((x-area.X)/area.W, (y-area.Y)/area.H).MulAlpha(opacity)
			})
		}
	} else if !r.Background.IsTransparent() {
		e.fill(span, bgDepth, writeDepth, aa, fill, solid(r.Background))
	}

	switch en.kind {
	case shape.Text:
		if mask := e.glyphs(en, span); mask != nil && !r.Foreground.IsTransparent() {
			e.fill(span, fgDepth, writeDepth, aa, maskCoverage(mask), solid(r.Foreground))
		}
	default:
		if a.BorderThickness > 0 && !r.BorderColor.IsTransparent() {
			inner := r.Area.Inset(a.BorderThickness)
			var hole coverageFunc
			if en.kind == shape.Circle {
				hole = ellipse(inner)
			} else {
				hole = roundedRect(inner, math.Max(a.CornerRadius-a.BorderThickness, 0))
			}
			e.fill(span, fgDepth, writeDepth, aa, ring(fill, hole), solid(r.BorderColor))
		}
	}
	return true
}

// glyphs returns the cached coverage mask of a text entry, rasterizing it
// when the text, font or placement changed.
func (e *SoftwareEngine) glyphs(en *entry, span image.Rectangle) *image.Alpha {
	a, area := en.attrs, en.resolved.Area
	if a.Text == "" {
		return nil
	}
	key := maskKey{text: a.Text, font: a.Font.Normalized(), area: area, span: span, valid: true}
	if en.maskKey == key {
		return en.mask
	}
	fam, err := e.text.family(key.font)
	if err != nil {
		return nil
	}
	origin := fixed.Point26_6{X: floatToFixed(area.X), Y: floatToFixed(area.Y)}
	mask, err := glyphMask(fam, a.Text, key.font.Size, span, origin)
	if err != nil {
		gui.Logger().Warn("render: glyph rasterization failed", "text", a.Text, "font", key.font, "err", err)
		return nil
	}
	en.mask, en.maskKey = mask, key
	return mask
}

// fill runs the depth test and blends paint over every pixel of span
// covered by coverage. Without aa, a pixel is either fully covered or
// skipped.
func (e *SoftwareEngine) fill(span image.Rectangle, depth float32, writeDepth, aa bool, coverage coverageFunc, paint paintFunc) {
	img := e.target.Image()
	width := e.target.Width()
	for y := span.Min.Y; y < span.Max.Y; y++ {
		for x := span.Min.X; x < span.Max.X; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			cov := coverage(px, py)
			if !aa {
				if cov < 0.5 {
					continue
				}
				cov = 1
			}
			if cov <= 0 {
				continue
			}
			i := y*width + x
			if !(depth < e.depth[i]) {
				continue
			}
			c := paint(px, py)
			alpha := c.A * cov
			if alpha <= 0 {
				continue
			}
			if writeDepth {
				e.depth[i] = depth
			}
			off := img.PixOffset(x, y)
			blend(img.Pix[off:off+4], c, alpha)
		}
	}
}
