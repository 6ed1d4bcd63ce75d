package shape

import (
	"fmt"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/property"
)

// Kind is the closed set of drawable primitives.
type Kind uint8

const (
	// Rectangle is a filled, optionally bordered, optionally rounded rectangle.
	// It may be filled with a texture instead of a color.
	Rectangle Kind = iota

	// Circle is a filled, optionally bordered ellipse inscribed in the area.
	Circle

	// Text is a single run of glyphs laid out from the top-left of the area.
	Text
)

func (k Kind) String() string {
	switch k {
	case Rectangle:
		return "Rectangle"
	case Circle:
		return "Circle"
	case Text:
		return "Text"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Attr is a bit set naming the attributes touched by a change.
type Attr uint16

// Attribute bits.
const (
	AttrArea Attr = 1 << iota
	AttrBackground
	AttrBorder
	AttrCornerRadius
	AttrZIndex
	AttrVisible
	AttrClip
	AttrText
	AttrFont
	AttrForeground
	AttrTexture
)

// Attributes are the user-facing drawing attributes of a shape. Area and
// Clip are relative to the owning element.
type Attributes struct {
	Area            gui.Rect
	Background      gui.RGBA
	BorderColor     gui.RGBA
	BorderThickness float64
	CornerRadius    float64
	ZIndex          int
	Visible         bool

	// Clip restricts drawing when non-nil.
	Clip *gui.Rect

	Text       string
	Font       gui.Font
	Foreground gui.RGBA

	// Texture fills a rectangle instead of Background when set.
	Texture gui.TextureID
}

// diff returns the attributes that differ between a and b.
func (a Attributes) diff(b Attributes) Attr {
	var d Attr
	if a.Area != b.Area {
		d |= AttrArea
	}
	if a.Background != b.Background {
		d |= AttrBackground
	}
	if a.BorderColor != b.BorderColor || a.BorderThickness != b.BorderThickness {
		d |= AttrBorder
	}
	if a.CornerRadius != b.CornerRadius {
		d |= AttrCornerRadius
	}
	if a.ZIndex != b.ZIndex {
		d |= AttrZIndex
	}
	if a.Visible != b.Visible {
		d |= AttrVisible
	}
	if (a.Clip == nil) != (b.Clip == nil) || (a.Clip != nil && *a.Clip != *b.Clip) {
		d |= AttrClip
	}
	if a.Text != b.Text {
		d |= AttrText
	}
	if a.Font != b.Font {
		d |= AttrFont
	}
	if a.Foreground != b.Foreground {
		d |= AttrForeground
	}
	if a.Texture != b.Texture {
		d |= AttrTexture
	}
	return d
}

// Resolved holds the engine-facing state computed by the canvas right before
// submission: absolute geometry, the effective clip and colors with the
// element opacity applied.
type Resolved struct {
	Area        gui.Rect
	Clip        gui.Rect
	Background  gui.RGBA
	BorderColor gui.RGBA
	Foreground  gui.RGBA

	// Opacity is the element opacity; it modulates texture fills.
	Opacity float64
}

// Shape is one drawable primitive. A shape belongs to at most one canvas.
//
// Every mutation must happen on the UI thread of the shape's Env.
type Shape struct {
	env      *gui.Env
	kind     Kind
	attrs    Attributes
	resolved Resolved
	changed  property.Event[Attr]
	owner    any
}

// New creates a visible shape of the given kind with transparent colors.
func New(env *gui.Env, kind Kind) *Shape {
	return &Shape{
		env:  env,
		kind: kind,
		attrs: Attributes{
			Visible:    true,
			Foreground: gui.Black,
		},
	}
}

// NewRectangle creates a rectangle.
func NewRectangle(env *gui.Env) *Shape { return New(env, Rectangle) }

// NewCircle creates a circle.
func NewCircle(env *gui.Env) *Shape { return New(env, Circle) }

// NewText creates a text shape.
func NewText(env *gui.Env, text string, font gui.Font) *Shape {
	s := New(env, Text)
	s.attrs.Text = text
	s.attrs.Font = font
	return s
}

// Kind returns the primitive kind.
func (s *Shape) Kind() Kind { return s.kind }

// Attributes returns a copy of the current attributes.
func (s *Shape) Attributes() Attributes {
	a := s.attrs
	if a.Clip != nil {
		c := *a.Clip
		a.Clip = &c
	}
	return a
}

// Changed returns the event raised after every effective mutation with the
// set of attributes that changed.
func (s *Shape) Changed() *property.Event[Attr] {
	return &s.changed
}

// Update applies fn to a copy of the attributes and stores the result.
// Changed fires once, and only when something differs.
func (s *Shape) Update(fn func(a *Attributes)) error {
	if err := s.env.Check("Shape.Update"); err != nil {
		return fmt.Errorf("shape %s: %w", s.kind, err)
	}
	next := s.Attributes()
	fn(&next)
	if next.Clip != nil {
		c := *next.Clip
		next.Clip = &c
	}
	if d := s.attrs.diff(next); d != 0 {
		s.attrs = next
		s.changed.Emit(d)
	}
	return nil
}

// SetArea sets the element-relative area.
func (s *Shape) SetArea(r gui.Rect) error {
	return s.Update(func(a *Attributes) { a.Area = r })
}

// SetBackground sets the fill color.
func (s *Shape) SetBackground(c gui.RGBA) error {
	return s.Update(func(a *Attributes) { a.Background = c })
}

// SetBorder sets the border color and thickness.
func (s *Shape) SetBorder(c gui.RGBA, thickness float64) error {
	return s.Update(func(a *Attributes) {
		a.BorderColor = c
		a.BorderThickness = thickness
	})
}

// SetCornerRadius sets the corner radius of a rectangle.
func (s *Shape) SetCornerRadius(r float64) error {
	return s.Update(func(a *Attributes) { a.CornerRadius = r })
}

// SetZIndex sets the user z-index.
func (s *Shape) SetZIndex(z int) error {
	return s.Update(func(a *Attributes) { a.ZIndex = z })
}

// SetVisible shows or hides the shape. Hidden shapes stay registered with
// the engine and are skipped when drawing.
func (s *Shape) SetVisible(v bool) error {
	return s.Update(func(a *Attributes) { a.Visible = v })
}

// SetClip restricts drawing to r, relative to the element. Nil removes the clip.
func (s *Shape) SetClip(r *gui.Rect) error {
	return s.Update(func(a *Attributes) { a.Clip = r })
}

// SetText sets the string of a text shape.
func (s *Shape) SetText(text string) error {
	return s.Update(func(a *Attributes) { a.Text = text })
}

// SetFont sets the font of a text shape.
func (s *Shape) SetFont(f gui.Font) error {
	return s.Update(func(a *Attributes) { a.Font = f })
}

// SetForeground sets the glyph color of a text shape.
func (s *Shape) SetForeground(c gui.RGBA) error {
	return s.Update(func(a *Attributes) { a.Foreground = c })
}

// SetTexture fills a rectangle with a texture; gui.NoTexture reverts to
// the background color.
func (s *Shape) SetTexture(id gui.TextureID) error {
	return s.Update(func(a *Attributes) { a.Texture = id })
}

// Visible reports the visibility flag.
func (s *Shape) Visible() bool { return s.attrs.Visible }

// ZIndex returns the user z-index.
func (s *Shape) ZIndex() int { return s.attrs.ZIndex }

// Layers returns the background and foreground sub-layers of the shape.
func (s *Shape) Layers() (background, foreground int) {
	return Layers(s.attrs.ZIndex)
}

// Resolve computes the engine-facing state. origin is the absolute position
// of the owning element, clip the ambient clip in absolute coordinates and
// opacity the element opacity in [0, 1].
func (s *Shape) Resolve(origin gui.Point, clip gui.Rect, opacity float64) {
	area := s.attrs.Area.Translate(origin)
	if s.attrs.Clip != nil {
		clip = clip.Intersect(s.attrs.Clip.Translate(origin))
	}
	s.resolved = Resolved{
		Area:        area,
		Clip:        clip,
		Background:  s.attrs.Background.MulAlpha(opacity),
		BorderColor: s.attrs.BorderColor.MulAlpha(opacity),
		Foreground:  s.attrs.Foreground.MulAlpha(opacity),
		Opacity:     opacity,
	}
}

// Resolved returns the state computed by the last Resolve.
func (s *Shape) Resolved() Resolved { return s.resolved }

// IsOpaque reports whether every color the shape draws fully covers what
// lies beneath it. Text is never opaque: glyph edges are blended.
// Textured rectangles are classified by the engine, which knows the texture.
func (s *Shape) IsOpaque() bool {
	if s.kind == Text {
		return false
	}
	r := s.resolved
	if s.attrs.Texture == gui.NoTexture && !r.Background.IsOpaque() && !r.Background.IsTransparent() {
		return false
	}
	if s.attrs.BorderThickness > 0 && !r.BorderColor.IsOpaque() && !r.BorderColor.IsTransparent() {
		return false
	}
	return true
}

// Attach records owner as the shape's container. It fails when the shape
// already belongs to a different owner. Canvas calls it from AddShape.
func (s *Shape) Attach(owner any) error {
	if s.owner != nil && s.owner != owner {
		return ErrAttached
	}
	s.owner = owner
	return nil
}

// Detach clears the owner if it is owner.
func (s *Shape) Detach(owner any) {
	if s.owner == owner {
		s.owner = nil
	}
}

// Owner returns the current container, or nil.
func (s *Shape) Owner() any { return s.owner }

// Env returns the environment the shape was created with.
func (s *Shape) Env() *gui.Env { return s.env }

func (s *Shape) String() string {
	return fmt.Sprintf("%s%v z=%d", s.kind, s.attrs.Area, s.attrs.ZIndex)
}
