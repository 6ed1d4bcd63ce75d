package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"slices"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/canvas"
	"github.com/gogpu/gui/property"
	"github.com/gogpu/gui/render"
	"github.com/gogpu/gui/shape"
)

// widget is a throwaway element type built on canvas.Element.
type widget interface {
	Name() string
	Dispose() error

	apply(attrs map[string]string) error
	set(key, raw string) error
	property(key string) (any, bool)
}

// backend is the part of the engine widgets use for layout and textures.
type backend interface {
	canvas.Engine
	ComputeTextSize(text string, font gui.Font) (gui.Size, error)
	CreateTexture(img render.Image, interpolate bool) (gui.TextureID, error)
	DeleteTexture(id gui.TextureID) error
}

type factory func(env *gui.Env, inv *canvas.Invalidator, b backend, spec widgetSpec, dir string) (widget, error)

var factories = map[string]factory{
	"label":  newLabel,
	"button": newButton,
	"image":  newImage,
}

var attributeSets = map[string]interface{ Keys() []string }{
	"label":  labelAttrs,
	"button": buttonAttrs,
	"image":  imageAttrs,
}

func widgetTypes() []string {
	types := make([]string, 0, len(attributeSets))
	for t := range attributeSets {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

func attributeKeys(typ string) ([]string, error) {
	set, ok := attributeSets[typ]
	if !ok {
		return nil, fmt.Errorf("unknown widget type %q", typ)
	}
	return set.Keys(), nil
}

// get reads a property from a render callback, which always runs on the
// UI thread.
func get[T any](p *property.Property[T]) T {
	v, _ := p.Get()
	return v
}

// base holds what every widget shares.
type base struct {
	*canvas.Element
	props map[string]any
}

func newBase(env *gui.Env, inv *canvas.Invalidator, b backend, spec widgetSpec, layout func() error) (base, error) {
	el, err := canvas.NewElement(env, inv, spec.Name,
		canvas.WithOrigin(gui.Pt(spec.X, spec.Y)),
		canvas.WithEngine(b),
		canvas.WithOnRender(func(*canvas.Element) error { return layout() }),
	)
	if err != nil {
		return base{}, err
	}
	return base{Element: el, props: map[string]any{"opacity": el.OpacityProperty()}}, nil
}

func (b *base) property(key string) (any, bool) {
	p, ok := b.props[key]
	return p, ok
}

func (b *base) addShapes(shapes ...*shape.Shape) error {
	var errs []error
	for _, s := range shapes {
		errs = append(errs, b.AddShape(s))
	}
	return errors.Join(errs...)
}

type opacityOwner interface {
	OpacityProperty() *property.Property[float64]
}

func opacityOf[E opacityOwner](e E) *property.Property[float64] {
	return e.OpacityProperty()
}

// label draws a line of text over an optional background.
type label struct {
	base
	text       *property.Property[string]
	color      *property.Property[gui.RGBA]
	background *property.Property[gui.RGBA]
	size       *property.Property[float64]
	family     *property.Property[string]

	measure backend
	fill    *shape.Shape
	glyphs  *shape.Shape
}

const labelPadding = 4

var labelAttrs = property.NewRegistry[*label]("Label")

func init() {
	property.Register(labelAttrs, "text", func(l *label) *property.Property[string] { return l.text }, property.ParseString)
	property.Register(labelAttrs, "color", func(l *label) *property.Property[gui.RGBA] { return l.color }, property.ParseColor)
	property.Register(labelAttrs, "background", func(l *label) *property.Property[gui.RGBA] { return l.background }, property.ParseColor)
	property.Register(labelAttrs, "size", func(l *label) *property.Property[float64] { return l.size }, property.ParseFloat)
	property.Register(labelAttrs, "family", func(l *label) *property.Property[string] { return l.family }, property.ParseString)
	property.Register(labelAttrs, "opacity", opacityOf[*label], property.ParseFloat)
}

func newLabel(env *gui.Env, inv *canvas.Invalidator, b backend, spec widgetSpec, _ string) (widget, error) {
	l := &label{measure: b}
	var err error
	if l.base, err = newBase(env, inv, b, spec, l.layout); err != nil {
		return nil, err
	}
	owner := property.WithOwner(l.Element)
	l.text = property.New(env, "Text", "", owner)
	l.color = property.New(env, "Color", gui.Black, owner)
	l.background = property.New(env, "Background", gui.Transparent, owner)
	l.size = property.New(env, "Size", float64(gui.DefaultFontSize), owner)
	l.family = property.New(env, "Family", gui.DefaultFontFamily, owner)
	l.props["text"], l.props["color"], l.props["background"] = l.text, l.color, l.background
	l.props["size"], l.props["family"] = l.size, l.family

	l.fill = shape.NewRectangle(env)
	l.glyphs = shape.NewText(env, "", gui.Font{})
	return l, l.addShapes(l.fill, l.glyphs)
}

func (l *label) apply(attrs map[string]string) error { return labelAttrs.Apply(l, attrs) }
func (l *label) set(key, raw string) error           { return labelAttrs.Set(l, key, raw) }

func (l *label) layout() error {
	text := get(l.text)
	font := gui.Font{Family: get(l.family), Size: get(l.size)}
	sz, err := l.measure.ComputeTextSize(text, font)
	if err != nil {
		return err
	}
	area := gui.R(0, 0, sz.W+2*labelPadding, sz.H+2*labelPadding)
	return errors.Join(
		l.fill.Update(func(a *shape.Attributes) {
			a.Area = area
			a.Background = get(l.background)
		}),
		l.glyphs.Update(func(a *shape.Attributes) {
			a.Area = area.Inset(labelPadding)
			a.Text = text
			a.Font = font
			a.Foreground = get(l.color)
			a.ZIndex = 1
		}),
	)
}

// button is a rounded, bordered rectangle with a centered caption.
type button struct {
	base
	caption   *property.Property[string]
	fill      *property.Property[gui.RGBA]
	border    *property.Property[gui.RGBA]
	textColor *property.Property[gui.RGBA]
	radius    *property.Property[float64]
	width     *property.Property[float64]
	height    *property.Property[float64]

	measure backend
	body    *shape.Shape
	label   *shape.Shape
}

const buttonBorder = 2

var buttonAttrs = property.NewRegistry[*button]("Button")

func init() {
	property.Register(buttonAttrs, "caption", func(b *button) *property.Property[string] { return b.caption }, property.ParseString)
	property.Register(buttonAttrs, "fill", func(b *button) *property.Property[gui.RGBA] { return b.fill }, property.ParseColor)
	property.Register(buttonAttrs, "border", func(b *button) *property.Property[gui.RGBA] { return b.border }, property.ParseColor)
	property.Register(buttonAttrs, "text-color", func(b *button) *property.Property[gui.RGBA] { return b.textColor }, property.ParseColor)
	property.Register(buttonAttrs, "radius", func(b *button) *property.Property[float64] { return b.radius }, property.ParseFloat)
	property.Register(buttonAttrs, "width", func(b *button) *property.Property[float64] { return b.width }, property.ParseFloat)
	property.Register(buttonAttrs, "height", func(b *button) *property.Property[float64] { return b.height }, property.ParseFloat)
	property.Register(buttonAttrs, "opacity", opacityOf[*button], property.ParseFloat)
}

func newButton(env *gui.Env, inv *canvas.Invalidator, be backend, spec widgetSpec, _ string) (widget, error) {
	b := &button{measure: be}
	var err error
	if b.base, err = newBase(env, inv, be, spec, b.layout); err != nil {
		return nil, err
	}
	owner := property.WithOwner(b.Element)
	b.caption = property.New(env, "Caption", "", owner)
	b.fill = property.New(env, "Fill", gui.Gray, owner)
	b.border = property.New(env, "Border", gui.Black, owner)
	b.textColor = property.New(env, "TextColor", gui.Black, owner)
	b.radius = property.New(env, "Radius", 4.0, owner)
	b.width = property.New(env, "Width", 96.0, owner)
	b.height = property.New(env, "Height", 32.0, owner)
	b.props["caption"], b.props["fill"], b.props["border"] = b.caption, b.fill, b.border
	b.props["text-color"], b.props["radius"] = b.textColor, b.radius
	b.props["width"], b.props["height"] = b.width, b.height

	b.body = shape.NewRectangle(env)
	b.label = shape.NewText(env, "", gui.Font{})
	return b, b.addShapes(b.body, b.label)
}

func (b *button) apply(attrs map[string]string) error { return buttonAttrs.Apply(b, attrs) }
func (b *button) set(key, raw string) error           { return buttonAttrs.Set(b, key, raw) }

func (b *button) layout() error {
	w := math.Max(get(b.width), 2*buttonBorder)
	h := math.Max(get(b.height), 2*buttonBorder)
	caption := get(b.caption)
	sz, err := b.measure.ComputeTextSize(caption, gui.Font{})
	if err != nil {
		return err
	}
	return errors.Join(
		b.body.Update(func(a *shape.Attributes) {
			a.Area = gui.R(0, 0, w, h)
			a.Background = get(b.fill)
			a.BorderColor = get(b.border)
			a.BorderThickness = buttonBorder
			a.CornerRadius = math.Min(math.Max(get(b.radius), 0), math.Min(w, h)/2)
		}),
		b.label.Update(func(a *shape.Attributes) {
			a.Area = gui.R((w-sz.W)/2, (h-sz.H)/2, sz.W, sz.H)
			a.Text = caption
			a.Foreground = get(b.textColor)
			a.ZIndex = 1
		}),
	)
}

// imageWidget shows a picture file scaled to its size.
type imageWidget struct {
	base
	src    *property.Property[string]
	width  *property.Property[float64]
	height *property.Property[float64]
	smooth *property.Property[bool]

	textures backend
	dir      string
	picture  *shape.Shape
	loaded   textureKey
	texture  gui.TextureID
}

type textureKey struct {
	src    string
	w, h   int
	smooth bool
}

var imageAttrs = property.NewRegistry[*imageWidget]("Image")

func init() {
	property.Register(imageAttrs, "src", func(im *imageWidget) *property.Property[string] { return im.src }, property.ParseString)
	property.Register(imageAttrs, "width", func(im *imageWidget) *property.Property[float64] { return im.width }, property.ParseFloat)
	property.Register(imageAttrs, "height", func(im *imageWidget) *property.Property[float64] { return im.height }, property.ParseFloat)
	property.Register(imageAttrs, "smooth", func(im *imageWidget) *property.Property[bool] { return im.smooth }, property.ParseBool)
	property.Register(imageAttrs, "opacity", opacityOf[*imageWidget], property.ParseFloat)
}

func newImage(env *gui.Env, inv *canvas.Invalidator, b backend, spec widgetSpec, dir string) (widget, error) {
	im := &imageWidget{textures: b, dir: dir}
	var err error
	if im.base, err = newBase(env, inv, b, spec, im.layout); err != nil {
		return nil, err
	}
	owner := property.WithOwner(im.Element)
	im.src = property.New(env, "Src", "", owner)
	im.width = property.New(env, "Width", 64.0, owner)
	im.height = property.New(env, "Height", 64.0, owner)
	im.smooth = property.New(env, "Smooth", true, owner)
	im.props["src"], im.props["width"], im.props["height"], im.props["smooth"] = im.src, im.width, im.height, im.smooth

	im.picture = shape.NewRectangle(env)
	return im, im.addShapes(im.picture)
}

func (im *imageWidget) apply(attrs map[string]string) error { return imageAttrs.Apply(im, attrs) }
func (im *imageWidget) set(key, raw string) error           { return imageAttrs.Set(im, key, raw) }

func (im *imageWidget) layout() error {
	key := textureKey{
		src:    get(im.src),
		w:      max(int(get(im.width)), 1),
		h:      max(int(get(im.height)), 1),
		smooth: get(im.smooth),
	}
	var errs []error
	if key != im.loaded {
		id := gui.NoTexture
		if key.src != "" {
			var err error
			if id, err = im.load(key); err != nil {
				errs = append(errs, err)
			}
		}
		if im.texture != gui.NoTexture {
			errs = append(errs, im.textures.DeleteTexture(im.texture))
		}
		im.texture, im.loaded = id, key
	}
	errs = append(errs, im.picture.Update(func(a *shape.Attributes) {
		a.Area = gui.R(0, 0, float64(key.w), float64(key.h))
		a.Texture = im.texture
		a.Background = gui.Gray
	}))
	return errors.Join(errs...)
}

// load decodes the picture and scales it to the widget size.
func (im *imageWidget) load(key textureKey) (gui.TextureID, error) {
	path := key.src
	if !filepath.IsAbs(path) {
		path = filepath.Join(im.dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return gui.NoTexture, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return gui.NoTexture, fmt.Errorf("decode %s: %w", path, err)
	}

	var scaler xdraw.Interpolator = xdraw.NearestNeighbor
	if key.smooth {
		scaler = xdraw.BiLinear
	}
	dst := image.NewRGBA(image.Rect(0, 0, key.w, key.h))
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return im.textures.CreateTexture(render.ImageFromRGBA(dst), key.smooth)
}
