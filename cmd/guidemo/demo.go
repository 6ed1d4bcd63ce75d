package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/canvas"
	"github.com/gogpu/gui/property"
	"github.com/gogpu/gui/render"
)

// demo owns the engine, the frame driver and the widget tree of a scene.
type demo struct {
	env    *gui.Env
	scene  *scene
	engine *render.SoftwareEngine
	inv    *canvas.Invalidator
	driver *canvas.FrameDriver

	widgets map[string]widget
	order   []widget
	links   []*property.Link
}

func newDemo(env *gui.Env, sc *scene) (*demo, error) {
	bg, err := sc.background()
	if err != nil {
		return nil, err
	}
	engine, err := render.NewSoftwareEngine(env, sc.Width, sc.Height)
	if err != nil {
		return nil, err
	}
	inv := canvas.NewInvalidator(env)
	return &demo{
		env:     env,
		scene:   sc,
		engine:  engine,
		inv:     inv,
		driver:  canvas.NewFrameDriver(env, inv, engine, canvas.WithBackground(bg)),
		widgets: make(map[string]widget),
	}, nil
}

// build creates the widgets, applies their attributes and wires the
// bindings. Attribute failures are reported together.
func (d *demo) build() error {
	var errs []error
	for _, spec := range d.scene.Widgets {
		create, ok := factories[spec.Type]
		if !ok {
			errs = append(errs, fmt.Errorf("widget %s: unknown type %q", spec.Name, spec.Type))
			continue
		}
		w, err := create(d.env, d.inv, d.engine, spec, d.scene.dir)
		if err != nil {
			return fmt.Errorf("widget %s: %w", spec.Name, err)
		}
		d.widgets[spec.Name] = w
		d.order = append(d.order, w)
		if err := w.apply(spec.Attrs); err != nil {
			errs = append(errs, err)
		}
	}

	for _, b := range d.scene.Bindings {
		link, err := d.bind(b)
		if err != nil {
			errs = append(errs, fmt.Errorf("bind %s -> %s: %w", b.Source, b.Target, err))
			continue
		}
		d.links = append(d.links, link)
		gui.Logger().Info("guidemo: bound", "link", link.String())
	}
	return errors.Join(errs...)
}

func (d *demo) lookup(ref string) (widget, string, error) {
	name, attr, err := splitRef(ref)
	if err != nil {
		return nil, "", err
	}
	w, ok := d.widgets[name]
	if !ok {
		return nil, "", fmt.Errorf("scene: unknown widget %q", name)
	}
	return w, attr, nil
}

func (d *demo) resolve(ref string) (any, error) {
	w, attr, err := d.lookup(ref)
	if err != nil {
		return nil, err
	}
	p, ok := w.property(attr)
	if !ok {
		return nil, fmt.Errorf("%w: %s", property.ErrUnknownAttribute, ref)
	}
	return p, nil
}

func (d *demo) bind(b bindingSpec) (*property.Link, error) {
	dir, err := parseDirection(b.Direction)
	if err != nil {
		return nil, err
	}
	src, err := d.resolve(b.Source)
	if err != nil {
		return nil, err
	}
	dst, err := d.resolve(b.Target)
	if err != nil {
		return nil, err
	}
	return bindProperties(src, dst, dir)
}

// bindProperties links two properties of the supported widget types.
// Numbers and colors may flow into text one way.
func bindProperties(src, dst any, dir property.Direction) (*property.Link, error) {
	switch s := src.(type) {
	case *property.Property[string]:
		if d, ok := dst.(*property.Property[string]); ok {
			return property.BindSame(s, d, dir)
		}
	case *property.Property[bool]:
		if d, ok := dst.(*property.Property[bool]); ok {
			return property.BindSame(s, d, dir)
		}
	case *property.Property[float64]:
		switch d := dst.(type) {
		case *property.Property[float64]:
			return property.BindSame(s, d, dir)
		case *property.Property[string]:
			return property.Bind(s, d, dir, property.Func(formatNumber, nil))
		}
	case *property.Property[gui.RGBA]:
		switch d := dst.(type) {
		case *property.Property[gui.RGBA]:
			return property.BindSame(s, d, dir)
		case *property.Property[string]:
			return property.Bind(s, d, dir, property.Func(gui.RGBA.String, nil))
		}
	}
	return nil, fmt.Errorf("cannot bind %T to %T", src, dst)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// applySteps sets the attributes scripted for frame.
func (d *demo) applySteps(frame int) error {
	var errs []error
	for _, st := range d.scene.Steps {
		if st.Frame != frame {
			continue
		}
		w, attr, err := d.lookup(st.Target)
		if err == nil {
			err = w.set(attr, st.Value)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("frame %d: %w", frame, err))
		}
	}
	return errors.Join(errs...)
}

// run renders frames. A failing frame is logged and the next one still
// renders.
func (d *demo) run(frames int) error {
	var errs []error
	for f := 1; f <= frames; f++ {
		if err := d.applySteps(f); err != nil {
			errs = append(errs, err)
		}
		stats, err := d.driver.RenderFrame()
		if err != nil {
			errs = append(errs, err)
		}
		es := d.engine.Stats()
		gui.Logger().Info("guidemo: frame",
			"frame", stats.Frame,
			"repainted", stats.Repainted,
			"failed", stats.Failed,
			"submitted", es.Submitted,
			"opaque", es.Opaque,
			"transparent", es.Transparent,
			"duration", stats.Duration)
	}
	return errors.Join(errs...)
}

func (d *demo) close() error {
	var errs []error
	for _, l := range d.links {
		errs = append(errs, l.Unbind())
	}
	for _, w := range d.order {
		errs = append(errs, w.Dispose())
	}
	errs = append(errs, d.engine.Close())
	return errors.Join(errs...)
}
