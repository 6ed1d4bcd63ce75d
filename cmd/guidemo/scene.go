package main

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/property"
)

//go:embed default.toml
var defaultScene string

// scene is the decoded TOML scene file.
type scene struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Frames     int    `toml:"frames"`
	Output     string `toml:"output"`

	Widgets  []widgetSpec  `toml:"widget"`
	Bindings []bindingSpec `toml:"bind"`
	Steps    []stepSpec    `toml:"step"`

	// dir resolves relative image paths.
	dir string
}

type widgetSpec struct {
	Type  string            `toml:"type"`
	Name  string            `toml:"name"`
	X     float64           `toml:"x"`
	Y     float64           `toml:"y"`
	Attrs map[string]string `toml:"attrs"`
}

// bindingSpec links two widget properties named "widget.attribute".
type bindingSpec struct {
	Source    string `toml:"source"`
	Target    string `toml:"target"`
	Direction string `toml:"direction"`
}

// stepSpec sets one attribute before the given frame is rendered.
type stepSpec struct {
	Frame  int    `toml:"frame"`
	Target string `toml:"target"`
	Value  string `toml:"value"`
}

// loadScene decodes path, or the built-in scene when path is empty.
func loadScene(path string) (*scene, error) {
	var sc scene
	var md toml.MetaData
	var err error
	if path == "" {
		md, err = toml.Decode(defaultScene, &sc)
	} else {
		md, err = toml.DecodeFile(path, &sc)
		sc.dir = filepath.Dir(path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	for _, key := range md.Undecoded() {
		gui.Logger().Warn("guidemo: unknown scene key", "key", key.String())
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *scene) validate() error {
	seen := make(map[string]bool, len(sc.Widgets))
	for i, w := range sc.Widgets {
		if w.Name == "" {
			return fmt.Errorf("scene: widget %d has no name", i)
		}
		if seen[w.Name] {
			return fmt.Errorf("scene: duplicate widget %q", w.Name)
		}
		seen[w.Name] = true
	}
	for _, b := range sc.Bindings {
		if _, err := parseDirection(b.Direction); err != nil {
			return err
		}
	}
	return nil
}

func (sc *scene) background() (gui.RGBA, error) {
	if sc.Background == "" {
		return gui.White, nil
	}
	return gui.ParseColor(sc.Background)
}

// splitRef splits "widget.attribute".
func splitRef(ref string) (widget, attr string, err error) {
	widget, attr, ok := strings.Cut(ref, ".")
	if !ok || widget == "" || attr == "" {
		return "", "", fmt.Errorf("scene: reference %q is not widget.attribute", ref)
	}
	return widget, attr, nil
}

func parseDirection(s string) (property.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "source-to-destination":
		return property.SourceToDestination, nil
	case "destination-to-source":
		return property.DestinationToSource, nil
	case "two-ways":
		return property.TwoWays, nil
	default:
		return 0, fmt.Errorf("scene: unknown binding direction %q", s)
	}
}
