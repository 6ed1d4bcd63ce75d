package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/property"
)

func newTestEnv(t *testing.T) *gui.Env {
	t.Helper()
	env := gui.NewEnv(gui.WithName(t.Name()))
	if err := env.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = env.Release() })
	return env
}

func newTestDemo(t *testing.T, sc *scene) *demo {
	t.Helper()
	d, err := newDemo(newTestEnv(t), sc)
	if err != nil {
		t.Fatalf("newDemo failed: %v", err)
	}
	t.Cleanup(func() { _ = d.close() })
	return d
}

func writeScene(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return path
}

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

const imageScene = `
width = 64
height = 64
background = "white"
frames = 1

[[widget]]
type = "image"
name = "pic"
x = 8
y = 8
  [widget.attrs]
  src = "red.png"
  width = "16"
  height = "16"
  smooth = "false"
`

func TestDefaultScene(t *testing.T) {
	sc, err := loadScene("")
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	sc.Width, sc.Height = 320, 200
	d := newTestDemo(t, sc)

	if err := d.build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(d.links) != len(sc.Bindings) {
		t.Errorf("expected %d links, got %d", len(sc.Bindings), len(d.links))
	}
	if err := d.run(sc.Frames); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	echo := d.widgets["echo"].(*label)
	if got := get(echo.text); got != "Pressed" {
		t.Errorf("expected the echo label to follow the caption, got %q", got)
	}
	radius := d.widgets["radius"].(*label)
	if got := get(radius.text); got != "16" {
		t.Errorf("expected the radius label to show 16, got %q", got)
	}
	ok := d.widgets["ok"].(*button)
	if got := ok.Opacity(); got != 0.5 {
		t.Errorf("expected the button to follow the title opacity, got %v", got)
	}
	if d.engine.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", d.engine.Frames())
	}
	if d.engine.RetainedCount() != 8 {
		t.Errorf("expected two shapes per widget retained, got %d", d.engine.RetainedCount())
	}
}

func TestImageWidget(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "red.png"), color.RGBA{0xff, 0, 0, 0xff})
	sc, err := loadScene(writeScene(t, dir, imageScene))
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	d := newTestDemo(t, sc)
	if err := d.build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := d.run(1); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	img := d.engine.Target().Image()
	if got := img.RGBAAt(12, 12); got != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("expected the picture drawn, got %v", got)
	}
	if got := img.RGBAAt(30, 30); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("expected background outside the picture, got %v", got)
	}

	pic := d.widgets["pic"].(*imageWidget)
	first := pic.texture
	if err := pic.set("width", "32"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := d.run(1); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if pic.texture == first || pic.loaded.w != 32 {
		t.Error("expected the picture reloaded at the new size")
	}
	if got := img.RGBAAt(36, 12); got != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("expected the wider picture drawn, got %v", got)
	}
}

func TestMissingImageReported(t *testing.T) {
	dir := t.TempDir()
	sc, err := loadScene(writeScene(t, dir, imageScene))
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	d := newTestDemo(t, sc)
	if err := d.build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := d.run(1); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a missing file error, got %v", err)
	}
	if got := d.engine.Target().Image().RGBAAt(12, 12); got == (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Error("expected the placeholder drawn")
	}
}

func TestBuildErrors(t *testing.T) {
	sc := &scene{
		Width:  32,
		Height: 32,
		Widgets: []widgetSpec{
			{Type: "label", Name: "a", Attrs: map[string]string{"size": "big", "colour": "red"}},
			{Type: "slider", Name: "b"},
			{Type: "button", Name: "c"},
		},
		Bindings: []bindingSpec{
			{Source: "c.radius", Target: "a.text", Direction: "two-ways"},
			{Source: "c.caption", Target: "a.missing"},
			{Source: "c.caption", Target: "nowhere.text"},
			{Source: "c.fill", Target: "a.size"},
		},
	}
	d := newTestDemo(t, sc)
	err := d.build()
	if err == nil {
		t.Fatal("expected build errors")
	}
	if !errors.Is(err, property.ErrUnknownAttribute) || !errors.Is(err, property.ErrMissingConverter) {
		t.Errorf("expected unknown attribute and converter errors, got %v", err)
	}
	for _, want := range []string{`"big"`, "slider", "nowhere", "cannot bind"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
	if len(d.links) != 0 {
		t.Errorf("expected no links, got %d", len(d.links))
	}
}

func TestSceneValidation(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"duplicate", "[[widget]]\nname = \"a\"\n[[widget]]\nname = \"a\"\n"},
		{"unnamed", "[[widget]]\ntype = \"label\"\n"},
		{"direction", "[[bind]]\nsource = \"a.b\"\ntarget = \"c.d\"\ndirection = \"sideways\"\n"},
		{"syntax", "width = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadScene(writeScene(t, dir, tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRootCommand(t *testing.T) {
	orig := gui.Logger()
	t.Cleanup(func() { gui.SetLogger(orig) })

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "red.png"), color.RGBA{0xff, 0, 0, 0xff})
	path := writeScene(t, dir, imageScene)
	out := filepath.Join(dir, "out.png")
	logPath := filepath.Join(dir, "guidemo.log")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"--scene", path, "--output", out, "--log-file", logPath, "-v"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(stdout.String(), "Rendered 1 frame(s)") {
		t.Errorf("unexpected output %q", stdout.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected %s written: %v", out, err)
	}
	logged, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(logged, []byte("guidemo: frame")) || !strings.Contains(stderr.String(), "guidemo: frame") {
		t.Error("expected frame records in the log file and on stderr")
	}
}

func TestAttributeKeys(t *testing.T) {
	if got := widgetTypes(); !slices.Equal(got, []string{"button", "image", "label"}) {
		t.Errorf("unexpected widget types %v", got)
	}
	keys, err := attributeKeys("label")
	if err != nil {
		t.Fatalf("attributeKeys failed: %v", err)
	}
	for _, k := range []string{"text", "color", "opacity"} {
		if !slices.Contains(keys, k) {
			t.Errorf("expected %q in %v", k, keys)
		}
	}
	if _, err := attributeKeys("slider"); err == nil {
		t.Error("expected an error for an unknown type")
	}
}
