package export

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/amazon-ion/ion-go/ion"
	"github.com/beevik/etree"
	"go.uber.org/zap/zaptest"

	"eqgen/common"
	"eqgen/engine"
	"eqgen/scene"
)

func compileSource(t *testing.T, input string) Source {
	t.Helper()
	face := scene.DefaultFace()
	b := scene.New(face, nil)
	res, err := engine.Compile(input, b, engine.Options{Scale: 1, Log: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", input, err)
	}
	return Source{Scene: b, Root: res.Root, Face: face, Markup: input}
}

func TestSVG(t *testing.T) {
	src := compileSource(t, `\frac{a}{b}`)
	data, err := Render(src, Options{Format: common.OutputFmtSvg, PxPerEm: 50, Margin: 0.1})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("output is not XML: %v", err)
	}
	root := doc.SelectElement("svg")
	if root == nil {
		t.Fatal("svg element missing")
	}
	if root.SelectAttrValue("viewBox", "") == "" {
		t.Error("viewBox missing")
	}
	if got := root.FindElement("title"); got == nil || got.Text() != `\frac{a}{b}` {
		t.Error("markup is not kept in title")
	}

	paths := root.FindElements("//path")
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}
	classes := map[string]int{}
	for _, p := range paths {
		classes[p.SelectAttrValue("class", "")]++
		if !strings.HasPrefix(p.SelectAttrValue("d", ""), "M") {
			t.Errorf("path data %q does not start with move", p.SelectAttrValue("d", ""))
		}
	}
	if classes["glyph"] != 2 || classes["bar"] != 1 {
		t.Errorf("path classes = %v", classes)
	}
	if root.FindElement("//g[@class='numerator']") == nil || root.FindElement("//g[@class='denominator']") == nil {
		t.Error("construct groups are not preserved")
	}
}

func TestSVG_Rotation(t *testing.T) {
	src := compileSource(t, "abc")
	plain, err := SVG(src, Options{PxPerEm: 10})
	if err != nil {
		t.Fatal(err)
	}
	rotated, err := SVG(src, Options{PxPerEm: 10, Rotation: 90})
	if err != nil {
		t.Fatal(err)
	}
	attrs := func(data []byte) (string, string) {
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			t.Fatal(err)
		}
		svg := doc.SelectElement("svg")
		return svg.SelectAttrValue("width", ""), svg.SelectAttrValue("height", "")
	}
	w, h := attrs(plain)
	rw, rh := attrs(rotated)
	if w != rh || h != rw {
		t.Errorf("rotated size %sx%s, want %sx%s", rw, rh, h, w)
	}
}

func TestPNG(t *testing.T) {
	src := compileSource(t, `x^2`)
	data, err := Render(src, Options{Format: common.OutputFmtPng, PxPerEm: 40})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}

	data, err = Render(src, Options{Format: common.OutputFmtPng, PxPerEm: 40, Rotation: 270})
	if err != nil {
		t.Fatal(err)
	}
	rot, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != rot.Bounds().Dy() || img.Bounds().Dy() != rot.Bounds().Dx() {
		t.Errorf("rotated image %v, original %v", rot.Bounds(), img.Bounds())
	}

	small, err := Raster(src, Options{PxPerEm: 40, MaxWidth: 10})
	if err != nil {
		t.Fatal(err)
	}
	if small.Bounds().Dx() != 10 {
		t.Errorf("limited width = %d, want 10", small.Bounds().Dx())
	}
}

func TestRaster_Background(t *testing.T) {
	src := compileSource(t, `y`)
	img, err := Raster(src, Options{PxPerEm: 40, Margin: 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.Gray); !ok {
		t.Errorf("black on white raster is %T, want *image.Gray", img)
	}

	img, err = Raster(src, Options{PxPerEm: 40, Margin: 0.2, Transparent: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("margin of transparent raster has alpha %d", a)
	}
}

func TestIon(t *testing.T) {
	src := compileSource(t, `\sqrt{x}`)

	text, err := Render(src, Options{Format: common.OutputFmtIon, Ion: common.IonEncodingText})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"radical", "radicand", `"x"`} {
		if !bytes.Contains(text, []byte(want)) {
			t.Errorf("Ion text missing %s: %s", want, text)
		}
	}

	bin, err := Render(src, Options{Format: common.OutputFmtIon})
	if err != nil {
		t.Fatal(err)
	}
	var doc ionDocument
	if err := ion.Unmarshal(bin, &doc); err != nil {
		t.Fatalf("binary Ion does not decode: %v", err)
	}
	if doc.Root.Kind != "group" || len(doc.Root.Children) != 1 || doc.Root.Children[0].Role != "radical" {
		t.Errorf("unexpected tree: %+v", doc.Root)
	}
}

func TestRender_Rejects(t *testing.T) {
	src := compileSource(t, "a")
	if _, err := Render(src, Options{Format: common.OutputFmtSvg, Rotation: 45}); err == nil {
		t.Error("rotation by 45 must be rejected")
	}
	if _, err := Render(src, Options{Format: common.OutputFmt(42)}); err == nil {
		t.Error("unknown format must be rejected")
	}
	src.Face = nil
	if _, err := Render(src, Options{Format: common.OutputFmtSvg}); err == nil {
		t.Error("svg without face must fail")
	}
}
