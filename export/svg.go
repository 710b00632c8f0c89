package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"eqgen/layout"
	"eqgen/scene"
)

const svgNS = "http://www.w3.org/2000/svg"

// canvas maps scene coordinates to SVG user space.
type canvas struct {
	box    layout.Box
	margin float64
	px     float64
}

func newCanvas(src Source, opts Options) canvas {
	box, ok := src.Scene.Bounds(src.Root)
	if !ok {
		box = layout.Box{}
	}
	return canvas{box: box, margin: opts.Margin, px: opts.PxPerEm}
}

func (c canvas) width() float64 {
	return (c.box.Width() + 2*c.margin) * c.px
}

func (c canvas) height() float64 {
	return (c.box.Height() + 2*c.margin) * c.px
}

func (c canvas) point(x, y float64) (float64, float64) {
	return (x - c.box.MinX + c.margin) * c.px, (c.box.MaxY - y + c.margin) * c.px
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// pathData writes contours using mapping of local shape points.
func pathData(paths []scene.Path, to func(scene.Point) (float64, float64)) string {
	var sb strings.Builder
	for _, p := range paths {
		for _, s := range p {
			x, y := to(s.Pts[0])
			switch s.Op {
			case scene.MoveTo:
				fmt.Fprintf(&sb, "M%s %s", num(x), num(y))
			case scene.LineTo:
				fmt.Fprintf(&sb, "L%s %s", num(x), num(y))
			case scene.QuadTo:
				ex, ey := to(s.Pts[1])
				fmt.Fprintf(&sb, "Q%s %s %s %s", num(x), num(y), num(ex), num(ey))
			}
		}
		sb.WriteString("Z")
	}
	return sb.String()
}

// SVG renders scene as standalone SVG document, glyphs are converted to
// outlines so document does not depend on fonts.
func SVG(src Source, opts Options) ([]byte, error) {
	if src.Face == nil {
		return nil, fmt.Errorf("font face is required to export glyph outlines")
	}
	c := newCanvas(src, opts)
	w, h := c.width(), c.height()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNS)
	outW, outH := w, h
	if opts.Rotation == 90 || opts.Rotation == 270 {
		outW, outH = h, w
	}
	svg.CreateAttr("width", num(outW))
	svg.CreateAttr("height", num(outH))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", num(outW), num(outH)))
	if src.Markup != "" {
		svg.CreateElement("title").SetText(src.Markup)
	}

	top := svg.CreateElement("g")
	top.CreateAttr("fill", "#000000")
	switch opts.Rotation {
	case 90:
		top.CreateAttr("transform", fmt.Sprintf("translate(%s 0) rotate(90)", num(h)))
	case 180:
		top.CreateAttr("transform", fmt.Sprintf("translate(%s %s) rotate(180)", num(w), num(h)))
	case 270:
		top.CreateAttr("transform", fmt.Sprintf("translate(0 %s) rotate(270)", num(w)))
	}

	outlines := make(map[string][]scene.Path)
	parents := map[layout.Handle]*etree.Element{}
	var failure error
	src.Scene.Walk(src.Root, func(hnd layout.Handle, n *scene.Node, depth int) bool {
		if failure != nil {
			return false
		}
		parent := top
		if depth > 0 {
			parent = parents[src.Scene.Parent(hnd)]
		}
		if n.Kind == scene.KindGroup {
			g := parent
			if depth > 0 {
				g = parent.CreateElement("g")
				g.CreateAttr("class", n.Role)
			}
			parents[hnd] = g
			return true
		}

		var (
			paths []scene.Path
			s     = n.Scale
			class string
		)
		if n.Kind == scene.KindGlyph {
			p, ok := outlines[n.Text]
			if !ok {
				var err error
				if p, err = src.Face.Outline(n.Text); err != nil {
					failure = fmt.Errorf("unable to outline %q: %w", n.Text, err)
					return false
				}
				outlines[n.Text] = p
			}
			paths, s, class = p, n.Scale*n.Prescale, "glyph"
		} else {
			paths, class = n.Shape.Outline(), n.Shape.Kind.String()
		}
		if len(paths) == 0 {
			return true
		}
		el := parent.CreateElement("path")
		el.CreateAttr("class", class)
		el.CreateAttr("d", pathData(paths, func(p scene.Point) (float64, float64) {
			return c.point(n.X+p.X*s, n.Y+p.Y*s)
		}))
		return true
	})
	if failure != nil {
		return nil, failure
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("unable to write svg: %w", err)
	}
	return buf.Bytes(), nil
}
