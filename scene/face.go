package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/h2non/filetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"eqgen/layout"
)

// Face provides glyph metrics and outlines of a TrueType or OpenType font
// normalized to 1 em. Face is not safe for concurrent use.
type Face struct {
	Name string

	font *sfnt.Font
	buf  sfnt.Buffer
	ppem fixed.Int26_6
	upem float64
}

// DefaultFace returns Go Regular font.
func DefaultFace() *Face {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("embedded font is broken: %v", err))
	}
	return newFace("Go Regular", f)
}

// LoadFace reads font file, only ttf and otf files are accepted.
func LoadFace(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read font: %w", err)
	}
	return ParseFace(path, data)
}

// ParseFace parses font data, name is used for diagnostics only.
func ParseFace(name string, data []byte) (*Face, error) {
	if !filetype.Is(data, "ttf") && !filetype.Is(data, "otf") {
		return nil, fmt.Errorf("font '%s' is neither TrueType nor OpenType", name)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse font '%s': %w", name, err)
	}
	return newFace(name, f), nil
}

func newFace(name string, f *sfnt.Font) *Face {
	upem := int(f.UnitsPerEm())
	return &Face{Name: name, font: f, ppem: fixed.I(upem), upem: float64(upem)}
}

func (f *Face) em(v fixed.Int26_6) float64 {
	return float64(v) / 64 / f.upem
}

// Measure returns advance and ink extents of text at 1 em.
func (f *Face) Measure(text string) layout.Box {
	var (
		x      fixed.Int26_6
		ink    = fixed.Rectangle26_6{}
		inked  bool
		prev   sfnt.GlyphIndex
		hasPrv bool
	)
	for _, r := range text {
		gi, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		if hasPrv {
			if k, err := f.font.Kern(&f.buf, prev, gi, f.ppem, font.HintingNone); err == nil {
				x += k
			}
		}
		bounds, adv, err := f.font.GlyphBounds(&f.buf, gi, f.ppem, font.HintingNone)
		if err != nil {
			continue
		}
		if !bounds.Empty() {
			bounds = bounds.Add(fixed.Point26_6{X: x})
			if inked {
				ink = ink.Union(bounds)
			} else {
				ink, inked = bounds, true
			}
		}
		x += adv
		prev, hasPrv = gi, true
	}

	box := layout.Box{MaxX: f.em(x)}
	if inked {
		// sfnt y axis points down
		box.MinY = -f.em(ink.Max.Y)
		box.MaxY = -f.em(ink.Min.Y)
	}
	return box
}

// Outline returns glyph contours of text at 1 em with y axis pointing up.
func (f *Face) Outline(text string) ([]Path, error) {
	var (
		out    []Path
		cur    Path
		x      fixed.Int26_6
		prev   sfnt.GlyphIndex
		hasPrv bool
	)
	pt := func(p fixed.Point26_6) Point {
		return Point{X: f.em(p.X + x), Y: -f.em(p.Y)}
	}
	for _, r := range text {
		gi, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			return nil, fmt.Errorf("glyph for %q: %w", r, err)
		}
		if hasPrv {
			if k, err := f.font.Kern(&f.buf, prev, gi, f.ppem, font.HintingNone); err == nil {
				x += k
			}
		}
		segs, err := f.font.LoadGlyph(&f.buf, gi, f.ppem, nil)
		if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
			return nil, fmt.Errorf("outline for %q: %w", r, err)
		}
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				if len(cur) > 0 {
					out = append(out, cur)
				}
				cur = Path{{Op: MoveTo, Pts: [2]Point{pt(s.Args[0])}}}
			case sfnt.SegmentOpLineTo:
				cur = append(cur, Segment{Op: LineTo, Pts: [2]Point{pt(s.Args[0])}})
			case sfnt.SegmentOpQuadTo:
				cur = append(cur, Segment{Op: QuadTo, Pts: [2]Point{pt(s.Args[0]), pt(s.Args[1])}})
			case sfnt.SegmentOpCubeTo:
				// approximated by a quad through averaged control points
				c := fixed.Point26_6{X: (s.Args[0].X + s.Args[1].X) / 2, Y: (s.Args[0].Y + s.Args[1].Y) / 2}
				cur = append(cur, Segment{Op: QuadTo, Pts: [2]Point{pt(c), pt(s.Args[2])}})
			}
		}
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
		adv, err := f.font.GlyphAdvance(&f.buf, gi, f.ppem, font.HintingNone)
		if err == nil {
			x += adv
		}
		prev, hasPrv = gi, true
	}
	return out, nil
}

// Monospace measures every rune as a box of the same size. It keeps
// layout independent of font files.
type Monospace struct {
	Advance float64
	Ascent  float64
}

func (m Monospace) Measure(text string) layout.Box {
	n := 0
	for range text {
		n++
	}
	if n == 0 {
		return layout.Box{}
	}
	return layout.Box{MinX: 0, MinY: 0, MaxX: float64(n) * m.Advance, MaxY: m.Ascent}
}
