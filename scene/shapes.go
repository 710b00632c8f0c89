package scene

import (
	"fmt"
	"math"

	"eqgen/layout"
)

// ShapeKind identifies elastic primitive.
type ShapeKind int

const (
	ShapeRadical ShapeKind = iota
	ShapeBar
	ShapeBracket
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRadical:
		return "radical"
	case ShapeBar:
		return "bar"
	case ShapeBracket:
		return "bracket"
	}
	return fmt.Sprintf("ShapeKind(%d)", k)
}

// Point in shape local coordinates.
type Point struct{ X, Y float64 }

// PathOp is a path drawing operation.
type PathOp int

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo
)

// Segment of a closed path. QuadTo uses Pts[0] as control point and
// Pts[1] as end point, other ops use Pts[0] only.
type Segment struct {
	Op  PathOp
	Pts [2]Point
}

// Path is a closed contour.
type Path []Segment

// Shape is a parametric primitive, its outline is computed from fitted
// extents. Fitting never makes shape smaller than its natural geometry.
type Shape struct {
	Kind ShapeKind
	// Bracket glyph and side, bracket shapes only.
	Bracket string
	Left    bool

	// Fitted extents in local units.
	Right, Top, Bottom float64
}

// Radical template: left hook, down stroke, up stroke and the bar.
const (
	radicalRight     = 0.9860
	radicalTop       = 1.2362
	radicalBottom    = 0.0400
	radicalThickness = 0.0593
	radicalStroke    = 0.1443
)

var radicalTemplate = [...]Point{
	{0, 0.6877},
	{0.1221, 0.6136},
	{0.1623, 0.6877},
	{0.3667, radicalBottom},
	{0.3667, radicalBottom + radicalStroke},
	{0.8941, radicalTop - radicalThickness},
	{0.8559, radicalTop},
	{radicalRight, radicalTop - radicalThickness},
	{radicalRight, radicalTop},
}

var radicalFaces = [][]int{{0, 1, 2}, {1, 2, 4, 3}, {4, 3, 5, 6}, {5, 6, 8, 7}}

const (
	barThickness     = 0.05
	bracketThickness = 0.06
)

var bracketWidths = map[string]float64{
	"[":  0.3,
	"]":  0.3,
	"(":  0.3,
	")":  0.3,
	"{":  0.35,
	"}":  0.35,
	"|":  0.16,
	"||": 0.3,
}

func newRadical() *Shape {
	return &Shape{Kind: ShapeRadical, Right: radicalRight, Top: radicalTop, Bottom: radicalBottom}
}

func newBar() *Shape {
	return &Shape{Kind: ShapeBar, Top: barThickness / 2, Bottom: -barThickness / 2}
}

func newBracket(kind string, left bool) (*Shape, error) {
	w, ok := bracketWidths[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported bracket '%s'", kind)
	}
	return &Shape{Kind: ShapeBracket, Bracket: kind, Left: left, Right: w, Top: 1}, nil
}

// Box returns local extents of the fitted shape.
func (s *Shape) Box() layout.Box {
	return layout.Box{MinX: 0, MinY: s.Bottom, MaxX: s.Right, MaxY: s.Top}
}

func (s *Shape) fit(target layout.Box) {
	switch s.Kind {
	case ShapeRadical:
		s.Right = math.Max(s.Right, target.MaxX)
		s.Top = math.Max(s.Top, target.MaxY)
		s.Bottom = math.Min(s.Bottom, target.MinY)
	case ShapeBar:
		s.Right = math.Max(s.Right, target.MaxX)
	case ShapeBracket:
		s.Top = math.Max(s.Top, target.MaxY)
	}
}

// Outline returns closed contours of the shape in local coordinates.
func (s *Shape) Outline() []Path {
	switch s.Kind {
	case ShapeRadical:
		return s.radical()
	case ShapeBar:
		return []Path{rect(0, s.Bottom, s.Right, s.Top)}
	case ShapeBracket:
		paths := s.bracket()
		if !s.Left {
			for _, p := range paths {
				p.mirror(s.Right)
			}
		}
		return paths
	}
	return nil
}

func (s *Shape) radical() []Path {
	v := radicalTemplate
	v[3].Y = s.Bottom
	v[4].Y = s.Bottom + radicalStroke
	v[5].Y = s.Top - radicalThickness
	v[6].Y = s.Top
	v[7] = Point{s.Right, s.Top - radicalThickness}
	v[8] = Point{s.Right, s.Top}

	out := make([]Path, 0, len(radicalFaces))
	for _, face := range radicalFaces {
		p := Path{{Op: MoveTo, Pts: [2]Point{v[face[0]]}}}
		for _, i := range face[1:] {
			p = append(p, Segment{Op: LineTo, Pts: [2]Point{v[i]}})
		}
		out = append(out, p)
	}
	return out
}

func (s *Shape) bracket() []Path {
	w, h, t := s.Right, s.Top, bracketThickness
	switch s.Bracket {
	case "|":
		return []Path{rect(w/2-t/2, 0, w/2+t/2, h)}
	case "||":
		return []Path{rect(w/4-t/2, 0, w/4+t/2, h), rect(3*w/4-t/2, 0, 3*w/4+t/2, h)}
	case "[", "]":
		x := w / 4
		return []Path{rect(x, 0, x+t, h), rect(x, h-t, w, h), rect(x, 0, w, t)}
	case "(", ")":
		return []Path{{
			{Op: MoveTo, Pts: [2]Point{{w, h}}},
			{Op: QuadTo, Pts: [2]Point{{0, h / 2}, {w, 0}}},
			{Op: LineTo, Pts: [2]Point{{w, t}}},
			{Op: QuadTo, Pts: [2]Point{{2 * t, h / 2}, {w, h - t}}},
		}}
	case "{", "}":
		x := w * 0.45
		return []Path{{
			{Op: MoveTo, Pts: [2]Point{{w, h}}},
			{Op: QuadTo, Pts: [2]Point{{x, h}, {x, h - w}}},
			{Op: LineTo, Pts: [2]Point{{x, h/2 + w/2}}},
			{Op: QuadTo, Pts: [2]Point{{x, h / 2}, {0, h / 2}}},
			{Op: QuadTo, Pts: [2]Point{{x, h / 2}, {x, h/2 - w/2}}},
			{Op: LineTo, Pts: [2]Point{{x, w}}},
			{Op: QuadTo, Pts: [2]Point{{x, 0}, {w, 0}}},
			{Op: LineTo, Pts: [2]Point{{w, t}}},
			{Op: QuadTo, Pts: [2]Point{{x + t, t}, {x + t, w}}},
			{Op: LineTo, Pts: [2]Point{{x + t, h/2 - w/2}}},
			{Op: QuadTo, Pts: [2]Point{{x + t, h / 2}, {2 * t, h / 2}}},
			{Op: QuadTo, Pts: [2]Point{{x + t, h / 2}, {x + t, h/2 + w/2}}},
			{Op: LineTo, Pts: [2]Point{{x + t, h - w}}},
			{Op: QuadTo, Pts: [2]Point{{x + t, h - t}, {w, h - t}}},
		}}
	}
	return nil
}

func rect(x0, y0, x1, y1 float64) Path {
	return Path{
		{Op: MoveTo, Pts: [2]Point{{x0, y0}}},
		{Op: LineTo, Pts: [2]Point{{x1, y0}}},
		{Op: LineTo, Pts: [2]Point{{x1, y1}}},
		{Op: LineTo, Pts: [2]Point{{x0, y1}}},
	}
}

func (p Path) mirror(w float64) {
	for i := range p {
		for j := range p[i].Pts {
			p[i].Pts[j].X = w - p[i].Pts[j].X
		}
	}
}
