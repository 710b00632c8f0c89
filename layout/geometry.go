// Package layout holds the mutable layout state of a single compile and the
// scaling rules every placement follows.
package layout

import "math"

// Handle addresses an element or a group created by a renderer. Zero handle
// is never valid.
type Handle uint32

// Box is an axis aligned bounding box, y axis points up.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBox is the neutral element for Union.
var EmptyBox = Box{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}

func (b Box) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxX - b.MinX
}

func (b Box) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxY - b.MinY
}

func (b Box) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Union returns smallest box containing both.
func (b Box) Union(o Box) Box {
	return Box{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Transform maps box from local coordinates of an element placed at (x, y)
// with given scale.
func (b Box) Transform(x, y, scale float64) Box {
	if b.IsEmpty() {
		return b
	}
	return Box{
		MinX: x + b.MinX*scale,
		MinY: y + b.MinY*scale,
		MaxX: x + b.MaxX*scale,
		MaxY: y + b.MaxY*scale,
	}
}

// Translate moves box by given offsets.
func (b Box) Translate(dx, dy float64) Box {
	if b.IsEmpty() {
		return b
	}
	return Box{MinX: b.MinX + dx, MinY: b.MinY + dy, MaxX: b.MaxX + dx, MaxY: b.MaxY + dy}
}
