// Package scene is an in-memory element tree which implements layout
// renderer. All positions are kept in absolute coordinates, y axis points up.
package scene

import (
	"fmt"

	"eqgen/layout"
	"eqgen/symbols"
)

// BigOperatorScale is baked into natural geometry of aggregate symbols.
const BigOperatorScale = 3.5

var bigOperators = map[string]bool{"∑": true, "∫": true, "∏": true}

// Kind of scene node.
type Kind int

const (
	KindGroup Kind = iota
	KindGlyph
	KindShape
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindGlyph:
		return "glyph"
	case KindShape:
		return "shape"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Measurer supplies natural extents of text at scale 1: advance along x
// and ink along y, origin at baseline.
type Measurer interface {
	Measure(text string) layout.Box
}

// Node is a single scene element.
type Node struct {
	Kind Kind
	// Role names the construct a group was created for.
	Role string
	// Text of glyph nodes.
	Text string
	// Shape of primitive nodes.
	Shape *Shape
	// Position and scale of leaves.
	X, Y, Scale float64
	// Prescale is applied to glyph geometry before Scale.
	Prescale float64

	natural  layout.Box
	parent   layout.Handle
	children []layout.Handle
	alive    bool
}

// Builder owns scene nodes and hands out handles to them.
type Builder struct {
	nodes   []*Node
	measure Measurer
	table   *symbols.Table
	root    layout.Handle
}

// New creates empty scene with a root group.
func New(m Measurer, table *symbols.Table) *Builder {
	if table == nil {
		table = symbols.Default()
	}
	b := &Builder{
		nodes:   []*Node{nil},
		measure: m,
		table:   table,
	}
	b.root = b.add(&Node{Kind: KindGroup, Role: "root"})
	return b
}

func (b *Builder) add(n *Node) layout.Handle {
	n.alive = true
	if n.Scale == 0 {
		n.Scale = 1
	}
	b.nodes = append(b.nodes, n)
	return layout.Handle(len(b.nodes) - 1)
}

// Node returns node for handle or nil if handle is not valid.
func (b *Builder) Node(h layout.Handle) *Node {
	if h == 0 || int(h) >= len(b.nodes) || !b.nodes[h].alive {
		return nil
	}
	return b.nodes[h]
}

// Children returns handles of group members in creation order.
func (b *Builder) Children(h layout.Handle) []layout.Handle {
	n := b.Node(h)
	if n == nil {
		return nil
	}
	return append([]layout.Handle(nil), n.children...)
}

// Parent returns handle of the group node belongs to, 0 for detached nodes.
func (b *Builder) Parent(h layout.Handle) layout.Handle {
	if n := b.Node(h); n != nil {
		return n.parent
	}
	return 0
}

func (b *Builder) attach(parent layout.Handle, n *Node) layout.Handle {
	h := b.add(n)
	if p := b.Node(parent); p != nil && p.Kind == KindGroup {
		n.parent = parent
		p.children = append(p.children, h)
	}
	return h
}

func (b *Builder) Root() layout.Handle {
	return b.root
}

func (b *Builder) Group(role string) layout.Handle {
	return b.add(&Node{Kind: KindGroup, Role: role})
}

func (b *Builder) Text(parent layout.Handle, content string) layout.Handle {
	n := &Node{Kind: KindGlyph, Text: content, Prescale: 1}
	if bigOperators[content] {
		n.Prescale = BigOperatorScale
	}
	n.natural = b.measure.Measure(content).Transform(0, 0, n.Prescale)
	return b.attach(parent, n)
}

func (b *Builder) Symbol(parent layout.Handle, name string) (layout.Handle, error) {
	glyph, err := b.table.Lookup(name)
	if err != nil {
		return 0, err
	}
	return b.Text(parent, glyph), nil
}

func (b *Builder) RadicalMark(parent layout.Handle) layout.Handle {
	s := newRadical()
	return b.attach(parent, &Node{Kind: KindShape, Shape: s, natural: s.Box()})
}

func (b *Builder) FractionBar(parent layout.Handle) layout.Handle {
	s := newBar()
	return b.attach(parent, &Node{Kind: KindShape, Shape: s, natural: s.Box()})
}

func (b *Builder) Bracket(parent layout.Handle, kind string, left bool) (layout.Handle, error) {
	s, err := newBracket(kind, left)
	if err != nil {
		return 0, err
	}
	return b.attach(parent, &Node{Kind: KindShape, Shape: s, natural: s.Box()}), nil
}

func (b *Builder) Place(h layout.Handle, x, y, scale float64) {
	n := b.Node(h)
	if n == nil || n.Kind == KindGroup {
		return
	}
	n.X, n.Y, n.Scale = x, y, scale
}

func (b *Builder) Shift(h layout.Handle, dx, dy float64) {
	n := b.Node(h)
	if n == nil {
		return
	}
	if n.Kind != KindGroup {
		n.X += dx
		n.Y += dy
		return
	}
	for _, c := range n.children {
		b.Shift(c, dx, dy)
	}
}

func (b *Builder) Stretch(h layout.Handle, target layout.Box) {
	n := b.Node(h)
	if n == nil || n.Shape == nil || n.Scale == 0 {
		return
	}
	// target is converted into shape local space
	n.Shape.fit(layout.Box{
		MinX: (target.MinX - n.X) / n.Scale,
		MinY: (target.MinY - n.Y) / n.Scale,
		MaxX: (target.MaxX - n.X) / n.Scale,
		MaxY: (target.MaxY - n.Y) / n.Scale,
	})
	n.natural = n.Shape.Box()
}

func (b *Builder) Bounds(h layout.Handle) (layout.Box, bool) {
	n := b.Node(h)
	if n == nil {
		return layout.EmptyBox, false
	}
	if n.Kind != KindGroup {
		return n.natural.Transform(n.X, n.Y, n.Scale), true
	}
	box := layout.EmptyBox
	for _, c := range n.children {
		if cb, ok := b.Bounds(c); ok {
			box = box.Union(cb)
		}
	}
	return box, !box.IsEmpty()
}

func (b *Builder) Merge(child, parent layout.Handle) {
	c, p := b.Node(child), b.Node(parent)
	if c == nil || p == nil || p.Kind != KindGroup || child == parent {
		return
	}
	b.detach(child)
	c.parent = parent
	p.children = append(p.children, child)
}

func (b *Builder) Discard(h layout.Handle) {
	n := b.Node(h)
	if n == nil || h == b.root {
		return
	}
	b.detach(h)
	b.kill(h)
}

func (b *Builder) detach(h layout.Handle) {
	n := b.nodes[h]
	if p := b.Node(n.parent); p != nil {
		for i, c := range p.children {
			if c == h {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	n.parent = 0
}

func (b *Builder) kill(h layout.Handle) {
	n := b.nodes[h]
	n.alive = false
	for _, c := range n.children {
		b.kill(c)
	}
	n.children = nil
}

// Walk visits every live node reachable from h depth first. Returning false
// from fn skips node children.
func (b *Builder) Walk(h layout.Handle, fn func(h layout.Handle, n *Node, depth int) bool) {
	b.walk(h, 0, fn)
}

func (b *Builder) walk(h layout.Handle, depth int, fn func(layout.Handle, *Node, int) bool) {
	n := b.Node(h)
	if n == nil {
		return
	}
	if !fn(h, n, depth) {
		return
	}
	for _, c := range n.children {
		b.walk(c, depth+1, fn)
	}
}

// Leaves returns glyph and shape nodes reachable from h in tree order.
func (b *Builder) Leaves(h layout.Handle) []layout.Handle {
	var out []layout.Handle
	b.Walk(h, func(h layout.Handle, n *Node, _ int) bool {
		if n.Kind != KindGroup {
			out = append(out, h)
		}
		return true
	})
	return out
}

// Find returns glyph nodes with given text reachable from h.
func (b *Builder) Find(h layout.Handle, text string) []layout.Handle {
	var out []layout.Handle
	b.Walk(h, func(h layout.Handle, n *Node, _ int) bool {
		if n.Kind == KindGlyph && n.Text == text {
			out = append(out, h)
		}
		return true
	})
	return out
}
