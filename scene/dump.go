package scene

import (
	"fmt"

	"eqgen/layout"
	"eqgen/utils/debug"
)

// Dump returns indented text representation of the tree under h.
func (b *Builder) Dump(h layout.Handle) string {
	tw := debug.NewTreeWriter()
	b.Walk(h, func(h layout.Handle, n *Node, depth int) bool {
		box, ok := b.Bounds(h)
		switch {
		case n.Kind == KindGroup && !ok:
			tw.Line(depth, "%s #%d (empty)", n.Role, h)
		case n.Kind == KindGroup:
			tw.Extent(depth, fmt.Sprintf("%s #%d", n.Role, h), box.MinX, box.MinY, box.MaxX, box.MaxY)
		case n.Kind == KindGlyph:
			tw.TextBlock(depth, "glyph", n.Text)
			tw.Line(depth+1, "at (%.3f, %.3f) scale %.3f", n.X, n.Y, n.Scale*n.Prescale)
		case n.Shape.Bracket != "":
			tw.Extent(depth, fmt.Sprintf("%s %s", n.Shape.Kind, n.Shape.Bracket), box.MinX, box.MinY, box.MaxX, box.MaxY)
		default:
			tw.Extent(depth, n.Shape.Kind.String(), box.MinX, box.MinY, box.MaxX, box.MaxY)
		}
		return true
	})
	return tw.String()
}
