package engine

import "eqgen/layout"

// Renderer materializes layout decisions and measures what has been
// materialized. Engine only ever deals with handles and measured numbers.
//
// Groups are created detached. Engine fills a group and then either adopts
// it into a parent with Merge or drops it with Discard, so a construct which
// fails half way leaves nothing behind.
type Renderer interface {
	// Root returns the top level group all compiled content ends up in.
	Root() layout.Handle
	// Group creates a new detached group.
	Group(role string) layout.Handle

	// Text creates text glyph inside parent.
	Text(parent layout.Handle, content string) layout.Handle
	// Symbol resolves command name and creates its glyph inside parent.
	Symbol(parent layout.Handle, name string) (layout.Handle, error)
	// RadicalMark creates elastic radical sign.
	RadicalMark(parent layout.Handle) layout.Handle
	// FractionBar creates elastic fraction separator of zero length.
	FractionBar(parent layout.Handle) layout.Handle
	// Bracket creates elastic bracket of given kind ("[", "(", "{", "|", "||" and closing pairs).
	Bracket(parent layout.Handle, kind string, left bool) (layout.Handle, error)

	// Place positions element origin and sets its scale.
	Place(h layout.Handle, x, y, scale float64)
	// Shift moves element or whole group.
	Shift(h layout.Handle, dx, dy float64)
	// Stretch fits placed elastic element to target extents, it never
	// makes element smaller than its natural size.
	Stretch(h layout.Handle, target layout.Box)
	// Bounds returns measured extents, false for empty groups.
	Bounds(h layout.Handle) (layout.Box, bool)

	// Merge adopts detached child group into parent.
	Merge(child, parent layout.Handle)
	// Discard drops group with everything in it.
	Discard(h layout.Handle)
}
