package layout

// Layout constants, all of them are multiplied by the scale in effect.
const (
	// Spacing after every ordinary glyph.
	Spacing = 0.1

	// Scale factors for nested content.
	ReducedScale = 0.65
	SmallScale   = 0.45

	// Baseline offsets of exponent and index levels.
	FirstExponentRise = 0.75
	NextExponentRise  = 0.5
	FirstIndexDrop    = 0.5
	NextIndexDrop     = 0.25
)

// Params is a snapshot of the layout cursor. It is a plain value, copying it
// is how productions remember where they started.
type Params struct {
	// Scale of the next placed element.
	Scale float64
	// Width is horizontal cursor position.
	Width float64
	// Height is vertical position of the next element baseline.
	Height float64
	// Line is baseline of the current line, Height is derived from it.
	Line float64
	// RowStart is where cursor returns after a row break.
	RowStart float64
}

// Tag marks one open exponent or index production.
type Tag int

const (
	Exponent Tag = iota
	Index
)

func (t Tag) String() string {
	if t == Exponent {
		return "exponent"
	}
	return "index"
}

// Levels tracks nesting which drives scale and vertical offsets.
type Levels struct {
	tags     []Tag
	fraction int
}

// Push opens a level and returns function closing it. Callers defer the
// returned function so the stack is correct on every exit path.
func (l *Levels) Push(t Tag) func() {
	l.tags = append(l.tags, t)
	n := len(l.tags)
	return func() {
		l.tags = l.tags[:n-1]
	}
}

// EnterFraction increases fraction depth, returned function restores it.
func (l *Levels) EnterFraction() func() {
	l.fraction++
	return func() {
		l.fraction--
	}
}

// Depth returns number of open exponent and index levels.
func (l *Levels) Depth() int {
	return len(l.tags)
}

// Fraction returns current fraction depth.
func (l *Levels) Fraction() int {
	return l.fraction
}

// Tags returns copy of the current level stack, innermost last.
func (l *Levels) Tags() []Tag {
	return append([]Tag(nil), l.tags...)
}

// Calculate recomputes scale and baseline height of p from user scale and
// current nesting. It walks the whole stack each time, nothing is carried
// over from previous calls.
func Calculate(p *Params, userScale float64, l *Levels) {
	p.Height = p.Line
	p.Scale = userScale

	switch {
	case l.fraction == 2:
		p.Scale = ReducedScale * userScale
	case l.fraction > 2:
		p.Scale = SmallScale * userScale
	}

	var exponents, indexes int
	for i, t := range l.tags {
		switch {
		case i > 0:
			p.Scale = SmallScale * userScale
		case l.fraction < 2:
			p.Scale = ReducedScale * userScale
		default:
			p.Scale = SmallScale * userScale
		}

		if t == Exponent {
			exponents++
			if exponents == 1 {
				p.Height += FirstExponentRise * p.Scale
			} else {
				p.Height += NextExponentRise * p.Scale
			}
			continue
		}
		indexes++
		if indexes == 1 {
			p.Height -= FirstIndexDrop * p.Scale
		} else {
			p.Height -= NextIndexDrop * p.Scale
		}
	}
}

// SpaceSize returns horizontal advance of spacing command or false if name
// is not a spacing command.
func SpaceSize(name string, scale float64) (float64, bool) {
	var size float64
	switch name {
	case "!":
		size = -0.1
	case ",":
		size = 0.15
	case ":":
		size = 0.2
	case ";":
		size = 0.25
	case " ":
		size = 0.3
	case "quad":
		size = 0.6
	case "qquad":
		size = 1.2
	default:
		return 0, false
	}
	return size * scale, true
}
