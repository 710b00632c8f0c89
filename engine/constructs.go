package engine

import (
	"go.uber.org/multierr"

	"eqgen/layout"
	"eqgen/markup"
)

// Construct geometry, in units of the scale in effect.
const (
	fractionLead     = 0.1
	fractionTrail    = 0.2
	numeratorLift    = 0.6
	denominatorDrop  = 0.1
	barRise          = 0.3
	barOverhang      = 0.1
	radicalWidth     = 0.855927586555481
	radicalOverlap   = 0.4
	radicalDrop      = 0.25
	radicalClearance = 0.15
	radicalUnderhang = 0.05
	sumDrop          = 0.4
	sumLabelGap      = 0.25
	integralDrop     = 0.3
	integralPullBack = 0.2
)

func appendWarning(warnings, w error) error {
	return multierr.Append(warnings, w)
}

// anchor collects labels stacked over and under a big operator. Second
// label of a pair is nested inside the first one, so label always holds the
// whole assembly.
type anchor struct {
	symbol layout.Handle
	label  layout.Handle
}

func scriptMarker(k markup.Kind) bool {
	return k == markup.Caret || k == markup.Underscore
}

// script lays out exponent or index after its marker was consumed. When a is
// set result is docked to the big operator instead of following the cursor.
// paired is set for the second half of exponent/index pair.
func (p *parser) script(tag layout.Tag, a *anchor, paired bool) error {
	start := p.p.Width
	_, err := p.within(tag.String(), func(g layout.Handle) error {
		pop := p.levels.Push(tag)
		popped := false
		release := func() {
			if !popped {
				popped = true
				pop()
			}
		}
		defer release()

		var single layout.Handle
		t := p.lex.Next()
		switch t.Kind {
		case markup.LBrace:
			if err := p.closing(); err != nil {
				return err
			}
		case markup.Text, markup.SpecialChar, markup.AngleBracket:
			single = p.r.Text(g, t.Text)
		case markup.Command:
			single = p.symbol(g, t)
		default:
			return p.fail(ErrStructure, t, "error in creating exponent or index")
		}

		next := p.lex.Next()
		switch {
		case paired && scriptMarker(next.Kind):
			return p.fail(ErrAmbiguousStacking, next, "use of both index and exponent is only permitted once")
		case next.Kind == markup.Caret && tag == layout.Exponent, next.Kind == markup.Underscore && tag == layout.Index:
			return p.fail(ErrAmbiguousStacking, next, "use braces to combine multiple levels")
		case scriptMarker(next.Kind):
			p.settle(g, single, tag, a, false)
			scale := p.p.Scale
			release()

			firstRight := start + p.extent(g, start)
			p.p.Width = start
			other := layout.Index
			if tag == layout.Index {
				other = layout.Exponent
			}
			if err := p.script(other, a, true); err != nil {
				return err
			}
			p.p.Width = max(firstRight, start+p.extent(g, start)) + layout.Spacing*scale
		default:
			p.lex.Unread(next)
			p.settle(g, single, tag, a, !paired)
		}
		return nil
	})
	return err
}

// settle finishes script content: ungrouped element is placed at script
// level and docked labels are moved next to their operator.
func (p *parser) settle(g, single layout.Handle, tag layout.Tag, a *anchor, advance bool) {
	if single != 0 {
		p.place(single, 0, advance && a == nil)
	}
	if a != nil {
		p.dock(g, tag, a)
	}
}

// dock centres label group g horizontally on the operator and puts exponent
// above and index below it.
func (p *parser) dock(g layout.Handle, tag layout.Tag, a *anchor) {
	sb, ok := p.r.Bounds(a.symbol)
	if !ok {
		return
	}
	gb, ok := p.r.Bounds(g)
	if !ok {
		return
	}
	gap := sumLabelGap * p.p.Scale
	dx := sb.MinX - gb.MinX + (sb.Width()-gb.Width())/2
	dy := sb.MinY - gap - gb.MaxY
	if tag == layout.Exponent {
		dy = sb.MaxY + gap - gb.MinY
	}
	p.r.Shift(g, dx, dy)
	if a.label == 0 {
		a.label = g
	}
}

func (p *parser) sum(t markup.Token) error {
	h := p.symbol(p.current, t)
	if h == 0 {
		return nil
	}
	p.place(h, -sumDrop, true)
	sb, _ := p.r.Bounds(h)

	next := p.lex.Next()
	if !scriptMarker(next.Kind) {
		p.lex.Unread(next)
		return nil
	}
	tag := layout.Exponent
	if next.Kind == markup.Underscore {
		tag = layout.Index
	}
	a := &anchor{symbol: h}
	if err := p.script(tag, a, false); err != nil {
		return err
	}

	// labels wider than operator must not overlap what precedes it
	box := sb
	if lb, ok := p.r.Bounds(a.label); ok && a.label != 0 {
		box = box.Union(lb)
	}
	if shift := sb.MinX - box.MinX; shift > 0 {
		p.r.Shift(h, shift, 0)
		if a.label != 0 {
			p.r.Shift(a.label, shift, 0)
		}
		box = box.Translate(shift, 0)
	}
	p.calculate()
	p.p.Width = box.MaxX + layout.Spacing*p.p.Scale
	return nil
}

func (p *parser) radical() error {
	_, err := p.within("radical", func(g layout.Handle) error {
		t := p.lex.Next()
		multiplier := t.Is(markup.AngleBracket, "[")
		if multiplier {
			if err := p.radicalIndex(); err != nil {
				return err
			}
			t = p.lex.Next()
		}
		if t.Kind != markup.LBrace {
			return p.fail(ErrStructure, t, "error in the syntax of command 'sqrt'")
		}

		p.calculate()
		origin := p.p
		if multiplier {
			origin.Width -= (radicalWidth - radicalOverlap) * origin.Scale
			p.p.Width += radicalOverlap * origin.Scale
		} else {
			p.p.Width += radicalWidth * origin.Scale
		}

		body, err := p.within("radicand", func(layout.Handle) error {
			return p.closing()
		})
		if err != nil {
			return err
		}

		mark := p.r.RadicalMark(g)
		p.r.Place(mark, origin.Width, origin.Height-radicalDrop*origin.Scale, origin.Scale)
		if b, ok := p.r.Bounds(body); ok {
			p.r.Stretch(mark, layout.Box{
				MinX: origin.Width,
				MinY: b.MinY - radicalUnderhang*origin.Scale,
				MaxX: b.MaxX,
				MaxY: b.MaxY + radicalClearance*origin.Scale,
			})
		}
		return nil
	})
	return err
}

// radicalIndex lays out multiplier of radical after '[' up to and including ']'.
// Leading space uses scale of the radical itself.
func (p *parser) radicalIndex() error {
	p.calculate()
	lead := layout.Spacing * p.p.Scale

	pop := p.levels.Push(layout.Exponent)
	defer pop()

	p.calculate()
	p.p.Width += lead
	if err := p.moreTerms(true); err != nil {
		return err
	}
	if t := p.lex.Next(); !t.Is(markup.AngleBracket, "]") {
		return p.fail(ErrStructure, t, "missing closing bracket ']'")
	}
	return nil
}

func (p *parser) fraction() error {
	leave := p.levels.EnterFraction()
	defer leave()

	p.calculate()
	p.p.Width += fractionLead * p.p.Scale
	origin := p.p
	s := origin.Scale

	_, err := p.within("fraction", func(g layout.Handle) error {
		num, err := p.within("numerator", func(layout.Handle) error {
			return p.argument()
		})
		if err != nil {
			return err
		}
		numWidth := p.extent(num, origin.Width)
		if b, ok := p.r.Bounds(num); ok {
			p.r.Shift(num, 0, origin.Height+numeratorLift*s-b.MinY)
		}

		p.p.Width = origin.Width
		den, err := p.within("denominator", func(layout.Handle) error {
			return p.argument()
		})
		if err != nil {
			return err
		}
		denWidth := p.extent(den, origin.Width)
		if b, ok := p.r.Bounds(den); ok {
			p.r.Shift(den, 0, origin.Height+denominatorDrop*s-b.MaxY)
		}

		length := max(numWidth, denWidth)
		if numWidth < denWidth {
			p.r.Shift(num, (denWidth-numWidth)/2, 0)
		} else {
			p.r.Shift(den, (numWidth-denWidth)/2, 0)
		}

		bar := p.r.FractionBar(g)
		y := origin.Height + barRise*s
		p.r.Place(bar, origin.Width, y, s)
		p.r.Stretch(bar, layout.Box{MinX: origin.Width, MinY: y, MaxX: origin.Width + length + barOverhang*s, MaxY: y})

		p.p.Width = origin.Width + length + fractionTrail*s
		return nil
	})
	return err
}
