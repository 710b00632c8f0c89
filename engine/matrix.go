package engine

import (
	"eqgen/layout"
	"eqgen/markup"
)

const (
	columnGap      = 0.5
	rowOverlap     = 0.1
	rowPush        = 0.5
	bracketPadding = 0.25
	matrixCentre   = 0.3
)

// environments maps supported matrix names to their brackets.
var environments = map[string][2]string{
	"matrix":  {"", ""},
	"Pmatrix": {"", ""},
	"bmatrix": {"[", "]"},
	"Bmatrix": {"{", "}"},
	"pmatrix": {"(", ")"},
	"vmatrix": {"|", "|"},
	"Vmatrix": {"||", "||"},
}

// grid keeps cell groups row by row, rows may be ragged until alignment.
type grid struct {
	rows [][]layout.Handle
}

func (m *grid) add(cell layout.Handle) {
	last := len(m.rows) - 1
	m.rows[last] = append(m.rows[last], cell)
}

func (m *grid) columns() int {
	n := 0
	for _, row := range m.rows {
		n = max(n, len(row))
	}
	return n
}

// environment reads '{' name '}' and returns name token.
func (p *parser) environment() (markup.Token, error) {
	if t := p.lex.Next(); t.Kind != markup.LBrace {
		return t, p.fail(ErrStructure, t, "expected '{' after environment command")
	}
	t := p.lex.Next()
	if t.Kind != markup.Text {
		return t, p.fail(ErrStructure, t, "expected environment name")
	}
	if _, ok := environments[t.Text]; !ok {
		return t, p.fail(ErrStructure, t, "unknown environment")
	}
	if c := p.lex.Next(); c.Kind != markup.RBrace {
		return c, p.fail(ErrStructure, c, "missing closing bracket '}'")
	}
	return t, nil
}

// block lays out matrix environment after 'begin' was consumed.
func (p *parser) block() error {
	opening, err := p.environment()
	if err != nil {
		return err
	}
	name := opening.Text

	p.calculate()
	origin := p.p
	defer func() {
		p.p.Line = origin.Line
		p.p.RowStart = origin.RowStart
	}()
	p.p.RowStart = origin.Width

	var right float64
	_, err = p.within(name, func(body layout.Handle) error {
		m := &grid{rows: [][]layout.Handle{nil}}
		if err := p.cells(m, body); err != nil {
			return err
		}

		t := p.lex.Next()
		if !t.Is(markup.Command, "end") {
			return p.fail(ErrStructure, t, "expected '\\end'")
		}
		closing, err := p.environment()
		if err != nil {
			return err
		}
		if closing.Text != name {
			return p.fail(ErrStructure, closing, "environment '"+name+"' closed by '"+closing.Text+"'")
		}

		p.align(m, origin)
		if err := p.enclose(m, body, name, origin, t); err != nil {
			return err
		}

		b, ok := p.r.Bounds(body)
		if !ok {
			right = origin.Width
			return nil
		}
		target := origin.Height + matrixCentre*origin.Scale
		p.r.Shift(body, 0, target-(b.MinY+b.MaxY)/2)
		right = b.MaxX
		return nil
	})
	if err != nil {
		return err
	}
	p.p.Width = right + bracketPadding*origin.Scale
	return nil
}

// cells fills grid until something which cannot belong to a cell. Every
// cell is a group of its own, unfinished cell is dropped on failure.
func (p *parser) cells(m *grid, body layout.Handle) error {
	open := func() {
		cell := p.r.Group("cell")
		m.add(cell)
		p.current = cell
	}
	finish := func() {
		p.r.Merge(p.current, body)
		p.current = body
	}

	open()
	for {
		t := p.lex.Next()
		switch {
		case t.Kind == markup.Ampersand:
			finish()
			open()
		case t.Kind == markup.Enter:
			finish()
			m.rows = append(m.rows, nil)
			open()
			p.rowBreak()
		case startsTerm(t):
			if err := p.term(t); err != nil {
				p.r.Discard(p.current)
				p.current = body
				return err
			}
		default:
			p.lex.Unread(t)
			finish()
			return nil
		}
	}
}

// align centres every cell in its column and pushes rows down until they
// do not overlap previous ones.
func (p *parser) align(m *grid, origin layout.Params) {
	s := origin.Scale

	x := origin.Width
	for c := range m.columns() {
		var widest float64
		for _, row := range m.rows {
			if c < len(row) {
				if b, ok := p.r.Bounds(row[c]); ok {
					widest = max(widest, b.Width())
				}
			}
		}
		for _, row := range m.rows {
			if c >= len(row) {
				continue
			}
			if b, ok := p.r.Bounds(row[c]); ok {
				p.r.Shift(row[c], x+(widest-b.Width())/2-b.MinX, 0)
			}
		}
		x += widest + columnGap*s
	}

	var (
		prevBottom float64
		first      = true
	)
	for _, row := range m.rows {
		box := layout.EmptyBox
		for _, cell := range row {
			if b, ok := p.r.Bounds(cell); ok {
				box = box.Union(b)
			}
		}
		if box.IsEmpty() {
			continue
		}
		if !first && box.MaxY > prevBottom-rowOverlap*s {
			dy := box.MaxY - prevBottom + rowPush*s
			for _, cell := range row {
				p.r.Shift(cell, 0, -dy)
			}
			box = box.Translate(0, -dy)
		}
		first = false
		prevBottom = box.MinY
	}
}

// enclose adds brackets of the environment around aligned cells.
func (p *parser) enclose(m *grid, body layout.Handle, name string, origin layout.Params, at markup.Token) error {
	kinds := environments[name]
	if kinds[0] == "" {
		return nil
	}
	box, ok := p.r.Bounds(body)
	if !ok {
		box = layout.Box{MinX: origin.Width, MinY: origin.Height, MaxX: origin.Width, MaxY: origin.Height}
	}
	s := origin.Scale
	pad := bracketPadding * s
	span := layout.Box{MinX: box.MinX, MinY: box.MinY - pad, MaxX: box.MaxX, MaxY: box.MaxY + pad}

	left, err := p.r.Bracket(body, kinds[0], true)
	if err != nil {
		return &Error{Kind: ErrStructure, Token: at, Msg: "unsupported bracket", cause: err}
	}
	p.r.Place(left, origin.Width, span.MinY, s)
	p.r.Stretch(left, span)
	lb, _ := p.r.Bounds(left)

	dx := lb.MaxX + pad - box.MinX
	for _, row := range m.rows {
		for _, cell := range row {
			p.r.Shift(cell, dx, 0)
		}
	}

	right, err := p.r.Bracket(body, kinds[1], false)
	if err != nil {
		return &Error{Kind: ErrStructure, Token: at, Msg: "unsupported bracket", cause: err}
	}
	p.r.Place(right, box.MaxX+dx+pad, span.MinY, s)
	p.r.Stretch(right, span)
	return nil
}
