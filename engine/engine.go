// Package engine parses markup and lays out every element as soon as it is
// recognized. Geometry is materialized and measured through Renderer.
package engine

import (
	"go.uber.org/zap"

	"eqgen/layout"
	"eqgen/markup"
)

// Options controls single compilation.
type Options struct {
	// Scale is user scale, 1 when not set.
	Scale float64
	// LineSpacing is baseline drop on row break in units of user scale,
	// 1 when not set.
	LineSpacing float64
	Log         *zap.Logger
}

// Result of successful compilation.
type Result struct {
	// Root is the group holding the whole laid out expression.
	Root layout.Handle
	// Width is final horizontal cursor position.
	Width float64
	// Warnings has recoverable problems (unknown symbols) combined with
	// multierr, nil when there were none.
	Warnings error
}

// Compile parses input and lays it out using r. Any structural problem
// aborts compilation, nothing is returned in this case.
func Compile(input string, r Renderer, opts Options) (*Result, error) {
	p := newParser(input, r, opts)
	if err := p.prog(); err != nil {
		p.log.Debug("Compilation failed", zap.String("markup", input), zap.Error(err))
		return nil, err
	}
	return &Result{Root: p.current, Width: p.p.Width, Warnings: p.warnings}, nil
}

type parser struct {
	lex *markup.Lexer
	r   Renderer
	log *zap.Logger

	userScale   float64
	lineSpacing float64

	p       layout.Params
	levels  layout.Levels
	current layout.Handle

	warnings error
}

func newParser(input string, r Renderer, opts Options) *parser {
	p := &parser{
		lex:         markup.NewLexer(input),
		r:           r,
		log:         opts.Log,
		userScale:   opts.Scale,
		lineSpacing: opts.LineSpacing,
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.userScale <= 0 {
		p.userScale = 1
	}
	if p.lineSpacing <= 0 {
		p.lineSpacing = 1
	}
	p.current = r.Root()
	p.p.Scale = p.userScale
	return p
}

func (p *parser) fail(kind error, t markup.Token, msg string) error {
	return &Error{Kind: kind, Token: t, Msg: msg}
}

func (p *parser) prog() error {
	if err := p.term(p.lex.Next()); err != nil {
		return err
	}
	if err := p.moreTerms(false); err != nil {
		return err
	}
	if t := p.lex.Next(); t.Kind != markup.End {
		return p.fail(ErrStructure, t, "not all tokens have been read")
	}
	return nil
}

func startsTerm(t markup.Token) bool {
	switch t.Kind {
	case markup.Text, markup.SpecialChar, markup.AngleBracket, markup.Enter,
		markup.Underscore, markup.Caret, markup.LBrace:
		return true
	case markup.Command:
		return t.Text != "end"
	}
	return false
}

func (p *parser) term(t markup.Token) error {
	switch t.Kind {
	case markup.Text, markup.SpecialChar, markup.AngleBracket, markup.Enter,
		markup.Underscore, markup.Caret:
		return p.constant(t)
	case markup.LBrace:
		return p.command(t)
	case markup.Command:
		if t.Text == "begin" {
			return p.block()
		}
		if t.Text != "end" {
			return p.command(t)
		}
	}
	return p.fail(ErrStructure, t, "no corresponding terminals, use of not supported symbol")
}

// moreTerms consumes terms until something which cannot start one. When
// inIndex is set closing ']' terminates the sequence as well.
func (p *parser) moreTerms(inIndex bool) error {
	for {
		t := p.lex.Next()
		if !startsTerm(t) || (inIndex && t.Is(markup.AngleBracket, "]")) {
			p.lex.Unread(t)
			return nil
		}
		if err := p.term(t); err != nil {
			return err
		}
	}
}

// closing consumes terms up to and including '}'.
func (p *parser) closing() error {
	if err := p.moreTerms(false); err != nil {
		return err
	}
	if t := p.lex.Next(); t.Kind != markup.RBrace {
		return p.fail(ErrStructure, t, "missing closing bracket '}'")
	}
	return nil
}

// argument consumes '{' terms '}'.
func (p *parser) argument() error {
	if t := p.lex.Next(); t.Kind != markup.LBrace {
		return p.fail(ErrStructure, t, "expected '{'")
	}
	return p.closing()
}

func (p *parser) constant(t markup.Token) error {
	switch t.Kind {
	case markup.Enter:
		p.rowBreak()
		return nil
	case markup.Caret:
		return p.script(layout.Exponent, nil, false)
	case markup.Underscore:
		return p.script(layout.Index, nil, false)
	}
	p.place(p.r.Text(p.current, t.Text), 0, true)
	return nil
}

func (p *parser) command(t markup.Token) error {
	if t.Kind == markup.LBrace {
		_, err := p.within("group", func(layout.Handle) error {
			return p.closing()
		})
		return err
	}

	switch t.Text {
	case "sqrt":
		return p.radical()
	case "frac":
		return p.fraction()
	case "sum", "prod":
		return p.sum(t)
	}

	p.calculate()
	if size, ok := layout.SpaceSize(t.Text, p.p.Scale); ok {
		p.p.Width += size
		return nil
	}

	h := p.symbol(p.current, t)
	if h == 0 {
		return nil
	}
	if t.Text == "int" {
		p.place(h, -integralDrop, true)
		p.p.Width -= integralPullBack * p.p.Scale
		return nil
	}
	p.place(h, 0, true)
	return nil
}

// symbol creates glyph for command, unknown commands are skipped with
// warning and zero handle is returned.
func (p *parser) symbol(parent layout.Handle, t markup.Token) layout.Handle {
	h, err := p.r.Symbol(parent, t.Text)
	if err != nil {
		w := &Error{Kind: ErrUnknownSymbol, Token: t, Msg: "command skipped", cause: err}
		p.warnings = appendWarning(p.warnings, w)
		p.log.Debug("Unknown symbol skipped", zap.String("command", t.Text), zap.Error(err))
		return 0
	}
	return h
}

func (p *parser) calculate() {
	layout.Calculate(&p.p, p.userScale, &p.levels)
}

// place positions element at the cursor using current level. dy is in units
// of resulting scale. When advance is set cursor moves past the element.
func (p *parser) place(h layout.Handle, dy float64, advance bool) {
	p.calculate()
	p.r.Place(h, p.p.Width, p.p.Height+dy*p.p.Scale, p.p.Scale)
	if advance {
		p.advancePast(h)
	}
}

func (p *parser) advancePast(h layout.Handle) {
	if b, ok := p.r.Bounds(h); ok {
		p.p.Width += b.Width()
	}
	p.p.Width += layout.Spacing * p.p.Scale
}

func (p *parser) rowBreak() {
	p.p.Width = p.p.RowStart
	p.p.Line -= p.lineSpacing * p.userScale
}

// within runs fn with a fresh group as the insertion point. On success the
// group is adopted by the previous insertion point, otherwise it is dropped
// with everything fn managed to create.
func (p *parser) within(role string, fn func(g layout.Handle) error) (layout.Handle, error) {
	parent := p.current
	g := p.r.Group(role)
	p.current = g
	err := fn(g)
	p.current = parent
	if err != nil {
		p.r.Discard(g)
		p.log.Debug("Construct discarded", zap.String("role", role), zap.Error(err))
		return 0, err
	}
	p.r.Merge(g, parent)
	return g, nil
}

// extent returns distance from x to the right edge of h, 0 for empty h.
func (p *parser) extent(h layout.Handle, x float64) float64 {
	if b, ok := p.r.Bounds(h); ok {
		return max(0, b.MaxX-x)
	}
	return 0
}
