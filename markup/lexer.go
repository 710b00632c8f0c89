package markup

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type class int

const (
	classOther class = iota
	classBackslash
	classLBrace
	classRBrace
	classCaret
	classUnderscore
	classAmpersand
	classSpacing
	classAngle
	classWhitespace
	classEnd
)

func classify(r rune) class {
	switch r {
	case '\\':
		return classBackslash
	case '{':
		return classLBrace
	case '}':
		return classRBrace
	case '^':
		return classCaret
	case '_':
		return classUnderscore
	case '&':
		return classAmpersand
	case '!', ';', ':', ',':
		return classSpacing
	case '[', ']':
		return classAngle
	case ' ', '\n', '\t', '\r':
		return classWhitespace
	}
	return classOther
}

type state int

const (
	stateStart state = iota
	stateCommand
	stateCommandName
	stateText
)

// Lexer produces tokens from markup one at a time. It supports unlimited
// push-back of previously returned tokens, the parser uses single token
// lookahead only.
type Lexer struct {
	src []rune
	pos int
}

// NewLexer returns lexer positioned at the beginning of NFC normalized input.
func NewLexer(input string) *Lexer {
	return &Lexer{src: []rune(norm.NFC.String(input))}
}

// Next returns next token. After input is exhausted it keeps returning End.
func (l *Lexer) Next() Token {
	var (
		st   = stateStart
		text []rune
	)
	for {
		c := classEnd
		var r rune
		if l.pos < len(l.src) {
			r = l.src[l.pos]
			c = classify(r)
		}

		switch st {
		case stateStart:
			switch c {
			case classEnd:
				return Token{Kind: End}
			case classBackslash:
				st = stateCommand
				l.pos++
			case classOther, classSpacing:
				st = stateText
			case classWhitespace:
				l.pos++
			default:
				l.pos++
				return Token{Kind: singleKind(c), Text: string(r)}
			}

		case stateCommand:
			switch c {
			case classLBrace, classRBrace, classAmpersand, classUnderscore:
				l.pos++
				return Token{Kind: SpecialChar, Text: string(r)}
			case classBackslash:
				l.pos++
				return Token{Kind: Enter, Text: `\`}
			case classSpacing:
				l.pos++
				return Token{Kind: Command, Text: string(r)}
			case classOther:
				st = stateCommandName
			default:
				if c != classEnd {
					l.pos++
				}
				return Token{Kind: Command, Text: " "}
			}

		case stateCommandName:
			if c == classOther && unicode.IsLetter(r) {
				text = append(text, r)
				l.pos++
				continue
			}
			return Token{Kind: Command, Text: string(text)}

		case stateText:
			if c != classOther && c != classSpacing {
				return Token{Kind: Text, Text: string(text)}
			}
			text = append(text, r)
			l.pos++
		}
	}
}

func singleKind(c class) Kind {
	switch c {
	case classLBrace:
		return LBrace
	case classRBrace:
		return RBrace
	case classCaret:
		return Caret
	case classUnderscore:
		return Underscore
	case classAmpersand:
		return Ampersand
	case classAngle:
		return AngleBracket
	}
	// this should never happen
	panic("no single character token for class")
}

// Unread returns token to the input, next call to Next will produce it again.
func (l *Lexer) Unread(t Token) {
	src := []rune(t.Source())
	if len(src) == 0 {
		return
	}
	l.src = append(src, l.src[l.pos:]...)
	l.pos = 0
}

// Peek returns next token without consuming it.
func (l *Lexer) Peek() Token {
	t := l.Next()
	l.Unread(t)
	return t
}

// Remaining returns not yet consumed input.
func (l *Lexer) Remaining() string {
	return string(l.src[l.pos:])
}

// All drains the lexer, End token is not included.
func (l *Lexer) All() []Token {
	var out []Token
	for {
		t := l.Next()
		if t.Kind == End {
			return out
		}
		out = append(out, t)
	}
}
