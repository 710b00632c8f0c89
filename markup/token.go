// Package markup splits math markup into tokens for the layout engine.
package markup

import "fmt"

// Kind classifies a token.
type Kind int

const (
	End Kind = iota
	Text
	Command
	SpecialChar
	LBrace
	RBrace
	Caret
	Underscore
	Ampersand
	Enter
	AngleBracket
)

var kindNames = [...]string{
	End:          "end",
	Text:         "text",
	Command:      "command",
	SpecialChar:  "special-char",
	LBrace:       "lbrace",
	RBrace:       "rbrace",
	Caret:        "caret",
	Underscore:   "underscore",
	Ampersand:    "ampersand",
	Enter:        "enter",
	AngleBracket: "angle-bracket",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical unit. Tokens are values and never change after
// they have been produced.
type Token struct {
	Kind Kind
	Text string
}

// Is reports whether token has given kind and text.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && t.Text == text
}

// Source returns textual form of the token as it appeared in the markup.
func (t Token) Source() string {
	switch t.Kind {
	case Command, SpecialChar, Enter:
		return `\` + t.Text
	default:
		return t.Text
	}
}

func (t Token) String() string {
	if t.Kind == End {
		return "end"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
