package markup

import (
	"fmt"

	"eqgen/utils/debug"
)

// Dump returns token stream of input one token per line, indented by brace
// nesting.
func Dump(input string) string {
	tw := debug.NewTreeWriter()
	depth := 0
	tokens := NewLexer(input).All()
	for i, t := range tokens {
		if t.Kind == RBrace && depth > 0 {
			depth--
		}
		tw.TextBlock(depth, fmt.Sprintf("%d: %s", i, t.Kind), t.Text)
		if t.Kind == LBrace {
			depth++
		}
	}
	tw.Line(0, "%d: end", len(tokens))
	return tw.String()
}
