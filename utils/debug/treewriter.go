// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, one level of depth is two spaces.
type TreeWriter struct {
	sb strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.sb.WriteString("  ")
	}
}

// Line writes formatted line.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
}

// TextBlock writes label followed by quoted value, empty value is left as is.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.sb.WriteString(label)
	tw.sb.WriteString(": ")
	tw.sb.WriteString(encodeText(value))
	tw.sb.WriteByte('\n')
}

// Extent writes label followed by rectangle coordinates.
func (tw *TreeWriter) Extent(depth int, label string, minX, minY, maxX, maxY float64) {
	tw.indent(depth)
	tw.sb.WriteString(label)
	tw.sb.WriteString(" [")
	for i, v := range [...]float64{minX, minY, maxX, maxY} {
		if i > 0 {
			tw.sb.WriteByte(' ')
		}
		tw.sb.WriteString(strconv.FormatFloat(v, 'f', 3, 64))
	}
	tw.sb.WriteString("]\n")
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
