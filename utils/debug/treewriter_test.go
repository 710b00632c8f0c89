package debug

import "testing"

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "test", nil, "test\n"},
		{"depth 1", 1, "indented", nil, "  indented\n"},
		{"depth 2", 2, "double indent", nil, "    double indent\n"},
		{"with formatting", 1, "%s: %d", []any{"value", 42}, "  value: 42\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		depth int
		label string
		value string
		want  string
	}{
		{0, "field", "", "field: \n"},
		{0, "glyph", "∑", "glyph: \"∑\"\n"},
		{1, "markup", `\frac{a}{b}`, "  markup: \"\\\\frac{a}{b}\"\n"},
		{2, "text", "line1\nline2", "    text: \"line1\\nline2\"\n"},
	}
	for _, tt := range tests {
		tw := NewTreeWriter()
		tw.TextBlock(tt.depth, tt.label, tt.value)
		if got := tw.String(); got != tt.want {
			t.Errorf("TextBlock(%d, %q, %q) = %q, want %q", tt.depth, tt.label, tt.value, got, tt.want)
		}
	}
}

func TestTreeWriter_Extent(t *testing.T) {
	tw := NewTreeWriter()
	tw.Extent(1, "bar", 0, -0.025, 1.1, 0.025)
	if got, want := tw.String(), "  bar [0.000 -0.025 1.100 0.025]\n"; got != want {
		t.Errorf("Extent() = %q, want %q", got, want)
	}
}

func TestTreeWriter_Tree(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "root #%d", 1)
	tw.Line(1, "numerator #%d", 2)
	tw.TextBlock(2, "glyph", "a")
	tw.Extent(1, "bar", 0, 0, 1, 0.05)

	want := "root #1\n" +
		"  numerator #2\n" +
		"    glyph: \"a\"\n" +
		"  bar [0.000 0.000 1.000 0.050]\n"
	if got := tw.String(); got != want {
		t.Errorf("tree:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
