package layout

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		fraction   int
		tags       []Tag
		line       float64
		wantScale  float64
		wantHeight float64
	}{
		{name: "top level", wantScale: 2, wantHeight: 0},
		{name: "line is baseline", line: -3, wantScale: 2, wantHeight: -3},
		{name: "first fraction keeps scale", fraction: 1, wantScale: 2},
		{name: "second fraction", fraction: 2, wantScale: 1.3},
		{name: "third fraction", fraction: 3, wantScale: 0.9},
		{name: "deep fraction does not shrink further", fraction: 7, wantScale: 0.9},
		{name: "exponent", tags: []Tag{Exponent}, wantScale: 1.3, wantHeight: 0.75 * 1.3},
		{name: "index", tags: []Tag{Index}, wantScale: 1.3, wantHeight: -0.5 * 1.3},
		{name: "exponent inside deep fraction", fraction: 2, tags: []Tag{Exponent}, wantScale: 0.9, wantHeight: 0.75 * 0.9},
		{
			name:       "nested exponents",
			tags:       []Tag{Exponent, Exponent},
			wantScale:  0.9,
			wantHeight: 0.75*1.3 + 0.5*0.9,
		},
		{
			name:       "nested indexes",
			tags:       []Tag{Index, Index, Index},
			wantScale:  0.9,
			wantHeight: -0.5*1.3 - 0.25*0.9 - 0.25*0.9,
		},
		{
			name:       "mixed levels count separately",
			tags:       []Tag{Exponent, Index, Exponent},
			wantScale:  0.9,
			wantHeight: 0.75*1.3 - 0.5*0.9 + 0.5*0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Levels{fraction: tt.fraction, tags: tt.tags}
			p := Params{Line: tt.line, Height: 100, Scale: 100}
			Calculate(&p, 2, l)
			if !near(p.Scale, tt.wantScale) {
				t.Errorf("Scale = %v, want %v", p.Scale, tt.wantScale)
			}
			if !near(p.Height, tt.line+tt.wantHeight) {
				t.Errorf("Height = %v, want %v", p.Height, tt.line+tt.wantHeight)
			}
		})
	}
}

func TestLevels_PushRestores(t *testing.T) {
	var l Levels
	popOuter := l.Push(Exponent)
	popInner := l.Push(Index)
	if l.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", l.Depth())
	}
	if got := l.Tags(); got[0] != Exponent || got[1] != Index {
		t.Fatalf("Tags() = %v", got)
	}
	popInner()
	popOuter()
	if l.Depth() != 0 {
		t.Fatalf("Depth() = %d after pops, want 0", l.Depth())
	}

	leave := l.EnterFraction()
	if l.Fraction() != 1 {
		t.Fatalf("Fraction() = %d, want 1", l.Fraction())
	}
	leave()
	if l.Fraction() != 0 {
		t.Fatalf("Fraction() = %d after leave, want 0", l.Fraction())
	}
}

func TestSpaceSize(t *testing.T) {
	tests := []struct {
		name string
		want float64
		ok   bool
	}{
		{"!", -0.2, true},
		{",", 0.3, true},
		{":", 0.4, true},
		{";", 0.5, true},
		{" ", 0.6, true},
		{"quad", 1.2, true},
		{"qquad", 2.4, true},
		{"alpha", 0, false},
	}
	for _, tt := range tests {
		got, ok := SpaceSize(tt.name, 2)
		if ok != tt.ok || !near(got, tt.want) {
			t.Errorf("SpaceSize(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBox(t *testing.T) {
	b := Box{MinX: 0, MinY: -0.2, MaxX: 1, MaxY: 0.7}
	tb := b.Transform(2, 1, 0.5)
	want := Box{MinX: 2, MinY: 0.9, MaxX: 2.5, MaxY: 1.35}
	if !near(tb.MinX, want.MinX) || !near(tb.MinY, want.MinY) || !near(tb.MaxX, want.MaxX) || !near(tb.MaxY, want.MaxY) {
		t.Errorf("Transform() = %+v, want %+v", tb, want)
	}

	if !EmptyBox.IsEmpty() || EmptyBox.Width() != 0 || EmptyBox.Height() != 0 {
		t.Error("EmptyBox must be empty with zero extents")
	}
	if u := EmptyBox.Union(b); u != b {
		t.Errorf("EmptyBox.Union(b) = %+v, want %+v", u, b)
	}
	if m := EmptyBox.Translate(1, 1); !m.IsEmpty() {
		t.Error("translated empty box must stay empty")
	}
}
