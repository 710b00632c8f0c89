package export

import (
	"fmt"

	"github.com/amazon-ion/ion-go/ion"

	"eqgen/common"
	"eqgen/layout"
	"eqgen/scene"
)

type ionBox struct {
	MinX float64 `ion:"min_x"`
	MinY float64 `ion:"min_y"`
	MaxX float64 `ion:"max_x"`
	MaxY float64 `ion:"max_y"`
}

type ionNode struct {
	Kind     string    `ion:"kind,symbol"`
	Role     string    `ion:"role,omitempty"`
	Text     string    `ion:"text,omitempty"`
	Shape    string    `ion:"shape,omitempty"`
	X        float64   `ion:"x"`
	Y        float64   `ion:"y"`
	Scale    float64   `ion:"scale"`
	Bounds   *ionBox   `ion:"bounds,omitempty"`
	Children []ionNode `ion:"children,omitempty"`
}

type ionDocument struct {
	Markup string  `ion:"markup,omitempty"`
	Root   ionNode `ion:"root"`
}

func toIonNode(b *scene.Builder, h layout.Handle) ionNode {
	n := b.Node(h)
	out := ionNode{Kind: n.Kind.String(), Role: n.Role, Text: n.Text, X: n.X, Y: n.Y, Scale: n.Scale}
	switch n.Kind {
	case scene.KindGroup:
		out.X, out.Y, out.Scale = 0, 0, 0
	case scene.KindGlyph:
		out.Scale = n.Scale * n.Prescale
	case scene.KindShape:
		out.Shape = n.Shape.Kind.String()
		if n.Shape.Bracket != "" {
			out.Text = n.Shape.Bracket
		}
	}
	if box, ok := b.Bounds(h); ok {
		out.Bounds = &ionBox{MinX: box.MinX, MinY: box.MinY, MaxX: box.MaxX, MaxY: box.MaxY}
	}
	for _, c := range b.Children(h) {
		out.Children = append(out.Children, toIonNode(b, c))
	}
	return out
}

// Ion writes positioned element tree as Amazon Ion.
func Ion(src Source, opts Options) ([]byte, error) {
	if src.Scene.Node(src.Root) == nil {
		return nil, fmt.Errorf("nothing to export")
	}
	doc := ionDocument{Markup: src.Markup, Root: toIonNode(src.Scene, src.Root)}

	var (
		data []byte
		err  error
	)
	if opts.Ion == common.IonEncodingText {
		data, err = ion.MarshalText(doc)
	} else {
		data, err = ion.MarshalBinary(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to marshal element tree: %w", err)
	}
	return data, nil
}
