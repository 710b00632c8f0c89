// Package export serializes laid out scene into one of supported output
// formats.
package export

import (
	"fmt"

	"eqgen/common"
	"eqgen/layout"
	"eqgen/scene"
)

// Options controls rendering of exported scene.
type Options struct {
	Format common.OutputFmt
	// PxPerEm is number of output units for one em at scale 1.
	PxPerEm float64
	// Margin around the expression in em.
	Margin float64
	// Rotation clockwise in degrees, one of 0, 90, 180, 270.
	Rotation int
	// MaxWidth limits raster width in pixels, 0 means no limit.
	MaxWidth int
	// Transparent keeps raster background transparent instead of white.
	Transparent bool
	// Ion selects Ion encoding.
	Ion common.IonEncoding
}

// Source is a compiled expression ready for export.
type Source struct {
	Scene *scene.Builder
	Root  layout.Handle
	Face  *scene.Face
	// Markup is stored in exported metadata when not empty.
	Markup string
}

// Render serializes source according to requested format.
func Render(src Source, opts Options) ([]byte, error) {
	if opts.PxPerEm <= 0 {
		opts.PxPerEm = 100
	}
	switch opts.Rotation {
	case 0, 90, 180, 270:
	default:
		return nil, fmt.Errorf("unsupported rotation %d, only multiples of 90 are allowed", opts.Rotation)
	}

	switch opts.Format {
	case common.OutputFmtSvg:
		return SVG(src, opts)
	case common.OutputFmtPng:
		return PNG(src, opts)
	case common.OutputFmtIon:
		return Ion(src, opts)
	}
	return nil, fmt.Errorf("unsupported output format %s", opts.Format)
}
