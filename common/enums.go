// Package common holds enums shared by configuration, exporters and the
// command line so neither of them has to import the other.
package common

//go:generate go tool go-enum --names --marshal --nocase --mustparse

// Specification of requested output type.
// ENUM(svg, png, ion)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtSvg:
		return ".svg"
	case OutputFmtPng:
		return ".png"
	case OutputFmtIon:
		return ".ion"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// IsRaster reports formats which require rasterization.
func (o OutputFmt) IsRaster() bool {
	return o == OutputFmtPng
}

// Encoding of Ion output.
// ENUM(binary, text)
type IonEncoding int
