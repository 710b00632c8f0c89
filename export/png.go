package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"

	"eqgen/utils/images"
)

// Raster renders scene into an image, rotation and width limit applied.
// Opaque black on white result is returned as grayscale image.
func Raster(src Source, opts Options) (image.Image, error) {
	rotation := opts.Rotation
	opts.Rotation = 0
	data, err := SVG(src, opts)
	if err != nil {
		return nil, err
	}

	var bg color.Color = color.White
	if opts.Transparent {
		bg = nil
	}
	var img image.Image
	if img, err = images.RasterizeSVGToImage(data, 0, 0, bg); err != nil {
		return nil, fmt.Errorf("unable to rasterize expression: %w", err)
	}
	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}
	if !opts.Transparent && images.IsGrayscale(img) {
		img = images.ToGray(img)
	}

	// imaging rotates counter-clockwise
	switch rotation {
	case 90:
		img = imaging.Rotate270(img)
	case 180:
		img = imaging.Rotate180(img)
	case 270:
		img = imaging.Rotate90(img)
	}
	return img, nil
}

// PNG renders scene as PNG image.
func PNG(src Source, opts Options) ([]byte, error) {
	img, err := Raster(src, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("unable to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
