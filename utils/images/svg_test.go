package images

import (
	"image"
	"image/color"
	"testing"
)

const rectSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><path d="M0 0L100 0L100 50L0 50Z" fill="#000000"/></svg>`

func TestRasterizeSVGToImage(t *testing.T) {
	tests := []struct {
		name         string
		tw, th       int
		wantW, wantH int
	}{
		{"intrinsic", 0, 0, 100, 50},
		{"scale_by_width", 200, 0, 200, 100},
		{"scale_by_height", 0, 200, 400, 200},
		{"fit_box", 150, 150, 150, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RasterizeSVGToImage([]byte(rectSVG), tt.tw, tt.th, color.White)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Fatalf("unexpected bounds: %v", img.Bounds())
			}
		})
	}
}

func TestRasterizeSVGToImage_Background(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"></svg>`)

	img, err := RasterizeSVGToImage(svg, 0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(5, 5).RGBA(); a != 0 {
		t.Errorf("nil background must stay transparent, alpha %d", a)
	}

	img, err = RasterizeSVGToImage(svg, 0, 0, color.White)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, a := img.At(5, 5).RGBA(); a != 0xffff || r != 0xffff {
		t.Errorf("background is not white: %v", img.At(5, 5))
	}
}

func TestRasterizeSVGToImage_Clamp(t *testing.T) {
	old := maxRasterDim
	maxRasterDim = 64
	defer func() { maxRasterDim = old }()

	img, err := RasterizeSVGToImage([]byte(rectSVG), 1000, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Errorf("unexpected bounds: %v", img.Bounds())
	}
}

func TestGrayscale(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(0, 0, color.RGBA{10, 10, 10, 255})
	rgba.Set(1, 0, color.RGBA{200, 200, 200, 255})
	if !IsGrayscale(rgba) {
		t.Error("gray pixels reported as color")
	}
	g := ToGray(rgba)
	if g.GrayAt(0, 0).Y != 10 || g.GrayAt(1, 0).Y != 200 {
		t.Errorf("unexpected gray values %v %v", g.GrayAt(0, 0), g.GrayAt(1, 0))
	}

	rgba.Set(1, 0, color.RGBA{200, 0, 0, 255})
	if IsGrayscale(rgba) {
		t.Error("red pixel reported as gray")
	}
	rgba.Set(1, 0, color.RGBA{0, 0, 0, 0})
	if IsGrayscale(rgba) {
		t.Error("transparent pixel must not be treated as gray")
	}
}
