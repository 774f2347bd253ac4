package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

var (
	checkerLight = color.NRGBA{0x3a, 0x3a, 0x3f, 0xff}
	checkerDark  = color.NRGBA{0x2a, 0x2a, 0x2e, 0xff}
)

// Checkerboard returns a w x h board of square cells.
func Checkerboard(w, h, cell int) *image.NRGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := checkerLight
			if (x/cell+y/cell)%2 == 1 {
				c = checkerDark
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// OverCheckerboard composites img over a checkerboard so transparent areas
// stay visible.
func OverCheckerboard(img image.Image, cell int) *image.NRGBA {
	b := img.Bounds()
	dst := Checkerboard(b.Dx(), b.Dy(), cell)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// PreviewPNG decodes data, scales it to fit maxW x maxH, composites it over a
// checkerboard and re-encodes it for display.
func PreviewPNG(data []byte, maxW, maxH int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return EncodePNG(OverCheckerboard(ScaleToFit(img, maxW, maxH), 8)), nil
}
