package source

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/vova616/screenshot"
)

// ScreenName is the upload filename used for screen captures.
const ScreenName = "screen.png"

// FromScreen captures the primary screen and wraps it as a PNG source.
func FromScreen() (*Image, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return nil, fmt.Errorf("encode capture: %w", err)
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrEmpty
	}
	return &Image{
		Name:      ScreenName,
		MediaType: "image/png",
		Data:      buf.Bytes(),
		Pixels:    img,
		Size:      size,
	}, nil
}
