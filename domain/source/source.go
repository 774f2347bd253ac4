// Package source loads the photo being edited.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ErrEmpty is returned for zero-length or zero-sized images.
var ErrEmpty = errors.New("empty image")

// Image is a loaded source photo. Data holds the original bytes, which are
// uploaded verbatim; Pixels is the decoded bitmap in the same pixel space the
// extraction service decodes.
type Image struct {
	Name      string
	MediaType string
	Data      []byte
	Pixels    image.Image
	Size      image.Point
}

// Load reads and decodes the file at path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(filepath.Base(path), data)
}

// Decode decodes data. EXIF orientation is not applied, so the
// selection coordinates match the raw bitmap the service sees.
func Decode(name string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrEmpty
	}
	return &Image{
		Name:      name,
		MediaType: http.DetectContentType(data),
		Data:      data,
		Pixels:    img,
		Size:      size,
	}, nil
}
