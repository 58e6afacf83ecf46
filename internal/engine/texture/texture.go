// Package texture decodes image files into RGBA pixels ready for GL upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Image is a decoded picture. Pixels are stored top row first.
type Image struct {
	Path   string
	Format string
	Pixels *image.RGBA
}

// Width returns the natural width in pixels.
func (i *Image) Width() int {
	return i.Pixels.Bounds().Dx()
}

// Height returns the natural height in pixels.
func (i *Image) Height() int {
	return i.Pixels.Bounds().Dy()
}

// Load reads and decodes an image file.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, path)
}

// Decode decodes PNG, JPEG, GIF, BMP or WebP data. path is only recorded for
// logging and error messages.
func Decode(data []byte, path string) (*Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &Image{
		Path:   path,
		Format: format,
		Pixels: ToRGBA(img),
	}, nil
}

// ToRGBA converts any image.Image to *image.RGBA with bounds starting at (0,0).
// RGBA input with a zero origin is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// GLPixels returns the pixels bottom row first, matching OpenGL's texture
// origin.
func (i *Image) GLPixels() *image.RGBA {
	return transform.FlipV(i.Pixels)
}
