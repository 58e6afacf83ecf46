// Package page describes the laid-out page the sketch mirrors: image
// elements with their bounding boxes and the font families the page uses.
// A page is a YAML document standing in for a rendered DOM.
package page

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/pagesketch/internal/engine/texture"
)

// Rect is a bounding box in page coordinates: origin at the top-left of the
// viewport, y growing downward, units in pixels.
type Rect struct {
	Top    float64 `yaml:"top"`
	Left   float64 `yaml:"left"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Image is an image element on the page.
type Image struct {
	Src  string `yaml:"src"`
	Alt  string `yaml:"alt,omitempty"`
	Rect Rect   `yaml:"rect"`

	path    string
	decoded *texture.Image
}

// Path returns Src resolved against the page's directory.
func (i *Image) Path() string {
	if i.path == "" {
		return i.Src
	}
	return i.path
}

// Texture returns the decoded image, or nil before preload.
func (i *Image) Texture() *texture.Image {
	return i.decoded
}

// NaturalSize returns the decoded pixel size. ok is false before preload.
func (i *Image) NaturalSize() (width, height int, ok bool) {
	if i.decoded == nil {
		return 0, 0, false
	}
	return i.decoded.Width(), i.decoded.Height(), true
}

// Bounds returns the element's bounding box. A zero width or height in the
// layout means "auto" and takes the natural size once the image is loaded.
func (i *Image) Bounds() Rect {
	r := i.Rect
	w, h, ok := i.NaturalSize()
	if !ok {
		return r
	}
	switch {
	case r.Width == 0 && r.Height == 0:
		r.Width, r.Height = float64(w), float64(h)
	case r.Width == 0:
		r.Width = r.Height * float64(w) / float64(h)
	case r.Height == 0:
		r.Height = r.Width * float64(h) / float64(w)
	}
	return r
}

// Font is a font family the page waits for before it is considered laid out.
type Font struct {
	Family string `yaml:"family"`
	File   string `yaml:"file"`
}

// Document is a parsed page layout.
type Document struct {
	Title  string   `yaml:"title"`
	Fonts  []Font   `yaml:"fonts"`
	Images []*Image `yaml:"images"`

	dir string
}

// Load reads a page layout file. Relative asset paths resolve against the
// file's directory.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes a page layout, resolving relative paths against dir.
func Parse(data []byte, dir string) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	doc.dir = dir

	for i, img := range doc.Images {
		if img == nil || img.Src == "" {
			return nil, fmt.Errorf("parse page: image %d has no src", i)
		}
		img.path = doc.Resolve(img.Src)
	}
	for i, f := range doc.Fonts {
		if f.Family == "" || f.File == "" {
			return nil, fmt.Errorf("parse page: font %d needs family and file", i)
		}
	}
	return &doc, nil
}

// Resolve returns p unchanged if absolute, else joined to the page directory.
func (d *Document) Resolve(p string) string {
	if filepath.IsAbs(p) || d.dir == "" {
		return p
	}
	return filepath.Join(d.dir, p)
}
