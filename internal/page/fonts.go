package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"

	"github.com/Faultbox/pagesketch/internal/ready"
)

// ErrFamilyMismatch means a font file parsed but names a different family.
var ErrFamilyMismatch = errors.New("font family mismatch")

// FontObserver confirms that a font family is available by loading and
// parsing its file.
type FontObserver struct {
	Family string
	Path   string
}

// Load parses the font file and checks its family name. Family names are
// compared ignoring case and spaces.
func (o FontObserver) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(o.Path)
	if err != nil {
		return fmt.Errorf("load font %q: %w", o.Family, err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse font %q from %s: %w", o.Family, o.Path, err)
	}

	got := face.Describe().Family
	if font.NormalizeFamily(got) != font.NormalizeFamily(o.Family) {
		return fmt.Errorf("%w: %s is %q, want %q", ErrFamilyMismatch, o.Path, got, o.Family)
	}
	return nil
}

// Signal wraps the observer as a readiness signal.
func (o FontObserver) Signal() ready.Signal {
	return ready.Signal{Name: "font " + o.Family, Wait: o.Load}
}

// FontObservers returns one observer per font on the page.
func (d *Document) FontObservers() []FontObserver {
	out := make([]FontObserver, 0, len(d.Fonts))
	for _, f := range d.Fonts {
		out = append(out, FontObserver{Family: f.Family, Path: d.Resolve(f.File)})
	}
	return out
}
