package page

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/pagesketch/internal/engine/texture"
	"github.com/Faultbox/pagesketch/internal/logger"
	"github.com/Faultbox/pagesketch/internal/ready"
)

// Preloader decodes page images in parallel.
type Preloader struct {
	Images []*Image
	// Concurrency limits parallel decodes. Zero uses GOMAXPROCS.
	Concurrency int
	// Decode loads one file; nil uses texture.Load.
	Decode func(path string) (*texture.Image, error)
}

// Load decodes every image, recording pixels and natural size on each one.
// It fails on the first image that cannot be loaded.
func (p *Preloader) Load(ctx context.Context) error {
	decode := p.Decode
	if decode == nil {
		decode = texture.Load
	}
	limit := p.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	log := logger.Named("page.preload")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, img := range p.Images {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tex, err := decode(img.Path())
			if err != nil {
				return err
			}
			img.decoded = tex
			log.Debug("image loaded",
				zap.String("src", img.Src),
				zap.Int("width", tex.Width()),
				zap.Int("height", tex.Height()),
			)
			return nil
		})
	}
	return g.Wait()
}

// Signal wraps the preloader as a readiness signal.
func (p *Preloader) Signal() ready.Signal {
	return ready.Signal{Name: "images", Wait: p.Load}
}

// Signals returns the readiness signals for the page: one per font family,
// then one for all images. decode loads each image; nil uses texture.Load.
func (d *Document) Signals(decode func(path string) (*texture.Image, error)) []ready.Signal {
	var out []ready.Signal
	for _, o := range d.FontObservers() {
		out = append(out, o.Signal())
	}
	pre := &Preloader{Images: d.Images, Decode: decode}
	return append(out, pre.Signal())
}
