// Package app wires the sketch together: window, renderer, page and
// controller, run on the main thread.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/pagesketch/internal/assets"
	"github.com/Faultbox/pagesketch/internal/config"
	"github.com/Faultbox/pagesketch/internal/engine/input"
	"github.com/Faultbox/pagesketch/internal/engine/renderer"
	"github.com/Faultbox/pagesketch/internal/engine/screenshot"
	"github.com/Faultbox/pagesketch/internal/engine/shader"
	"github.com/Faultbox/pagesketch/internal/engine/window"
	"github.com/Faultbox/pagesketch/internal/frame"
	"github.com/Faultbox/pagesketch/internal/logger"
	"github.com/Faultbox/pagesketch/internal/page"
	"github.com/Faultbox/pagesketch/internal/sketch"
)

// App is the running sketch.
type App struct {
	config *config.Config
	log    *zap.Logger

	assets   *assets.Manager
	window   *window.Window
	renderer *renderer.Renderer
	watcher  *shader.Watcher
	page     *page.Document
	loop     *frame.Loop
	sketch   *sketch.Controller
	capture  *screenshot.Capture

	events      []input.Event
	wantCapture bool
}

// New opens the window, creates the renderer and loads the page layout.
// Page assets are not awaited until Run.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config:  cfg,
		log:     logger.Named("app"),
		assets:  assets.NewManager(),
		capture: screenshot.New(cfg.Graphics.ScreenshotDir, "sketch"),
	}

	a.log.Info("initializing",
		zap.String("page", cfg.Page.Path),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	doc, err := page.Load(cfg.Page.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}
	a.page = doc

	title := cfg.Graphics.Title
	if doc.Title != "" {
		title = doc.Title
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if cfg.Scene.HotReload && cfg.Scene.ShaderDir != "" {
		a.watcher, err = shader.NewWatcher(cfg.Scene.ShaderDir, shader.DefaultDebounce)
		if err != nil {
			// not fatal: shaders still load, they just won't reload
			a.log.Warn("shader hot reload disabled", zap.Error(err))
			a.watcher = nil
		}
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:   width,
		Height:  height,
		Shaders: shader.Library{Dir: cfg.Scene.ShaderDir},
		Watcher: a.watcher,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.loop = &frame.Loop{
		Poll:     a.poll,
		Present:  a.present,
		FPSLimit: cfg.Graphics.FPSLimit,
	}

	opts := sketch.OptionsFromConfig(cfg)
	if opts.OceanTexture != "" {
		opts.OceanTexture = doc.Resolve(opts.OceanTexture)
	}
	a.sketch, err = sketch.New(sketch.Deps{
		Viewport:    a.window,
		Backend:     backend{renderer: a.renderer, window: a.window},
		Scheduler:   a.loop,
		LoadTexture: a.assets.Load,
		Images:      doc.Images,
		Signals:     doc.Signals(a.assets.Load),
		Pump:        a.pump,
	}, opts)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.log.Info("initialized")
	return a, nil
}

// Run waits for the page, builds the scene and renders until the window
// closes or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("waiting for page assets",
		zap.Int("fonts", len(a.page.Fonts)),
		zap.Int("images", len(a.page.Images)),
	)
	err := a.sketch.Start(ctx)
	if errors.Is(err, sketch.ErrQuit) {
		a.log.Info("closed while loading")
		return nil
	}
	if err != nil {
		return err
	}
	hits, misses := a.assets.Cache().Stats()
	a.log.Info("render loop ended",
		zap.Uint64("frames", a.loop.Frames()),
		zap.Int("image_cache_hits", hits),
		zap.Int("image_cache_misses", misses),
	)
	return nil
}

// pump keeps the window responsive while page assets load. Only quit
// matters before the scene exists.
func (a *App) pump() bool {
	var quit bool
	a.events, quit = a.window.PollEvents(a.events)
	return !quit
}

// poll forwards window events to the controller; false means quit.
func (a *App) poll() bool {
	var quit bool
	a.events, quit = a.window.PollEvents(a.events)
	for _, ev := range a.events {
		if ev.Type == input.EventScreenshot {
			a.wantCapture = true
			continue
		}
		a.sketch.HandleEvent(ev)
	}
	return !quit
}

// present swaps buffers, capturing the finished frame first if asked to.
func (a *App) present() {
	if a.wantCapture {
		a.wantCapture = false
		a.screenshot()
	}
	a.window.SwapBuffers()
}

// screenshot saves the frame in the back buffer.
func (a *App) screenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	name, err := a.capture.SavePixels(pixels, width, height)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

// Close releases GPU, window and watcher resources.
func (a *App) Close() {
	a.log.Info("closing")

	if a.sketch != nil {
		a.sketch.Stop()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing shader watcher", zap.Error(err))
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
