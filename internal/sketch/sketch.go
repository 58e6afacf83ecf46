// Package sketch drives the page sketch scene: it waits for the page's fonts
// and images, lays one plane over every page image, adds an animated ocean
// plane, and renders a frame each tick.
//
// World units equal screen pixels on the z=0 plane, because the camera's
// field of view is derived from the viewport height at the camera depth.
package sketch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pagesketch/internal/engine/camera"
	"github.com/Faultbox/pagesketch/internal/engine/geometry"
	"github.com/Faultbox/pagesketch/internal/engine/input"
	"github.com/Faultbox/pagesketch/internal/engine/scene"
	"github.com/Faultbox/pagesketch/internal/engine/shader"
	"github.com/Faultbox/pagesketch/internal/engine/texture"
	"github.com/Faultbox/pagesketch/internal/frame"
	"github.com/Faultbox/pagesketch/internal/logger"
	"github.com/Faultbox/pagesketch/internal/page"
	"github.com/Faultbox/pagesketch/internal/ready"
)

// PlaceholderColor fills image planes that are not textured.
const PlaceholderColor = 0xff0000

// PumpInterval is how often Pump runs while page assets load.
const PumpInterval = 16 * time.Millisecond

var (
	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("sketch already started")
	// ErrQuit is returned by Start when Pump asks to quit before the page
	// is ready.
	ErrQuit = errors.New("quit while waiting for page")
)

// Viewport reports the size of the drawing surface in pixels.
type Viewport interface {
	Size() (width, height int)
}

// Backend draws scenes.
type Backend interface {
	SetSize(width, height int)
	Render(s *scene.Scene, cam *camera.Perspective) error
}

// TextureLoader decodes an image file.
type TextureLoader func(path string) (*texture.Image, error)

// Deps are the collaborators a Controller needs.
type Deps struct {
	Viewport  Viewport
	Backend   Backend
	Scheduler frame.Scheduler
	// LoadTexture loads the ocean texture; nil uses texture.Load.
	LoadTexture TextureLoader
	// Images are the page's image elements, in document order.
	Images []*page.Image
	// Signals must all resolve before the scene is built.
	Signals []ready.Signal
	// Pump runs on the goroutine calling Start while the signals resolve,
	// so the window keeps handling events. Returning false abandons the
	// wait. Nil blocks until the wait ends.
	Pump func() bool
}

// Placement ties a page image to the plane covering it. Rect is the image's
// bounding box when the scene was built; later layout changes are not
// tracked.
type Placement struct {
	Image *page.Image
	Mesh  *scene.Mesh
	Rect  page.Rect
}

// Controller owns the camera, the scene and the clock.
type Controller struct {
	opts Options
	deps Deps
	log  *zap.Logger

	width  int
	height int

	camera *camera.Perspective
	orbit  *camera.OrbitControls
	scene  *scene.Scene

	placements []Placement
	object     *scene.Mesh
	material   *scene.ShaderMaterial

	frames uint64

	mu      sync.Mutex
	started bool
	built   bool
}

// New reads the viewport size and builds the camera. Nothing is added to the
// scene until Start.
func New(deps Deps, opts Options) (*Controller, error) {
	if deps.Viewport == nil || deps.Backend == nil || deps.Scheduler == nil {
		return nil, errors.New("sketch: viewport, backend and scheduler are required")
	}
	if deps.LoadTexture == nil {
		deps.LoadTexture = texture.Load
	}
	opts = opts.withDefaults()

	c := &Controller{
		opts:  opts,
		deps:  deps,
		log:   logger.Named("sketch"),
		scene: scene.New(),
	}
	c.width, c.height = deps.Viewport.Size()
	c.camera = camera.NewPerspective(c.width, c.height, opts.Depth, opts.Near, opts.Far)

	if opts.Orbit {
		c.orbit = camera.NewOrbitControls(c.camera)
		if opts.DragSensitivity > 0 {
			c.orbit.DragSensitivity = opts.DragSensitivity
		}
		if opts.ZoomSensitivity > 0 {
			c.orbit.ZoomSensitivity = opts.ZoomSensitivity
		}
	}

	c.log.Debug("camera ready",
		zap.Int("width", c.width),
		zap.Int("height", c.height),
		zap.Float64("fov", c.camera.Fov),
	)
	return c, nil
}

// Start waits for every readiness signal, builds the scene, and hands the
// frame function to the scheduler. Its return follows the scheduler: a
// display loop blocks until it stops. If waiting fails nothing is built.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.mu.Unlock()

	if err := c.waitReady(ctx); err != nil {
		return err
	}
	if err := c.Build(); err != nil {
		return err
	}
	return c.deps.Scheduler.Start(ctx, c.Render)
}

// waitReady joins the readiness signals on a separate goroutine and pumps
// events on this one until they resolve.
func (c *Controller) waitReady(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ready.Wait(ctx, ready.Options{Timeout: c.opts.ReadyTimeout}, c.deps.Signals...)
	}()

	var err error
	if c.deps.Pump == nil {
		err = <-done
	} else {
		err = c.pumpUntil(done, cancel)
	}
	if errors.Is(err, ErrQuit) {
		c.log.Info("quit before the page was ready")
		return err
	}
	if err != nil {
		return fmt.Errorf("wait for page: %w", err)
	}
	return nil
}

func (c *Controller) pumpUntil(done <-chan error, cancel context.CancelFunc) error {
	ticker := time.NewTicker(PumpInterval)
	defer ticker.Stop()

	for {
		if !c.deps.Pump() {
			cancel()
			<-done
			return ErrQuit
		}
		select {
		case err := <-done:
			return err
		case <-ticker.C:
		}
	}
}

// Build runs the post-ready setup in order: add images, position them,
// resize, add the animated object.
func (c *Controller) Build() error {
	c.AddImages()
	c.SetPosition()
	c.Resize()
	if err := c.AddObjects(); err != nil {
		return err
	}

	c.mu.Lock()
	c.built = true
	c.mu.Unlock()

	c.log.Info("scene built",
		zap.Int("images", len(c.placements)),
		zap.Int("meshes", c.scene.Len()),
	)
	return nil
}

// Stop halts the frame scheduler.
func (c *Controller) Stop() {
	c.deps.Scheduler.Stop()
}

// AddImages adds one plane per page image, sized to its bounding box.
func (c *Controller) AddImages() {
	for _, img := range c.deps.Images {
		rect := img.Bounds()
		geo := geometry.NewPlane(float32(rect.Width), float32(rect.Height), 1, 1)

		mat := &scene.BasicMaterial{Color: scene.Hex(PlaceholderColor)}
		if c.opts.TexturedImages {
			if tex := img.Texture(); tex != nil {
				mat.Color = scene.Hex(0xffffff)
				mat.Map = tex
			}
		}

		mesh := scene.NewMesh("image:"+img.Src, geo, mat)
		c.scene.Add(mesh)
		c.placements = append(c.placements, Placement{Image: img, Mesh: mesh, Rect: rect})
	}
}

// SetPosition moves every image plane so it covers its rect on screen.
func (c *Controller) SetPosition() {
	for _, p := range c.placements {
		x, y := PagePosition(p.Rect, c.width, c.height)
		p.Mesh.Position.X = x
		p.Mesh.Position.Y = y
	}
}

// PagePosition converts a page rect to the world position of its centre on
// the z=0 plane of a width x height viewport.
func PagePosition(r page.Rect, width, height int) (x, y float64) {
	x = r.Left - float64(width)/2 + r.Width/2
	y = -r.Top + float64(height)/2 - r.Height/2
	return x, y
}

// Resize re-reads the viewport, resizes the backend and updates the
// camera's aspect and projection. Image planes keep their positions and the
// field of view is not recomputed.
func (c *Controller) Resize() {
	c.width, c.height = c.deps.Viewport.Size()
	c.deps.Backend.SetSize(c.width, c.height)
	if c.camera.Fov <= 0 && c.height > 0 {
		// started minimized; the first real height fixes the pixel scale
		c.camera.Fov = camera.FovForHeight(float64(c.height), c.opts.Depth)
	}
	c.camera.SetAspect(c.width, c.height)
	c.camera.UpdateProjectionMatrix()
}

// AddObjects adds the animated wireframe plane shaded by the ocean program.
func (c *Controller) AddObjects() error {
	tex, err := c.deps.LoadTexture(c.opts.OceanTexture)
	if err != nil {
		return fmt.Errorf("load ocean texture: %w", err)
	}
	uniforms := map[string]*scene.Uniform{
		"time":         {Value: 0.0},
		"oceanTexture": {Value: tex},
	}

	c.material = &scene.ShaderMaterial{
		Program:   shader.Ocean,
		Uniforms:  uniforms,
		Side:      scene.DoubleSide,
		Wireframe: true,
	}
	seg := c.opts.ObjectSegments
	geo := geometry.NewPlane(float32(c.opts.ObjectWidth), float32(c.opts.ObjectHeight), seg, seg)
	c.object = scene.NewMesh("ocean", geo, c.material)
	c.scene.Add(c.object)
	return nil
}

// Render advances the clock one step, animates the object and draws a frame.
func (c *Controller) Render() error {
	c.frames++
	t := c.Time()
	if c.object != nil {
		c.object.Rotation.X = t / 2000
		c.object.Rotation.Y = t / 1000
		c.material.Uniforms["time"].Value = t
	}
	return c.deps.Backend.Render(c.scene, c.camera)
}

// HandleEvent reacts to window and pointer events. Events arriving before the
// scene is built are ignored.
func (c *Controller) HandleEvent(ev input.Event) {
	c.mu.Lock()
	built := c.built
	c.mu.Unlock()
	if !built {
		return
	}

	switch ev.Type {
	case input.EventWindowResize:
		c.Resize()
	case input.EventDrag:
		if c.orbit != nil {
			c.orbit.HandleDrag(ev.DeltaX, ev.DeltaY)
		}
	case input.EventWheel:
		if c.orbit != nil {
			c.orbit.HandleZoom(ev.DeltaY)
		}
	}
}

// Time returns the shader clock: frames rendered times the step.
func (c *Controller) Time() float64 {
	return float64(c.frames) * c.opts.TimeStep
}

// Frames returns how many frames Render has drawn.
func (c *Controller) Frames() uint64 { return c.frames }

// Camera returns the controller's camera.
func (c *Controller) Camera() *camera.Perspective { return c.camera }

// Scene returns the scene being drawn.
func (c *Controller) Scene() *scene.Scene { return c.scene }

// Object returns the animated plane, or nil before the scene is built.
func (c *Controller) Object() *scene.Mesh { return c.object }

// Material returns the animated plane's material, or nil before the scene is
// built.
func (c *Controller) Material() *scene.ShaderMaterial { return c.material }

// Placements returns the image planes in page order.
func (c *Controller) Placements() []Placement { return c.placements }

// ViewportSize returns the size last read from the viewport.
func (c *Controller) ViewportSize() (width, height int) { return c.width, c.height }
