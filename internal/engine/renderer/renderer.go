// Package renderer draws a scene graph with OpenGL 4.1.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/pagesketch/internal/engine/camera"
	"github.com/Faultbox/pagesketch/internal/engine/geometry"
	"github.com/Faultbox/pagesketch/internal/engine/glinfo"
	"github.com/Faultbox/pagesketch/internal/engine/scene"
	"github.com/Faultbox/pagesketch/internal/engine/shader"
	"github.com/Faultbox/pagesketch/internal/engine/texture"
	"github.com/Faultbox/pagesketch/internal/logger"
	"github.com/Faultbox/pagesketch/pkg/math"
)

// MinGLVersion is the oldest driver version the renderer accepts.
const MinGLVersion = "4.1"

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// Shaders resolves material program names to GLSL sources.
	Shaders shader.Library
	// Watcher, when set, triggers program recompiles between frames.
	Watcher *shader.Watcher
	// ClearColor is the background; alpha 0 leaves the framebuffer clear.
	ClearColor [4]float32
}

// Renderer handles all OpenGL rendering.
// IMPORTANT: every method must be called on the thread owning the GL context.
type Renderer struct {
	config Config
	log    *zap.Logger

	programs map[string]*program
	meshes   map[*geometry.Plane]*gpuMesh
	textures map[*texture.Image]uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		programs: make(map[string]*program),
		meshes:   make(map[*geometry.Plane]*gpuMesh),
		textures: make(map[*texture.Image]uint32),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	if _, err := glinfo.Require(version, MinGLVersion); err != nil {
		return nil, err
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	// Compile the bundled programs up front so a broken driver fails here
	// rather than on the first frame.
	for _, name := range []string{shader.Basic, shader.Ocean} {
		if _, err := r.program(name); err != nil {
			r.Close()
			return nil, err
		}
	}

	r.SetSize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases all GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, p := range r.programs {
		p.delete()
	}
	for _, m := range r.meshes {
		m.delete()
	}
	for _, id := range r.textures {
		gl.DeleteTextures(1, &id)
	}
	clear(r.programs)
	clear(r.meshes)
	clear(r.textures)
}

// SetSize sets the GL viewport to the drawable size in pixels.
func (r *Renderer) SetSize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels reads back the current framebuffer as tightly packed RGBA rows,
// bottom row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	if width <= 0 || height <= 0 {
		return nil, width, height
	}
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// Render clears the frame and draws every mesh of s as seen from cam.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) error {
	r.reloadChanged()

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj := cam.Projection()
	view := cam.ViewMatrix()

	for _, m := range s.Meshes() {
		if err := r.draw(m, &proj, view); err != nil {
			return fmt.Errorf("draw %s: %w", m.Name, err)
		}
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	return nil
}

func (r *Renderer) draw(m *scene.Mesh, proj *math.Mat4, view math.Mat4) error {
	if m.Geometry == nil || len(m.Geometry.Indices) == 0 {
		return nil
	}

	var (
		prog *program
		err  error
	)
	switch mat := m.Material.(type) {
	case *scene.BasicMaterial:
		prog, err = r.program(shader.Basic)
		if err != nil {
			return err
		}
		gl.UseProgram(prog.id)
		gl.Uniform3f(prog.uniform("color"), mat.Color.R, mat.Color.G, mat.Color.B)
		if mat.Map != nil {
			r.bindTexture(prog, "map", 0, mat.Map)
			gl.Uniform1i(prog.uniform("useMap"), 1)
		} else {
			gl.Uniform1i(prog.uniform("useMap"), 0)
		}
	case *scene.ShaderMaterial:
		prog, err = r.program(mat.Program)
		if err != nil {
			return err
		}
		gl.UseProgram(prog.id)
		r.setUniforms(prog, mat.Uniforms)
	default:
		return fmt.Errorf("unsupported material %T", m.Material)
	}

	modelView := view.Mul(m.ModelMatrix())
	gl.UniformMatrix4fv(prog.uniform("projectionMatrix"), 1, false, proj.Ptr())
	gl.UniformMatrix4fv(prog.uniform("modelViewMatrix"), 1, false, modelView.Ptr())

	applySide(m.Material.RenderSide())
	if m.Material.IsWireframe() {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	gm, ok := r.meshes[m.Geometry]
	if !ok {
		gm = uploadPlane(m.Geometry)
		r.meshes[m.Geometry] = gm
	}
	gl.BindVertexArray(gm.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) setUniforms(prog *program, uniforms map[string]*scene.Uniform) {
	unit := uint32(0)
	for name, u := range uniforms {
		loc := prog.uniform(name)
		if loc < 0 {
			continue
		}
		switch v := u.Value.(type) {
		case float64:
			gl.Uniform1f(loc, float32(v))
		case float32:
			gl.Uniform1f(loc, v)
		case *texture.Image:
			if v == nil {
				continue
			}
			r.bindTexture(prog, name, unit, v)
			unit++
		default:
			r.log.Debug("skipping uniform of unsupported type",
				zap.String("name", name),
				zap.String("type", fmt.Sprintf("%T", v)),
			)
		}
	}
}

func (r *Renderer) bindTexture(prog *program, name string, unit uint32, img *texture.Image) {
	id, ok := r.textures[img]
	if !ok {
		id = uploadTexture(img)
		r.textures[img] = id
		r.log.Debug("texture uploaded",
			zap.String("path", img.Path),
			zap.Int("width", img.Width()),
			zap.Int("height", img.Height()),
		)
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.Uniform1i(prog.uniform(name), int32(unit))
}

func applySide(side scene.Side) {
	switch side {
	case scene.DoubleSide:
		gl.Disable(gl.CULL_FACE)
	case scene.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
}

// program returns the compiled program for name, compiling it on first use.
func (r *Renderer) program(name string) (*program, error) {
	if p, ok := r.programs[name]; ok {
		return p, nil
	}
	src, err := r.config.Shaders.Load(name)
	if err != nil {
		return nil, err
	}
	p, err := newProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}
	r.programs[name] = p
	r.log.Debug("program compiled", zap.String("name", name), zap.Uint32("id", p.id))
	return p, nil
}

// reloadChanged recompiles programs reported by the watcher. A program that
// fails to compile keeps its previous version.
func (r *Renderer) reloadChanged() {
	if r.config.Watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-r.config.Watcher.Changes():
			if !ok {
				r.config.Watcher = nil
				return
			}
			r.reload(name)
		default:
			return
		}
	}
}

func (r *Renderer) reload(name string) {
	old, ok := r.programs[name]
	if !ok {
		return
	}
	src, err := r.config.Shaders.Load(name)
	if err == nil {
		var p *program
		p, err = newProgram(src.Vertex, src.Fragment)
		if err == nil {
			old.delete()
			r.programs[name] = p
			r.log.Info("shader reloaded", zap.String("program", name))
			return
		}
	}
	r.log.Warn("shader reload failed, keeping previous program",
		zap.String("program", name),
		zap.Error(err),
	)
}
