// Package camera provides the perspective camera used to map page pixels into
// world space, and orbit controls that move it.
package camera

import (
	gomath "math"

	"github.com/Faultbox/pagesketch/pkg/math"
)

// FovForHeight returns the vertical field of view, in degrees, at which a
// plane at distance depth from the camera shows exactly height world units.
// With it one world unit covers one screen pixel at that depth.
func FovForHeight(height, depth float64) float64 {
	return 2 * gomath.Atan((height/2)/depth) * (180 / gomath.Pi)
}

// Perspective is a perspective camera looking at Target from Position.
//
// Like most scene-graph cameras it does not track its own fields: after
// changing Fov, Aspect, Near or Far, UpdateProjectionMatrix must be called
// before the next draw.
type Perspective struct {
	Fov    float64 // vertical, degrees
	Aspect float64 // width / height
	Near   float64
	Far    float64

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	projection math.Mat4
}

// NewPerspective creates a camera placed depth units in front of the origin
// on +Z, sized for a width x height viewport. Its projection is ready to use.
// A zero-height viewport (a minimized window) starts with a square aspect.
func NewPerspective(width, height int, depth, near, far float64) *Perspective {
	c := &Perspective{
		Fov:      FovForHeight(float64(height), depth),
		Aspect:   1,
		Near:     near,
		Far:      far,
		Position: math.Vec3{X: 0, Y: 0, Z: float32(depth)},
		Up:       math.Vec3{X: 0, Y: 1, Z: 0},
	}
	c.SetAspect(width, height)
	c.UpdateProjectionMatrix()
	return c
}

// SetAspect sets Aspect from a viewport size. A zero height (minimized
// window) leaves the aspect untouched.
func (c *Perspective) SetAspect(width, height int) {
	if height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

// UpdateProjectionMatrix recomputes the projection from Fov, Aspect, Near and
// Far. A zero fov or aspect keeps the previous projection.
func (c *Perspective) UpdateProjectionMatrix() {
	if c.Fov <= 0 || c.Aspect <= 0 {
		return
	}
	fovY := c.Fov * gomath.Pi / 180
	c.projection = math.Perspective(float32(fovY), float32(c.Aspect), float32(c.Near), float32(c.Far))
}

// Projection returns the projection computed by the last UpdateProjectionMatrix.
func (c *Perspective) Projection() math.Mat4 {
	return c.projection
}

// ViewMatrix returns the view matrix for the current position and target.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}
