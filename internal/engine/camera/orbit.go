package camera

import (
	gomath "math"

	"github.com/Faultbox/pagesketch/pkg/math"
)

// OrbitControls orbits a Perspective camera around its target.
// Zero pitch and yaw put the camera on the target's +Z axis.
type OrbitControls struct {
	camera *Perspective

	// Spherical coordinates around camera.Target
	Distance float32
	Pitch    float32 // radians, positive looks down
	Yaw      float32 // radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitControls attaches controls to cam, starting from its current
// distance to the target with zero pitch and yaw.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	dist := cam.Position.Distance(cam.Target)
	o := &OrbitControls{
		camera:          cam,
		Distance:        dist,
		MinDistance:     float32(cam.Near),
		MaxDistance:     float32(cam.Far),
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
	o.Apply()
	return o
}

// Apply writes the orbit position into the camera.
func (o *OrbitControls) Apply() {
	o.camera.Position = o.position()
}

func (o *OrbitControls) position() math.Vec3 {
	x := o.Distance * float32(gomath.Cos(float64(o.Pitch))*gomath.Sin(float64(o.Yaw)))
	y := o.Distance * float32(gomath.Sin(float64(o.Pitch)))
	z := o.Distance * float32(gomath.Cos(float64(o.Pitch))*gomath.Cos(float64(o.Yaw)))
	return o.camera.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// HandleDrag rotates around the target by a pointer drag delta in pixels.
func (o *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	o.Yaw -= deltaX * o.DragSensitivity
	o.Pitch += deltaY * o.DragSensitivity

	if o.Pitch < o.MinPitch {
		o.Pitch = o.MinPitch
	}
	if o.Pitch > o.MaxPitch {
		o.Pitch = o.MaxPitch
	}
	o.Apply()
}

// HandleZoom dollies toward (positive delta) or away from the target.
func (o *OrbitControls) HandleZoom(delta float32) {
	o.Distance -= delta * o.Distance * o.ZoomSensitivity
	if o.Distance < o.MinDistance {
		o.Distance = o.MinDistance
	}
	if o.Distance > o.MaxDistance {
		o.Distance = o.MaxDistance
	}
	o.Apply()
}
