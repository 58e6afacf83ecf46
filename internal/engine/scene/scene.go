// Package scene holds the renderer-independent scene graph: meshes with
// geometry, a material and a transform. Nothing here touches OpenGL, so the
// sketch controller can be driven and inspected in tests.
package scene

import (
	"github.com/Faultbox/pagesketch/internal/engine/geometry"
	"github.com/Faultbox/pagesketch/pkg/math"
)

// Vector3 is a double-precision position or Euler rotation.
type Vector3 struct {
	X, Y, Z float64
}

// Mesh is a drawable plane placed in the world.
type Mesh struct {
	Name     string
	Geometry *geometry.Plane
	Material Material

	Position Vector3
	Rotation Vector3 // Euler angles in radians, applied Z, then Y, then X
}

// NewMesh creates a mesh at the origin.
func NewMesh(name string, geo *geometry.Plane, mat Material) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: geo,
		Material: mat,
	}
}

// ModelMatrix returns T * Rx * Ry * Rz for the current transform.
func (m *Mesh) ModelMatrix() math.Mat4 {
	t := math.Translate(float32(m.Position.X), float32(m.Position.Y), float32(m.Position.Z))
	r := math.EulerXYZ(float32(m.Rotation.X), float32(m.Rotation.Y), float32(m.Rotation.Z))
	return t.Mul(r)
}

// Scene is an ordered list of meshes. Meshes draw in insertion order.
type Scene struct {
	meshes []*Mesh
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends meshes to the scene.
func (s *Scene) Add(meshes ...*Mesh) {
	s.meshes = append(s.meshes, meshes...)
}

// Meshes returns the scene's meshes in draw order.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Len returns the number of meshes.
func (s *Scene) Len() int {
	return len(s.meshes)
}
