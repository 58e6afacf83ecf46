package scene

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/pagesketch/internal/engine/geometry"
	"github.com/Faultbox/pagesketch/pkg/math"
)

func TestSceneAddKeepsOrder(t *testing.T) {
	s := New()
	a := NewMesh("a", geometry.NewPlane(1, 1, 1, 1), &BasicMaterial{})
	b := NewMesh("b", geometry.NewPlane(1, 1, 1, 1), &BasicMaterial{})

	s.Add(a)
	s.Add(b)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.Meshes()[0] != a || s.Meshes()[1] != b {
		t.Error("meshes not in insertion order")
	}
}

func TestModelMatrixTranslation(t *testing.T) {
	m := NewMesh("m", geometry.NewPlane(1, 1, 1, 1), &BasicMaterial{})
	m.Position = Vector3{X: -350, Y: 150}

	got := m.ModelMatrix().TransformPoint([3]float32{0, 0, 0})
	if got != [3]float32{-350, 150, 0} {
		t.Errorf("origin maps to %v, want (-350,150,0)", got)
	}
}

func TestModelMatrixRotation(t *testing.T) {
	m := NewMesh("m", geometry.NewPlane(1, 1, 1, 1), &BasicMaterial{})
	m.Rotation = Vector3{X: 0.25, Y: 0.5}

	want := math.RotateX(0.25).Mul(math.RotateY(0.5))
	if got := m.ModelMatrix(); got != math.Translate(0, 0, 0).Mul(want) {
		t.Errorf("ModelMatrix = %v, want %v", got, want)
	}

	m.Rotation = Vector3{Y: gomath.Pi / 2}
	p := m.ModelMatrix().TransformPoint([3]float32{1, 0, 0})
	if gomath.Abs(float64(p[2]+1)) > 1e-5 {
		t.Errorf("rotated point = %v, want z=-1", p)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(0xff0000); got != (Color{R: 1}) {
		t.Errorf("Hex(0xff0000) = %v, want red", got)
	}
	if got := Hex(0x00ff00); got != (Color{G: 1}) {
		t.Errorf("Hex(0x00ff00) = %v, want green", got)
	}
}

func TestShaderMaterialFloat(t *testing.T) {
	m := &ShaderMaterial{
		Uniforms: map[string]*Uniform{
			"time":  {Value: 0.25},
			"scale": {Value: float32(2)},
			"tex":   {Value: "not a float"},
		},
	}

	if got := m.Float("time"); got != 0.25 {
		t.Errorf("Float(time) = %v, want 0.25", got)
	}
	if got := m.Float("scale"); got != 2 {
		t.Errorf("Float(scale) = %v, want 2", got)
	}
	if got := m.Float("tex"); got != 0 {
		t.Errorf("Float(tex) = %v, want 0", got)
	}
	if got := m.Float("missing"); got != 0 {
		t.Errorf("Float(missing) = %v, want 0", got)
	}
}

func TestMaterialFlags(t *testing.T) {
	var mat Material = &ShaderMaterial{Side: DoubleSide, Wireframe: true}
	if mat.RenderSide() != DoubleSide || !mat.IsWireframe() {
		t.Error("shader material flags not reported")
	}
	mat = &BasicMaterial{}
	if mat.RenderSide() != FrontSide || mat.IsWireframe() {
		t.Error("basic material defaults should be front side, solid")
	}
}
