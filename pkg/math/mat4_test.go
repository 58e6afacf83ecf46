package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint([3]float32{1, 2, 3})

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint([3]float32{1, 0, 0})

	// (1,0,0) turns into (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestEulerXYZOrder(t *testing.T) {
	x, y, z := float32(0.3), float32(-0.7), float32(1.1)
	got := EulerXYZ(x, y, z)
	want := RotateX(x).Mul(RotateY(y)).Mul(RotateZ(z))
	if got != want {
		t.Errorf("EulerXYZ = %v, want %v", got, want)
	}

	if EulerXYZ(0, 0, 0) != Identity() {
		t.Error("EulerXYZ(0,0,0) should be identity")
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	m := Perspective(fov, 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 600}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	got := m.TransformPoint([3]float32{eye.X, eye.Y, eye.Z})
	for i, c := range got {
		if abs(c) > 0.001 {
			t.Errorf("eye component %d = %f, want 0", i, c)
		}
	}

	// The target sits straight ahead on -Z.
	target := m.TransformPoint([3]float32{0, 0, 0})
	if abs(target[2]+600) > 0.001 {
		t.Errorf("target z = %f, want -600", target[2])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
