package geometry

import "testing"

func TestNewPlaneCounts(t *testing.T) {
	tests := []struct {
		segX, segY  int
		wantVerts   int
		wantIndices int
	}{
		{1, 1, 4, 6},
		{10, 10, 121, 600},
		{3, 2, 12, 36},
		{0, -1, 4, 6},
	}

	for _, tt := range tests {
		p := NewPlane(200, 400, tt.segX, tt.segY)
		if got := p.VertexCount(); got != tt.wantVerts {
			t.Errorf("NewPlane(%d,%d) vertices = %d, want %d", tt.segX, tt.segY, got, tt.wantVerts)
		}
		if got := len(p.Indices); got != tt.wantIndices {
			t.Errorf("NewPlane(%d,%d) indices = %d, want %d", tt.segX, tt.segY, got, tt.wantIndices)
		}
		if got := len(p.UVs); got != tt.wantVerts*2 {
			t.Errorf("NewPlane(%d,%d) uvs = %d, want %d", tt.segX, tt.segY, got, tt.wantVerts*2)
		}
	}
}

func TestNewPlaneExtents(t *testing.T) {
	p := NewPlane(200, 400, 10, 10)

	minX, maxX := p.Positions[0], p.Positions[0]
	minY, maxY := p.Positions[1], p.Positions[1]
	for i := 0; i < p.VertexCount(); i++ {
		x, y, z := p.Positions[i*3], p.Positions[i*3+1], p.Positions[i*3+2]
		if z != 0 {
			t.Fatalf("vertex %d has z=%v", i, z)
		}
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}

	if minX != -100 || maxX != 100 {
		t.Errorf("x range [%v,%v], want [-100,100]", minX, maxX)
	}
	if minY != -200 || maxY != 200 {
		t.Errorf("y range [%v,%v], want [-200,200]", minY, maxY)
	}
}

func TestNewPlaneUVCorners(t *testing.T) {
	p := NewPlane(2, 2, 1, 1)

	// top-left, top-right, bottom-left, bottom-right
	want := []float32{0, 1, 1, 1, 0, 0, 1, 0}
	for i := range want {
		if p.UVs[i] != want[i] {
			t.Fatalf("UVs = %v, want %v", p.UVs, want)
		}
	}
}

func TestNewPlaneIndicesInRange(t *testing.T) {
	p := NewPlane(50, 50, 4, 7)
	n := uint32(p.VertexCount())
	for i, idx := range p.Indices {
		if idx >= n {
			t.Fatalf("index %d = %d out of range (%d vertices)", i, idx, n)
		}
	}
}

func TestInterleaved(t *testing.T) {
	p := NewPlane(2, 2, 1, 1)
	data := p.Interleaved()

	if len(data) != 4*8 {
		t.Fatalf("len = %d, want 32", len(data))
	}
	// first vertex: top-left, facing +Z, uv (0,1)
	want := []float32{-1, 1, 0, 0, 0, 1, 0, 1}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("data[%d] = %v, want %v", i, data[i], want[i])
		}
	}
}
