// Package geometry builds CPU-side vertex data for scene meshes.
package geometry

// Plane is a flat rectangle in the XY plane, centered on the origin and
// facing +Z, split into a grid of quads.
type Plane struct {
	Width, Height float32
	SegmentsX     int
	SegmentsY     int
	Positions     []float32 // x,y,z per vertex
	Normals       []float32 // x,y,z per vertex
	UVs           []float32 // u,v per vertex
	Indices       []uint32  // two counter-clockwise triangles per quad
}

// NewPlane builds a width x height plane with segX x segY quads. Segment
// counts below 1 are treated as 1.
//
// Vertices run row by row from the top-left corner; u grows to the right and
// v grows upward, so v=1 is the top edge.
func NewPlane(width, height float32, segX, segY int) *Plane {
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}

	cols := segX + 1
	rows := segY + 1
	n := cols * rows

	p := &Plane{
		Width:     width,
		Height:    height,
		SegmentsX: segX,
		SegmentsY: segY,
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		UVs:       make([]float32, 0, n*2),
		Indices:   make([]uint32, 0, segX*segY*6),
	}

	halfW := width / 2
	halfH := height / 2
	cellW := width / float32(segX)
	cellH := height / float32(segY)

	for iy := 0; iy < rows; iy++ {
		y := halfH - float32(iy)*cellH
		for ix := 0; ix < cols; ix++ {
			x := -halfW + float32(ix)*cellW
			p.Positions = append(p.Positions, x, y, 0)
			p.Normals = append(p.Normals, 0, 0, 1)
			p.UVs = append(p.UVs, float32(ix)/float32(segX), 1-float32(iy)/float32(segY))
		}
	}

	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint32(ix + cols*iy)
			b := uint32(ix + cols*(iy+1))
			c := uint32(ix + 1 + cols*(iy+1))
			d := uint32(ix + 1 + cols*iy)
			p.Indices = append(p.Indices, a, b, d, b, c, d)
		}
	}

	return p
}

// VertexCount returns the number of vertices.
func (p *Plane) VertexCount() int {
	return len(p.Positions) / 3
}

// Interleaved returns position, normal and uv per vertex packed as
// x,y,z,nx,ny,nz,u,v for a single GL buffer.
func (p *Plane) Interleaved() []float32 {
	n := p.VertexCount()
	out := make([]float32, 0, n*8)
	for i := 0; i < n; i++ {
		out = append(out, p.Positions[i*3:i*3+3]...)
		out = append(out, p.Normals[i*3:i*3+3]...)
		out = append(out, p.UVs[i*2:i*2+2]...)
	}
	return out
}
