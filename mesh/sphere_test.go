package mesh

import (
	"math"
	"testing"
)

func TestUVSphereCounts(t *testing.T) {
	const sectors, stacks = 32, 16
	m := UVSphere(1, sectors, stacks)

	wantVerts := (sectors + 1) * (stacks + 1)
	if m.VertexCount() != wantVerts {
		t.Errorf("vertex count %d, want %d", m.VertexCount(), wantVerts)
	}
	// Every stack band is a quad strip except the two pole bands, which are
	// triangle fans.
	wantTris := 2 * sectors * (stacks - 1)
	if m.IndexCount() != wantTris*3 {
		t.Errorf("index count %d, want %d", m.IndexCount(), wantTris*3)
	}
	if len(m.Indices)%3 != 0 {
		t.Errorf("index count %d not a multiple of 3", len(m.Indices))
	}
}

func TestUVSphereGeometry(t *testing.T) {
	const radius = 2.0
	m := UVSphere(radius, 16, 8)
	for i := 0; i < m.VertexCount(); i++ {
		x := float64(m.Positions[3*i])
		y := float64(m.Positions[3*i+1])
		z := float64(m.Positions[3*i+2])
		r := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(r-radius) > 1e-5 {
			t.Fatalf("vertex %d at radius %v, want %v", i, r, radius)
		}
		u, v := m.UVs[2*i], m.UVs[2*i+1]
		if u < 0 || u > 1 || v < 0 || v > 1 {
			t.Fatalf("vertex %d uv (%v,%v) outside [0,1]", i, u, v)
		}
	}
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d out of range (%d vertices)", idx, m.VertexCount())
		}
	}
}

func TestInterleavedStride(t *testing.T) {
	m := UVSphere(1, 8, 4)
	il := m.Interleaved()
	if len(il) != m.VertexCount()*5 {
		t.Errorf("interleaved length %d, want %d", len(il), m.VertexCount()*5)
	}
	// Vertex 0 is the north pole.
	if il[3] != m.UVs[0] || il[4] != m.UVs[1] {
		t.Errorf("interleaved uv (%v,%v), want (%v,%v)", il[3], il[4], m.UVs[0], m.UVs[1])
	}
}

func TestInstanceGridCenteredCount(t *testing.T) {
	offs := InstanceGrid(10, 10, 2.5)
	if len(offs) != 100*3 {
		t.Fatalf("got %d floats, want 300", len(offs))
	}
	var sx, sy, sz float32
	for i := 0; i < 100; i++ {
		sx += offs[3*i]
		sy += offs[3*i+1]
		sz += offs[3*i+2]
	}
	if math.Abs(float64(sx)) > 1e-4 || math.Abs(float64(sy)) > 1e-4 || sz != 0 {
		t.Errorf("grid not centered: sums (%v,%v,%v)", sx, sy, sz)
	}
	// Corner-to-corner extent is (cols-1)*spacing.
	if got := offs[3*99] - offs[0]; math.Abs(float64(got)-22.5) > 1e-4 {
		t.Errorf("x extent %v, want 22.5", got)
	}
}
