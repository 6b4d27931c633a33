package mesh

import "math"

// Mesh holds interleaved-ready geometry arrays. Positions and Normals are
// xyz-triples, UVs are uv-pairs, all row-major per vertex.
type Mesh struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }
func (m *Mesh) IndexCount() int  { return len(m.Indices) }

// Interleaved flattens the mesh to position+uv per vertex (5 floats), the
// vertex-buffer layout the render pipeline consumes.
func (m *Mesh) Interleaved() []float32 {
	n := m.VertexCount()
	out := make([]float32, 0, n*5)
	for i := 0; i < n; i++ {
		out = append(out,
			m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2],
			m.UVs[2*i], m.UVs[2*i+1])
	}
	return out
}

// UVSphere builds a longitude/latitude sphere of the given radius. sectors is
// the slice count around the equator, stacks the ring count pole to pole.
// UV u wraps around the equator, v runs pole to pole, both in [0,1].
func UVSphere(radius float32, sectors, stacks int) *Mesh {
	m := &Mesh{}
	for i := 0; i <= stacks; i++ {
		phi := math.Pi/2 - math.Pi*float64(i)/float64(stacks)
		y := radius * float32(math.Sin(phi))
		rc := radius * float32(math.Cos(phi))
		for j := 0; j <= sectors; j++ {
			theta := 2 * math.Pi * float64(j) / float64(sectors)
			x := rc * float32(math.Cos(theta))
			z := rc * float32(math.Sin(theta))
			m.Positions = append(m.Positions, x, y, z)
			inv := 1 / radius
			m.Normals = append(m.Normals, x*inv, y*inv, z*inv)
			m.UVs = append(m.UVs, float32(j)/float32(sectors), float32(i)/float32(stacks))
		}
	}
	// Two triangles per quad; the pole rings each contribute one.
	ring := sectors + 1
	for i := 0; i < stacks; i++ {
		for j := 0; j < sectors; j++ {
			a := uint32(i*ring + j)
			b := a + uint32(ring)
			// CCW as seen from outside the sphere.
			if i != 0 {
				m.Indices = append(m.Indices, a, a+1, b)
			}
			if i != stacks-1 {
				m.Indices = append(m.Indices, a+1, b+1, b)
			}
		}
	}
	return m
}
