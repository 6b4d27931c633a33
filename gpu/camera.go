package gpu

import "math"

// Mat4 is a column-major 4x4 matrix, the layout WGSL expects for mat4x4<f32>.
type Mat4 [16]float32

func Identity() Mat4 {
	return Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += a[k*4+r] * b[c*4+k]
			}
			out[c*4+r] = s
		}
	}
	return out
}

// Perspective builds a right-handed projection with a [0,1] clip-space depth
// range (WebGPU convention). fovy is vertical field of view in radians.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = far * near / (near - far)
	return m
}

// LookAt builds a right-handed view matrix.
func LookAt(eye, center, up [3]float32) Mat4 {
	sub := func(a, b [3]float32) [3]float32 { return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
	norm := func(v [3]float32) [3]float32 {
		l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
		return [3]float32{v[0] / l, v[1] / l, v[2] / l}
	}
	cross := func(a, b [3]float32) [3]float32 {
		return [3]float32{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
	}
	dot := func(a, b [3]float32) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

	f := norm(sub(center, eye))
	s := norm(cross(f, up))
	u := cross(s, f)

	var m Mat4
	m[0], m[4], m[8] = s[0], s[1], s[2]
	m[1], m[5], m[9] = u[0], u[1], u[2]
	m[2], m[6], m[10] = -f[0], -f[1], -f[2]
	m[12] = -dot(s, eye)
	m[13] = -dot(u, eye)
	m[14] = dot(f, eye)
	m[15] = 1
	return m
}

// DefaultCamera frames a centered instance grid of the given world extent.
func DefaultCamera(aspect, extent float32) Mat4 {
	fovy := float32(math.Pi / 4)
	dist := extent/float32(math.Tan(math.Pi/8)) + 2
	proj := Perspective(fovy, aspect, 0.1, dist*4)
	view := LookAt([3]float32{0, 0, dist}, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})
	return proj.Mul(view)
}
