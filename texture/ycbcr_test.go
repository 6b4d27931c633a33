package texture

import "testing"

// TestTransformInverse checks the forward/inverse pair closes on itself at
// float precision, without quantization in the loop.
func TestTransformInverse(t *testing.T) {
	colors := [][3]float32{
		{0, 0, 0}, {1, 1, 1}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{0.784, 0.392, 0.196}, {0.25, 0.5, 0.75},
	}
	const tol = 1e-3
	for _, c := range colors {
		y, cb, cr := RGBToYCbCr(c[0], c[1], c[2])
		if y < -tol || y > 1+tol || cb < -tol || cb > 1+tol || cr < -tol || cr > 1+tol {
			t.Errorf("rgb %v: transform out of range (y=%v cb=%v cr=%v)", c, y, cb, cr)
		}
		r, g, b := YCbCrToRGB(y, cb, cr)
		if abs(r-c[0]) > tol || abs(g-c[1]) > tol || abs(b-c[2]) > tol {
			t.Errorf("rgb %v: round trip gave (%v,%v,%v)", c, r, g, b)
		}
	}
}

// TestSubsampleBoxAverage verifies the 2x2 box filter on a plane with known
// block averages.
func TestSubsampleBoxAverage(t *testing.T) {
	p := NewPlane(4, 2)
	copy(p.S, []float32{
		0.0, 1.0, 0.5, 0.5,
		0.0, 1.0, 0.25, 0.75,
	})
	sub := Subsample420(p)
	if sub.W != 2 || sub.H != 1 {
		t.Fatalf("subsampled to %dx%d, want 2x1", sub.W, sub.H)
	}
	if abs(sub.At(0, 0)-0.5) > 1e-6 || abs(sub.At(1, 0)-0.5) > 1e-6 {
		t.Errorf("block averages %v, want 0.5 0.5", sub.S)
	}
}

func TestQuantizeRounds(t *testing.T) {
	cases := []struct {
		in   float32
		want byte
	}{
		{0, 0}, {1, 255}, {-0.5, 0}, {2, 255},
		{100.0 / 255, 100}, {0.4999 / 255, 0}, {0.51 / 255, 1},
	}
	for _, c := range cases {
		if got := quantize(c.in); got != c.want {
			t.Errorf("quantize(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
