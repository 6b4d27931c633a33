package gpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/openfluke/texbench/texture"
)

// The shader generator is the GPU half of the sampling contract, so the
// generated source is checked for the exact coordinate remaps and inverse
// weights the CPU reference decode uses.
func TestGenerateShaderFormulas(t *testing.T) {
	cases := []struct {
		scheme texture.Scheme
		want   []string
	}{
		{texture.DirectRGB, []string{"textureSample(tex_rgb, samp, in.uv)"}},
		{texture.ChannelStripRGB, []string{
			"in.uv.x / 3.0",
			"in.uv.x / 3.0 + 1.0 / 3.0",
			"in.uv.x / 3.0 + 2.0 / 3.0",
		}},
		{texture.ThreeTextureYCbCr, []string{
			"tex_y", "tex_cb", "tex_cr",
			".r - 0.5",
			"1.402000 * cr",
			"-0.344136 * cb",
			"-0.714136 * cr",
			"1.772000 * cb",
		}},
		{texture.PackedYCbCr, []string{
			"in.uv.x * 2.0 / 3.0",
			"(in.uv.x + 2.0) / 3.0, in.uv.y * 0.5)",
			"(in.uv.x + 2.0) / 3.0, in.uv.y * 0.5 + 0.5)",
			"1.402000 * cr",
		}},
	}
	for _, c := range cases {
		src, err := GenerateShader(c.scheme)
		if err != nil {
			t.Fatalf("%v: %v", c.scheme, err)
		}
		if !strings.Contains(src, "vs_main") || !strings.Contains(src, "fs_main") {
			t.Errorf("%v: missing entry points", c.scheme)
		}
		if !strings.Contains(src, "instance_offset") {
			t.Errorf("%v: vertex stage lost the per-instance offset", c.scheme)
		}
		for _, w := range c.want {
			if !strings.Contains(src, w) {
				t.Errorf("%v: generated WGSL missing %q", c.scheme, w)
			}
		}
	}
}

func TestGenerateShaderUnknownScheme(t *testing.T) {
	_, err := GenerateShader(texture.Scheme(42))
	if !errors.Is(err, texture.ErrUnsupportedLayout) {
		t.Errorf("expected ErrUnsupportedLayout, got %v", err)
	}
}

func TestCameraMatrix(t *testing.T) {
	id := Identity()
	m := DefaultCamera(1, 12.5)
	if m == (Mat4{}) {
		t.Fatal("camera matrix is zero")
	}
	if got := id.Mul(m); got != m {
		t.Errorf("identity multiply changed the matrix")
	}
	// The grid center (world origin) should sit in front of the camera.
	if w := m[15]; w <= 0 {
		t.Errorf("scene center has non-positive clip w: %v", w)
	}
}
