package gpu

import (
	"fmt"

	"github.com/openfluke/texbench/texture"
)

// The decode arithmetic below mirrors texture.DecodeAt; the inverse-transform
// weights come from the texture package so the two halves of the sampling
// contract can never disagree on coefficients.

const vertexStage = `
struct Camera {
	mvp : mat4x4<f32>,
};
@group(0) @binding(0) var<uniform> camera : Camera;

struct VSOut {
	@builtin(position) pos : vec4<f32>,
	@location(0) uv : vec2<f32>,
};

@vertex
fn vs_main(
	@location(0) position : vec3<f32>,
	@location(1) uv : vec2<f32>,
	@location(2) instance_offset : vec3<f32>,
) -> VSOut {
	var out : VSOut;
	out.pos = camera.mvp * vec4<f32>(position + instance_offset, 1.0);
	out.uv = uv;
	return out;
}
`

// fragmentStage generates the per-scheme fragment source. Texture bindings
// start at slot 2 (0 = camera uniform, 1 = sampler); the encoder's layout
// metadata decides which texture lands on which slot.
func fragmentStage(scheme texture.Scheme) (string, error) {
	inverse := fmt.Sprintf(`	let r = y + %.6f * cr;
	let g = y + %.6f * cb + %.6f * cr;
	let b = y + %.6f * cb;
	return vec4<f32>(r, g, b, 1.0);`,
		texture.InvCrToR, texture.InvCbToG, texture.InvCrToG, texture.InvCbToB)

	switch scheme {
	case texture.DirectRGB:
		return `
@group(0) @binding(1) var samp : sampler;
@group(0) @binding(2) var tex_rgb : texture_2d<f32>;

@fragment
fn fs_main(in : VSOut) -> @location(0) vec4<f32> {
	return vec4<f32>(textureSample(tex_rgb, samp, in.uv).rgb, 1.0);
}
`, nil

	case texture.ChannelStripRGB:
		return `
@group(0) @binding(1) var samp : sampler;
@group(0) @binding(2) var tex_strip : texture_2d<f32>;

@fragment
fn fs_main(in : VSOut) -> @location(0) vec4<f32> {
	let r = textureSample(tex_strip, samp, vec2<f32>(in.uv.x / 3.0, in.uv.y)).r;
	let g = textureSample(tex_strip, samp, vec2<f32>(in.uv.x / 3.0 + 1.0 / 3.0, in.uv.y)).r;
	let b = textureSample(tex_strip, samp, vec2<f32>(in.uv.x / 3.0 + 2.0 / 3.0, in.uv.y)).r;
	return vec4<f32>(r, g, b, 1.0);
}
`, nil

	case texture.ThreeTextureYCbCr:
		return fmt.Sprintf(`
@group(0) @binding(1) var samp : sampler;
@group(0) @binding(2) var tex_y : texture_2d<f32>;
@group(0) @binding(3) var tex_cb : texture_2d<f32>;
@group(0) @binding(4) var tex_cr : texture_2d<f32>;

@fragment
fn fs_main(in : VSOut) -> @location(0) vec4<f32> {
	let y = textureSample(tex_y, samp, in.uv).r;
	let cb = textureSample(tex_cb, samp, in.uv).r - 0.5;
	let cr = textureSample(tex_cr, samp, in.uv).r - 0.5;
%s
}
`, inverse), nil

	case texture.PackedYCbCr:
		return fmt.Sprintf(`
@group(0) @binding(1) var samp : sampler;
@group(0) @binding(2) var tex_packed : texture_2d<f32>;

@fragment
fn fs_main(in : VSOut) -> @location(0) vec4<f32> {
	let uv_y = vec2<f32>(in.uv.x * 2.0 / 3.0, in.uv.y);
	let uv_cb = vec2<f32>((in.uv.x + 2.0) / 3.0, in.uv.y * 0.5);
	let uv_cr = vec2<f32>((in.uv.x + 2.0) / 3.0, in.uv.y * 0.5 + 0.5);
	let y = textureSample(tex_packed, samp, uv_y).r;
	let cb = textureSample(tex_packed, samp, uv_cb).r - 0.5;
	let cr = textureSample(tex_packed, samp, uv_cr).r - 0.5;
%s
}
`, inverse), nil
	}
	return "", fmt.Errorf("%w: %v", texture.ErrUnsupportedLayout, scheme)
}

// GenerateShader returns the full WGSL module for a scheme.
func GenerateShader(scheme texture.Scheme) (string, error) {
	frag, err := fragmentStage(scheme)
	if err != nil {
		return "", err
	}
	return vertexStage + frag, nil
}
