package texture

import (
	"fmt"
	"math"
)

// This file is the CPU half of the sampling contract: the same coordinate
// remaps and recombination arithmetic the generated fragment shaders run,
// usable without a GPU. The benchmark never decodes on the CPU; tests and the
// encode-time layout validation do.

// fetch is one texel lookup: which binding slot to sample and at what
// normalized coordinate.
type fetch struct {
	Slot uint32
	U, V float64
}

// remap expands a surface coordinate into the per-component fetches for a
// scheme, in the component order the recombination step expects.
func remap(scheme Scheme, u, v float64) []fetch {
	switch scheme {
	case DirectRGB:
		return []fetch{{0, u, v}}
	case ChannelStripRGB:
		return []fetch{
			{0, u / 3, v},
			{0, u/3 + 1.0/3, v},
			{0, u/3 + 2.0/3, v},
		}
	case ThreeTextureYCbCr:
		return []fetch{{0, u, v}, {1, u, v}, {2, u, v}}
	case PackedYCbCr:
		return []fetch{
			{0, u * 2 / 3, v},
			{0, (u + 2) / 3, v * 0.5},
			{0, (u + 2) / 3, v*0.5 + 0.5},
		}
	}
	return nil
}

// sampleBilinear reads one channel of a payload at a normalized coordinate
// with clamp-to-edge filtering, matching the GPU sampler configuration.
func sampleBilinear(p Payload, ch int, u, v float64) float32 {
	fx := u*float64(p.W) - 0.5
	fy := v*float64(p.H) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	clamp := func(i, n int) int {
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
	at := func(x, y int) float64 {
		x, y = clamp(x, p.W), clamp(y, p.H)
		return float64(p.Pix[(y*p.W+x)*p.Channels+ch])
	}
	top := at(x0, y0)*(1-tx) + at(x0+1, y0)*tx
	bot := at(x0, y0+1)*(1-tx) + at(x0+1, y0+1)*tx
	return float32((top*(1-ty) + bot*ty) / 255)
}

// DecodeAt reconstructs the RGB color a fragment at surface coordinate (u, v)
// would see. It mirrors the shader arithmetic of the active scheme exactly.
func DecodeAt(enc *Encoded, u, v float64) (r, g, b float32) {
	f := remap(enc.Scheme, u, v)
	switch enc.Scheme {
	case DirectRGB:
		p := enc.Payloads[0]
		r = sampleBilinear(p, 0, f[0].U, f[0].V)
		g = sampleBilinear(p, 1, f[0].U, f[0].V)
		b = sampleBilinear(p, 2, f[0].U, f[0].V)
		return
	case ChannelStripRGB:
		p := enc.Payloads[0]
		r = sampleBilinear(p, 0, f[0].U, f[0].V)
		g = sampleBilinear(p, 0, f[1].U, f[1].V)
		b = sampleBilinear(p, 0, f[2].U, f[2].V)
		return
	case ThreeTextureYCbCr:
		y := sampleBilinear(enc.Payloads[0], 0, f[0].U, f[0].V)
		cb := sampleBilinear(enc.Payloads[1], 0, f[1].U, f[1].V)
		cr := sampleBilinear(enc.Payloads[2], 0, f[2].U, f[2].V)
		return YCbCrToRGB(y, cb, cr)
	case PackedYCbCr:
		p := enc.Payloads[0]
		y := sampleBilinear(p, 0, f[0].U, f[0].V)
		cb := sampleBilinear(p, 0, f[1].U, f[1].V)
		cr := sampleBilinear(p, 0, f[2].U, f[2].V)
		return YCbCrToRGB(y, cb, cr)
	}
	return 0, 0, 0
}

// probePoints are the surface coordinates every layout is checked at: the
// four corners plus the center.
var probePoints = [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}}

// Validate checks the geometry the encoder produced against the decode
// formulas: regions stay inside their buffer and never overlap, and each
// component's remapped probe coordinates land inside that component's region.
// A failure here is a build defect in the scheme, not a runtime condition.
func (l *SamplingLayout) Validate(enc *Encoded) error {
	for i, r := range l.Regions {
		p := enc.Payloads[0]
		if r.X < 0 || r.Y < 0 || r.X+r.W > p.W || r.Y+r.H > p.H {
			return fmt.Errorf("region %v exceeds %dx%d buffer", r.Component, p.W, p.H)
		}
		for _, o := range l.Regions[i+1:] {
			if r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H {
				return fmt.Errorf("regions %v and %v overlap", r.Component, o.Component)
			}
		}
	}
	if len(l.Regions) == 0 {
		return nil
	}
	p := enc.Payloads[0]
	for _, pt := range probePoints {
		fetches := remap(l.Scheme, pt[0], pt[1])
		for i, f := range fetches {
			reg := l.Regions[i]
			x0, x1 := float64(reg.X)/float64(p.W), float64(reg.X+reg.W)/float64(p.W)
			y0, y1 := float64(reg.Y)/float64(p.H), float64(reg.Y+reg.H)/float64(p.H)
			const eps = 1e-9
			if f.U < x0-eps || f.U > x1+eps || f.V < y0-eps || f.V > y1+eps {
				return fmt.Errorf("probe (%g,%g): %v fetch (%g,%g) outside region [%g,%g]x[%g,%g]",
					pt[0], pt[1], reg.Component, f.U, f.V, x0, x1, y0, y1)
			}
		}
	}
	return nil
}
