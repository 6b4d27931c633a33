package texture

import "fmt"

// encoder turns a source image into payloads plus the sampling layout the
// decode side derives its coordinate remap from.
type encoder func(im *Image) (*Encoded, error)

var encoders = map[Scheme]encoder{
	DirectRGB:         encodeDirect,
	ChannelStripRGB:   encodeStrip,
	ThreeTextureYCbCr: encodeThreeTexture,
	PackedYCbCr:       encodePacked,
}

// Encode packs im under the given scheme. The result is immutable and meant
// to be uploaded once; the encoder also validates that the scheme's decode
// formulas address the produced geometry (corner and center probes).
func Encode(im *Image, scheme Scheme) (*Encoded, error) {
	fn, ok := encoders[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLayout, scheme)
	}
	enc, err := fn(im)
	if err != nil {
		return nil, err
	}
	if err := enc.Layout.Validate(enc); err != nil {
		return nil, fmt.Errorf("layout %v: %v", scheme, err)
	}
	return enc, nil
}

func quantizePlane(c Component, p Plane) Payload {
	pix := make([]byte, p.W*p.H)
	for i, v := range p.S {
		pix[i] = quantize(v)
	}
	return Payload{Component: c, W: p.W, H: p.H, Channels: 1, Pix: pix}
}

func encodeDirect(im *Image) (*Encoded, error) {
	// RGBA8: alpha padded to 255, GPUs have no 3-channel 8-bit format.
	pix := make([]byte, 4*im.W*im.H)
	for i := 0; i < im.W*im.H; i++ {
		pix[4*i+0] = quantize(im.Pix[3*i+0])
		pix[4*i+1] = quantize(im.Pix[3*i+1])
		pix[4*i+2] = quantize(im.Pix[3*i+2])
		pix[4*i+3] = 255
	}
	return &Encoded{
		Scheme: DirectRGB,
		Layout: SamplingLayout{
			Scheme:   DirectRGB,
			Bindings: []Binding{{Payload: 0, Slot: 0, Component: CompRGBA}},
		},
		Payloads: []Payload{{Component: CompRGBA, W: im.W, H: im.H, Channels: 4, Pix: pix}},
	}, nil
}

func encodeStrip(im *Image) (*Encoded, error) {
	w, h := im.W, im.H
	buf := NewPlane(3*w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			r, g, b := im.At(i, j)
			buf.Set(i, j, r)
			buf.Set(w+i, j, g)
			buf.Set(2*w+i, j, b)
		}
	}
	return &Encoded{
		Scheme: ChannelStripRGB,
		Layout: SamplingLayout{
			Scheme:   ChannelStripRGB,
			Bindings: []Binding{{Payload: 0, Slot: 0, Component: CompR}},
			Regions: []Region{
				{Component: CompR, X: 0, Y: 0, W: w, H: h},
				{Component: CompG, X: w, Y: 0, W: w, H: h},
				{Component: CompB, X: 2 * w, Y: 0, W: w, H: h},
			},
		},
		Payloads: []Payload{quantizePlane(CompR, buf)},
	}, nil
}

func encodeThreeTexture(im *Image) (*Encoded, error) {
	y, cb, cr := PlanesYCbCr(im)
	cb = Subsample420(cb)
	cr = Subsample420(cr)
	return &Encoded{
		Scheme: ThreeTextureYCbCr,
		Layout: SamplingLayout{
			Scheme: ThreeTextureYCbCr,
			Bindings: []Binding{
				{Payload: 0, Slot: 0, Component: CompY},
				{Payload: 1, Slot: 1, Component: CompCb},
				{Payload: 2, Slot: 2, Component: CompCr},
			},
		},
		Payloads: []Payload{
			quantizePlane(CompY, y),
			quantizePlane(CompCb, cb),
			quantizePlane(CompCr, cr),
		},
	}, nil
}

func encodePacked(im *Image) (*Encoded, error) {
	w, h := im.W, im.H
	// The decode formulas address thirds and halves with exact constants, so
	// the packed geometry has to divide evenly.
	if w%2 != 0 || h%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrOddDimensions, w, h)
	}
	y, cb, cr := PlanesYCbCr(im)
	cb = Subsample420(cb)
	cr = Subsample420(cr)

	cw, ch := w/2, h/2
	buf := NewPlane(w+cw, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			buf.Set(i, j, y.At(i, j))
		}
	}
	for j := 0; j < ch; j++ {
		for i := 0; i < cw; i++ {
			buf.Set(w+i, j, cb.At(i, j))
			buf.Set(w+i, ch+j, cr.At(i, j))
		}
	}
	return &Encoded{
		Scheme: PackedYCbCr,
		Layout: SamplingLayout{
			Scheme:   PackedYCbCr,
			Bindings: []Binding{{Payload: 0, Slot: 0, Component: CompY}},
			Regions: []Region{
				{Component: CompY, X: 0, Y: 0, W: w, H: h},
				{Component: CompCb, X: w, Y: 0, W: cw, H: ch},
				{Component: CompCr, X: w, Y: ch, W: cw, H: ch},
			},
		},
		Payloads: []Payload{quantizePlane(CompY, buf)},
	}, nil
}
