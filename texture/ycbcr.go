package texture

// BT.601 full-range coefficients. The stored chroma is recentered by +0.5 so
// every plane quantizes to the same unsigned 8-bit range; decode subtracts the
// 0.5 back out before applying the inverse transform.
const (
	yR, yG, yB    = 0.299, 0.587, 0.114
	cbR, cbG, cbB = -0.1687, -0.3313, 0.5
	crR, crG, crB = 0.5, -0.4187, -0.0813

	// Inverse transform weights.
	InvCrToR = 1.402
	InvCbToG = -0.344136
	InvCrToG = -0.714136
	InvCbToB = 1.772
)

// RGBToYCbCr converts one normalized RGB triple. Cb and Cr come back
// recentered to [0,1].
func RGBToYCbCr(r, g, b float32) (y, cb, cr float32) {
	y = yR*r + yG*g + yB*b
	cb = 0.5 + cbR*r + cbG*g + cbB*b
	cr = 0.5 + crR*r + crG*g + crB*b
	return
}

// YCbCrToRGB inverts RGBToYCbCr. cb and cr are the stored, recentered values.
func YCbCrToRGB(y, cb, cr float32) (r, g, b float32) {
	cb -= 0.5
	cr -= 0.5
	r = y + InvCrToR*cr
	g = y + InvCbToG*cb + InvCrToG*cr
	b = y + InvCbToB*cb
	return
}

// PlanesYCbCr runs the forward transform over a whole image, producing three
// full-resolution planes.
func PlanesYCbCr(im *Image) (y, cb, cr Plane) {
	y = NewPlane(im.W, im.H)
	cb = NewPlane(im.W, im.H)
	cr = NewPlane(im.W, im.H)
	for j := 0; j < im.H; j++ {
		for i := 0; i < im.W; i++ {
			r, g, b := im.At(i, j)
			yy, cc, rr := RGBToYCbCr(r, g, b)
			y.Set(i, j, yy)
			cb.Set(i, j, cc)
			cr.Set(i, j, rr)
		}
	}
	return
}

// Subsample420 box-averages a full-resolution plane down to half width and
// half height (integer division). For odd source dimensions the trailing row
// or column is excluded from the filter, so the result is always exactly
// floor(W/2) by floor(H/2).
func Subsample420(p Plane) Plane {
	cw, ch := p.W/2, p.H/2
	out := NewPlane(cw, ch)
	for j := 0; j < ch; j++ {
		for i := 0; i < cw; i++ {
			sum := p.At(2*i, 2*j) + p.At(2*i+1, 2*j) +
				p.At(2*i, 2*j+1) + p.At(2*i+1, 2*j+1)
			out.Set(i, j, sum*0.25)
		}
	}
	return out
}

// quantize maps a normalized sample to 8 bits with rounding, clamped.
func quantize(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

// Dequantize maps an 8-bit sample back to [0,1].
func Dequantize(b byte) float32 { return float32(b) / 255 }
