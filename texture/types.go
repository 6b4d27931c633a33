package texture

import "fmt"

// Scheme selects how a source image is packed into GPU-side channel planes.
type Scheme int

const (
	// DirectRGB uploads the image as a single RGBA texture. Baseline scheme,
	// no packing and no decode arithmetic beyond a direct sample.
	DirectRGB Scheme = iota
	// ChannelStripRGB stores R, G and B as three full-resolution planes laid
	// side by side in one buffer three times the source width.
	ChannelStripRGB
	// ThreeTextureYCbCr stores full-resolution luma and 4:2:0 subsampled
	// chroma as three separate single-channel textures.
	ThreeTextureYCbCr
	// PackedYCbCr packs Y, Cb and Cr into one buffer: Y fills the left two
	// thirds at full height, Cb the top half of the right third, Cr the
	// bottom half.
	PackedYCbCr
)

var schemeNames = map[Scheme]string{
	DirectRGB:         "direct-rgb",
	ChannelStripRGB:   "strip-rgb",
	ThreeTextureYCbCr: "ycbcr-3tex",
	PackedYCbCr:       "ycbcr-packed",
}

func (s Scheme) String() string {
	if n, ok := schemeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// ParseScheme resolves a scheme name as used on the command line.
func ParseScheme(name string) (Scheme, error) {
	for s, n := range schemeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedLayout, name)
}

// Schemes lists every registered scheme in declaration order.
func Schemes() []Scheme {
	return []Scheme{DirectRGB, ChannelStripRGB, ThreeTextureYCbCr, PackedYCbCr}
}

// Component identifies what a plane or packed sub-region holds.
type Component int

const (
	CompRGBA Component = iota
	CompR
	CompG
	CompB
	CompY
	CompCb
	CompCr
)

func (c Component) String() string {
	switch c {
	case CompRGBA:
		return "rgba"
	case CompR:
		return "r"
	case CompG:
		return "g"
	case CompB:
		return "b"
	case CompY:
		return "y"
	case CompCb:
		return "cb"
	case CompCr:
		return "cr"
	}
	return "?"
}

// Image is a decoded source image: W*H RGB triples, each channel a float32
// in [0,1], row-major. Immutable once loaded.
type Image struct {
	W, H int
	Pix  []float32 // 3*W*H, interleaved RGB
}

// At returns the RGB triple at pixel (x, y). No bounds checking.
func (im *Image) At(x, y int) (r, g, b float32) {
	i := 3 * (y*im.W + x)
	return im.Pix[i], im.Pix[i+1], im.Pix[i+2]
}

// Plane is a single-channel scalar plane, row-major.
type Plane struct {
	W, H int
	S    []float32
}

func NewPlane(w, h int) Plane {
	return Plane{W: w, H: h, S: make([]float32, w*h)}
}

func (p Plane) At(x, y int) float32     { return p.S[y*p.W+x] }
func (p Plane) Set(x, y int, v float32) { p.S[y*p.W+x] = v }

// Region is an axis-aligned sub-rectangle of a packed buffer, in texels.
type Region struct {
	Component  Component
	X, Y, W, H int
}

// Payload is one CPU-side pixel buffer ready for upload: quantized 8-bit
// samples, Channels bytes per pixel, row-major.
type Payload struct {
	Component Component // CompRGBA for the DirectRGB payload
	W, H      int
	Channels  int
	Pix       []byte
}

// Binding assigns a payload to a shader texture binding slot. The encoder
// owns unit assignment so the decode side never hard-codes it.
type Binding struct {
	Payload   int
	Slot      uint32
	Component Component
}

// SamplingLayout is the metadata half of the encode result: the geometry the
// decoder's coordinate remap is derived from. Regions is empty for schemes
// that emit one plane per component.
type SamplingLayout struct {
	Scheme   Scheme
	Bindings []Binding
	Regions  []Region // sub-regions of payload 0, packed schemes only
}

// Encoded is the full result of packing one source image under one scheme.
type Encoded struct {
	Scheme   Scheme
	Layout   SamplingLayout
	Payloads []Payload
}

// PayloadBytes sums the raw byte size of every payload, the quantity the
// bandwidth report compresses.
func (e *Encoded) PayloadBytes() int {
	n := 0
	for _, p := range e.Payloads {
		n += len(p.Pix)
	}
	return n
}
