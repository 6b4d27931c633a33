package texture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
)

// Load decodes a PNG or JPEG file into a normalized float image. When w and h
// are non-zero the source is rescaled to exactly that size (Lanczos) before
// normalization, which also gives odd-sized sources a path into the packed
// layouts.
func Load(path string, w, h int) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %q: %v", ErrImageLoad, path, err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrImageLoad, path)
	}
	if w > 0 && h > 0 {
		img = resize.Resize(uint(w), uint(h), img, resize.Lanczos3)
	}
	return FromImage(img), nil
}

// FromImage converts any decoded image to the normalized float form. Alpha is
// dropped; the schemes carry color only.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := &Image{W: w, H: h, Pix: make([]float32, 3*w*h)}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			out.Pix[i+0] = float32(r>>8) / 255
			out.Pix[i+1] = float32(g>>8) / 255
			out.Pix[i+2] = float32(b>>8) / 255
			i += 3
		}
	}
	return out
}

// Solid builds a uniform-color image, handy for contract checks where chroma
// subsampling introduces no error.
func Solid(w, h int, r, g, b float32) *Image {
	im := &Image{W: w, H: h, Pix: make([]float32, 3*w*h)}
	for i := 0; i < w*h; i++ {
		im.Pix[3*i+0] = r
		im.Pix[3*i+1] = g
		im.Pix[3*i+2] = b
	}
	return im
}
