package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"), 0, 0)
	if !errors.Is(err, ErrImageLoad) {
		t.Errorf("expected ErrImageLoad for missing file, got %v", err)
	}
}

func TestLoadUndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("this is not pixel data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path, 0, 0)
	if !errors.Is(err, ErrImageLoad) {
		t.Errorf("expected ErrImageLoad for undecodable file, got %v", err)
	}
}

func TestLoadNativeSize(t *testing.T) {
	path := writePNG(t, 63, 47)
	im, err := Load(path, 0, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if im.W != 63 || im.H != 47 {
		t.Fatalf("loaded %dx%d, want 63x47", im.W, im.H)
	}
	const tol = 1.0 / 255
	r, g, b := im.At(10, 20)
	if abs(r-200.0/255) > tol || abs(g-100.0/255) > tol || abs(b-50.0/255) > tol {
		t.Errorf("pixel (10,20) decoded to (%v,%v,%v), want ~(%v,%v,%v)",
			r, g, b, 200.0/255, 100.0/255, 50.0/255)
	}
}

// TestLoadPrescaleOddToEven covers the recommended path for odd-sized
// sources: rescaled to even dimensions they become eligible for the packed
// layout.
func TestLoadPrescaleOddToEven(t *testing.T) {
	path := writePNG(t, 63, 63)
	im, err := Load(path, 64, 64)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if im.W != 64 || im.H != 64 {
		t.Fatalf("prescaled to %dx%d, want 64x64", im.W, im.H)
	}
	if _, err := Encode(im, PackedYCbCr); err != nil {
		t.Errorf("packed encode of prescaled image failed: %v", err)
	}
}
