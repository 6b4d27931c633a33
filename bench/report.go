package bench

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/openfluke/texbench/texture"
)

// SchemeFigure is the transmission cost of one layout: the raw upload bytes
// and what a zstd pass squeezes them to, as a stand-in for a wire encoder.
type SchemeFigure struct {
	Scheme     texture.Scheme
	Payloads   int
	RawBytes   int
	ZstdBytes  int
	OfOriginal float64 // raw bytes relative to the DirectRGB baseline
}

// BandwidthReport compares every scheme's payload cost for one source image.
type BandwidthReport struct {
	W, H    int
	Figures []SchemeFigure
}

// Bandwidth encodes im under each scheme and measures the payload sizes.
// Schemes whose geometry rejects the image (odd-sized sources against the
// packed layout) are skipped rather than failing the report.
func Bandwidth(im *texture.Image, schemes []texture.Scheme) (*BandwidthReport, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd init: %v", err)
	}
	defer enc.Close()

	rep := &BandwidthReport{W: im.W, H: im.H}
	baseline := 0
	for _, s := range schemes {
		e, err := texture.Encode(im, s)
		if errors.Is(err, texture.ErrOddDimensions) || errors.Is(err, texture.ErrUnsupportedLayout) {
			// Designed rejections; everything else is a real failure.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("encode %v: %w", s, err)
		}
		raw := make([]byte, 0, e.PayloadBytes())
		for _, p := range e.Payloads {
			raw = append(raw, p.Pix...)
		}
		fig := SchemeFigure{
			Scheme:    s,
			Payloads:  len(e.Payloads),
			RawBytes:  len(raw),
			ZstdBytes: len(enc.EncodeAll(raw, nil)),
		}
		if s == texture.DirectRGB {
			baseline = fig.RawBytes
		}
		rep.Figures = append(rep.Figures, fig)
	}
	for i := range rep.Figures {
		if baseline > 0 {
			rep.Figures[i].OfOriginal = float64(rep.Figures[i].RawBytes) / float64(baseline)
		}
	}
	return rep, nil
}

// Print writes the report as a console table. Informative only.
func (r *BandwidthReport) Print(w io.Writer) {
	fmt.Fprintf(w, "bandwidth for %dx%d source:\n", r.W, r.H)
	fmt.Fprintf(w, "  %-14s %8s %12s %12s %10s\n", "scheme", "textures", "raw bytes", "zstd bytes", "vs direct")
	for _, f := range r.Figures {
		fmt.Fprintf(w, "  %-14v %8d %12d %12d %9.0f%%\n",
			f.Scheme, f.Payloads, f.RawBytes, f.ZstdBytes, f.OfOriginal*100)
	}
}
