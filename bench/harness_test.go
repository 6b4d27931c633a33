package bench

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/openfluke/texbench/texture"
)

// fakeDrawer stands in for the renderer: one "draw command" per call, a
// fixed synthetic frame cost.
type fakeDrawer struct {
	calls int
	cost  time.Duration
	fail  error
}

func (f *fakeDrawer) DrawFrame() (time.Duration, error) {
	f.calls++
	if f.fail != nil {
		return 0, f.fail
	}
	time.Sleep(time.Millisecond)
	return f.cost, nil
}

func TestRunStopsAfterBudget(t *testing.T) {
	d := &fakeDrawer{cost: 2 * time.Millisecond}
	var out bytes.Buffer
	cfg := Config{Duration: 50 * time.Millisecond, Quiet: true}
	res, err := Run(d, cfg, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Frames == 0 {
		t.Fatal("no frames recorded")
	}
	// One draw per loop iteration and no cooldown frame in this config.
	if d.calls != res.Frames {
		t.Errorf("%d draw calls for %d frames", d.calls, res.Frames)
	}
	if res.Wall < cfg.Duration {
		t.Errorf("stopped early: wall %v < budget %v", res.Wall, cfg.Duration)
	}
	if res.Min <= 0 || res.Max < res.Min || res.Total < res.Max {
		t.Errorf("inconsistent stats: min=%v max=%v total=%v", res.Min, res.Max, res.Total)
	}
	if res.Average() != res.Total/time.Duration(res.Frames) {
		t.Errorf("average %v inconsistent with total/frames", res.Average())
	}
	if res.RunID == "" {
		t.Error("missing run ID")
	}
	if !strings.Contains(out.String(), "frames in") {
		t.Errorf("summary line missing from output: %q", out.String())
	}
}

func TestRunCooldownDrawsOneExtraFrame(t *testing.T) {
	d := &fakeDrawer{cost: time.Millisecond}
	var out bytes.Buffer
	cfg := Config{Duration: 10 * time.Millisecond, Cooldown: time.Millisecond, Quiet: true}
	res, err := Run(d, cfg, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if d.calls != res.Frames+1 {
		t.Errorf("%d draw calls, want %d (frames) + 1 cooldown", d.calls, res.Frames)
	}
}

func TestRunPropagatesDrawError(t *testing.T) {
	want := errors.New("device lost")
	d := &fakeDrawer{fail: want}
	_, err := Run(d, Config{Duration: time.Second, Quiet: true}, &bytes.Buffer{})
	if !errors.Is(err, want) {
		t.Errorf("expected wrapped draw error, got %v", err)
	}
}

func TestBandwidthFigures(t *testing.T) {
	im := texture.Solid(64, 64, 0.5, 0.25, 0.75)
	rep, err := Bandwidth(im, texture.Schemes())
	if err != nil {
		t.Fatalf("bandwidth: %v", err)
	}
	if len(rep.Figures) != 4 {
		t.Fatalf("got %d figures, want 4", len(rep.Figures))
	}
	want := map[texture.Scheme]int{
		texture.DirectRGB:         4 * 64 * 64,
		texture.ChannelStripRGB:   3 * 64 * 64,
		texture.ThreeTextureYCbCr: 64*64 + 2*32*32,
		texture.PackedYCbCr:       96 * 64,
	}
	for _, f := range rep.Figures {
		if f.RawBytes != want[f.Scheme] {
			t.Errorf("%v: raw bytes %d, want %d", f.Scheme, f.RawBytes, want[f.Scheme])
		}
		// A solid image must compress far below its raw size.
		if f.ZstdBytes >= f.RawBytes {
			t.Errorf("%v: zstd %d did not shrink raw %d", f.Scheme, f.ZstdBytes, f.RawBytes)
		}
		if f.Scheme == texture.DirectRGB && f.OfOriginal != 1 {
			t.Errorf("baseline ratio %v, want 1", f.OfOriginal)
		}
	}
	var out bytes.Buffer
	rep.Print(&out)
	if !strings.Contains(out.String(), "zstd bytes") {
		t.Errorf("report table missing header: %q", out.String())
	}
}

// TestBandwidthSkipsRejectedScheme covers odd-sized sources: the packed
// layout refuses them, the report carries on with the rest.
func TestBandwidthSkipsRejectedScheme(t *testing.T) {
	im := texture.Solid(63, 63, 1, 1, 1)
	rep, err := Bandwidth(im, texture.Schemes())
	if err != nil {
		t.Fatalf("bandwidth: %v", err)
	}
	if len(rep.Figures) != 3 {
		t.Errorf("got %d figures, want 3 (packed skipped)", len(rep.Figures))
	}
	for _, f := range rep.Figures {
		if f.Scheme == texture.PackedYCbCr {
			t.Errorf("packed layout should have been skipped for odd source")
		}
	}
}

// TestBandwidthSkipsUnknownScheme: only the designed rejections are skipped;
// an unregistered scheme in the list must not abort the report.
func TestBandwidthSkipsUnknownScheme(t *testing.T) {
	im := texture.Solid(64, 64, 0.2, 0.4, 0.6)
	schemes := append(texture.Schemes(), texture.Scheme(99))
	rep, err := Bandwidth(im, schemes)
	if err != nil {
		t.Fatalf("bandwidth: %v", err)
	}
	if len(rep.Figures) != 4 {
		t.Errorf("got %d figures, want 4 (unknown scheme skipped)", len(rep.Figures))
	}
}
