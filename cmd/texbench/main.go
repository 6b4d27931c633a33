package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/openfluke/texbench/bench"
	"github.com/openfluke/texbench/detector"
	"github.com/openfluke/texbench/gpu"
	"github.com/openfluke/texbench/mesh"
	"github.com/openfluke/texbench/texture"
)

const sphereRadius = 1.0

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "texbench:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		imagePath  = flag.String("image", "texture.png", "source RGB image (png or jpeg)")
		schemeName = flag.String("scheme", texture.DirectRGB.String(), "layout scheme: direct-rgb, strip-rgb, ycbcr-3tex, ycbcr-packed")
		width      = flag.Int("width", 0, "prescale source to this width (0 = native)")
		height     = flag.Int("height", 0, "prescale source to this height (0 = native)")
		duration   = flag.Duration("duration", 600*time.Second, "measurement window")
		cooldown   = flag.Duration("cooldown", time.Second, "hold after the window before teardown")
		gridSize   = flag.Int("grid", 10, "instance grid is grid x grid spheres")
		spacing    = flag.Float64("spacing", 2.5, "instance grid spacing")
		targetW    = flag.Uint("target-width", 800, "render target width")
		targetH    = flag.Uint("target-height", 600, "render target height")
		sectors    = flag.Int("sectors", 48, "sphere sectors")
		stacks     = flag.Int("stacks", 24, "sphere stacks")
		quiet      = flag.Bool("quiet", false, "suppress per-frame console lines")
		bandwidth  = flag.Bool("bandwidth", false, "print the per-scheme bandwidth report and exit")
		detect     = flag.Bool("detect", false, "print the GPU capability report and exit")
		framePath  = flag.String("frame", "", "write the final rendered frame to this PNG")
		verbose    = flag.Bool("v", false, "verbose GPU resource logging")
	)
	flag.Parse()
	gpu.Debug = *verbose

	if *detect {
		js, err := detector.DetectJSON()
		if err != nil {
			return err
		}
		fmt.Println(js)
		return nil
	}

	scheme, err := texture.ParseScheme(*schemeName)
	if err != nil {
		return err
	}
	src, err := texture.Load(*imagePath, *width, *height)
	if err != nil {
		return err
	}
	fmt.Printf("source %s: %dx%d, scheme %v\n", *imagePath, src.W, src.H, scheme)

	if *bandwidth {
		rep, err := bench.Bandwidth(src, texture.Schemes())
		if err != nil {
			return err
		}
		rep.Print(os.Stdout)
		return nil
	}

	enc, err := texture.Encode(src, scheme)
	if err != nil {
		return err
	}

	rep, err := detector.Detect()
	if err != nil {
		return fmt.Errorf("gpu probe: %w", err)
	}
	fmt.Printf("adapter: %s (%s, %s)\n", rep.Name, rep.Backend, rep.AdapterType)
	if err := rep.Check(requirements(enc)); err != nil {
		return fmt.Errorf("device unsuitable: %w", err)
	}

	c, err := gpu.GetContext()
	if err != nil {
		return err
	}
	target, err := gpu.NewTarget(c, uint32(*targetW), uint32(*targetH))
	if err != nil {
		return err
	}
	defer target.Cleanup()

	extent := float32(*spacing)*float32(*gridSize-1)/2 + sphereRadius
	camera := gpu.DefaultCamera(target.Aspect(), extent)
	material, err := gpu.NewMaterial(c, enc, camera)
	if err != nil {
		return err
	}
	defer material.Cleanup()

	sphere := mesh.UVSphere(sphereRadius, *sectors, *stacks)
	instances := mesh.InstanceGrid(*gridSize, *gridSize, float32(*spacing))
	renderer, err := gpu.NewRenderer(c, target, material, sphere, instances)
	if err != nil {
		return err
	}
	defer renderer.Cleanup()

	fmt.Printf("drawing %d instances of %d-vertex sphere for %v\n",
		renderer.InstanceCount(), sphere.VertexCount(), *duration)

	cfg := bench.Config{Duration: *duration, Cooldown: *cooldown, Quiet: *quiet}
	if _, err := bench.Run(renderer, cfg, os.Stdout); err != nil {
		return err
	}

	if *framePath != "" {
		if err := saveFrame(renderer, target, *framePath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", *framePath)
	}
	return nil
}

// requirements derives what the encoded layout asks of the device.
func requirements(enc *texture.Encoded) detector.Requirements {
	req := detector.Requirements{
		SampledTextures: uint32(len(enc.Layout.Bindings)),
		VertexBuffers:   2, // mesh + instance offsets
	}
	for _, p := range enc.Payloads {
		if uint32(p.W) > req.MaxTextureWidth {
			req.MaxTextureWidth = uint32(p.W)
		}
		if uint32(p.H) > req.MaxTextureHeight {
			req.MaxTextureHeight = uint32(p.H)
		}
	}
	return req
}

func saveFrame(r *gpu.Renderer, t *gpu.Target, path string) error {
	pix, err := r.ReadFrame()
	if err != nil {
		return err
	}
	img := &image.RGBA{
		Pix:    pix,
		Stride: int(t.W) * 4,
		Rect:   image.Rect(0, 0, int(t.W), int(t.H)),
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
