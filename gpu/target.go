package gpu

import (
	"fmt"

	"github.com/openfluke/webgpu/wgpu"
)

const (
	ColorFormat = wgpu.TextureFormatRGBA8Unorm
	DepthFormat = wgpu.TextureFormatDepth24Plus
)

// Target is a fixed-size offscreen surface: one color attachment plus a depth
// attachment with depth testing enabled. It stands in for the window a
// presenting front end would own.
type Target struct {
	W, H      uint32
	Color     *wgpu.Texture
	ColorView *wgpu.TextureView
	Depth     *wgpu.Texture
	DepthView *wgpu.TextureView
}

func NewTarget(c *Context, w, h uint32) (*Target, error) {
	color, err := c.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "target_color",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        ColorFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("color attachment: %v", err)
	}
	colorView, err := color.CreateView(nil)
	if err != nil {
		color.Destroy()
		return nil, fmt.Errorf("color view: %v", err)
	}
	depth, err := c.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "target_depth",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		colorView.Release()
		color.Destroy()
		return nil, fmt.Errorf("depth attachment: %v", err)
	}
	depthView, err := depth.CreateView(nil)
	if err != nil {
		colorView.Release()
		color.Destroy()
		depth.Destroy()
		return nil, fmt.Errorf("depth view: %v", err)
	}
	return &Target{W: w, H: h, Color: color, ColorView: colorView, Depth: depth, DepthView: depthView}, nil
}

func (t *Target) Aspect() float32 { return float32(t.W) / float32(t.H) }

func (t *Target) Cleanup() {
	if t.ColorView != nil {
		t.ColorView.Release()
	}
	if t.Color != nil {
		t.Color.Destroy()
	}
	if t.DepthView != nil {
		t.DepthView.Release()
	}
	if t.Depth != nil {
		t.Depth.Destroy()
	}
}
