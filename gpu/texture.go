package gpu

import (
	"fmt"

	"github.com/openfluke/webgpu/wgpu"

	"github.com/openfluke/texbench/texture"
)

// Texture is one uploaded payload, kept alive for the whole measurement run.
type Texture struct {
	Tex    *wgpu.Texture
	View   *wgpu.TextureView
	W, H   uint32
	Format wgpu.TextureFormat
}

func (t *Texture) Cleanup() {
	if t.View != nil {
		t.View.Release()
	}
	if t.Tex != nil {
		t.Tex.Destroy()
	}
}

func payloadFormat(p texture.Payload) (wgpu.TextureFormat, error) {
	switch p.Channels {
	case 1:
		return wgpu.TextureFormatR8Unorm, nil
	case 4:
		return wgpu.TextureFormatRGBA8Unorm, nil
	}
	return 0, fmt.Errorf("payload %v: unsupported channel count %d", p.Component, p.Channels)
}

// Upload creates a GPU texture for one payload and writes its pixels once.
func Upload(c *Context, p texture.Payload, label string) (*Texture, error) {
	format, err := payloadFormat(p)
	if err != nil {
		return nil, err
	}
	size := wgpu.Extent3D{
		Width:              uint32(p.W),
		Height:             uint32(p.H),
		DepthOrArrayLayers: 1,
	}
	tex, err := c.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %v", label, err)
	}
	err = c.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		p.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(p.W * p.Channels),
			RowsPerImage: uint32(p.H),
		},
		&size,
	)
	if err != nil {
		tex.Destroy()
		return nil, fmt.Errorf("write texture %s: %v", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Destroy()
		return nil, fmt.Errorf("texture view %s: %v", label, err)
	}
	if Debug {
		Log("uploaded %s: %dx%d ch=%d (%d bytes)", label, p.W, p.H, p.Channels, len(p.Pix))
	}
	return &Texture{Tex: tex, View: view, W: size.Width, H: size.Height, Format: format}, nil
}

// UploadEncoded uploads every payload of an encode result, in binding-slot
// order so the material's bind group can index them directly.
func UploadEncoded(c *Context, enc *texture.Encoded) ([]*Texture, error) {
	out := make([]*Texture, len(enc.Payloads))
	for _, b := range enc.Layout.Bindings {
		p := enc.Payloads[b.Payload]
		t, err := Upload(c, p, fmt.Sprintf("%v_%v", enc.Scheme, b.Component))
		if err != nil {
			for _, u := range out {
				if u != nil {
					u.Cleanup()
				}
			}
			return nil, err
		}
		out[b.Payload] = t
	}
	return out, nil
}
