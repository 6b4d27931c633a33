package gpu

import (
	"fmt"
	"time"

	"github.com/openfluke/webgpu/wgpu"

	"github.com/openfluke/texbench/mesh"
)

// Renderer owns the geometry buffers and issues the one instanced draw per
// frame the measurement loop times. Everything is created once up front; the
// per-frame path allocates only the transient command encoder.
type Renderer struct {
	c        *Context
	target   *Target
	material *Material

	vertexBuf   *wgpu.Buffer
	indexBuf    *wgpu.Buffer
	instanceBuf *wgpu.Buffer

	indexCount    uint32
	instanceCount uint32
}

// NewRenderer uploads the mesh and instance offsets.
func NewRenderer(c *Context, target *Target, material *Material, m *mesh.Mesh, instances []float32) (*Renderer, error) {
	r := &Renderer{
		c:             c,
		target:        target,
		material:      material,
		indexCount:    uint32(m.IndexCount()),
		instanceCount: uint32(len(instances) / 3),
	}
	var err error
	r.vertexBuf, err = c.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "sphere_vertices",
		Contents: wgpu.ToBytes(m.Interleaved()),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("vertex buffer: %v", err)
	}
	r.indexBuf, err = c.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "sphere_indices",
		Contents: wgpu.ToBytes(m.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("index buffer: %v", err)
	}
	r.instanceBuf, err = c.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "instance_offsets",
		Contents: wgpu.ToBytes(instances),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		r.Cleanup()
		return nil, fmt.Errorf("instance buffer: %v", err)
	}
	return r, nil
}

func (r *Renderer) InstanceCount() int { return int(r.instanceCount) }

// DrawFrame records one clear + instanced draw, submits it and blocks until
// the GPU is done. The returned duration spans command recording through the
// synchronization point, which is the quantity the harness accumulates:
// GPU execution time, not CPU-GPU overlap.
func (r *Renderer) DrawFrame() (time.Duration, error) {
	start := time.Now()

	encoder, err := r.c.Device.CreateCommandEncoder(nil)
	if err != nil {
		return 0, fmt.Errorf("command encoder: %v", err)
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "frame",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       r.target.ColorView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0.05, G: 0.05, B: 0.08, A: 1},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.target.DepthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})
	pass.SetPipeline(r.material.pipeline)
	pass.SetBindGroup(0, r.material.bindGroup, nil)
	pass.SetVertexBuffer(0, r.vertexBuf, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, r.instanceBuf, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.indexBuf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(r.indexCount, r.instanceCount, 0, 0, 0)
	pass.End()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return 0, fmt.Errorf("encoder finish: %v", err)
	}
	r.c.Queue.Submit(cmd)

	// Full sync before the clock stops; the command queue is the only shared
	// resource and this serializes it per frame.
	r.c.Device.Poll(true, nil)

	return time.Since(start), nil
}

// ReadFrame copies the color attachment back to the CPU as tightly packed
// RGBA rows. Used after the measurement window, never inside it.
func (r *Renderer) ReadFrame() ([]byte, error) {
	const align = 256 // CopyTextureToBuffer row alignment requirement
	rowBytes := r.target.W * 4
	paddedRow := (rowBytes + align - 1) / align * align
	size := uint64(paddedRow * r.target.H)

	staging, err := r.c.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "frame_staging",
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("staging buffer: %v", err)
	}
	defer staging.Destroy()

	encoder, err := r.c.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("command encoder: %v", err)
	}
	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture: r.target.Color,
			Origin:  wgpu.Origin3D{},
			Aspect:  wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: staging,
			Layout: wgpu.TextureDataLayout{
				BytesPerRow:  paddedRow,
				RowsPerImage: r.target.H,
			},
		},
		&wgpu.Extent3D{Width: r.target.W, Height: r.target.H, DepthOrArrayLayers: 1},
	)
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("encoder finish: %v", err)
	}
	r.c.Queue.Submit(cmd)

	done := make(chan struct{})
	var mapErr error
	err = staging.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			mapErr = fmt.Errorf("map failed: %v", status)
		}
		close(done)
	})
	if err != nil {
		return nil, fmt.Errorf("MapAsync failed: %v", err)
	}

	timeout := time.After(2 * time.Second)
Loop:
	for {
		r.c.Device.Poll(false, nil)
		select {
		case <-done:
			break Loop
		case <-timeout:
			return nil, fmt.Errorf("ReadFrame timed out after 2s")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	if mapErr != nil {
		return nil, mapErr
	}

	data := staging.GetMappedRange(0, uint(size))
	if data == nil {
		return nil, fmt.Errorf("failed to get mapped range")
	}
	out := make([]byte, rowBytes*r.target.H)
	for y := uint32(0); y < r.target.H; y++ {
		copy(out[y*rowBytes:(y+1)*rowBytes], data[y*paddedRow:y*paddedRow+rowBytes])
	}
	staging.Unmap()
	return out, nil
}

func (r *Renderer) Cleanup() {
	if r.vertexBuf != nil {
		r.vertexBuf.Destroy()
	}
	if r.indexBuf != nil {
		r.indexBuf.Destroy()
	}
	if r.instanceBuf != nil {
		r.instanceBuf.Destroy()
	}
}
