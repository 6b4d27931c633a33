package gpu

import (
	"fmt"

	"github.com/openfluke/webgpu/wgpu"

	"github.com/openfluke/texbench/texture"
)

// Material bundles everything one scheme needs to draw: the uploaded
// textures, the generated pipeline, and the bind group wiring the encoder's
// slot assignment to the shader.
type Material struct {
	Scheme texture.Scheme

	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	bindGroup       *wgpu.BindGroup

	Textures   []*Texture
	sampler    *wgpu.Sampler
	UniformBuf *wgpu.Buffer
}

// NewMaterial compiles the scheme's shader, uploads the encoded payloads and
// builds the bind group. A shader diagnostic from the backend is passed
// through unmodified.
func NewMaterial(c *Context, enc *texture.Encoded, camera Mat4) (*Material, error) {
	src, err := GenerateShader(enc.Scheme)
	if err != nil {
		return nil, err
	}

	m := &Material{Scheme: enc.Scheme}
	cleanup := func() { m.Cleanup() }

	m.Textures, err = UploadEncoded(c, enc)
	if err != nil {
		return nil, err
	}

	m.sampler, err = c.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "linear_clamp",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   1,
		MaxAnisotropy: 1,
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("sampler: %v", err)
	}

	m.UniformBuf, err = c.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "camera_uniform",
		Contents: wgpu.ToBytes(camera[:]),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("uniform buffer: %v", err)
	}

	layoutEntries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: 64,
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageFragment,
			Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
		},
	}
	groupEntries := []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: m.UniformBuf, Size: m.UniformBuf.GetSize()},
		{Binding: 1, Sampler: m.sampler},
	}
	// Texture bindings start at slot 2; the encoder's layout owns the order.
	for _, b := range enc.Layout.Bindings {
		layoutEntries = append(layoutEntries, wgpu.BindGroupLayoutEntry{
			Binding:    2 + b.Slot,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		})
		groupEntries = append(groupEntries, wgpu.BindGroupEntry{
			Binding:     2 + b.Slot,
			TextureView: m.Textures[b.Payload].View,
		})
	}

	m.bindGroupLayout, err = c.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   fmt.Sprintf("%v_bgl", enc.Scheme),
		Entries: layoutEntries,
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("bind group layout: %v", err)
	}
	pipelineLayout, err := c.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            fmt.Sprintf("%v_pl", enc.Scheme),
		BindGroupLayouts: []*wgpu.BindGroupLayout{m.bindGroupLayout},
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("pipeline layout: %v", err)
	}

	module, err := c.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          fmt.Sprintf("%v_shader", enc.Scheme),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: src},
	})
	if err != nil {
		pipelineLayout.Release()
		cleanup()
		return nil, fmt.Errorf("shader compile (%v): %w", enc.Scheme, err)
	}

	stencil := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}
	m.pipeline, err = c.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%v_pipe", enc.Scheme),
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					// Interleaved position + uv.
					ArrayStride: 5 * 4,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
					},
				},
				{
					// Per-instance world offset.
					ArrayStride: 3 * 4,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 2},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      stencil,
			StencilBack:       stencil,
			StencilReadMask:   0xFFFFFFFF,
			StencilWriteMask:  0xFFFFFFFF,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: ColorFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
	})
	// The pipeline keeps its own references; the source module and layout are
	// done once it exists.
	pipelineLayout.Release()
	module.Release()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("pipeline link (%v): %w", enc.Scheme, err)
	}

	m.bindGroup, err = c.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   fmt.Sprintf("%v_bind", enc.Scheme),
		Layout:  m.bindGroupLayout,
		Entries: groupEntries,
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("bind group: %v", err)
	}
	if Debug {
		Log("material ready: %v (%d textures)", enc.Scheme, len(m.Textures))
	}
	return m, nil
}

func (m *Material) Cleanup() {
	if m.pipeline != nil {
		m.pipeline.Release()
	}
	if m.bindGroup != nil {
		m.bindGroup.Release()
	}
	if m.sampler != nil {
		m.sampler.Release()
	}
	if m.UniformBuf != nil {
		m.UniformBuf.Destroy()
	}
	for _, t := range m.Textures {
		if t != nil {
			t.Cleanup()
		}
	}
}
