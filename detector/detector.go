package detector

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/openfluke/webgpu/wgpu"
)

/* ---------- public API ---------- */

// Report is a portable summary of the current adapter/device caps, probed
// once before a measurement run starts.
type Report struct {
	WhenISO     string   `json:"when_iso"`
	Runtime     string   `json:"runtime"` // "native" or "wasm" (best-effort)
	Backend     string   `json:"backend"`
	AdapterType string   `json:"adapter_type"`
	VendorID    string   `json:"vendor_id_hex"`
	DeviceID    string   `json:"device_id_hex"`
	Name        string   `json:"name"`
	Driver      string   `json:"driver"`
	Limits      Limits   `json:"limits"`
	Features    []string `json:"features"`
}

type Limits struct {
	MaxTextureDimension2D            uint32 `json:"max_texture_dimension_2d"`
	MaxSampledTexturesPerShaderStage uint32 `json:"max_sampled_textures_per_shader_stage"`
	MaxSamplersPerShaderStage        uint32 `json:"max_samplers_per_shader_stage"`
	MaxVertexBuffers                 uint32 `json:"max_vertex_buffers"`
	MaxVertexAttributes              uint32 `json:"max_vertex_attributes"`
	MaxBufferSize                    uint64 `json:"max_buffer_size"`
}

// Requirements is what the instanced textured-sphere pipeline needs from the
// device: the widest packed buffer it will upload and the texture-unit count
// of the heaviest scheme.
type Requirements struct {
	MaxTextureWidth  uint32
	MaxTextureHeight uint32
	SampledTextures  uint32
	VertexBuffers    uint32
}

// DetectJSON runs a probe and returns the JSON string.
func DetectJSON() (string, error) {
	rep, err := Detect()
	if err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Detect probes the default adapter/device and synthesizes a report.
func Detect() (*Report, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, fmt.Errorf("wgpu.CreateInstance returned nil")
	}
	defer inst.Release()

	// Same preference chain as the render context, so the probe never rejects
	// a machine the renderer would have run on.
	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil || adapter == nil {
		adapter, err = inst.RequestAdapter(&wgpu.RequestAdapterOptions{
			PowerPreference: wgpu.PowerPreferenceLowPower,
		})
	}
	if err != nil || adapter == nil {
		adapter, err = inst.RequestAdapter(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	if adapter == nil {
		return nil, fmt.Errorf("no adapter")
	}
	defer adapter.Release()

	info := adapter.GetInfo()
	limits := adapter.GetLimits()

	var feats []string
	for _, f := range adapter.EnumerateFeatures() {
		feats = append(feats, f.String())
	}

	rep := &Report{
		WhenISO:     time.Now().UTC().Format(time.RFC3339),
		Runtime:     detectRuntime(),
		Backend:     info.BackendType.String(),
		AdapterType: info.AdapterType.String(),
		VendorID:    fmt.Sprintf("0x%04x", info.VendorId),
		DeviceID:    fmt.Sprintf("0x%04x", info.DeviceId),
		Name:        strings.TrimSpace(info.Name),
		Driver:      strings.TrimSpace(info.DriverDescription),
		Limits: Limits{
			MaxTextureDimension2D:            limits.Limits.MaxTextureDimension2D,
			MaxSampledTexturesPerShaderStage: limits.Limits.MaxSampledTexturesPerShaderStage,
			MaxSamplersPerShaderStage:        limits.Limits.MaxSamplersPerShaderStage,
			MaxVertexBuffers:                 limits.Limits.MaxVertexBuffers,
			MaxVertexAttributes:              limits.Limits.MaxVertexAttributes,
			MaxBufferSize:                    limits.Limits.MaxBufferSize,
		},
		Features: feats,
	}
	return rep, nil
}

// Check verifies the probed limits against what a run will ask for.
func (r *Report) Check(req Requirements) error {
	l := r.Limits
	if req.MaxTextureWidth > l.MaxTextureDimension2D || req.MaxTextureHeight > l.MaxTextureDimension2D {
		return fmt.Errorf("texture %dx%d exceeds device limit %d",
			req.MaxTextureWidth, req.MaxTextureHeight, l.MaxTextureDimension2D)
	}
	if req.SampledTextures > l.MaxSampledTexturesPerShaderStage {
		return fmt.Errorf("layout needs %d sampled textures, device allows %d",
			req.SampledTextures, l.MaxSampledTexturesPerShaderStage)
	}
	if req.VertexBuffers > l.MaxVertexBuffers {
		return fmt.Errorf("pipeline needs %d vertex buffers, device allows %d",
			req.VertexBuffers, l.MaxVertexBuffers)
	}
	return nil
}

/* ---------- helpers ---------- */

func detectRuntime() string {
	if runtime.GOOS == "js" {
		return "wasm"
	}
	return "native"
}
