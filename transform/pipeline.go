// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform implements per-frame image transforms as WebGPU render
// pipelines over a full-screen quad, plus a CPU fallback engine with the
// same semantics.
package transform

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/softglare/gpufx/gpu"
)

var (
	// ErrInputSize means the pixel slice does not match width*height*4.
	ErrInputSize = errors.New("transform: input size does not match dimensions")

	// ErrPipeline means shader compilation or pipeline construction failed.
	// This is fatal for the transform kind it occurs in.
	ErrPipeline = errors.New("transform: pipeline construction failed")
)

// Config describes one transform pipeline. Shader is a complete WGSL module
// with vs_main and fs_main entry points; UniformSize, when nonzero, adds a
// uniform buffer at binding 2 carrying that many bytes per invocation.
type Config struct {
	Label       string
	Shader      string
	UniformSize int
}

// Pipeline is one compiled texture transform: render pipeline, bind group
// layout, sampler, and quad geometry, created once and shared read-only by
// concurrent invocations. All mutable state is per Execute call.
type Pipeline struct {
	gp          *gpu.GPU
	label       string
	uniformSize int
	pipeline    *wgpu.RenderPipeline
	layout      *wgpu.BindGroupLayout
	sampler     *wgpu.Sampler
	vtx         *wgpu.Buffer
	idx         *wgpu.Buffer
}

// NewPipeline compiles cfg into a render pipeline targeting RGBA8 textures.
func NewPipeline(gp *gpu.GPU, cfg *Config) (*Pipeline, error) {
	p := &Pipeline{gp: gp, label: cfg.Label, uniformSize: cfg.UniformSize}

	module, err := gp.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          cfg.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: cfg.Shader},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: shader: %v", ErrPipeline, cfg.Label, err)
	}
	defer module.Release()

	entries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		},
	}
	if cfg.UniformSize > 0 {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    2,
			Visibility: wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(cfg.UniformSize),
			},
		})
	}
	p.layout, err = gp.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   cfg.Label,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bind group layout: %v", ErrPipeline, cfg.Label, err)
	}

	pl, err := gp.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            cfg.Label,
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.layout},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%w: %s: pipeline layout: %v", ErrPipeline, cfg.Label, err)
	}
	defer pl.Release()

	p.pipeline, err = gp.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  cfg.Label,
		Layout: pl,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: 16,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    wgpu.TextureFormatRGBA8Unorm,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%w: %s: render pipeline: %v", ErrPipeline, cfg.Label, err)
	}

	p.sampler, err = gp.CreateSampler(cfg.Label + " sampler")
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%w: %s: %v", ErrPipeline, cfg.Label, err)
	}
	p.vtx, err = gp.CreateBufferInit(wgpu.ToBytes(quadVertices[:]), wgpu.BufferUsageVertex, cfg.Label+" vertices")
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%w: %s: %v", ErrPipeline, cfg.Label, err)
	}
	p.idx, err = gp.CreateBufferInit(wgpu.ToBytes(quadIndices[:]), wgpu.BufferUsageIndex, cfg.Label+" indices")
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%w: %s: %v", ErrPipeline, cfg.Label, err)
	}
	return p, nil
}

// Release frees the pipeline-lifetime resources.
func (p *Pipeline) Release() {
	if p.idx != nil {
		p.idx.Release()
		p.idx = nil
	}
	if p.vtx != nil {
		p.vtx.Release()
		p.vtx = nil
	}
	if p.sampler != nil {
		p.sampler.Release()
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
}

// Execute runs the transform on one width*height*4 RGBA frame and returns
// a frame of the same size.
func (p *Pipeline) Execute(pix []byte, width, height int) ([]byte, error) {
	return p.ExecuteUniform(pix, width, height, nil)
}

// ExecuteUniform is Execute with per-invocation uniform bytes for pipelines
// configured with UniformSize > 0. It uploads the input texture, renders
// the quad into an output texture cleared to opaque black, copies the
// result into a readback buffer at the aligned row stride, submits once,
// and reads the tightly packed pixels back.
func (p *Pipeline) ExecuteUniform(pix []byte, width, height int, uniform []byte) ([]byte, error) {
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInputSize, len(pix), width, height)
	}
	if len(uniform) != p.uniformSize {
		return nil, fmt.Errorf("%w: %d uniform bytes, pipeline %s wants %d",
			ErrInputSize, len(uniform), p.label, p.uniformSize)
	}
	gp := p.gp

	input, err := gp.CreateTexture(width, height,
		wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst, p.label+" input")
	if err != nil {
		return nil, err
	}
	defer input.Release()

	output, err := gp.CreateTexture(width, height,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageCopySrc, p.label+" output")
	if err != nil {
		return nil, err
	}
	defer output.Release()

	gp.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  input,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(4 * width),
			RowsPerImage: uint32(height),
		},
		&wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	)

	inView, err := input.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("transform %s: input view: %w", p.label, err)
	}
	defer inView.Release()
	outView, err := output.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("transform %s: output view: %w", p.label, err)
	}
	defer outView.Release()

	bgEntries := []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: inView},
		{Binding: 1, Sampler: p.sampler},
	}
	if p.uniformSize > 0 {
		uniformBuf, err := gp.CreateBufferInit(uniform, wgpu.BufferUsageUniform, p.label+" params")
		if err != nil {
			return nil, err
		}
		defer uniformBuf.Release()
		bgEntries = append(bgEntries, wgpu.BindGroupEntry{
			Binding: 2,
			Buffer:  uniformBuf,
			Size:    wgpu.WholeSize,
		})
	}
	bg, err := gp.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   p.label,
		Layout:  p.layout,
		Entries: bgEntries,
	})
	if err != nil {
		return nil, fmt.Errorf("transform %s: bind group: %w", p.label, err)
	}
	defer bg.Release()

	stride := gpu.AlignedRowStride(width)
	readback, err := gp.CreateReadbackBuffer(stride*height, p.label+" readback")
	if err != nil {
		return nil, err
	}
	defer readback.Release()

	enc, err := gp.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("transform %s: command encoder: %w", p.label, err)
	}
	defer enc.Release()

	rp := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: p.label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       outView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, bg, nil)
	rp.SetVertexBuffer(0, p.vtx, 0, wgpu.WholeSize)
	rp.SetIndexBuffer(p.idx, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	rp.DrawIndexed(uint32(len(quadIndices)), 1, 0, 0, 0)
	rp.End()
	rp.Release() // must happen before Finish

	enc.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  output,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: readback,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(stride),
				RowsPerImage: uint32(height),
			},
		},
		&wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	)

	cmd, err := enc.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("transform %s: finish: %w", p.label, err)
	}
	defer cmd.Release()
	gp.Queue.Submit(cmd)

	padded, err := gp.ReadBuffer(readback, stride*height)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", p.label, err)
	}
	return gpu.RemovePadding(padded, width, height, stride), nil
}
