// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu owns the process-wide WebGPU state (instance, adapter, device,
// queue) and the low-level plumbing shared by all texture transforms:
// resource creation, row-stride alignment for texture-to-buffer copies, and
// asynchronous buffer readback.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPU holds the device-level WebGPU handles for the process. One GPU is
// shared read-only across all transform pipelines and all concurrent
// invocations; everything mutable is created per invocation by callers.
type GPU struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
}

// New creates a WebGPU instance, selects a high-performance adapter, and
// requests a device and queue from it. Failure here means no GPU-backed
// transform can run, so callers treat it as fatal at startup.
func New() (*GPU, error) {
	gp := &GPU{}
	gp.Instance = wgpu.CreateInstance(nil)
	adapter, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil || adapter == nil {
		gp.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	gp.Adapter = adapter
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "gpufx device",
	})
	if err != nil {
		gp.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	gp.Device = device
	gp.Queue = device.GetQueue()
	return gp, nil
}

// Release frees the device-level handles. No transform may be in flight.
func (gp *GPU) Release() {
	if gp.Device != nil {
		gp.Device.Release()
		gp.Device = nil
		gp.Queue = nil
	}
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
	if gp.Instance != nil {
		gp.Instance.Release()
		gp.Instance = nil
	}
}

// CreateTexture makes a 2D RGBA8 texture of the given pixel size.
func (gp *GPU) CreateTexture(width, height int, usage wgpu.TextureUsage, label string) (*wgpu.Texture, error) {
	t, err := gp.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create texture %q: %w", label, err)
	}
	return t, nil
}

// CreateBufferInit makes a buffer pre-filled with contents.
func (gp *GPU) CreateBufferInit(contents []byte, usage wgpu.BufferUsage, label string) (*wgpu.Buffer, error) {
	b, err := gp.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create buffer %q: %w", label, err)
	}
	return b, nil
}

// CreateReadbackBuffer makes a mappable destination buffer for copying
// rendered texture contents back to the CPU.
func (gp *GPU) CreateReadbackBuffer(size int, label string) (*wgpu.Buffer, error) {
	b, err := gp.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create readback buffer %q: %w", label, err)
	}
	return b, nil
}

// CreateSampler makes the bilinear clamp-to-edge sampler the transform
// shaders use.
func (gp *GPU) CreateSampler(label string) (*wgpu.Sampler, error) {
	s, err := gp.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create sampler %q: %w", label, err)
	}
	return s, nil
}
