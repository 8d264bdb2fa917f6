// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import "github.com/softglare/gpufx/gpu"

// Transformer turns one canvas-sized RGBA frame into another frame of the
// same dimensions.
type Transformer interface {
	Execute(pix []byte, width, height int) ([]byte, error)
}

// Engine hands out the transforms a service instance exposes. Engines are
// safe for concurrent use; the returned Transformers share compiled state
// but carry no per-invocation state of their own.
type Engine interface {
	Name() string
	Mirror() Transformer
	Blur(radius float32) Transformer
	Release()
}

// GPUEngine compiles each transform pipeline once against a shared device
// and serves Transformer views of them.
type GPUEngine struct {
	gp     *gpu.GPU
	mirror *Mirror
	blur   *Blur
}

// NewGPUEngine builds all pipelines up front so shader or pipeline errors
// surface at startup rather than on the first request. It takes ownership
// of gp.
func NewGPUEngine(gp *gpu.GPU) (*GPUEngine, error) {
	m, err := NewMirror(gp)
	if err != nil {
		gp.Release()
		return nil, err
	}
	b, err := NewBlur(gp, DefaultBlurRadius)
	if err != nil {
		m.Release()
		gp.Release()
		return nil, err
	}
	return &GPUEngine{gp: gp, mirror: m, blur: b}, nil
}

func (e *GPUEngine) Name() string { return "gpu" }

func (e *GPUEngine) Mirror() Transformer { return e.mirror }

func (e *GPUEngine) Blur(radius float32) Transformer { return e.blur.WithRadius(radius) }

func (e *GPUEngine) Release() {
	e.blur.Release()
	e.mirror.Release()
	e.gp.Release()
}
