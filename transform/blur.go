// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/softglare/gpufx/gpu"
)

// DefaultBlurRadius is the kernel radius used when a caller does not ask
// for a specific one.
const DefaultBlurRadius float32 = 5

// The uniform block is 16 bytes: texel size, radius, and explicit padding.
const blurUniformSize = 16

const blurShader = quadShader + `
struct BlurParams {
    texel: vec2<f32>,
    radius: f32,
    _pad: f32,
}

@group(0) @binding(0) var t_input: texture_2d<f32>;
@group(0) @binding(1) var s_input: sampler;
@group(0) @binding(2) var<uniform> params: BlurParams;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let r = i32(params.radius);
    if (r <= 0) {
        return textureSampleLevel(t_input, s_input, in.tex_coords, 0.0);
    }
    var sum = vec4<f32>(0.0);
    var count = 0.0;
    for (var dy = -r; dy <= r; dy = dy + 1) {
        for (var dx = -r; dx <= r; dx = dx + 1) {
            let offset = vec2<f32>(f32(dx), f32(dy)) * params.texel;
            sum = sum + textureSampleLevel(t_input, s_input, in.tex_coords + offset, 0.0);
            count = count + 1.0;
        }
    }
    return sum / count;
}
`

// Blur applies a single-pass box blur. The pipeline is compiled once; the
// radius travels in a per-invocation uniform, so views of the same Blur
// with different radii share the compiled pipeline.
type Blur struct {
	p      *Pipeline
	Radius float32
}

// NewBlur compiles the blur pipeline with the given default radius.
func NewBlur(gp *gpu.GPU, radius float32) (*Blur, error) {
	p, err := NewPipeline(gp, &Config{
		Label:       "blur",
		Shader:      blurShader,
		UniformSize: blurUniformSize,
	})
	if err != nil {
		return nil, err
	}
	return &Blur{p: p, Radius: radius}, nil
}

// WithRadius returns a view of the same compiled pipeline with a different
// kernel radius.
func (b *Blur) WithRadius(radius float32) *Blur {
	return &Blur{p: b.p, Radius: radius}
}

func (b *Blur) Execute(pix []byte, width, height int) ([]byte, error) {
	params := wgpu.ToBytes([]float32{
		1 / float32(width),
		1 / float32(height),
		b.Radius,
		0,
	})
	return b.p.ExecuteUniform(pix, width, height, params)
}

func (b *Blur) Release() {
	b.p.Release()
}
