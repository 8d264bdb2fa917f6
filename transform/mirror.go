// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import "github.com/softglare/gpufx/gpu"

const mirrorShader = quadShader + `
@group(0) @binding(0) var t_input: texture_2d<f32>;
@group(0) @binding(1) var s_input: sampler;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let flipped = vec2<f32>(in.tex_coords.x, 1.0 - in.tex_coords.y);
    return textureSample(t_input, s_input, flipped);
}
`

// Mirror flips frames top to bottom. It has no parameters and is its own
// inverse: applying it twice restores the input.
type Mirror struct {
	p *Pipeline
}

// NewMirror compiles the mirror pipeline once for reuse across frames.
func NewMirror(gp *gpu.GPU) (*Mirror, error) {
	p, err := NewPipeline(gp, &Config{Label: "mirror", Shader: mirrorShader})
	if err != nil {
		return nil, err
	}
	return &Mirror{p: p}, nil
}

func (m *Mirror) Execute(pix []byte, width, height int) ([]byte, error) {
	return m.p.Execute(pix, width, height)
}

func (m *Mirror) Release() {
	m.p.Release()
}
