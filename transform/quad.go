// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

// quadVertex is one corner of the full-screen quad: clip-space position
// plus texture coordinate. Layout must match the vertex buffer layout in
// the render pipeline (two Float32x2 attributes, 16-byte stride).
type quadVertex struct {
	pos [2]float32
	uv  [2]float32
}

// Texture coordinates put v=0 at the top row, matching the upload order of
// RGBA frame bytes.
var quadVertices = [4]quadVertex{
	{pos: [2]float32{-1, -1}, uv: [2]float32{0, 1}},
	{pos: [2]float32{1, -1}, uv: [2]float32{1, 1}},
	{pos: [2]float32{1, 1}, uv: [2]float32{1, 0}},
	{pos: [2]float32{-1, 1}, uv: [2]float32{0, 0}},
}

var quadIndices = [6]uint16{0, 1, 2, 2, 3, 0}

// quadShader is the shared vertex stage: pass positions and texcoords
// straight through. Each transform appends its fragment stage.
const quadShader = `
struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) tex_coords: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) tex_coords: vec2<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = vec4<f32>(in.position, 0.0, 1.0);
    out.tex_coords = in.tex_coords;
    return out;
}
`
