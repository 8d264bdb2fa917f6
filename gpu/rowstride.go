// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/cogentcore/webgpu/wgpu"

// AlignedRowStride returns the bytes-per-row stride required to copy a
// width-pixel RGBA row from a texture into a buffer: the smallest multiple
// of wgpu.CopyBytesPerRowAlignment that holds 4*width bytes.
func AlignedRowStride(width int) int {
	unpadded := width * 4
	align := int(wgpu.CopyBytesPerRowAlignment)
	padding := (align - unpadded%align) % align
	return unpadded + padding
}

// RemovePadding strips the per-row alignment padding from raw readback
// bytes, returning a tightly packed width*height*4 slice. The input is not
// modified; a tight stride still produces a fresh copy.
func RemovePadding(data []byte, width, height, stride int) []byte {
	tight := width * 4
	out := make([]byte, 0, tight*height)
	for row := 0; row < height; row++ {
		off := row * stride
		out = append(out, data[off:off+tight]...)
	}
	return out
}
