// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignedRowStride(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{1, 256},
		{63, 256},
		{64, 256},   // exactly one alignment unit
		{65, 512},
		{100, 512},
		{128, 512},
		{320, 1280}, // already aligned
		{321, 1536},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, AlignedRowStride(tc.width), "width %d", tc.width)
	}
}

func TestAlignedRowStrideProperties(t *testing.T) {
	for width := 1; width < 600; width++ {
		stride := AlignedRowStride(width)
		assert.GreaterOrEqual(t, stride, width*4)
		assert.Zero(t, stride%256)
		assert.Less(t, stride-width*4, 256)
	}
}

func TestRemovePadding(t *testing.T) {
	const w, h = 3, 2
	stride := AlignedRowStride(w)
	require.Equal(t, 256, stride)

	padded := make([]byte, stride*h)
	for row := 0; row < h; row++ {
		for i := 0; i < w*4; i++ {
			padded[row*stride+i] = byte(row*100 + i)
		}
	}

	got := RemovePadding(padded, w, h, stride)
	require.Len(t, got, w*h*4)
	for row := 0; row < h; row++ {
		for i := 0; i < w*4; i++ {
			assert.Equal(t, byte(row*100+i), got[row*w*4+i])
		}
	}
}

func TestRemovePaddingTightStrideCopies(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	got := RemovePadding(src, 1, 2, 4)
	require.Equal(t, src, got)

	// The result must not alias the input.
	got[0] = 99
	assert.Equal(t, byte(1), src[0])
}
