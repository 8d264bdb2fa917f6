// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gifx

import (
	"bytes"
	"errors"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identityTransform struct{}

func (identityTransform) Execute(pix []byte, width, height int) ([]byte, error) {
	return pix, nil
}

type flipTransform struct{}

func (flipTransform) Execute(pix []byte, width, height int) ([]byte, error) {
	out := make([]byte, len(pix))
	stride := width * 4
	for y := 0; y < height; y++ {
		copy(out[y*stride:(y+1)*stride], pix[(height-1-y)*stride:(height-y)*stride])
	}
	return out, nil
}

type failingTransform struct{ err error }

func (f failingTransform) Execute(pix []byte, width, height int) ([]byte, error) {
	return nil, f.err
}

type truncatingTransform struct{}

func (truncatingTransform) Execute(pix []byte, width, height int) ([]byte, error) {
	return pix[:len(pix)-4], nil
}

func TestProcessIdentityKeepsStructure(t *testing.T) {
	data := makeGIF(t, 4, 4,
		[]int{10, 20},
		[]byte{byte(DisposalKeep), byte(DisposalKeep)},
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
	)

	out, err := Process(data, identityTransform{})
	require.NoError(t, err)

	g, err := gif.DecodeAll(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, g.Image, 2)
	assert.Equal(t, []int{10, 20}, g.Delay)
	assert.Equal(t, []byte{1, 1}, g.Disposal)
}

func TestProcessTransformsPixels(t *testing.T) {
	// Two rows: red on top, blue on bottom. After a flip, the top row
	// decodes blue-ish (quantization allows small error).
	seq := &Sequence{Width: 2, Height: 2}
	pix := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	seq.Frames = []*Frame{{Pix: pix}}
	data, err := Encode(seq)
	require.NoError(t, err)

	out, err := Process(data, flipTransform{})
	require.NoError(t, err)

	got, err := Decode(out)
	require.NoError(t, err)
	require.Len(t, got.Frames, 1)
	top := got.Frames[0].Pix[:4]
	assert.Less(t, top[0], byte(100), "top row red channel after flip")
	assert.Greater(t, top[2], byte(150), "top row blue channel after flip")
}

func TestProcessFailFast(t *testing.T) {
	data := makeGIF(t, 2, 2, []int{0}, []byte{0}, color.RGBA{255, 255, 255, 255})

	boom := errors.New("boom")
	_, err := Process(data, failingTransform{err: boom})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "frame 0")
}

func TestProcessRejectsResizedOutput(t *testing.T) {
	data := makeGIF(t, 2, 2, []int{0}, []byte{0}, color.RGBA{255, 255, 255, 255})

	_, err := Process(data, truncatingTransform{})
	assert.ErrorIs(t, err, ErrInvalidFrameSize)
}

func TestProcessRejectsMalformedInput(t *testing.T) {
	_, err := Process([]byte("garbage"), identityTransform{})
	assert.ErrorIs(t, err, ErrDecode)
}
