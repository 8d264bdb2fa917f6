// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gifx

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeGIF encodes solid-color frames into an animated GIF for test input.
func makeGIF(t *testing.T, w, h int, delays []int, disposals []byte, cols ...color.RGBA) []byte {
	t.Helper()
	g := &gif.GIF{}
	for i, c := range cols {
		pal := color.Palette{color.Black, c}
		fr := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		for j := range fr.Pix {
			fr.Pix[j] = 1
		}
		g.Image = append(g.Image, fr)
		g.Delay = append(g.Delay, delays[i])
		g.Disposal = append(g.Disposal, disposals[i])
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return buf.Bytes()
}

func TestDecodeCapturesMetadata(t *testing.T) {
	data := makeGIF(t, 4, 3,
		[]int{10, 20},
		[]byte{byte(DisposalKeep), byte(DisposalBackground)},
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 0, 255, 255},
	)

	seq, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 4, seq.Width)
	assert.Equal(t, 3, seq.Height)
	require.Len(t, seq.Frames, 2)

	assert.Equal(t, 10, seq.Frames[0].Delay)
	assert.Equal(t, 20, seq.Frames[1].Delay)
	assert.Equal(t, DisposalKeep, seq.Frames[0].Disposal)
	assert.Equal(t, DisposalBackground, seq.Frames[1].Disposal)
	for _, fr := range seq.Frames {
		assert.Len(t, fr.Pix, 4*3*4)
		assert.Zero(t, fr.Left)
		assert.Zero(t, fr.Top)
	}
	// First frame is solid red.
	assert.Equal(t, []byte{255, 0, 0, 255}, seq.Frames[0].Pix[:4])
}

func TestDecodeHonorsFrameOffsets(t *testing.T) {
	// A 1x1 white frame at offset (2,1) on a 4x4 canvas.
	pal := color.Palette{color.White}
	fr := image.NewPaletted(image.Rect(2, 1, 3, 2), pal)
	g := &gif.GIF{
		Image:    []*image.Paletted{fr},
		Delay:    []int{0},
		Config:   image.Config{Width: 4, Height: 4},
		Disposal: []byte{0},
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))

	seq, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, seq.Frames, 1)
	got := seq.Frames[0]
	assert.Equal(t, 2, got.Left)
	assert.Equal(t, 1, got.Top)

	// The white pixel landed at (2,1); the origin stayed empty.
	at := (1*4 + 2) * 4
	assert.Equal(t, []byte{255, 255, 255, 255}, got.Pix[at:at+4])
	assert.Equal(t, []byte{0, 0, 0, 0}, got.Pix[:4])
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte("definitely not a gif"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestNormalizeRGBAPassthrough(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	out, err := NormalizeRGBA(pix, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, pix, out)
}

func TestNormalizeRGBAExpandsRGB(t *testing.T) {
	out, err := NormalizeRGBA([]byte{1, 2, 3, 4, 5, 6}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 255, 4, 5, 6, 255}, out)
}

func TestNormalizeRGBARejectsOddSizes(t *testing.T) {
	for _, n := range []int{0, 1, 5, 7, 9} {
		_, err := NormalizeRGBA(make([]byte, n), 2, 1)
		assert.ErrorIs(t, err, ErrInvalidFrameSize, "%d bytes", n)
	}
}

func TestEncodePreservesTimingAndDisposal(t *testing.T) {
	seq := &Sequence{Width: 2, Height: 2}
	for i, d := range []int{5, 15, 30} {
		pix := make([]byte, 2*2*4)
		for j := 3; j < len(pix); j += 4 {
			pix[j] = 255
		}
		seq.Frames = append(seq.Frames, &Frame{
			Pix:      pix,
			Delay:    d,
			Disposal: Disposal(byte(i + 1)),
		})
	}

	data, err := Encode(seq)
	require.NoError(t, err)

	g, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 15, 30}, g.Delay)
	assert.Equal(t, []byte{1, 2, 3}, g.Disposal)
	require.Len(t, g.Image, 3)
	for _, fr := range g.Image {
		assert.Equal(t, image.Rect(0, 0, 2, 2), fr.Bounds())
	}
}

func TestEncodeTransparentSlot(t *testing.T) {
	pix := make([]byte, 2*2*4) // fully transparent canvas
	idx := 3
	seq := &Sequence{
		Width: 2, Height: 2,
		Frames: []*Frame{{Pix: pix, Transparent: &idx}},
	}

	data, err := Encode(seq)
	require.NoError(t, err)

	g, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, g.Image, 1)
	got := transparentIndex(g.Image[0].Palette)
	require.NotNil(t, got, "re-encoded palette has no transparent slot")
}

func TestEncodeRejectsEmptySequence(t *testing.T) {
	_, err := Encode(&Sequence{Width: 1, Height: 1})
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestEncodeRejectsWrongFrameSize(t *testing.T) {
	seq := &Sequence{Width: 2, Height: 2, Frames: []*Frame{{Pix: make([]byte, 3)}}}
	_, err := Encode(seq)
	assert.ErrorIs(t, err, ErrInvalidFrameSize)
}
