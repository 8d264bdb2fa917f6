// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gifx decodes animated GIFs into canvas-sized RGBA frames with
// their timing and disposal metadata, and re-encodes transformed frames
// back into a GIF. The actual wire codec is the standard image/gif
// implementation; this package owns the frame model around it.
package gifx

import "errors"

var (
	// ErrDecode means the input bytes are not a decodable GIF.
	ErrDecode = errors.New("gifx: malformed gif")

	// ErrNoFrames means the container decoded but holds zero frames.
	ErrNoFrames = errors.New("gifx: gif contains no frames")

	// ErrInvalidFrameSize means frame pixel data does not match the canvas
	// dimensions in any accepted layout.
	ErrInvalidFrameSize = errors.New("gifx: frame size does not match dimensions")

	// ErrEncode means re-encoding the transformed frames failed.
	ErrEncode = errors.New("gifx: encode failed")
)

// Disposal says what happens to a frame's area before the next frame
// draws. Values match the raw GIF graphic-control disposal field.
type Disposal uint8

const (
	// DisposalNone: no disposal specified.
	DisposalNone Disposal = iota
	// DisposalKeep: leave the frame in place.
	DisposalKeep
	// DisposalBackground: restore the area to the background color.
	DisposalBackground
	// DisposalPrevious: restore the area to the previous frame.
	DisposalPrevious
)

// Frame is one image of a sequence, composed onto the global canvas.
// Pix is always Width*Height*4 RGBA bytes at the sequence's canvas size.
type Frame struct {
	Pix   []byte
	Delay int // hundredths of a second
	Disposal Disposal

	// Transparent is the palette index that was fully transparent in the
	// source frame, if any. Re-encoding gives such frames a transparent
	// palette slot; the exact index is not preserved across quantization.
	Transparent *int

	// Left, Top are the source frame's declared offset on the canvas.
	// They are honored when composing and carried here verbatim, but
	// frames are re-emitted at the full canvas size.
	Left, Top int

	// Interlaced and NeedsInput are carried for completeness; the codec
	// collaborator neither surfaces them on decode nor re-emits them.
	Interlaced bool
	NeedsInput bool
}

// Sequence is a decoded GIF: global canvas dimensions plus frames in
// presentation order.
type Sequence struct {
	Width, Height   int
	LoopCount       int
	BackgroundIndex byte
	Frames          []*Frame
}
