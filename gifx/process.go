// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gifx

import "fmt"

// Transformer turns one canvas-sized RGBA frame into another frame of the
// same dimensions.
type Transformer interface {
	Execute(pix []byte, width, height int) ([]byte, error)
}

// Process decodes a GIF, runs every frame through tf in order, and encodes
// the result. Each output frame keeps its source frame's metadata with only
// the pixel content replaced. Processing is strictly sequential and
// fail-fast: the first error aborts with no partial output.
func Process(data []byte, tf Transformer) ([]byte, error) {
	seq, err := Decode(data)
	if err != nil {
		return nil, err
	}
	out := &Sequence{
		Width:           seq.Width,
		Height:          seq.Height,
		LoopCount:       seq.LoopCount,
		BackgroundIndex: seq.BackgroundIndex,
		Frames:          make([]*Frame, len(seq.Frames)),
	}
	for i, fr := range seq.Frames {
		pix, err := NormalizeRGBA(fr.Pix, seq.Width, seq.Height)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		tpix, err := tf.Execute(pix, seq.Width, seq.Height)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if len(tpix) != seq.Width*seq.Height*4 {
			return nil, fmt.Errorf("frame %d: %w: transform returned %d bytes",
				i, ErrInvalidFrameSize, len(tpix))
		}
		nf := *fr
		nf.Pix = tpix
		out.Frames[i] = &nf
	}
	return Encode(out)
}
