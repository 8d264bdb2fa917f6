// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gifx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"

	"golang.org/x/image/draw"
)

// Decode parses an animated GIF and composes each frame onto a fresh
// canvas-sized RGBA buffer at the frame's declared offset. Frames are not
// accumulated across each other; each Frame.Pix holds only its own source
// rectangle on a transparent canvas.
func Decode(data []byte) (*Sequence, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}

	seq := &Sequence{
		Width:           w,
		Height:          h,
		LoopCount:       g.LoopCount,
		BackgroundIndex: g.BackgroundIndex,
		Frames:          make([]*Frame, 0, len(g.Image)),
	}
	for i, pal := range g.Image {
		canvas := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(canvas, pal.Bounds(), pal, pal.Bounds().Min, draw.Src)

		fr := &Frame{
			Pix:         canvas.Pix,
			Transparent: transparentIndex(pal.Palette),
			Left:        pal.Bounds().Min.X,
			Top:         pal.Bounds().Min.Y,
		}
		if i < len(g.Delay) {
			fr.Delay = g.Delay[i]
		}
		if i < len(g.Disposal) {
			fr.Disposal = Disposal(g.Disposal[i])
		}
		seq.Frames = append(seq.Frames, fr)
	}
	return seq, nil
}

// Encode writes a sequence back out as an animated GIF. Every frame is
// emitted at the full canvas size and quantized onto a 256-color palette
// with Floyd-Steinberg dithering. Delay and disposal are preserved
// verbatim; frames that carried a transparent index get a transparent
// palette slot.
func Encode(seq *Sequence) ([]byte, error) {
	if len(seq.Frames) == 0 {
		return nil, ErrNoFrames
	}
	out := &gif.GIF{
		LoopCount:       seq.LoopCount,
		BackgroundIndex: seq.BackgroundIndex,
	}
	rect := image.Rect(0, 0, seq.Width, seq.Height)
	for i, fr := range seq.Frames {
		if len(fr.Pix) != seq.Width*seq.Height*4 {
			return nil, fmt.Errorf("frame %d: %w: %d bytes for %dx%d",
				i, ErrInvalidFrameSize, len(fr.Pix), seq.Width, seq.Height)
		}
		src := &image.RGBA{Pix: fr.Pix, Stride: 4 * seq.Width, Rect: rect}
		dst := image.NewPaletted(rect, quantPalette(fr.Transparent != nil))
		draw.FloydSteinberg.Draw(dst, rect, src, image.Point{})
		out.Image = append(out.Image, dst)
		out.Delay = append(out.Delay, fr.Delay)
		out.Disposal = append(out.Disposal, byte(fr.Disposal))
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// NormalizeRGBA coerces raw frame bytes to RGBA. A width*height*4 slice
// passes through unchanged; width*height*3 RGB data gets alpha 255
// appended after each triplet, order preserved. Anything else fails:
// no truncation, no padding.
func NormalizeRGBA(pix []byte, width, height int) ([]byte, error) {
	n := width * height
	switch len(pix) {
	case n * 4:
		return pix, nil
	case n * 3:
		out := make([]byte, 0, n*4)
		for i := 0; i < len(pix); i += 3 {
			out = append(out, pix[i], pix[i+1], pix[i+2], 0xFF)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidFrameSize, len(pix), width, height)
	}
}

// transparentIndex finds a fully transparent palette entry, if any.
func transparentIndex(p color.Palette) *int {
	for i, c := range p {
		if _, _, _, a := c.RGBA(); a == 0 {
			idx := i
			return &idx
		}
	}
	return nil
}

// quantPalette is the 256-color target palette for re-encoding. When the
// source frame was transparent, slot 0 is reserved as fully transparent so
// the encoder emits a transparency extension.
func quantPalette(transparent bool) color.Palette {
	if !transparent {
		return palette.Plan9
	}
	p := make(color.Palette, 0, 256)
	p = append(p, color.RGBA{})
	p = append(p, palette.Plan9[:255]...)
	return p
}
