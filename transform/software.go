// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	bildtransform "github.com/anthonynsimon/bild/transform"
)

// SoftwareEngine runs the same transforms on the CPU, for hosts without a
// usable adapter and for tests. Semantics match the GPU pipelines: mirror
// is an exact row swap, blur is a box kernel of the same radius.
type SoftwareEngine struct{}

func (SoftwareEngine) Name() string { return "software" }

func (SoftwareEngine) Mirror() Transformer { return softwareMirror{} }

func (SoftwareEngine) Blur(radius float32) Transformer { return softwareBlur{radius: radius} }

func (SoftwareEngine) Release() {}

type softwareMirror struct{}

func (softwareMirror) Execute(pix []byte, width, height int) ([]byte, error) {
	img, err := wrapRGBA(pix, width, height)
	if err != nil {
		return nil, err
	}
	return bildtransform.FlipV(img).Pix, nil
}

type softwareBlur struct {
	radius float32
}

func (b softwareBlur) Execute(pix []byte, width, height int) ([]byte, error) {
	img, err := wrapRGBA(pix, width, height)
	if err != nil {
		return nil, err
	}
	if b.radius <= 0 {
		out := make([]byte, len(pix))
		copy(out, pix)
		return out, nil
	}
	return blur.Box(img, float64(b.radius)).Pix, nil
}

// wrapRGBA views pix as an image without copying. Callers must not assume
// the result outlives pix.
func wrapRGBA(pix []byte, width, height int) (*image.RGBA, error) {
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInputSize, len(pix), width, height)
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}
