// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "errors"

var (
	// ErrNoAdapter means no usable WebGPU adapter was found on this host.
	ErrNoAdapter = errors.New("gpu: no suitable adapter found")

	// ErrNoDevice means the selected adapter refused a device request.
	ErrNoDevice = errors.New("gpu: device request failed")

	// ErrBufferMap means the driver reported a failure mapping a readback
	// buffer for CPU access.
	ErrBufferMap = errors.New("gpu: buffer mapping failed")
)
