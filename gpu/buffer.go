// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ReadBuffer maps buf for reading, copies size bytes out, and unmaps it.
// MapAsync delivers its status on a driver-owned thread, so the callback
// only forwards the status into a one-shot channel; this goroutine drives
// Device.Poll until the channel fires. There is no timeout: a submitted
// copy either completes or the driver reports an error.
func (gp *GPU) ReadBuffer(buf *wgpu.Buffer, size int) ([]byte, error) {
	done := make(chan wgpu.BufferMapAsyncStatus, 1)
	err := buf.MapAsync(wgpu.MapModeRead, 0, uint64(size), func(status wgpu.BufferMapAsyncStatus) {
		done <- status
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBufferMap, err)
	}
	for {
		select {
		case status := <-done:
			if status != wgpu.BufferMapAsyncStatusSuccess {
				return nil, fmt.Errorf("%w: status %s", ErrBufferMap, status.String())
			}
			src := buf.GetMappedRange(0, uint(size))
			out := make([]byte, size)
			copy(out, src)
			buf.Unmap()
			return out, nil
		default:
			gp.Device.Poll(true, nil)
		}
	}
}
