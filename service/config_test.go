// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, EngineGPU, cfg.Engine)
	assert.Positive(t, cfg.MaxUploadMB)
	assert.Positive(t, cfg.BlurRadiusMax)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("GPUFX_HOST", "0.0.0.0")
	t.Setenv("GPUFX_PORT", "9000")
	t.Setenv("GPUFX_ENGINE", EngineSoftware)
	t.Setenv("GPUFX_LOG_DEV", "true")
	t.Setenv("GPUFX_BLUR_RADIUS_MAX", "12")

	cfg := DefaultConfig().FromEnv()
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, EngineSoftware, cfg.Engine)
	assert.True(t, cfg.LogDev)
	assert.Equal(t, float32(12), cfg.BlurRadiusMax)
}

func TestFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("GPUFX_PORT", "not-a-port")
	t.Setenv("GPUFX_MAX_UPLOAD_MB", "-3")

	cfg := DefaultConfig().FromEnv()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int64(32), cfg.MaxUploadMB)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpufx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"host: 10.0.0.5\nport: 8888\nengine: software\nblur_radius_max: 9\n"), 0o644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, "10.0.0.5:8888", cfg.Addr())
	assert.Equal(t, EngineSoftware, cfg.Engine)
	assert.Equal(t, float32(9), cfg.BlurRadiusMax)
}

func TestLoadFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		assert.True(t, isTruthy(v), v)
	}
	for _, v := range []string{"", "0", "false", "off", "nope"} {
		assert.False(t, isTruthy(v), v)
	}
}
