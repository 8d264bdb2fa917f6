// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package service exposes the GIF transforms over HTTP.
package service

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Engine names accepted in configuration.
const (
	EngineGPU      = "gpu"
	EngineSoftware = "software"
)

// Config is the service configuration. Precedence, lowest to highest:
// defaults, YAML file, GPUFX_* environment variables.
type Config struct {
	Host          string  `yaml:"host"`
	Port          int     `yaml:"port"`
	Engine        string  `yaml:"engine"`
	LogFile       string  `yaml:"log_file"`
	LogDev        bool    `yaml:"log_dev"`
	MaxUploadMB   int64   `yaml:"max_upload_mb"`
	BlurRadiusMax float32 `yaml:"blur_radius_max"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:          "127.0.0.1",
		Port:          8080,
		Engine:        EngineGPU,
		MaxUploadMB:   32,
		BlurRadiusMax: 64,
	}
}

// LoadFile overlays a YAML config file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// FromEnv overlays GPUFX_* environment variables onto c. A .env file in
// the working directory is honored when present.
func (c *Config) FromEnv() *Config {
	_ = godotenv.Load()
	if v := os.Getenv("GPUFX_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("GPUFX_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("GPUFX_ENGINE"); v != "" {
		c.Engine = v
	}
	if v := os.Getenv("GPUFX_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("GPUFX_LOG_DEV"); v != "" {
		c.LogDev = isTruthy(v)
	}
	if v := os.Getenv("GPUFX_MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxUploadMB = n
		}
	}
	if v := os.Getenv("GPUFX_BLUR_RADIUS_MAX"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			c.BlurRadiusMax = float32(f)
		}
	}
	return c
}

// Addr is the host:port the server binds.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
