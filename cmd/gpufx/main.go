// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gpufx serves the GIF transform HTTP API, or runs a single
// transform on a local file:
//
//	gpufx                                    # serve
//	gpufx -in a.gif -out b.gif -op mirror    # one-shot mirror
//	gpufx -in a.gif -out b.gif -op blur -radius 8
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/softglare/gpufx/gifx"
	"github.com/softglare/gpufx/gpu"
	"github.com/softglare/gpufx/logx"
	"github.com/softglare/gpufx/service"
	"github.com/softglare/gpufx/transform"
)

func main() {
	var (
		configFile = flag.String("config", "", "optional YAML config file")
		in         = flag.String("in", "", "input GIF; enables one-shot mode")
		out        = flag.String("out", "", "output path for one-shot mode")
		op         = flag.String("op", "mirror", "one-shot operation: mirror or blur")
		radius     = flag.Float64("radius", float64(transform.DefaultBlurRadius), "blur radius for -op blur")
	)
	flag.Parse()

	cfg := service.DefaultConfig()
	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg.FromEnv()

	log := logx.New(cfg.LogDev, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	engine, err := newEngine(cfg)
	if err != nil {
		log.Fatal("engine init failed", zap.String("engine", cfg.Engine), zap.Error(err))
	}
	defer engine.Release()
	log.Info("engine ready", zap.String("engine", engine.Name()))

	if *in != "" {
		if err := runFile(engine, *in, *out, *op, float32(*radius)); err != nil {
			log.Fatal("transform failed", zap.String("in", *in), zap.Error(err))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := service.New(cfg, log, engine).Run(ctx); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func newEngine(cfg *service.Config) (transform.Engine, error) {
	switch cfg.Engine {
	case service.EngineSoftware:
		return transform.SoftwareEngine{}, nil
	case service.EngineGPU, "":
		gp, err := gpu.New()
		if err != nil {
			return nil, err
		}
		return transform.NewGPUEngine(gp)
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}

func runFile(engine transform.Engine, in, out, op string, radius float32) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	var tf gifx.Transformer
	switch op {
	case "mirror":
		tf = engine.Mirror()
	case "blur":
		tf = engine.Blur(radius)
	default:
		return fmt.Errorf("unknown op %q", op)
	}

	res, err := gifx.Process(data, tf)
	if err != nil {
		return err
	}
	if out == "" {
		out = strings.TrimSuffix(in, ".gif") + "." + op + ".gif"
	}
	return os.WriteFile(out, res, 0o644)
}
