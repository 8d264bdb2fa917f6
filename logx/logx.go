// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx configures the process logger: a console core, plus an
// optional rotating file core when a log path is set.
package logx

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap so call sites carry one import.
type Logger struct {
	*zap.Logger
}

// New builds the process logger. Development mode switches to a colored
// console encoder at debug level; production logs JSON at info level. An
// empty filePath disables the file core.
func New(development bool, filePath string) *Logger {
	level := zapcore.InfoLevel
	if development {
		level = zapcore.DebugLevel
	}

	var consoleEnc zapcore.Encoder
	if development {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEnc = zapcore.NewConsoleEncoder(devCfg)
	} else {
		prodCfg := zap.NewProductionEncoderConfig()
		prodCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleEnc = zapcore.NewJSONEncoder(prodCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.AddSync(os.Stdout), level),
	}
	if filePath != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileCfg),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   filePath,
				MaxSize:    50, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}),
			level,
		))
	}

	return &Logger{Logger: zap.New(zapcore.NewTee(cores...), zap.AddCaller())}
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}
