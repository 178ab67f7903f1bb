// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.

// Package clog is a minimal structured-logging wrapper around zap: a
// Debugf/Warnf/Errorf trio the owning structs (record.Layer, the
// ecdsa signing path) hold as a field, backed by
// go.uber.org/zap.SugaredLogger.
package clog

import "go.uber.org/zap"

// Logger is the trace/diagnostic contract record.Layer and ecdsa's
// retry path depend on. A nil Logger field is never dereferenced
// directly by callers; NewNop() gives an explicit no-op instance to
// store instead.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *zapLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *zapLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// New returns a Logger backed by zap's production configuration.
func New() Logger {
	zl, err := zap.NewProduction()
	if err != nil {
		zl = zap.NewNop()
	}
	return &zapLogger{sugar: zl.Sugar()}
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}

// NewNop returns a Logger that discards everything, for tests and for
// callers that never set a Logger field.
func NewNop() Logger {
	return nopLogger{}
}
