/*
NAME
  logging.go

DESCRIPTION
  logging.go provides the leveled Logger interface that Durapack's
  encoder, scanner and linker accept, following the shape of
  ausocean-av's own logging.Logger (injected per-constructor, e.g.
  mts.NewEncoder(dst, log, ...)). ausocean/utils/logging itself lives
  outside this retrieval pack, so this is a from-scratch implementation
  of the same convention rather than a vendored copy.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package logging provides a small leveled Logger interface, a
// lumberjack-backed rotating-file implementation, and a discard logger
// for callers that don't want to wire one up.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level selects the minimum severity a Logger will emit.
type Level int8

const (
	Debug Level = iota
	Info
	Warning
	Error
)

// Logger is the interface Durapack components accept for diagnostic
// output. It is deliberately small: one variadic method per level, each
// taking a message and an optional list of key/value pairs, mirroring
// the structured-ish logging calls seen throughout ausocean-av (e.g.
// e.log.Debug("configured for packet based PSI insertion", "count", sendCount)).
type Logger interface {
	Debug(msg string, kv ...interface{})
	Info(msg string, kv ...interface{})
	Warning(msg string, kv ...interface{})
	Error(msg string, kv ...interface{})
}

// stdLogger is the default Logger implementation: a level-filtered
// wrapper around *log.Logger writing to an arbitrary io.Writer (a
// *lumberjack.Logger when built by NewFileLogger, matching
// cmd/audio-netsender's use of lumberjack for its rotating log file).
type stdLogger struct {
	level Level
	log   *log.Logger
}

// New returns a Logger that writes to w at or above level. If w is nil,
// os.Stderr is used.
func New(level Level, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &stdLogger{level: level, log: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
}

// NewFileLogger returns a Logger backed by a rotating file at path,
// using gopkg.in/natefinch/lumberjack.v2 for rotation (maxSizeMB is in
// megabytes; maxBackups and maxAgeDays follow lumberjack's own units).
func NewFileLogger(level Level, path string, maxSizeMB, maxBackups, maxAgeDays int) Logger {
	return New(level, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	})
}

func (l *stdLogger) emit(lvl Level, tag, msg string, kv []interface{}) {
	if lvl < l.level {
		return
	}
	l.log.Print(format(tag, msg, kv))
}

func (l *stdLogger) Debug(msg string, kv ...interface{})   { l.emit(Debug, "DEBUG", msg, kv) }
func (l *stdLogger) Info(msg string, kv ...interface{})    { l.emit(Info, "INFO", msg, kv) }
func (l *stdLogger) Warning(msg string, kv ...interface{}) { l.emit(Warning, "WARN", msg, kv) }
func (l *stdLogger) Error(msg string, kv ...interface{})   { l.emit(Error, "ERROR", msg, kv) }

func format(tag, msg string, kv []interface{}) string {
	s := tag + ": " + msg
	for i := 0; i+1 < len(kv); i += 2 {
		s += fmt.Sprintf(" %v=%v", kv[i], kv[i+1])
	}
	return s
}

// Discard is a Logger that drops everything. Components default to it
// when no Logger is supplied.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...interface{})   {}
func (discard) Info(string, ...interface{})    {}
func (discard) Warning(string, ...interface{}) {}
func (discard) Error(string, ...interface{})   {}
