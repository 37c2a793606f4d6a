/*
NAME
  testlogger.go

DESCRIPTION
  testlogger.go adapts *testing.T (or *testing.B) to the Logger
  interface, mirroring ausocean-av's logging.TestLogger usage throughout
  container/mts's tests (e.g. NewEncoder(dst, (*logging.TestLogger)(t), ...)).

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package logging

// TB is the subset of testing.T/testing.B that TestLogger needs.
type TB interface {
	Logf(format string, args ...interface{})
}

// TestLogger adapts a TB to Logger, routing every level to t.Logf so
// diagnostic output is attached to the test that produced it.
type TestLogger struct{ TB TB }

// NewTestLogger returns a Logger that writes through t.
func NewTestLogger(t TB) Logger { return &TestLogger{TB: t} }

func (t *TestLogger) Debug(msg string, kv ...interface{})   { t.TB.Logf("%s", format("DEBUG", msg, kv)) }
func (t *TestLogger) Info(msg string, kv ...interface{})    { t.TB.Logf("%s", format("INFO", msg, kv)) }
func (t *TestLogger) Warning(msg string, kv ...interface{}) { t.TB.Logf("%s", format("WARN", msg, kv)) }
func (t *TestLogger) Error(msg string, kv ...interface{})   { t.TB.Logf("%s", format("ERROR", msg, kv)) }
