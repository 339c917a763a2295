package pepperjack

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, was := Logger, debug
	SetLogOutput(&buf)
	t.Cleanup(func() {
		Logger = prev
		SetDebug(was)
	})
	return &buf
}

func TestSetDebugEnablesDebugLog(t *testing.T) {
	buf := captureLog(t)
	SetDebug(false)
	DebugLog("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetDebug(true)
	DebugLog("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "level=DEBUG")

	buf.Reset()
	SetDebug(false)
	DebugLog("hidden %d", 3)
	Logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestSetLogOutputKeepsLevel(t *testing.T) {
	buf := captureLog(t)
	SetDebug(true)
	SetLogOutput(io.Discard)
	SetLogOutput(buf)
	DebugLog("after redirect")
	assert.Contains(t, buf.String(), "after redirect")
}
