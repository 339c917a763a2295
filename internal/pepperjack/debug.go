package pepperjack

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	logLevel = new(slog.LevelVar)
	// Logger is shared by the whole pipeline. Replace it with SetLogOutput.
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	once   sync.Once
)

// SetDebug toggles debug and the logger level together.
func SetDebug(on bool) {
	debug = on
	if on {
		logLevel.Set(slog.LevelDebug)
		return
	}
	logLevel.Set(slog.LevelInfo)
}

// SetLogOutput redirects the package logger, keeping the current level.
func SetLogOutput(w io.Writer) {
	Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

func DebugLog(format string, args ...any) {
	if !debug {
		return
	}
	Logger.Debug(fmt.Sprintf(format, args...))
}

func DebugLogOnce(format string, args ...any) {
	if !debug {
		return
	}
	once.Do(func() {
		Logger.Debug(fmt.Sprintf(format, args...))
	})
}
