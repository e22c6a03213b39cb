package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const debugLogPath = "tmp/logfetch-debug.log"

var debugLogger *slog.Logger
var debugCleanup func()

func initDebugLogger() func() {
	if !debugLogs || debugLogger != nil {
		return nil
	}
	logger, cleanup, err := setupDebugLogger(debugLogPath, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to enable debug log: %v\n", err)
		return nil
	}
	debugLogger = logger
	debugCleanup = cleanup
	fmt.Println("  Debug log: " + debugLogPath)
	return cleanup
}

func getLogger() *slog.Logger {
	if debugLogs && debugLogger != nil {
		return debugLogger
	}
	return newPrettyLogger(os.Stdout)
}

// setupDebugLogger keeps the pretty console output and appends every record,
// debug included, to path as plain text.
func setupDebugLogger(path string, console io.Writer) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}
	return newDebugLogger(console, f), func() { _ = f.Close() }, nil
}

func newDebugLogger(console, file io.Writer) *slog.Logger {
	return slog.New(teeHandler{
		newPrettyHandler(console, slog.LevelInfo),
		slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}
