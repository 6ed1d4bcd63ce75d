package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/gui"
)

// setupLogging installs a text handler on gui's logger. With a log file,
// records go to stderr and to a rotated file. The returned func closes the
// file.
func setupLogging(stderr io.Writer, verbose bool, path string) func() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	w := stderr
	closeFn := func() {}
	if path != "" {
		rotated := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w = io.MultiWriter(stderr, rotated)
		closeFn = func() { _ = rotated.Close() }
	}

	gui.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn
}
