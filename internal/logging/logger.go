// Package logging configures the slog logger used by the bundle builder.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by NewFromEnv.
const (
	EnvDebug   = "APPBUNDLE_DEBUG"    // "1" enables debug level
	EnvLogDest = "APPBUNDLE_LOG_DEST" // "stderr", "file:<path>" or "both:<path>"
	EnvLogJSON = "APPBUNDLE_LOG_JSON" // "1" switches to JSON output
)

// New returns a text logger writing to w. Timestamps are omitted.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(handler).With("component", "appbundle")
}

// NewFromEnv builds a logger from the APPBUNDLE_* environment variables.
// debug forces debug level regardless of EnvDebug. The returned closer
// releases any log file that was opened.
func NewFromEnv(stderr io.Writer, debug bool) (*slog.Logger, io.Closer) {
	if os.Getenv(EnvDebug) == "1" {
		debug = true
	}

	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)
	dest := os.Getenv(EnvLogDest)
	switch {
	case strings.HasPrefix(dest, "file:"):
		if f, err := openLog(strings.TrimPrefix(dest, "file:")); err == nil {
			writers = append(writers, f)
			closer = f
		} else {
			fmt.Fprintf(stderr, "appbundle: %v\n", err)
			writers = append(writers, stderr)
		}
	case strings.HasPrefix(dest, "both:"):
		writers = append(writers, stderr)
		if f, err := openLog(strings.TrimPrefix(dest, "both:")); err == nil {
			writers = append(writers, f)
			closer = f
		} else {
			fmt.Fprintf(stderr, "appbundle: %v\n", err)
		}
	default:
		writers = append(writers, stderr)
	}

	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = io.MultiWriter(writers...)
	}

	if os.Getenv(EnvLogJSON) == "1" {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		h := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
		return slog.New(h).With("component", "appbundle"), closer
	}
	return New(out, debug), closer
}

func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
