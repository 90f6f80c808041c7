// Package compile invokes the Swift compiler that produces the bundle executable.
package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultCompiler is the compiler binary looked up on PATH.
const DefaultCompiler = "swiftc"

// DefaultSources are the Swift files compiled into the executable,
// relative to the source directory.
var DefaultSources = []string{"NookPlayer.swift", "ContentView.swift"}

// DefaultFrameworks are the system frameworks the executable links against.
var DefaultFrameworks = []string{"AppKit", "SwiftUI", "AVFoundation"}

// Compiler describes one compiler invocation.
type Compiler struct {
	// Bin is the compiler binary. Defaults to DefaultCompiler.
	Bin string

	// Dir is the working directory of the child process; Sources are
	// resolved relative to it.
	Dir string

	Sources    []string
	Frameworks []string

	// Timeout bounds the invocation. Zero means no limit.
	Timeout time.Duration

	Logger *slog.Logger
}

// Error is returned when the compiler cannot be started or exits non-zero.
type Error struct {
	Args     []string
	ExitCode int // -1 if the process never ran to completion
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	bin := DefaultCompiler
	if len(e.Args) > 0 {
		bin = e.Args[0]
	}
	msg := bin + " failed"
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit status %d", e.ExitCode)
	} else if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports whether the compiler binary itself could not be found,
// either on PATH or at an explicit path.
func (e *Error) NotFound() bool {
	if errors.Is(e.Err, exec.ErrNotFound) {
		return true
	}
	var pe *fs.PathError
	if len(e.Args) == 0 || !errors.As(e.Err, &pe) {
		return false
	}
	return pe.Path == e.Args[0] && errors.Is(pe.Err, fs.ErrNotExist)
}

// Args returns the full argument vector, binary first, that writes the
// executable to out.
func (c *Compiler) Args(out string) []string {
	bin := c.Bin
	if bin == "" {
		bin = DefaultCompiler
	}
	args := []string{bin, "-o", out}
	args = append(args, c.Sources...)
	for _, fw := range c.Frameworks {
		args = append(args, "-framework", fw)
	}
	return args
}

// Run compiles the sources into out and blocks until the compiler exits.
// Stderr is buffered and returned inside *Error on failure.
func (c *Compiler) Run(ctx context.Context, out string) error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no source files to compile")
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := c.Args(out)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.Dir
	// A compiler killed on timeout may leave children holding the output pipes.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running compiler", "dir", c.Dir, "args", strings.Join(args, " "))
	start := time.Now()
	err := cmd.Run()
	logger.Debug("compiler finished", "elapsed", time.Since(start), "stdout", stdout.Len(), "stderr", stderr.Len())

	if err == nil {
		return nil
	}

	cerr := &Error{
		Args:     args,
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		cerr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		cerr.Err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return cerr
}
