package appbundle

import (
	"errors"
	"fmt"

	"github.com/nookplayer/appbundle/internal/compile"
)

// Error represents a build error with additional context and actionable guidance.
type Error struct {
	Op   string // Operation that failed (e.g., "clean bundle", "compile")
	Err  error  // Underlying error
	Help string // Actionable guidance for the user
}

func (e *Error) Error() string {
	if e.Help != "" {
		return fmt.Sprintf("appbundle: %s: %v\n  hint: %s", e.Op, e.Err, e.Help)
	}
	return fmt.Sprintf("appbundle: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CompileError is returned (wrapped in *Error) when the compiler exits
// non-zero or cannot be started. Stderr holds its captured error output.
type CompileError = compile.Error

// AsCompileError reports whether err is, or wraps, a compiler failure.
func AsCompileError(err error) (*CompileError, bool) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return cerr, true
	}
	return nil, false
}
