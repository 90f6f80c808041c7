//go:build unix

package bundle

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// checkExecutable reports an error unless path is a regular file the
// current user may execute.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("bundle executable missing: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("bundle executable is not a regular file: %s", path)
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return fmt.Errorf("bundle executable %s is not executable: %w", path, err)
	}
	return nil
}
