//go:build !unix

package bundle

import (
	"fmt"
	"os"
)

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("bundle executable missing: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("bundle executable is not a regular file: %s", path)
	}
	return nil
}
