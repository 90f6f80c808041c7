package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nookplayer/appbundle/internal/plist"
)

// Validate checks that l describes a well-formed bundle: the directory
// skeleton and manifest exist, the manifest decodes, and the executable it
// names is present and runnable. It returns the decoded manifest.
func Validate(l Layout) (*plist.Info, error) {
	if l.Path == "" {
		return nil, fmt.Errorf("bundle path not set")
	}
	if _, err := os.Stat(l.Path); err != nil {
		return nil, fmt.Errorf("bundle does not exist: %w", err)
	}

	for _, dir := range []string{l.Contents, l.MacOS, l.Resources} {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("required bundle component missing: %s", dir)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("bundle component is not a directory: %s", dir)
		}
	}

	info, err := plist.ReadInfo(l.InfoPlist)
	if err != nil {
		return nil, fmt.Errorf("required bundle component missing or unreadable: %w", err)
	}
	if info.Executable == "" {
		return nil, fmt.Errorf("%s has no CFBundleExecutable", l.InfoPlist)
	}

	want := filepath.Join(l.MacOS, info.Executable)
	if l.Executable != want {
		return nil, fmt.Errorf("CFBundleExecutable %q does not match executable %s", info.Executable, l.Executable)
	}
	if err := checkExecutable(l.Executable); err != nil {
		return nil, err
	}

	return info, nil
}
