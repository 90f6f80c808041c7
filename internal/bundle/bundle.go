// Package bundle resolves, creates and checks the on-disk layout of a macOS app bundle.
package bundle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nookplayer/appbundle/internal/system"
)

// Extension is the suffix macOS uses to recognise an application bundle.
const Extension = ".app"

// Layout holds every fixed path of a bundle.
type Layout struct {
	// Root is the directory the bundle is created in.
	Root string
	// Name is the application name, also used as the executable name.
	Name string

	Path       string // <Root>/<Name>.app
	Contents   string // Path/Contents
	MacOS      string // Contents/MacOS
	Resources  string // Contents/Resources
	InfoPlist  string // Contents/Info.plist
	Executable string // MacOS/<Name>
}

// NewLayout computes the bundle paths for appName under root.
func NewLayout(root, appName string) Layout {
	return newLayout(root, appName, filepath.Join(root, appName+Extension))
}

// LayoutFromPath returns the layout of an existing bundle directory.
// The executable name defaults to the bundle name; use WithExecutable
// to point it at the name recorded in Info.plist.
func LayoutFromPath(path string) Layout {
	path = filepath.Clean(path)
	name := strings.TrimSuffix(filepath.Base(path), Extension)
	return newLayout(filepath.Dir(path), name, path)
}

func newLayout(root, name, path string) Layout {
	contents := filepath.Join(path, "Contents")
	macos := filepath.Join(contents, "MacOS")
	return Layout{
		Root:       root,
		Name:       name,
		Path:       path,
		Contents:   contents,
		MacOS:      macos,
		Resources:  filepath.Join(contents, "Resources"),
		InfoPlist:  filepath.Join(contents, "Info.plist"),
		Executable: filepath.Join(macos, name),
	}
}

// WithExecutable returns a copy of l whose executable lives at MacOS/<name>.
func (l Layout) WithExecutable(name string) Layout {
	l.Executable = filepath.Join(l.MacOS, name)
	return l
}

// Clean removes any existing bundle at l.Path.
// It reports whether something was removed.
func (l Layout) Clean() (bool, error) {
	removed, err := system.RemoveTree(l.Path)
	if err != nil {
		return false, fmt.Errorf("failed to remove existing bundle %s: %w", l.Path, err)
	}
	return removed, nil
}

// CreateSkeleton creates Contents/MacOS and Contents/Resources,
// including any missing parents.
func (l Layout) CreateSkeleton() error {
	for _, dir := range []string{l.MacOS, l.Resources} {
		if err := system.EnsureDir(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
