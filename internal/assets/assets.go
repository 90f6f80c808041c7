// Package assets copies optional resources into a bundle's Resources directory.
package assets

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/nookplayer/appbundle/internal/system"
)

// Kind selects how an asset is copied.
type Kind int

const (
	// KindDir copies a directory tree, merging into an existing destination.
	KindDir Kind = iota
	// KindFile copies a single file, overwriting an existing destination.
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts "dir" or "file" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "dir", "directory":
		return KindDir, nil
	case "file":
		return KindFile, nil
	}
	return 0, fmt.Errorf("unknown asset kind %q", s)
}

// Asset is an optional input copied into the bundle when it exists.
type Asset struct {
	// Name is shown in progress output.
	Name string
	// Source is the absolute path of the asset in the project.
	Source string
	// Dest is the slash-separated path relative to Contents/Resources.
	Dest string
	Kind Kind
}

// Defaults returns the icon set, music folder and app icon of a project
// rooted at root whose Swift sources live in srcDir.
func Defaults(root, srcDir string) []Asset {
	return []Asset{
		{
			Name:   "Assets.xcassets",
			Source: filepath.Join(srcDir, "Assets.xcassets"),
			Dest:   "Assets.xcassets",
			Kind:   KindDir,
		},
		{
			Name:   "Musics",
			Source: filepath.Join(root, "Resources", "Musics"),
			Dest:   "Musics",
			Kind:   KindDir,
		},
		{
			Name:   "AppIcon.png",
			Source: filepath.Join(root, "bar.png"),
			Dest:   "AppIcon.png",
			Kind:   KindFile,
		},
	}
}

// Copied records one asset that was copied.
type Copied struct {
	Asset Asset
	// Path is the absolute destination inside the bundle.
	Path string
}

// Report lists what CopyAll did.
type Report struct {
	Copied  []Copied
	Skipped []Asset
}

// Copier copies assets into Resources.
type Copier struct {
	Resources string
	Logger    *slog.Logger

	// OnCopy, if set, is called after each successful copy.
	OnCopy func(Copied)
}

// Copy copies a into the Resources directory. It returns false without
// error if a.Source does not exist.
func (c *Copier) Copy(a Asset) (bool, error) {
	if !system.Exists(a.Source) {
		c.logger().Debug("asset source missing, skipping", "asset", a.Name, "source", a.Source)
		return false, nil
	}
	if a.Dest == "" {
		return false, fmt.Errorf("asset %s has no destination", a.Name)
	}

	dst := c.dest(a)
	var err error
	switch a.Kind {
	case KindDir:
		err = system.CopyDir(a.Source, dst)
	case KindFile:
		err = system.CopyFile(a.Source, dst)
	default:
		err = fmt.Errorf("unknown asset kind %v", a.Kind)
	}
	if err != nil {
		return false, fmt.Errorf("copy %s: %w", a.Name, err)
	}

	c.logger().Debug("copied asset", "asset", a.Name, "kind", a.Kind, "dest", dst)
	if c.OnCopy != nil {
		c.OnCopy(Copied{Asset: a, Path: dst})
	}
	return true, nil
}

// CopyAll copies each asset in order and stops at the first error.
func (c *Copier) CopyAll(list []Asset) (Report, error) {
	var r Report
	for _, a := range list {
		ok, err := c.Copy(a)
		if err != nil {
			return r, err
		}
		if ok {
			r.Copied = append(r.Copied, Copied{Asset: a, Path: c.dest(a)})
		} else {
			r.Skipped = append(r.Skipped, a)
		}
	}
	return r, nil
}

func (c *Copier) dest(a Asset) string {
	return filepath.Join(c.Resources, filepath.FromSlash(a.Dest))
}

func (c *Copier) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
