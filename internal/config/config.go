// Package config loads bundle settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nookplayer/appbundle/internal/assets"
)

// File mirrors the YAML config file. Zero values mean "keep the default".
type File struct {
	Root       string   `yaml:"root"`
	Name       string   `yaml:"name"`
	Identifier string   `yaml:"identifier"`
	Compiler   string   `yaml:"compiler"`
	SourceDir  string   `yaml:"source_dir"`
	Sources    []string `yaml:"sources"`
	Frameworks []string `yaml:"frameworks"`

	// Assets replaces the default asset list when non-empty.
	Assets []Asset `yaml:"assets"`

	CleanupOnFailure *bool         `yaml:"cleanup_on_failure"`
	CompileTimeout   time.Duration `yaml:"compile_timeout"`
}

// Asset is one entry of the assets list. Source is relative to the
// project root unless absolute; Dest is relative to Contents/Resources.
type Asset struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
	Kind   string `yaml:"kind"`
}

// Load reads and validates the config file at path. A relative root is
// resolved against the directory containing the file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Root != "" && !filepath.IsAbs(f.Root) {
		f.Root = filepath.Join(filepath.Dir(path), f.Root)
	}
	return f, nil
}

// Parse decodes YAML config data. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks values that cannot be defaulted.
func (f *File) Validate() error {
	if f.CompileTimeout < 0 {
		return fmt.Errorf("compile_timeout must not be negative")
	}
	for i, a := range f.Assets {
		if a.Source == "" {
			return fmt.Errorf("assets[%d]: source is required", i)
		}
		if a.Dest == "" {
			return fmt.Errorf("assets[%d]: dest is required", i)
		}
		if filepath.IsAbs(a.Dest) {
			return fmt.Errorf("assets[%d]: dest must be relative to Resources", i)
		}
		if _, err := a.ParseKind(); err != nil {
			return fmt.Errorf("assets[%d]: %w", i, err)
		}
	}
	return nil
}

// ParseKind returns the asset kind, defaulting to a directory copy.
func (a Asset) ParseKind() (assets.Kind, error) {
	if a.Kind == "" {
		return assets.KindDir, nil
	}
	return assets.ParseKind(a.Kind)
}

// Resolve converts the entry to an assets.Asset rooted at root.
func (a Asset) Resolve(root string) assets.Asset {
	kind, _ := a.ParseKind()
	src := filepath.FromSlash(a.Source)
	if !filepath.IsAbs(src) {
		src = filepath.Join(root, src)
	}
	name := a.Name
	if name == "" {
		name = filepath.Base(a.Dest)
	}
	return assets.Asset{
		Name:   name,
		Source: src,
		Dest:   a.Dest,
		Kind:   kind,
	}
}
