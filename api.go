package appbundle

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/nookplayer/appbundle/internal/assets"
	"github.com/nookplayer/appbundle/internal/compile"
	"github.com/nookplayer/appbundle/internal/config"
)

// Defaults used when the corresponding Config field is empty.
const (
	DefaultAppName   = "NookPlayer"
	DefaultBundleID  = "com.nookplayer.app"
	DefaultSourceDir = "NookPlayer" // relative to the project root
)

// Asset is an optional file or directory copied into Contents/Resources.
type Asset = assets.Asset

// Asset kinds.
const (
	AssetDir  = assets.KindDir
	AssetFile = assets.KindFile
)

// Config controls a bundle build.
type Config struct {
	// Root is the project directory. The bundle is created at
	// <Root>/<AppName>.app. Defaults to the working directory.
	Root string

	// AppName names the bundle, the executable and CFBundleName.
	AppName string

	// BundleID is written to CFBundleIdentifier.
	BundleID string

	// Compiler is the Swift compiler binary, looked up on PATH.
	Compiler string

	// SourceDir is where the compiler runs and Sources are found.
	// Relative paths are resolved against Root.
	SourceDir string

	Sources    []string
	Frameworks []string

	// Assets overrides the default optional assets when non-nil.
	Assets []Asset

	// CleanupOnFailure removes the partially built bundle if any step
	// after the initial clean fails.
	CleanupOnFailure bool

	// CompileTimeout bounds the compiler run. Zero waits indefinitely.
	CompileTimeout time.Duration

	// Out receives human-readable progress lines. Defaults to os.Stdout.
	Out io.Writer

	// Logger receives structured debug logs. Defaults to discarding them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration that packages NookPlayer from
// the current working directory.
func DefaultConfig() *Config {
	return &Config{
		AppName:    DefaultAppName,
		BundleID:   DefaultBundleID,
		Compiler:   compile.DefaultCompiler,
		SourceDir:  DefaultSourceDir,
		Sources:    slices.Clone(compile.DefaultSources),
		Frameworks: slices.Clone(compile.DefaultFrameworks),
	}
}

// LoadConfig returns DefaultConfig overlaid with the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, &Error{Op: "load config", Err: err}
	}
	cfg := DefaultConfig()
	cfg.apply(f)
	return cfg, nil
}

func (c *Config) apply(f *config.File) {
	if f.Root != "" {
		c.Root = f.Root
	}
	if f.Name != "" {
		c.AppName = f.Name
	}
	if f.Identifier != "" {
		c.BundleID = f.Identifier
	}
	if f.Compiler != "" {
		c.Compiler = f.Compiler
	}
	if f.SourceDir != "" {
		c.SourceDir = filepath.FromSlash(f.SourceDir)
	}
	if len(f.Sources) > 0 {
		c.Sources = f.Sources
	}
	if len(f.Frameworks) > 0 {
		c.Frameworks = f.Frameworks
	}
	if f.CleanupOnFailure != nil {
		c.CleanupOnFailure = *f.CleanupOnFailure
	}
	if f.CompileTimeout > 0 {
		c.CompileTimeout = f.CompileTimeout
	}
	if len(f.Assets) > 0 {
		// Asset sources are resolved against the root at build time.
		c.Assets = make([]Asset, 0, len(f.Assets))
		for _, a := range f.Assets {
			c.Assets = append(c.Assets, a.Resolve(""))
		}
	}
}

// WithRoot sets the project directory.
func (c *Config) WithRoot(root string) *Config {
	c.Root = root
	return c
}

// WithAppName sets the app name.
func (c *Config) WithAppName(name string) *Config {
	c.AppName = name
	return c
}

// WithBundleID sets the bundle identifier.
func (c *Config) WithBundleID(bundleID string) *Config {
	c.BundleID = bundleID
	return c
}

// WithCompiler sets the compiler binary.
func (c *Config) WithCompiler(bin string) *Config {
	c.Compiler = bin
	return c
}

// WithAssets replaces the optional asset list.
func (c *Config) WithAssets(list ...Asset) *Config {
	c.Assets = list
	return c
}

// WithCleanupOnFailure enables removal of partial bundles.
func (c *Config) WithCleanupOnFailure() *Config {
	c.CleanupOnFailure = true
	return c
}

// WithCompileTimeout bounds the compiler run.
func (c *Config) WithCompileTimeout(d time.Duration) *Config {
	c.CompileTimeout = d
	return c
}

// WithOutput sets the progress writer.
func (c *Config) WithOutput(w io.Writer) *Config {
	c.Out = w
	return c
}

// WithLogger sets the structured logger.
func (c *Config) WithLogger(l *slog.Logger) *Config {
	c.Logger = l
	return c
}

// resolved returns a copy of c with defaults filled in and paths made absolute.
func (c *Config) resolved() (*Config, error) {
	r := *c
	if r.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		r.Root = wd
	}
	root, err := filepath.Abs(r.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", r.Root, err)
	}
	r.Root = root

	if r.AppName == "" {
		r.AppName = DefaultAppName
	}
	if r.AppName != filepath.Base(r.AppName) || r.AppName == "." || r.AppName == ".." {
		return nil, fmt.Errorf("app name %q must not contain path separators", r.AppName)
	}
	if r.BundleID == "" {
		r.BundleID = DefaultBundleID
	}
	if r.Compiler == "" {
		r.Compiler = compile.DefaultCompiler
	}
	if r.SourceDir == "" {
		r.SourceDir = DefaultSourceDir
	}
	if !filepath.IsAbs(r.SourceDir) {
		r.SourceDir = filepath.Join(r.Root, r.SourceDir)
	}
	if r.Sources == nil {
		r.Sources = slices.Clone(compile.DefaultSources)
	}
	if r.Frameworks == nil {
		r.Frameworks = slices.Clone(compile.DefaultFrameworks)
	}

	if r.Assets == nil {
		r.Assets = assets.Defaults(r.Root, r.SourceDir)
	} else {
		list := make([]Asset, len(r.Assets))
		for i, a := range r.Assets {
			if !filepath.IsAbs(a.Source) {
				a.Source = filepath.Join(r.Root, a.Source)
			}
			list[i] = a
		}
		r.Assets = list
	}

	if r.Out == nil {
		r.Out = os.Stdout
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.DiscardHandler)
	}
	return &r, nil
}
