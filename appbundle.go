package appbundle

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/nookplayer/appbundle/internal/assets"
	"github.com/nookplayer/appbundle/internal/bundle"
	"github.com/nookplayer/appbundle/internal/compile"
	"github.com/nookplayer/appbundle/internal/plist"
)

// Manifest is the decoded Info.plist of a bundle.
type Manifest = plist.Info

// Result describes a finished build.
type Result struct {
	// Path is the bundle directory, <Root>/<AppName>.app.
	Path       string
	Executable string
	InfoPlist  string

	// Replaced is true if a previous bundle was removed first.
	Replaced bool

	// Copied lists the destination paths of copied assets.
	Copied []string
	// Skipped lists the names of assets whose source was missing.
	Skipped []string
}

// Build packages the application described by cfg. A nil cfg means
// DefaultConfig. Steps run strictly in order and the first failure stops
// the build; compiler failures wrap a *CompileError.
func Build(ctx context.Context, cfg *Config) (res *Result, err error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c, err := cfg.resolved()
	if err != nil {
		return nil, &Error{Op: "resolve config", Err: err}
	}
	log := c.Logger
	out := newProgress(c.Out)
	layout := bundle.NewLayout(c.Root, c.AppName)
	log.Debug("building bundle", "path", layout.Path, "root", c.Root, "source_dir", c.SourceDir)

	replaced, err := layout.Clean()
	if err != nil {
		return nil, &Error{Op: "clean bundle", Err: err, Help: "check that nothing holds files open inside " + layout.Path}
	}
	if replaced {
		log.Debug("removed existing bundle", "path", layout.Path)
	}

	if c.CleanupOnFailure {
		defer func() {
			if err == nil {
				return
			}
			if _, rmErr := layout.Clean(); rmErr != nil {
				log.Warn("failed to remove partial bundle", "path", layout.Path, "error", rmErr)
				return
			}
			log.Debug("removed partial bundle", "path", layout.Path)
		}()
	}

	if err := layout.CreateSkeleton(); err != nil {
		return nil, &Error{Op: "create skeleton", Err: err}
	}

	out.step("Compiling Swift sources...")
	compiler := &compile.Compiler{
		Bin:        c.Compiler,
		Dir:        c.SourceDir,
		Sources:    c.Sources,
		Frameworks: c.Frameworks,
		Timeout:    c.CompileTimeout,
		Logger:     log,
	}
	if err := compiler.Run(ctx, layout.Executable); err != nil {
		return nil, &Error{Op: "compile", Err: err, Help: compileHelp(c, err)}
	}
	out.done("Compiled successfully")

	info := plist.NewInfoPlistConfig(c.AppName, c.BundleID)
	if err := plist.WriteInfoPlist(layout.InfoPlist, info); err != nil {
		return nil, &Error{Op: "write manifest", Err: err}
	}
	out.done("Created Info.plist")

	copier := &assets.Copier{
		Resources: layout.Resources,
		Logger:    log,
		OnCopy: func(cp assets.Copied) {
			if cp.Asset.Kind == assets.KindFile {
				out.done("Copied %s to %s", cp.Asset.Name, cp.Path)
				return
			}
			out.done("Copied %s", cp.Asset.Name)
		},
	}
	report, err := copier.CopyAll(c.Assets)
	if err != nil {
		return nil, &Error{Op: "copy asset", Err: err}
	}

	res = &Result{
		Path:       layout.Path,
		Executable: layout.Executable,
		InfoPlist:  layout.InfoPlist,
		Replaced:   replaced,
	}
	for _, cp := range report.Copied {
		res.Copied = append(res.Copied, cp.Path)
	}
	for _, a := range report.Skipped {
		res.Skipped = append(res.Skipped, a.Name)
	}

	out.line("")
	out.line("App bundle created: %s", layout.Path)
	out.line("Drag it into the Applications folder to install, or double-click it to run.")
	log.Debug("bundle complete", "copied", len(res.Copied), "skipped", len(res.Skipped))
	return res, nil
}

// Verify checks the bundle at path: directory skeleton, a decodable
// Info.plist, and the executable named by CFBundleExecutable.
func Verify(path string) (*Manifest, error) {
	l := bundle.LayoutFromPath(path)
	if info, err := plist.ReadInfo(l.InfoPlist); err == nil && info.Executable != "" {
		l = l.WithExecutable(info.Executable)
	}
	info, err := bundle.Validate(l)
	if err != nil {
		help := ""
		if !strings.HasSuffix(l.Path, bundle.Extension) {
			help = "bundle paths normally end in " + bundle.Extension
		}
		return nil, &Error{Op: "validate bundle", Err: err, Help: help}
	}
	return info, nil
}

func compileHelp(c *Config, err error) string {
	cerr, ok := AsCompileError(err)
	if !ok || !cerr.NotFound() {
		return ""
	}
	return fmt.Sprintf("is %s installed and on PATH? Xcode command line tools provide it", c.Compiler)
}

// progress prints the human-readable status lines of a build.
type progress struct {
	w       io.Writer
	colored bool
}

// newProgress colors status glyphs only when writing to an interactive stdout.
func newProgress(w io.Writer) progress {
	return progress{w: w, colored: w == io.Writer(os.Stdout) && !color.NoColor}
}

func (p progress) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p progress) glyph(g string, attr color.Attribute) string {
	if !p.colored {
		return g
	}
	return color.New(attr).Sprint(g)
}

func (p progress) step(format string, args ...any) {
	p.line(p.glyph("→", color.FgCyan)+" "+format, args...)
}

func (p progress) done(format string, args ...any) {
	p.line(p.glyph("✓", color.FgGreen)+" "+format, args...)
}
