// Command mkapp packages NookPlayer into a macOS application bundle.
//
// Run with no arguments from the project directory to compile
// NookPlayer/NookPlayer.swift and NookPlayer/ContentView.swift with swiftc
// and produce NookPlayer.app next to them.
//
// Exit status is 1 if the compiler fails or any other step fails, and 2
// for invalid flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/nookplayer/appbundle"
	"github.com/nookplayer/appbundle/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	root             string
	name             string
	bundleID         string
	configPath       string
	compiler         string
	cleanupOnFailure bool
	timeout          time.Duration
	verify           string
	verbose          bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("mkapp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.root, "root", "", "project directory (default: current directory)")
	fs.StringVar(&o.name, "name", appbundle.DefaultAppName, "application name")
	fs.StringVar(&o.bundleID, "bundle-id", appbundle.DefaultBundleID, "bundle identifier")
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.compiler, "compiler", "swiftc", "Swift compiler binary")
	fs.BoolVar(&o.cleanupOnFailure, "cleanup-on-failure", false, "remove the partial bundle if a step fails")
	fs.DurationVar(&o.timeout, "timeout", 0, "compile timeout (0 waits indefinitely)")
	fs.StringVar(&o.verify, "verify", "", "validate an existing bundle and exit")
	fs.BoolVar(&o.verbose, "v", false, "verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return &o, fs, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "mkapp: %v\n", err)
		return 2
	}

	logger, closer := logging.NewFromEnv(stderr, o.verbose)
	defer closer.Close()

	if o.verify != "" {
		m, err := appbundle.Verify(o.verify)
		if err != nil {
			fmt.Fprintf(stderr, "mkapp: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "✓ %s is a valid bundle (%s, executable %s)\n", o.verify, m.Identifier, m.Executable)
		return 0
	}

	cfg, err := buildConfig(o, fs)
	if err != nil {
		fmt.Fprintf(stderr, "mkapp: %v\n", err)
		return 1
	}
	cfg.WithOutput(stdout).WithLogger(logger)

	if _, err := appbundle.Build(ctx, cfg); err != nil {
		if cerr, ok := appbundle.AsCompileError(err); ok {
			fmt.Fprintf(stdout, "✗ Compile failed: %s\n", compileOutput(cerr))
			logger.Debug("compile failed", "error", err)
			return 1
		}
		fmt.Fprintf(stderr, "mkapp: %v\n", err)
		return 1
	}
	return 0
}

// buildConfig layers defaults, the optional config file and explicitly set flags.
func buildConfig(o *options, fs *flag.FlagSet) (*appbundle.Config, error) {
	cfg := appbundle.DefaultConfig()
	if o.configPath != "" {
		loaded, err := appbundle.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			cfg.WithRoot(o.root)
		case "name":
			cfg.WithAppName(o.name)
		case "bundle-id":
			cfg.WithBundleID(o.bundleID)
		case "compiler":
			cfg.WithCompiler(o.compiler)
		case "cleanup-on-failure":
			cfg.CleanupOnFailure = o.cleanupOnFailure
		case "timeout":
			cfg.WithCompileTimeout(o.timeout)
		}
	})
	return cfg, nil
}

// compileOutput returns what the compiler printed, or the error itself
// when it never produced any output.
func compileOutput(cerr *appbundle.CompileError) string {
	if cerr.Stderr != "" {
		return cerr.Stderr
	}
	return cerr.Error()
}
