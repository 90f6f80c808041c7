package plist

import (
	"fmt"
	"os"

	howett "howett.net/plist"

	"github.com/nookplayer/appbundle/internal/system"
)

// Fixed manifest values.
const (
	DefaultIconFile       = "AppIcon"
	DefaultPackageType    = "APPL"
	DefaultPrincipalClass = "NSApplication"
)

// InfoPlistConfig holds configuration for generating Info.plist files.
type InfoPlistConfig struct {
	AppName  string
	ExecName string
	BundleID string

	// IconFile, PackageType and PrincipalClass default to the constants above.
	IconFile       string
	PackageType    string
	PrincipalClass string

	HighResolutionCapable bool
	UIElement             bool
}

// NewInfoPlistConfig returns the manifest settings for a regular
// high-resolution, dock-visible application.
func NewInfoPlistConfig(appName, bundleID string) InfoPlistConfig {
	return InfoPlistConfig{
		AppName:               appName,
		ExecName:              appName,
		BundleID:              bundleID,
		IconFile:              DefaultIconFile,
		PackageType:           DefaultPackageType,
		PrincipalClass:        DefaultPrincipalClass,
		HighResolutionCapable: true,
		UIElement:             false,
	}
}

// Info is the decoded form of an Info.plist.
type Info struct {
	Executable            string `plist:"CFBundleExecutable"`
	IconFile              string `plist:"CFBundleIconFile"`
	Identifier            string `plist:"CFBundleIdentifier"`
	Name                  string `plist:"CFBundleName"`
	PackageType           string `plist:"CFBundlePackageType"`
	PrincipalClass        string `plist:"NSPrincipalClass"`
	HighResolutionCapable bool   `plist:"NSHighResolutionCapable"`
	UIElement             bool   `plist:"LSUIElement"`
}

// WriteInfoPlist renders the manifest and writes it to path.
func WriteInfoPlist(path string, cfg InfoPlistConfig) error {
	content, err := RenderInfoPlist(cfg)
	if err != nil {
		return err
	}
	if err := system.SafeWriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write Info.plist: %w", err)
	}
	return nil
}

// RenderInfoPlist returns the manifest bytes for cfg.
func RenderInfoPlist(cfg InfoPlistConfig) ([]byte, error) {
	cfg = withDefaults(cfg)
	if err := validateInfoPlistConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid info plist config: %w", err)
	}
	content, err := render(cfg)
	if err != nil {
		return nil, fmt.Errorf("render Info.plist: %w", err)
	}
	return content, nil
}

// ReadInfo decodes the Info.plist at path.
func ReadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open Info.plist: %w", err)
	}
	defer func() { _ = f.Close() }()

	var info Info
	if err := howett.NewDecoder(f).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &info, nil
}

func withDefaults(cfg InfoPlistConfig) InfoPlistConfig {
	if cfg.ExecName == "" {
		cfg.ExecName = cfg.AppName
	}
	if cfg.IconFile == "" {
		cfg.IconFile = DefaultIconFile
	}
	if cfg.PackageType == "" {
		cfg.PackageType = DefaultPackageType
	}
	if cfg.PrincipalClass == "" {
		cfg.PrincipalClass = DefaultPrincipalClass
	}
	return cfg
}

// validateInfoPlistConfig validates the configuration for Info.plist generation.
func validateInfoPlistConfig(cfg InfoPlistConfig) error {
	if cfg.AppName == "" {
		return fmt.Errorf("app name is required")
	}
	if cfg.BundleID == "" {
		return fmt.Errorf("bundle ID is required")
	}
	if cfg.ExecName == "" {
		return fmt.Errorf("executable name is required")
	}
	return nil
}
