package plist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteInfoPlist(t *testing.T) {
	tempDir := t.TempDir()
	plistPath := filepath.Join(tempDir, "Info.plist")

	cfg := NewInfoPlistConfig("NookPlayer", "com.nookplayer.app")
	if err := WriteInfoPlist(plistPath, cfg); err != nil {
		t.Fatalf("WriteInfoPlist failed: %v", err)
	}

	content, err := os.ReadFile(plistPath)
	if err != nil {
		t.Fatalf("Failed to read plist file: %v", err)
	}
	contentStr := string(content)

	requiredElements := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<!DOCTYPE plist`,
		`<plist version="1.0">`,
		`<dict>`,
		"<key>CFBundleExecutable</key>\n\t<string>NookPlayer</string>",
		"<key>CFBundleIconFile</key>\n\t<string>AppIcon</string>",
		"<key>CFBundleIdentifier</key>\n\t<string>com.nookplayer.app</string>",
		"<key>CFBundleName</key>\n\t<string>NookPlayer</string>",
		"<key>CFBundlePackageType</key>\n\t<string>APPL</string>",
		"<key>NSPrincipalClass</key>\n\t<string>NSApplication</string>",
		"<key>NSHighResolutionCapable</key>\n\t<true/>",
		"<key>LSUIElement</key>\n\t<false/>",
		`</dict>`,
		`</plist>`,
	}

	for _, element := range requiredElements {
		if !strings.Contains(contentStr, element) {
			t.Errorf("Missing required element: %s", element)
		}
	}
}

func TestRenderInfoPlistDoesNotEscape(t *testing.T) {
	cfg := NewInfoPlistConfig("Tom & Jerry", "com.example.tj")
	content, err := RenderInfoPlist(cfg)
	if err != nil {
		t.Fatalf("RenderInfoPlist failed: %v", err)
	}
	if !strings.Contains(string(content), "<string>Tom & Jerry</string>") {
		t.Errorf("app name was altered during rendering:\n%s", content)
	}
}

func TestRenderInfoPlistDefaults(t *testing.T) {
	content, err := RenderInfoPlist(InfoPlistConfig{
		AppName:  "Player",
		BundleID: "com.example.player",
	})
	if err != nil {
		t.Fatalf("RenderInfoPlist failed: %v", err)
	}
	s := string(content)
	for _, want := range []string{
		"<key>CFBundleExecutable</key>\n\t<string>Player</string>",
		"<string>AppIcon</string>",
		"<string>APPL</string>",
		"<string>NSApplication</string>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderInfoPlistDeterministic(t *testing.T) {
	cfg := NewInfoPlistConfig("NookPlayer", "com.nookplayer.app")
	a, err := RenderInfoPlist(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderInfoPlist(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("rendering the same config twice produced different output")
	}
}

func TestValidateInfoPlistConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       InfoPlistConfig
		shouldErr bool
		errorMsg  string
	}{
		{
			name: "valid config",
			cfg:  NewInfoPlistConfig("TestApp", "com.example.testapp"),
		},
		{
			name:      "missing app name",
			cfg:       InfoPlistConfig{BundleID: "com.example.testapp", ExecName: "testapp"},
			shouldErr: true,
			errorMsg:  "app name is required",
		},
		{
			name:      "missing bundle ID",
			cfg:       InfoPlistConfig{AppName: "TestApp", ExecName: "testapp"},
			shouldErr: true,
			errorMsg:  "bundle ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInfoPlistConfig(withDefaults(tt.cfg))
			if tt.shouldErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("error = %v, want to contain %q", err, tt.errorMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWriteInfoPlistInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Info.plist")
	if err := WriteInfoPlist(path, InfoPlistConfig{}); err == nil {
		t.Fatal("expected error for empty config")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Info.plist should not be written for an invalid config")
	}
}

func TestReadInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Info.plist")
	if err := WriteInfoPlist(path, NewInfoPlistConfig("NookPlayer", "com.nookplayer.app")); err != nil {
		t.Fatal(err)
	}

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo failed: %v", err)
	}

	want := Info{
		Executable:            "NookPlayer",
		IconFile:              "AppIcon",
		Identifier:            "com.nookplayer.app",
		Name:                  "NookPlayer",
		PackageType:           "APPL",
		PrincipalClass:        "NSApplication",
		HighResolutionCapable: true,
		UIElement:             false,
	}
	if *info != want {
		t.Errorf("ReadInfo() = %+v, want %+v", *info, want)
	}
}

func TestReadInfoErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadInfo(filepath.Join(dir, "missing.plist")); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.plist")
	if err := os.WriteFile(garbage, []byte("{ unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadInfo(garbage); err == nil {
		t.Error("expected error for malformed plist")
	}
}
