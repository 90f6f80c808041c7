package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{"info level", false, false},
		{"debug level", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.debug)
			logger.Debug("compiler args", "n", 3)
			logger.Info("bundle ready")

			out := buf.String()
			if strings.Contains(out, "compiler args") != tt.wantDebug {
				t.Errorf("debug message presence = %v, want %v:\n%s", !tt.wantDebug, tt.wantDebug, out)
			}
			if !strings.Contains(out, "bundle ready") {
				t.Errorf("info message missing:\n%s", out)
			}
			if !strings.Contains(out, "component=appbundle") {
				t.Errorf("component attribute missing:\n%s", out)
			}
			if strings.Contains(out, "time=") {
				t.Errorf("timestamps should be omitted:\n%s", out)
			}
		})
	}
}

func TestNewFromEnvDebug(t *testing.T) {
	t.Setenv(EnvDebug, "1")
	t.Setenv(EnvLogDest, "")
	t.Setenv(EnvLogJSON, "")

	var buf bytes.Buffer
	logger, closer := NewFromEnv(&buf, false)
	defer closer.Close()

	logger.Debug("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("debug output missing with %s=1: %q", EnvDebug, buf.String())
	}
}

func TestNewFromEnvFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "appbundle.log")
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvLogDest, "file:"+logPath)
	t.Setenv(EnvLogJSON, "")

	var stderr bytes.Buffer
	logger, closer := NewFromEnv(&stderr, false)
	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	if stderr.Len() != 0 {
		t.Errorf("stderr should be empty, got %q", stderr.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file content = %q", data)
	}
}

func TestNewFromEnvBothJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "appbundle.log")
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvLogDest, "both:"+logPath)
	t.Setenv(EnvLogJSON, "1")

	var stderr bytes.Buffer
	logger, closer := NewFromEnv(&stderr, false)
	logger.Info("twice")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(stderr.String(), `"msg":"twice"`) {
		t.Errorf("stderr = %q, want JSON record", stderr.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"twice"`) {
		t.Errorf("log file = %q, want JSON record", data)
	}
}

func TestNewFromEnvBadFile(t *testing.T) {
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvLogDest, "file:"+filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	t.Setenv(EnvLogJSON, "")

	var stderr bytes.Buffer
	logger, closer := NewFromEnv(&stderr, false)
	defer closer.Close()
	logger.Info("fallback")

	out := stderr.String()
	if !strings.Contains(out, "failed to open log file") || !strings.Contains(out, "fallback") {
		t.Errorf("stderr = %q, want warning and fallback output", out)
	}
}
