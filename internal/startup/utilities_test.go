package startup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue bool
		want         bool
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_BOOL_UNSET",
			defaultValue: true,
			want:         true,
			setEnv:       false,
		},
		{
			name:         "Returns default false when env var not set",
			key:          "TEST_BOOL_UNSET2",
			defaultValue: false,
			want:         false,
			setEnv:       false,
		},
		{
			name:         "Returns true when env var is 'true'",
			key:          "TEST_BOOL_TRUE",
			envValue:     "true",
			defaultValue: false,
			want:         true,
			setEnv:       true,
		},
		{
			name:         "Returns false when env var is 'false'",
			key:          "TEST_BOOL_FALSE",
			envValue:     "false",
			defaultValue: true,
			want:         false,
			setEnv:       true,
		},
		{
			name:         "Returns true when env var is '1'",
			key:          "TEST_BOOL_ONE",
			envValue:     "1",
			defaultValue: false,
			want:         true,
			setEnv:       true,
		},
		{
			name:         "Returns false when env var is '0'",
			key:          "TEST_BOOL_ZERO",
			envValue:     "0",
			defaultValue: true,
			want:         false,
			setEnv:       true,
		},
		{
			name:         "Returns default for invalid value",
			key:          "TEST_BOOL_INVALID",
			envValue:     "maybe",
			defaultValue: true,
			want:         true,
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvBool(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue int
		want         int
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_INT_UNSET",
			defaultValue: 4,
			want:         4,
			setEnv:       false,
		},
		{
			name:         "Returns parsed value when set",
			key:          "TEST_INT_SET",
			envValue:     "8",
			defaultValue: 4,
			want:         8,
			setEnv:       true,
		},
		{
			name:         "Returns default for invalid value",
			key:          "TEST_INT_INVALID",
			envValue:     "many",
			defaultValue: 4,
			want:         4,
			setEnv:       true,
		},
		{
			name:         "Parses negative values",
			key:          "TEST_INT_NEGATIVE",
			envValue:     "-1",
			defaultValue: 4,
			want:         -1,
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvInt(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvInt(%q, %d) = %d, want %d", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestSetupOptionalDir(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "previews")

	if !setupOptionalDir(target, "preview cache") {
		t.Error("Expected writable directory to be enabled")
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}

	// The write probe must clean up after itself
	if _, err := os.Stat(filepath.Join(target, ".write-test")); !os.IsNotExist(err) {
		t.Error("write test file was left behind")
	}
}

func TestSetupOptionalDirNotCreatable(t *testing.T) {
	tempDir := t.TempDir()

	// A file where the directory should go blocks MkdirAll
	blocker := filepath.Join(tempDir, "blocked")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("failed to create blocker file: %v", err)
	}

	if setupOptionalDir(filepath.Join(blocker, "previews"), "preview cache") {
		t.Error("Expected uncreatable directory to be disabled")
	}
}

func TestEnabledString(t *testing.T) {
	if got := enabledString(true); got != "ENABLED" {
		t.Errorf("enabledString(true) = %q", got)
	}
	if got := enabledString(false); got != "DISABLED" {
		t.Errorf("enabledString(false) = %q", got)
	}
}

func TestOrDefault(t *testing.T) {
	if got := orDefault("", "(default)"); got != "(default)" {
		t.Errorf("orDefault empty = %q", got)
	}
	if got := orDefault("/tmp/state", "(default)"); got != "/tmp/state" {
		t.Errorf("orDefault set = %q", got)
	}
}

func TestWorkersString(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "auto"},
		{-3, "auto"},
		{1, "1"},
		{16, "16"},
	}

	for _, tt := range tests {
		if got := workersString(tt.n); got != tt.want {
			t.Errorf("workersString(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDefaultCacheDir(t *testing.T) {
	dir := defaultCacheDir()
	if dir == "" {
		t.Fatal("defaultCacheDir returned empty path")
	}
	if filepath.Base(dir) != "media-sorter" && filepath.Base(dir) != "media-sorter-cache" {
		t.Errorf("unexpected cache dir name: %s", dir)
	}
}

func TestCheckToolMissing(t *testing.T) {
	if err := checkTool("definitely-not-a-real-binary-xyz"); err == nil {
		t.Error("Expected error for missing binary")
	}
}

func TestBuildInfoStruct(t *testing.T) {
	info := BuildInfo{
		Version:   "1.2.3",
		Commit:    "abc123",
		BuildTime: "2025-01-01T00:00:00Z",
		GoVersion: "go1.25",
		OS:        "linux",
		Arch:      "amd64",
	}

	if info.Version != "1.2.3" {
		t.Errorf("Version = %q", info.Version)
	}
	if info.Commit != "abc123" {
		t.Errorf("Commit = %q", info.Commit)
	}
}
