package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalConfigPath(t *testing.T) {
	// Save and restore XDG_CONFIG_HOME
	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	// Test with custom XDG_CONFIG_HOME
	os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := GlobalConfigPath()
	want := "/custom/config/scholium/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}

	// Test with empty XDG_CONFIG_HOME (should use ~/.config)
	os.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = GlobalConfigPath()
	want = filepath.Join(home, ".config", "scholium", "config.yml")
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	// Save and restore XDG_CONFIG_HOME
	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	// Point to a non-existent directory
	tmpDir := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobalConfig() returned nil")
	}

	// Should return empty config
	if cfg.LibraryPath != "" {
		t.Errorf("LibraryPath = %q, want empty", cfg.LibraryPath)
	}
}

func writeGlobalConfig(t *testing.T, yml string) {
	t.Helper()

	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "scholium")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	orig := os.Getenv("XDG_CONFIG_HOME")
	t.Cleanup(func() { os.Setenv("XDG_CONFIG_HOME", orig) })
	os.Setenv("XDG_CONFIG_HOME", tmpDir)
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	writeGlobalConfig(t, `
library_path: ~/papers
openai_api_key: sk-test
ollama_url: http://localhost:11434
s2_api_key: test-s2-key
crossref_mailto: someone@example.org
`)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	// Check tilde expansion
	home, _ := os.UserHomeDir()
	wantPath := filepath.Join(home, "papers")
	if cfg.LibraryPath != wantPath {
		t.Errorf("LibraryPath = %q, want %q", cfg.LibraryPath, wantPath)
	}

	if cfg.OpenAIAPIKey != "sk-test" {
		t.Errorf("OpenAIAPIKey = %q, want sk-test", cfg.OpenAIAPIKey)
	}
	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.S2APIKey != "test-s2-key" {
		t.Errorf("S2APIKey = %q, want test-s2-key", cfg.S2APIKey)
	}
	if cfg.CrossRefMailto != "someone@example.org" {
		t.Errorf("CrossRefMailto = %q", cfg.CrossRefMailto)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	writeGlobalConfig(t, "library_path: [unterminated")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() should return error for invalid YAML")
	}
}

func TestLoadGlobalConfig_Cached(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	writeGlobalConfig(t, "s2_api_key: first")

	cfg1, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	// Second load should hit the cache, not the file
	cfg2, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg1 != cfg2 {
		t.Error("second load should return the cached config")
	}
}

func TestGetOpenAIAPIKey_EnvOverrides(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	writeGlobalConfig(t, "openai_api_key: from-config")

	orig := os.Getenv("OPENAI_API_KEY")
	defer os.Setenv("OPENAI_API_KEY", orig)

	os.Setenv("OPENAI_API_KEY", "from-env")
	if got := GetOpenAIAPIKey(); got != "from-env" {
		t.Errorf("GetOpenAIAPIKey() = %q, want from-env", got)
	}

	os.Setenv("OPENAI_API_KEY", "")
	if got := GetOpenAIAPIKey(); got != "from-config" {
		t.Errorf("GetOpenAIAPIKey() = %q, want from-config", got)
	}
}

func TestValidateLibraryPath(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	// Not configured
	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := ValidateLibraryPath()
	if !errors.Is(err, ErrLibraryPathNotConfigured) {
		t.Errorf("error = %v, want ErrLibraryPathNotConfigured", err)
	}

	// Configured but missing
	ResetGlobalConfigCache()
	writeGlobalConfig(t, "library_path: /nonexistent/scholium-lib")
	_, err = ValidateLibraryPath()
	if !errors.Is(err, ErrLibraryPathNotExist) {
		t.Errorf("error = %v, want ErrLibraryPathNotExist", err)
	}

	// Configured and present
	ResetGlobalConfigCache()
	dir := t.TempDir()
	writeGlobalConfig(t, "library_path: "+dir)
	path, err := ValidateLibraryPath()
	if err != nil {
		t.Fatalf("ValidateLibraryPath() error = %v", err)
	}
	if path != dir {
		t.Errorf("path = %q, want %q", path, dir)
	}
}
