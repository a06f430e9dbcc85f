package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.GetRoot() != "." {
		t.Errorf("GetRoot() = %q", cfg.GetRoot())
	}
	if cfg.GetHeaderFile() != "headers.json" {
		t.Errorf("GetHeaderFile() = %q", cfg.GetHeaderFile())
	}
	if !cfg.GetInterpolateParams() {
		t.Error("params interpolation should default to on")
	}
	if cfg.GetTimeout() != 30*time.Second {
		t.Errorf("GetTimeout() = %v", cfg.GetTimeout())
	}
	if !cfg.GetFollowRedirects() {
		t.Error("follow redirects should default to on")
	}
	if cfg.GetMaxRedirects() != 10 {
		t.Errorf("GetMaxRedirects() = %d", cfg.GetMaxRedirects())
	}
	if !cfg.GetValidateSSL() {
		t.Error("TLS validation should default to on")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kuiper.yaml")
	content := `
root: requests
headerFile: shared.json
interpolateParams: false
timeout: 5s
validateSSL: false
headers:
  user-agent: kuiper-test
historyFile: history.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.GetRoot() != "requests" {
		t.Errorf("GetRoot() = %q", cfg.GetRoot())
	}
	if cfg.GetHeaderFile() != "shared.json" {
		t.Errorf("GetHeaderFile() = %q", cfg.GetHeaderFile())
	}
	if cfg.GetInterpolateParams() {
		t.Error("params interpolation should be off")
	}
	if cfg.GetTimeout() != 5*time.Second {
		t.Errorf("GetTimeout() = %v", cfg.GetTimeout())
	}
	if cfg.GetValidateSSL() {
		t.Error("TLS validation should be off")
	}
	if cfg.Headers["user-agent"] != "kuiper-test" {
		t.Errorf("Headers = %v", cfg.Headers)
	}
	if cfg.HistoryFile != "history.db" {
		t.Errorf("HistoryFile = %q", cfg.HistoryFile)
	}
}

func TestLoadConfigMissingCandidates(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("missing config files must yield defaults, got %v", err)
	}
	if cfg.GetRoot() != DefaultRoot {
		t.Errorf("GetRoot() = %q", cfg.GetRoot())
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kuiper.yaml")
	if err := os.WriteFile(path, []byte("root: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
