package main

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func TestLoadServiceConfigDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	content := `
version = "1.30.0"
package = "typos-cli"
cargo = "/opt/rust/bin/cargo"
target = "./docs"
	`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Version != "1.30.0" {
		t.Fatalf("unexpected version: %q", cfg.Version)
	}
	if cfg.Package != "typos-cli" {
		t.Fatalf("unexpected package: %q", cfg.Package)
	}
	if cfg.Binary != "typos" {
		t.Fatalf("expected default binary, got %q", cfg.Binary)
	}
	if cfg.CargoBin != "/opt/rust/bin/cargo" {
		t.Fatalf("unexpected cargo path: %q", cfg.CargoBin)
	}
	if cfg.Target != "./docs" {
		t.Fatalf("unexpected target: %q", cfg.Target)
	}
}

func TestLoadServiceConfigIgnoresBlankValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`
version = "  "
binary = ""
`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Version != "1.24.6" {
		t.Fatalf("blank version must keep default, got %q", cfg.Version)
	}
	if cfg.Binary != "typos" {
		t.Fatalf("blank binary must keep default, got %q", cfg.Binary)
	}
}

func TestLoadServiceConfigRejectsMissingFile(t *testing.T) {
	if _, err := loadServiceConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected load error for missing file")
	}
}

func TestResolveServiceConfigDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(envConfigPath, "")

	cfg, err := resolveServiceConfig(nil)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.Package != "typos-cli" || cfg.Binary != "typos" || cfg.Version != "1.24.6" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Target != "" {
		t.Fatalf("expected empty default target, got %q", cfg.Target)
	}
}

func TestResolveServiceConfigPositionalTargetOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spellctl.toml")
	if err := os.WriteFile(path, []byte(`target = "./docs"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(envConfigPath, path)

	cfg, err := resolveServiceConfig([]string{"./src"})
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.Target != "./src" {
		t.Fatalf("positional target must win, got %q", cfg.Target)
	}
}

func TestResolveServiceConfigDiscoversWorkingDirFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(envConfigPath, "")
	if err := os.WriteFile(defaultConfigFile, []byte(`version = "1.30.0"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := resolveServiceConfig(nil)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.Version != "1.30.0" {
		t.Fatalf("working-dir config not applied, got %q", cfg.Version)
	}
}

func TestResolveServiceConfigRejectsExtraArguments(t *testing.T) {
	if _, err := resolveServiceConfig([]string{"./src", "./docs"}); err == nil {
		t.Fatalf("expected usage error for extra arguments")
	}
}
