package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/spellctl/internal/spellcheck"
)

const (
	envConfigPath     = "SPELLCTL_CONFIG"
	defaultConfigFile = "spellctl.toml"
)

type fileConfig struct {
	Version string `toml:"version"`
	Package string `toml:"package"`
	Binary  string `toml:"binary"`
	Cargo   string `toml:"cargo"`
	Target  string `toml:"target"`
}

// resolveServiceConfig layers defaults, the optional config file, and the
// optional positional target argument, in that order.
func resolveServiceConfig(args []string) (spellcheck.ServiceConfig, error) {
	if len(args) > 1 {
		return spellcheck.ServiceConfig{}, errors.New("usage: spellctl [target-path]")
	}

	cfg := spellcheck.DefaultServiceConfig()

	path, found, err := discoverConfigPath()
	if err != nil {
		return spellcheck.ServiceConfig{}, err
	}
	if found {
		cfg, err = loadServiceConfig(path)
		if err != nil {
			return spellcheck.ServiceConfig{}, err
		}
	}

	if len(args) == 1 {
		cfg.Target = args[0]
	}
	return cfg, nil
}

func loadServiceConfig(path string) (spellcheck.ServiceConfig, error) {
	cfg := spellcheck.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return spellcheck.ServiceConfig{}, fmt.Errorf("load spellctl config: %w", err)
	}

	if meta.IsDefined("version") {
		if v := strings.TrimSpace(raw.Version); v != "" {
			cfg.Version = v
		}
	}

	if meta.IsDefined("package") {
		if v := strings.TrimSpace(raw.Package); v != "" {
			cfg.Package = v
		}
	}

	if meta.IsDefined("binary") {
		if v := strings.TrimSpace(raw.Binary); v != "" {
			cfg.Binary = v
		}
	}

	if meta.IsDefined("cargo") {
		if v := strings.TrimSpace(raw.Cargo); v != "" {
			cfg.CargoBin = v
		}
	}

	if meta.IsDefined("target") {
		cfg.Target = strings.TrimSpace(raw.Target)
	}

	return cfg, nil
}

func discoverConfigPath() (string, bool, error) {
	if path := strings.TrimSpace(os.Getenv(envConfigPath)); path != "" {
		return path, true, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, true, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, fmt.Errorf("stat %s: %w", defaultConfigFile, err)
	}
	return "", false, nil
}
