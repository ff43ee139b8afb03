package spellcheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/danmuck/spellctl/internal/cargo"
	logs "github.com/danmuck/spellctl/internal/logging"
	"github.com/danmuck/spellctl/internal/tools"
)

var ErrInvalidVersion = errors.New("spellcheck: invalid tool version")

// crateManager is the slice of the cargo client the service drives.
type crateManager interface {
	Installed(name string, version *semver.Version) (bool, int32, error)
	Install(name string, version *semver.Version) (int32, error)
}

// Installer-runner configuration pinning the exact tool release.
type ServiceConfig struct {
	Package  string
	Binary   string
	Version  string
	Target   string
	CargoBin string
}

// Installer-runner defaults for the typos spell checker.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Package: "typos-cli",
		Binary:  "typos",
		Version: "1.24.6",
	}
}

// Service runs the install-then-scan lifecycle as a single sequential pass.
type Service struct {
	cfg     ServiceConfig
	manager crateManager
	runner  tools.CommandRunner
}

func NewService() *Service {
	return NewServiceWithConfig(DefaultServiceConfig())
}

func NewServiceWithConfig(cfg ServiceConfig) *Service {
	runner := tools.ExecRunner{}
	return &Service{
		cfg:     cfg,
		manager: cargo.NewClient(cargo.ClientConfig{CargoBin: cfg.CargoBin, Runner: runner}),
		runner:  runner,
	}
}

// Run performs the full sequence: presence check, conditional install, tool
// invocation. The first failing step short-circuits and its exit code becomes
// the process exit code; a tool run that exits non-zero is the normal
// findings path and returns its code with a nil error.
func (s *Service) Run() (int, error) {
	if code, err := s.EnsureInstalled(); err != nil {
		return int(code), err
	}
	code, err := s.RunTool()
	return int(code), err
}

// EnsureInstalled checks cargo's install registry for the exact pinned
// version and installs it when absent. Exactly zero install invocations
// happen when the version is present, exactly one when it is not.
func (s *Service) EnsureInstalled() (int32, error) {
	version, err := s.requiredVersion()
	if err != nil {
		return 2, err
	}

	installed, code, err := s.manager.Installed(s.cfg.Package, version)
	if err != nil {
		return failCode(code), err
	}
	if installed {
		logs.Infof("spellcheck.ensure crate=%s version=%s already installed", s.cfg.Package, version)
		return 0, nil
	}

	logs.Infof("spellcheck.ensure crate=%s version=%s installing", s.cfg.Package, version)
	code, err = s.manager.Install(s.cfg.Package, version)
	if err != nil {
		return failCode(code), err
	}
	return 0, nil
}

// RunTool invokes the tool with stdio attached, passing the target path as
// its sole argument. An empty target yields no argument at all, matching the
// tool's own current-directory convention.
func (s *Service) RunTool() (int32, error) {
	var args []string
	if s.cfg.Target != "" {
		args = append(args, s.cfg.Target)
	}

	logs.Debugf("spellcheck.run exec cmd=%s args=%q", s.cfg.Binary, strings.Join(args, " "))
	code, err := s.runner.RunAttached(s.cfg.Binary, args...)
	if err != nil {
		return failCode(code), fmt.Errorf("run %s: %w", s.cfg.Binary, err)
	}
	return code, nil
}

func (s *Service) requiredVersion() (*semver.Version, error) {
	version, err := semver.StrictNewVersion(strings.TrimSpace(s.cfg.Version))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s.cfg.Version, err)
	}
	return version, nil
}

// failCode guards the exit contract: an errored step never reports success.
func failCode(code int32) int32 {
	if code == 0 {
		return 1
	}
	return code
}
