package cargo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	logs "github.com/danmuck/spellctl/internal/logging"
	"github.com/danmuck/spellctl/internal/tools"
)

var (
	ErrCargoMissing = errors.New("cargo: cargo executable not found")
	ErrInvalidCrate = errors.New("cargo: invalid crate name")
)

// Installed crate entry reported by `cargo install --list`.
type InstalledCrate struct {
	Name     string
	Version  *semver.Version
	Binaries []string
}

// Cargo client configuration with optional binary path and runner injection.
type ClientConfig struct {
	CargoBin string
	Runner   tools.CommandRunner
}

// Client executes cargo registry queries and installs through a CommandRunner.
type Client struct {
	bin    string
	runner tools.CommandRunner
}

// Cargo client constructor with runner and binary-path defaults.
func NewClient(cfg ClientConfig) *Client {
	bin := strings.TrimSpace(cfg.CargoBin)
	if bin == "" {
		bin = "cargo"
	}
	runner := cfg.Runner
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return &Client{bin: bin, runner: runner}
}

// ListInstalled queries cargo's install registry and returns the parsed
// crate entries along with cargo's exit code on failure.
func (c *Client) ListInstalled() ([]InstalledCrate, int32, error) {
	stdout, stderr, exitCode, err := c.runner.Run(c.bin, "install", "--list")
	if err != nil {
		if exitCode == 127 {
			return nil, exitCode, fmt.Errorf("%w: %s", ErrCargoMissing, c.bin)
		}
		return nil, exitCode, fmt.Errorf(
			"cargo list command failed cmd=%s args=%q exit=%d stderr=%q: %w",
			c.bin,
			"install --list",
			exitCode,
			strings.TrimSpace(string(stderr)),
			err,
		)
	}
	return parseInstallList(stdout), 0, nil
}

// Installed reports whether the exact crate version is present in cargo's
// install registry. Matching is structured: exact name equality plus semver
// equality, never a substring scan of the listing text.
func (c *Client) Installed(name string, version *semver.Version) (bool, int32, error) {
	crate := strings.TrimSpace(name)
	if crate == "" {
		return false, 2, fmt.Errorf("%w: empty name", ErrInvalidCrate)
	}

	crates, exitCode, err := c.ListInstalled()
	if err != nil {
		return false, exitCode, err
	}
	for _, entry := range crates {
		if entry.Name != crate || entry.Version == nil {
			continue
		}
		if entry.Version.Equal(version) {
			return true, 0, nil
		}
	}
	return false, 0, nil
}

// Install runs `cargo install name@version` with the wrapper's stdio streams
// attached so cargo's own progress output reaches the terminal. Network
// bound; no retries, no fallback version.
func (c *Client) Install(name string, version *semver.Version) (int32, error) {
	crate := strings.TrimSpace(name)
	if crate == "" {
		return 2, fmt.Errorf("%w: empty name", ErrInvalidCrate)
	}

	spec := fmt.Sprintf("%s@%s", crate, version)
	logs.Infof("cargo.install exec cmd=%s args=%q", c.bin, "install "+spec)
	exitCode, err := c.runner.RunAttached(c.bin, "install", spec)
	if err != nil {
		if exitCode == 127 {
			return exitCode, fmt.Errorf("%w: %s", ErrCargoMissing, c.bin)
		}
		return exitCode, fmt.Errorf("cargo install failed crate=%s exit=%d: %w", spec, exitCode, err)
	}
	if exitCode != 0 {
		return exitCode, fmt.Errorf("cargo install failed crate=%s exit=%d", spec, exitCode)
	}
	return 0, nil
}

// parseInstallList parses `cargo install --list` output. Root lines name a
// crate ("name vX.Y.Z:" or "name vX.Y.Z (/local/path):"); indented lines are
// the binaries the preceding crate installed. Lines whose version token does
// not parse are skipped so a malformed entry can never satisfy an exact
// version check.
func parseInstallList(out []byte) []InstalledCrate {
	crates := make([]InstalledCrate, 0)
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if len(crates) == 0 {
				continue
			}
			last := &crates[len(crates)-1]
			last.Binaries = append(last.Binaries, strings.TrimSpace(line))
			continue
		}
		name, version, ok := parseCrateLine(line)
		if !ok {
			logs.Debugf("cargo.list skip line=%q", strings.TrimSpace(line))
			continue
		}
		crates = append(crates, InstalledCrate{Name: name, Version: version})
	}
	return crates
}

func parseCrateLine(line string) (string, *semver.Version, bool) {
	entry := strings.TrimSuffix(strings.TrimSpace(line), ":")
	if i := strings.Index(entry, " ("); i >= 0 {
		entry = entry[:i]
	}
	fields := strings.Fields(entry)
	if len(fields) != 2 || !strings.HasPrefix(fields[1], "v") {
		return "", nil, false
	}
	version, err := semver.StrictNewVersion(strings.TrimPrefix(fields[1], "v"))
	if err != nil {
		return "", nil, false
	}
	return fields[0], version, true
}
