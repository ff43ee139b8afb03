package tools

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
)

// CommandRunner abstracts subprocess execution for package-manager and tool adapters.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, []byte, int32, error)
	RunAttached(name string, args ...string) (int32, error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

// tools command-runner implementation backed by os/exec.
func (r ExecRunner) Run(name string, args ...string) ([]byte, []byte, int32, error) {
	cmd := exec.Command(name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), 0, nil
	}
	return stdout.Bytes(), stderr.Bytes(), exitCodeFor(err), err
}

// RunAttached executes the command with the calling process's stdio streams
// attached. The returned error is non-nil only when the process could not be
// started; a started process that exits non-zero reports through the exit
// code alone.
func (r ExecRunner) RunAttached(name string, args ...string) (int32, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return int32(exitErr.ExitCode()), nil
	}
	return exitCodeFor(err), err
}

func exitCodeFor(err error) int32 {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return int32(exitErr.ExitCode())
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return 127
	}
	return 1
}
