// Package adapter contains infrastructure adapters for the tsquiet CLI.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// BuildRunner abstracts running the project's build command so the domain
// layer can be tested without spawning processes.
type BuildRunner interface {
	// Run executes command with args in dir and returns the combined
	// stdout/stderr text. The two streams are interleaved in arrival order;
	// callers must not depend on their relative ordering.
	//
	// A non-zero exit status is not an error: the TypeScript compiler exits
	// non-zero whenever it reports diagnostics, and that output is exactly
	// the data this tool consumes. Only a failure to start the process
	// (missing binary, bad working directory) is returned as an error.
	Run(ctx context.Context, dir, command string, args ...string) (string, error)
}

// LocalBuildRunner provides a concrete implementation using os/exec.
type LocalBuildRunner struct{}

// NewLocalBuildRunner constructs a LocalBuildRunner.
func NewLocalBuildRunner() *LocalBuildRunner {
	return &LocalBuildRunner{}
}

// Run executes the build command and captures combined output. It blocks
// until the subprocess exits; the only upper bound on wait time is the
// caller's context.
func (a *LocalBuildRunner) Run(ctx context.Context, dir, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir

	var combined bytes.Buffer

	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Compiler reported diagnostics; the output is the result.
			return combined.String(), nil
		}

		return "", err
	}

	return combined.String(), nil
}
