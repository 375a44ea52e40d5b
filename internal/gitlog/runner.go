// Package gitlog produces the raw changelog text for a source tree by
// invoking git's log command through a typed runner. Tree validation uses
// go-git so a bad path fails the pipeline up front instead of feeding an
// empty or error string into the later stages.
package gitlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Result captures a finished command invocation. Output and diagnostics
// are separated so a caller can distinguish success from failure instead
// of receiving whatever mixed text the shell printed.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes a command in a working directory and returns its typed
// result. A non-zero exit is reported in the Result, not as an error; the
// error return is reserved for failures to run the command at all (binary
// missing, context cancelled).
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// Run executes the command with separate stdout/stderr capture.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("running %s: %w", name, err)
	}

	return result, nil
}
