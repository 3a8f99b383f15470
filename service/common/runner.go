// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package common

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("unitctl.service.common")

// Runner executes invocations.
type Runner interface {
	// Run executes inv, wiring its standard streams to the given
	// reader and writers. Any of them may be nil.
	Run(ctx context.Context, inv Invocation, stdin io.Reader, stdout, stderr io.Writer) error

	// Output executes inv and returns what it wrote to stdout.
	Output(ctx context.Context, inv Invocation) ([]byte, error)
}

// ExitError is returned by a Runner when the invocation ran but exited
// with a non-zero status.
type ExitError struct {
	Invocation Invocation
	Code       int
	Stderr     string
}

// Error implements error.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", e.Invocation, e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// IsExitError reports whether err is, or wraps, an *ExitError.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// ExecRunner runs invocations as child processes of the current process.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation, stdin io.Reader, stdout, stderr io.Writer) error {
	logger.Debugf("running %s", inv)
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return r.wrap(inv, cmd.Run(), "")
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, inv Invocation) ([]byte, error) {
	logger.Debugf("running %s", inv)
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, r.wrap(inv, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func (r *ExecRunner) wrap(inv Invocation, err error, stderr string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Invocation: inv,
			Code:       exitErr.ExitCode(),
			Stderr:     stderr,
		}
	}
	return errors.Annotatef(err, "running %s", inv)
}
