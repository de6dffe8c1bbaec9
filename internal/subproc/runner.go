// Package subproc defines the narrow subprocess contract the probes use for
// version queries: run a program, honor the context, return captured output.
package subproc

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes a short-lived introspection subprocess and returns its
// captured output. Implementations must honor ctx cancellation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs commands with os/exec. It is the production Runner.
type ExecRunner struct{}

// Run executes name with args and returns captured stdout and stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}
