// Package cmdutil runs the external tools that report pending updates and
// captures their standard output.
//
// Tools are expected to be missing on most hosts (apt does not exist on
// macOS, softwareupdate does not exist on Linux), so a missing executable is
// reported as ErrToolNotFound rather than a generic failure. A non-zero exit
// status is not an error: package managers use exit codes to signal that
// updates exist (yum check-update exits 100), and their stdout is still the
// listing the caller wants.
package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/jongio/scan-patch/pathutil"
)

// ErrToolNotFound is returned when the requested executable cannot be located.
var ErrToolNotFound = errors.New("tool not found")

// OutputLineHandler is a callback for processing output lines in real-time.
type OutputLineHandler func(line string)

// Runner runs an external command and returns its standard output.
// This allows for mocking in tests.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Timeout bounds each command. Zero means no timeout.
	Timeout time.Duration

	// Stderr receives each line the command writes to stderr. Stderr is
	// discarded when nil.
	Stderr OutputLineHandler

	// LookPath resolves a tool name to an executable path, returning "" when
	// the tool is not installed. Defaults to pathutil.FindTool.
	LookPath func(name string) string
}

// NewExecRunner creates an ExecRunner with the given per-command timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Output runs the command and returns everything it wrote to stdout.
//
// The returned error wraps ErrToolNotFound when the executable does not
// exist. Commands that exit non-zero return their stdout and a nil error;
// commands killed by the timeout or by ctx return an error.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = pathutil.FindTool
	}

	path := lookPath(name)
	if path == "" {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = os.Environ()

	var stdout bytes.Buffer
	stderr := newLineWriter(r.Stderr)
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stderr.Flush()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return stdout.Bytes(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w (%w)", ctxErr, err)
	}
	return stdout.Bytes(), fmt.Errorf("command %s failed: %w", name, err)
}

// IsToolNotFound reports whether err means the executable is not installed.
func IsToolNotFound(err error) bool {
	return errors.Is(err, ErrToolNotFound)
}
