// Package testutil provides common testing utilities for scan-patch: a
// scripted command runner and stdout capture.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/jongio/scan-patch/cmdutil"
)

// CaptureOutput captures stdout during function execution.
// It redirects os.Stdout to a pipe, executes the function, and returns the captured output.
// The original stdout is always restored, even if the function returns an error.
//
// Example:
//
//	output := testutil.CaptureOutput(t, func() error {
//	    fmt.Println("test output")
//	    return nil
//	})
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	os.Stdout = w

	// Buffered to avoid goroutine leak
	outCh := make(chan string, 1)
	go func() {
		var output strings.Builder
		buf := make([]byte, 1024)
		for {
			n, readErr := r.Read(buf)
			if n > 0 {
				output.Write(buf[:n])
			}
			if readErr != nil {
				break
			}
		}
		outCh <- output.String()
	}()

	fnErr := fn()

	if err := w.Close(); err != nil {
		t.Logf("Failed to close pipe writer: %v", err)
	}
	os.Stdout = origStdout

	output := <-outCh

	if fnErr != nil {
		t.Logf("Command error: %v", fnErr)
	}

	return output
}

type response struct {
	output string
	err    error
}

// FakeRunner is a cmdutil.Runner that answers commands from a table keyed by
// "name arg1 arg2". Commands missing from the table behave like uninstalled
// tools and return cmdutil.ErrToolNotFound.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []string
}

// NewFakeRunner returns a FakeRunner with no commands installed.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]response)}
}

// On scripts the stdout and error returned for command.
func (f *FakeRunner) On(command, output string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[command] = response{output: output, err: err}
	return f
}

// Output implements cmdutil.Runner.
func (f *FakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, key)
	resp, ok := f.responses[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", cmdutil.ErrToolNotFound, name)
	}
	return []byte(resp.output), resp.err
}

// Calls returns every command run so far, in order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
