package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jongio/scan-patch/cmdutil"
)

func TestCaptureOutput(t *testing.T) {
	t.Run("captures stdout", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			fmt.Println("test output")
			return nil
		})

		if !strings.Contains(output, "test output") {
			t.Errorf("expected output to contain 'test output', got: %s", output)
		}
	})

	t.Run("captures multiple lines", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			fmt.Println("line 1")
			fmt.Println("line 2")
			fmt.Println("line 3")
			return nil
		})

		if !strings.Contains(output, "line 1") {
			t.Error("expected output to contain 'line 1'")
		}
		if !strings.Contains(output, "line 2") {
			t.Error("expected output to contain 'line 2'")
		}
		if !strings.Contains(output, "line 3") {
			t.Error("expected output to contain 'line 3'")
		}
	})

	t.Run("restores stdout on error", func(t *testing.T) {
		expectedErr := errors.New("test error")
		output := CaptureOutput(t, func() error {
			fmt.Println("output before error")
			return expectedErr
		})

		if !strings.Contains(output, "output before error") {
			t.Error("expected output to contain 'output before error'")
		}

		// Verify stdout is restored by printing to it
		fmt.Println("stdout restored")
	})

	t.Run("handles empty output", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			return nil
		})

		if output != "" {
			t.Errorf("expected empty output, got: %s", output)
		}
	})

	t.Run("captures fmt.Print without newline", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			fmt.Print("no newline")
			return nil
		})

		if !strings.Contains(output, "no newline") {
			t.Errorf("expected output to contain 'no newline', got: %s", output)
		}
	})

	t.Run("captures mixed fmt.Print and fmt.Println", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			fmt.Print("part1")
			fmt.Println(" part2")
			fmt.Print("part3")
			return nil
		})

		expected := "part1 part2\npart3"
		if output != expected {
			t.Errorf("expected '%s', got: '%s'", expected, output)
		}
	})

	t.Run("captures large output", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			// Generate output larger than the 1024 byte buffer
			for i := 0; i < 200; i++ {
				fmt.Printf("line %d with some extra text to make it longer\n", i)
			}
			return nil
		})

		// Verify we got all the output
		if !strings.Contains(output, "line 0") {
			t.Error("expected to find first line")
		}
		if !strings.Contains(output, "line 199") {
			t.Error("expected to find last line")
		}

		// Count lines to ensure we got everything
		lines := strings.Split(output, "\n")
		// Should have 200 lines plus 1 empty line from trailing newline
		if len(lines) < 200 {
			t.Errorf("expected at least 200 lines, got %d", len(lines))
		}
	})
}

func TestFakeRunner(t *testing.T) {
	boom := errors.New("boom")
	runner := NewFakeRunner().
		On("apt list --upgradable", "Listing... Done\n", nil).
		On("yum check-update", "", boom)

	out, err := runner.Output(context.Background(), "apt", "list", "--upgradable")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "Listing... Done\n" {
		t.Errorf("unexpected output %q", out)
	}

	if _, err := runner.Output(context.Background(), "yum", "check-update"); !errors.Is(err, boom) {
		t.Errorf("expected scripted error, got %v", err)
	}

	if _, err := runner.Output(context.Background(), "softwareupdate", "-l"); !cmdutil.IsToolNotFound(err) {
		t.Errorf("expected ErrToolNotFound for unscripted command, got %v", err)
	}

	want := []string{"apt list --upgradable", "yum check-update", "softwareupdate -l"}
	got := runner.Calls()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Calls() = %v, want %v", got, want)
	}
}

func TestFakeRunnerImplementsRunner(t *testing.T) {
	var _ cmdutil.Runner = NewFakeRunner()
}
