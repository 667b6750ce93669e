// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestFindToolInPath(t *testing.T) {
	tests := []struct {
		name     string
		toolName string
		expected bool
	}{
		{
			name:     "find go",
			toolName: "go",
			expected: true, // Go is available wherever these tests run
		},
		{
			name:     "nonexistent tool",
			toolName: "nonexistent-tool-xyz-12345",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindToolInPath(tt.toolName)
			if found := result != ""; found != tt.expected {
				t.Errorf("FindToolInPath(%s) found=%v, expected=%v (path=%s)", tt.toolName, found, tt.expected, result)
			}
		})
	}
}

func TestFindToolFallsBackToSystemDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix system directories only")
	}

	var candidate string
	for _, name := range []string{"sh", "ls", "cat"} {
		if _, err := os.Stat(filepath.Join("/bin", name)); err == nil {
			candidate = name
			break
		}
	}
	if candidate == "" {
		t.Skip("no standard binary in /bin")
	}

	t.Setenv("PATH", "")
	if FindToolInPath(candidate) != "" {
		t.Fatalf("expected %s to be missing from an empty PATH", candidate)
	}
	if got := FindTool(candidate); got == "" {
		t.Errorf("FindTool(%s) = \"\", want a system directory hit", candidate)
	}
}

func TestFindToolMissing(t *testing.T) {
	if got := FindTool("nonexistent-tool-xyz-12345"); got != "" {
		t.Errorf("FindTool() = %q, want empty", got)
	}
}

func TestSearchToolInSystemPathSkipsDirectories(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix system directories only")
	}
	// "." joins to the system directory itself, which is not an executable.
	if got := SearchToolInSystemPath("."); got != "" {
		t.Errorf("SearchToolInSystemPath(.) = %q, want empty", got)
	}
}

func TestExecutableName(t *testing.T) {
	got := executableName("powershell")
	if runtime.GOOS == "windows" {
		if got != "powershell.exe" {
			t.Errorf("executableName() = %q, want powershell.exe", got)
		}
		if executableName("pwsh.EXE") != "pwsh.EXE" {
			t.Error("existing extension should be kept")
		}
		return
	}
	if got != "powershell" {
		t.Errorf("executableName() = %q, want powershell", got)
	}
}

func TestGetInstallSuggestion(t *testing.T) {
	tests := []struct {
		tool     string
		contains string
	}{
		{"apt", "Debian"},
		{"yum", "RHEL"},
		{"softwareupdate", "/usr/sbin"},
		{"powershell", "PSWindowsUpdate"},
		{"PWSH", "aka.ms/powershell"},
		{"zypper", "Please install zypper manually"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			got := GetInstallSuggestion(tt.tool)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("GetInstallSuggestion(%s) = %q, want it to contain %q", tt.tool, got, tt.contains)
			}
		})
	}
}
