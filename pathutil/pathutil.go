// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// FindTool returns the full path to a tool, searching PATH first and the
// platform's system directories second. Returns an empty string when the
// tool is not installed.
func FindTool(toolName string) string {
	if path := FindToolInPath(toolName); path != "" {
		return path
	}
	return SearchToolInSystemPath(toolName)
}

// FindToolInPath searches for a tool executable in the system PATH.
// Returns the full path to the executable if found, empty string otherwise.
func FindToolInPath(toolName string) string {
	path, err := exec.LookPath(executableName(toolName))
	if err != nil {
		return ""
	}
	return path
}

// SearchToolInSystemPath searches for a tool in the directories package
// managers are installed in. This is useful for finding tools that are
// installed but not in the current PATH.
// Returns the full path to the executable if found, empty string otherwise.
func SearchToolInSystemPath(toolName string) string {
	exeName := executableName(toolName)

	for _, dir := range systemDirs() {
		fullPath := filepath.Join(dir, exeName)
		if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
			return fullPath
		}
	}

	return ""
}

// executableName adds the .exe extension on Windows if not present.
func executableName(toolName string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(toolName), ".exe") {
		return toolName + ".exe"
	}
	return toolName
}

func systemDirs() []string {
	if runtime.GOOS == "windows" {
		systemRoot := os.Getenv("SystemRoot")
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}
		return []string{
			filepath.Join(systemRoot, "System32"),
			filepath.Join(systemRoot, "System32", "WindowsPowerShell", "v1.0"),
			`C:\Program Files\PowerShell\7`,
		}
	}

	return []string{
		"/usr/bin",
		"/bin",
		"/usr/sbin",
		"/sbin",
		"/usr/local/bin",
		"/opt/homebrew/bin",
	}
}

// GetInstallSuggestion returns a suggestion for how to make a missing tool available.
func GetInstallSuggestion(toolName string) string {
	suggestions := map[string]string{
		"apt":            "apt ships with Debian and Ubuntu; this host does not use apt",
		"yum":            "yum ships with RHEL, CentOS and Fedora; this host does not use yum",
		"softwareupdate": "softwareupdate ships with macOS in /usr/sbin",
		"powershell":     "Windows PowerShell ships with Windows; Get-WindowsUpdate needs the PSWindowsUpdate module",
		"pwsh":           "Install PowerShell 7 from https://aka.ms/powershell",
	}

	if suggestion, ok := suggestions[strings.ToLower(toolName)]; ok {
		return suggestion
	}
	return fmt.Sprintf("Please install %s manually", toolName)
}
