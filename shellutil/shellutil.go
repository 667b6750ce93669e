// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PowerShell hosts that can run update cmdlets.
const (
	// ShellPowerShell is Windows PowerShell (5.1 and earlier).
	ShellPowerShell = "powershell"

	// ShellPwsh is PowerShell Core (6.0+, cross-platform).
	ShellPwsh = "pwsh"
)

// DefaultPowerShell is the host used when none is configured.
const DefaultPowerShell = ShellPowerShell

// PowerShellArgs returns the arguments that run script non-interactively
// without loading the user's profile.
func PowerShellArgs(script string) []string {
	return []string{"-NoProfile", "-NonInteractive", "-Command", script}
}

// ValidatePowerShellHost checks that host names a PowerShell executable.
// Either a bare name or a path whose base name is powershell or pwsh
// (optionally with .exe) is accepted.
func ValidatePowerShellHost(host string) error {
	if host == "" {
		return fmt.Errorf("powershell host cannot be empty")
	}

	base := strings.ToLower(filepath.Base(host))
	base = strings.TrimSuffix(base, ".exe")
	switch base {
	case ShellPowerShell, ShellPwsh:
		return nil
	default:
		return fmt.Errorf("invalid powershell host: %q (valid options: %s, %s)", host, ShellPowerShell, ShellPwsh)
	}
}
