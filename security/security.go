// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	// ErrInvalidPath indicates a path contains invalid characters or patterns.
	ErrInvalidPath = errors.New("invalid path")
	// ErrInsecureFilePermissions indicates a file is writable by group or others.
	ErrInsecureFilePermissions = errors.New("insecure file permissions")
)

// ValidatePath checks that path is usable and returns it absolute, cleaned
// and with symbolic links resolved. A path that does not exist yet is
// returned cleaned.
func ValidatePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("%w: path contains a NUL byte", ErrInvalidPath)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve path: %w", ErrInvalidPath, err)
	}
	cleanPath := filepath.Clean(absPath)

	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("%w: cannot resolve symbolic links: %w", ErrInvalidPath, err)
		}
		resolvedPath = cleanPath
	}
	return resolvedPath, nil
}

// ValidateFilePermissions checks if a file has secure permissions.
// On Unix systems, it ensures the file is not group- or world-writable.
// On Windows, this check is skipped as Windows uses ACLs differently.
func ValidateFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Mode().Perm()&0o022 != 0 {
		return fmt.Errorf("%w: %s is %s", ErrInsecureFilePermissions, path, info.Mode().Perm())
	}
	return nil
}

// IsContainerEnvironment detects if the code is running in a containerized environment.
// It checks for:
// - GitHub Codespaces (CODESPACES=true)
// - VS Code Dev Containers (REMOTE_CONTAINERS=true)
// - Docker containers (/.dockerenv file exists)
// - Kubernetes pods (KUBERNETES_SERVICE_HOST set)
func IsContainerEnvironment() bool {
	if os.Getenv("CODESPACES") == "true" {
		return true
	}
	if os.Getenv("REMOTE_CONTAINERS") == "true" {
		return true
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

// CheckTrustedFile validates path and its permissions. Insecure permissions
// are an error outside containers; inside one, warn is called instead.
func CheckTrustedFile(path string, warn func(msg string, args ...any)) (string, error) {
	resolved, err := ValidatePath(path)
	if err != nil {
		return "", err
	}

	err = ValidateFilePermissions(resolved)
	if errors.Is(err, ErrInsecureFilePermissions) && IsContainerEnvironment() {
		if warn != nil {
			warn("file has insecure permissions, allowed inside a container", "path", resolved, "error", err)
		}
		return resolved, nil
	}
	if err != nil {
		return "", err
	}
	return resolved, nil
}
