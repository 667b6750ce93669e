// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// Logs always go to stderr (or a writer supplied for tests) so that standard
// output carries nothing but the scan report.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	// Log messages at different levels
//	logutil.Debug("running tool", "tool", "apt")
//	logutil.Warn("probe faulted", "platform", "linux", "error", err)
//
// # Component Loggers
//
// Packages create a component logger once and refine it per call site:
//
//	var log = logutil.NewLogger("probe")
//	log.WithPlatform("linux").WithTool("apt").Debug("tool not found")
//
// Component loggers resolve the global logger on every call, so loggers
// created in package variables pick up configuration applied later by
// SetupLogger.
//
// # Debug Mode
//
// Debug output is enabled by SetupLogger(true, ...) or by setting
// SCANPATCH_DEBUG=true in the environment.
package logutil
