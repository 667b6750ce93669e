// Package mcpserver exposes the update scan as a Model Context Protocol tool
// served over stdio.
//
// The server registers a single read-only tool, scan_updates, which runs the
// same dispatch chain as the command line and returns the records as JSON.
// Calls are rate limited, and a circuit breaker stops re-running the scan
// after repeated unsupported results so an agent polling in a loop does not
// keep spawning update tools that cannot work on this host.
package mcpserver
