// Package security validates files scan-patch trusts.
//
// The config file chooses which PowerShell binary runs and where metrics are
// written, so a config that other users can modify is refused. Containers
// often mount files with loose permissions; there the check is reported as a
// warning instead.
package security
