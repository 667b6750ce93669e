// Package probe queries one operating system's native update tooling.
//
// A Prober runs the platform's listing command through a cmdutil.Runner,
// feeds its stdout to the matching parser from package updates, and reports
// a tagged Outcome:
//
//   - Success: the tool ran and its listing parsed (possibly to no records)
//   - NotAvailable: none of the platform's tools are installed
//   - Faulted: the tool failed to run or its listing could not be parsed
//
// A missing tool is never a fault. Everything else is, and the caller
// (package dispatch) decides whether to fall back to another platform.
//
// # Platforms
//
//   - Linux: "apt update" (failures ignored) then "apt list --upgradable";
//     if apt is not installed, "yum check-update".
//   - Windows: "Get-WindowsUpdate" through a PowerShell host.
//   - macOS: "softwareupdate -l".
package probe
