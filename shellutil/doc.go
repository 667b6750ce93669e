// Package shellutil builds PowerShell invocations for update queries.
//
// Windows updates are listed by a PowerShell cmdlet rather than a standalone
// executable, so the command that runs is the PowerShell host itself
// (Windows PowerShell "powershell" or PowerShell 7 "pwsh") with the cmdlet
// passed as a non-interactive command.
package shellutil
