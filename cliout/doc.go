// Package cliout formats command output for scan-patch.
//
// Output always goes to an explicit io.Writer so callers choose stdout and
// tests can capture a buffer. Two formats are supported:
//
//   - json: indented JSON, HTML characters left unescaped
//   - table: an aligned text table, bold headers when colour is enabled
//
// # Colour
//
// Colour is applied only when the writer is a terminal (checked with
// golang.org/x/term) and NO_COLOR is unset. NoColor and ForceColor override
// the detection:
//
//	cliout.NoColor()
//	cliout.Table(os.Stdout, []string{"Name", "Severity"}, rows)
package cliout
