// Package pathutil locates the native update tools a scan depends on.
//
// Update tools do not always live on the user's PATH: softwareupdate is in
// /usr/sbin on macOS, which is often missing from non-root PATHs, and Windows
// PowerShell lives under System32. FindTool therefore checks PATH first and
// then falls back to the directories each platform installs these tools in.
//
// # Cross-Platform Behavior
//
// On Windows:
//   - Automatically appends .exe extension when searching for executables
//   - Searches System32, the Windows PowerShell directory and PowerShell 7
//
// On Unix (Linux/macOS):
//   - Searches /usr/bin, /bin, /usr/sbin, /sbin, /usr/local/bin and Homebrew
//
// # Example: Finding a Tool
//
//	if path := pathutil.FindTool("softwareupdate"); path == "" {
//	    fmt.Println(pathutil.GetInstallSuggestion("softwareupdate"))
//	}
package pathutil
