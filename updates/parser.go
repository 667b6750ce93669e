package updates

// Parser converts a tool's standard output into records.
type Parser func(output string) ([]Record, error)

// ParserFor returns the parser for a platform's listing format.
func ParserFor(p Platform) (Parser, bool) {
	switch p {
	case PlatformLinux:
		return ParseLinux, true
	case PlatformMacOS:
		return ParseMacOS, true
	case PlatformWindows:
		return ParseWindows, true
	default:
		return nil, false
	}
}
