// Package updates defines the normalized update record and the parsers that
// turn the text printed by native package managers into records.
//
// Three listing formats are understood:
//
//   - apt/yum "upgradable" listings (ParseLinux): a header line followed by
//     whitespace separated columns; the first two columns become name and
//     severity.
//   - softwareupdate listings (ParseMacOS): a name followed by an optional
//     YYYY-MM-DD release date.
//   - comma separated Windows update listings (ParseWindows): name, severity
//     and an MM/DD/YYYY release date or "N/A".
//
// Parsing is all-or-nothing. A release date that does not match the expected
// layout fails the whole listing with a *DateFormatError, so callers never see
// a partial result.
//
// # Example Usage
//
//	records, err := updates.ParseWindows(output)
//	if errors.Is(err, updates.ErrDateFormat) {
//	    // the listing is unusable, try another source
//	}
package updates
