package updates

import "strings"

// ParseLinux parses an apt or yum upgradable listing.
//
// The first line is a header ("Listing... Done") and is discarded. Every
// other line with at least two whitespace separated columns becomes a record
// whose name is the first column and whose severity is the second. Shorter
// lines are skipped. The error is always nil; it is returned so the three
// parsers share a signature.
func ParseLinux(output string) ([]Record, error) {
	lines := splitLines(output)
	if len(lines) <= 1 {
		return nil, nil
	}

	var records []Record
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		records = append(records, Record{
			Name:     fields[0],
			Severity: fields[1],
			Platform: PlatformLinux,
		})
	}
	return records, nil
}
