package updates

import (
	"strings"
	"time"
)

const (
	// windowsDateLayout accepts MM/DD/YYYY with optional zero padding.
	windowsDateLayout = "1/2/2006"

	// windowsUnknownDate marks a missing release date, compared case-insensitively.
	windowsUnknownDate = "n/a"
)

// ParseWindows parses a comma separated Windows update listing.
//
// Lines with at least three fields become records: name, severity and a
// MM/DD/YYYY release date, or "N/A" in any letter case for an unknown date.
// Fields are taken verbatim. Lines with fewer fields are skipped. A date that
// is neither fails the whole listing with a *DateFormatError.
func ParseWindows(output string) ([]Record, error) {
	var records []Record
	for i, line := range splitLines(output) {
		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			continue
		}

		var released *Date
		if !strings.EqualFold(fields[2], windowsUnknownDate) {
			t, err := time.Parse(windowsDateLayout, fields[2])
			if err != nil {
				return nil, &DateFormatError{
					Platform: PlatformWindows,
					Line:     i + 1,
					Value:    fields[2],
					Layout:   "MM/DD/YYYY",
					Err:      err,
				}
			}
			released = &Date{Time: t}
		}

		records = append(records, Record{
			Name:         fields[0],
			Severity:     fields[1],
			ReleasedDate: released,
			Platform:     PlatformWindows,
		})
	}
	return records, nil
}
