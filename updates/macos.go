package updates

import (
	"strings"
	"time"
	"unicode"
)

// macOSDateLayout accepts YYYY-MM-DD with optional zero padding on month and day.
const macOSDateLayout = "2006-1-2"

// ParseMacOS parses a softwareupdate listing.
//
// Each line is a name, a whitespace run, and a release date. The date may be
// blank, in which case it is unknown. A line without whitespace after the
// name is skipped. A non-blank date that is not YYYY-MM-DD fails the whole
// listing with a *DateFormatError.
func ParseMacOS(output string) ([]Record, error) {
	var records []Record
	for i, line := range splitLines(output) {
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		sep := strings.IndexFunc(line, unicode.IsSpace)
		if sep < 0 {
			continue
		}

		name := line[:sep]
		dateStr := strings.TrimSpace(line[sep:])

		var released *Date
		if dateStr != "" {
			t, err := time.Parse(macOSDateLayout, dateStr)
			if err != nil {
				return nil, &DateFormatError{
					Platform: PlatformMacOS,
					Line:     i + 1,
					Value:    dateStr,
					Layout:   "YYYY-MM-DD",
					Err:      err,
				}
			}
			released = &Date{Time: t}
		}

		records = append(records, Record{
			Name:         name,
			ReleasedDate: released,
			Platform:     PlatformMacOS,
		})
	}
	return records, nil
}
