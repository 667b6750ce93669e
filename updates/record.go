package updates

import (
	"encoding/json"
	"fmt"
	"time"
)

// Platform identifies the operating system family whose tooling produced a record.
type Platform string

const (
	// PlatformLinux covers apt and yum based distributions.
	PlatformLinux Platform = "linux"
	// PlatformWindows covers hosts queried through PowerShell.
	PlatformWindows Platform = "windows"
	// PlatformMacOS covers hosts queried through softwareupdate.
	PlatformMacOS Platform = "macos"
)

// Platforms returns every known platform in the default fallback order.
func Platforms() []Platform {
	return []Platform{PlatformLinux, PlatformWindows, PlatformMacOS}
}

// ParsePlatform converts a platform name into a Platform.
// "darwin" is accepted as an alias for macos so runtime.GOOS values work.
func ParsePlatform(s string) (Platform, error) {
	switch s {
	case "linux":
		return PlatformLinux, nil
	case "windows":
		return PlatformWindows, nil
	case "macos", "darwin":
		return PlatformMacOS, nil
	default:
		return "", fmt.Errorf("unknown platform %q (valid options: linux, windows, macos)", s)
	}
}

// dateLayout is how release dates are rendered in JSON.
const dateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON renders the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Record is one pending update.
//
// Which fields are meaningful depends on Platform: Linux records carry a
// severity but no release date, macOS records carry a release date but no
// severity, Windows records carry both. A nil ReleasedDate means the date is
// unknown.
type Record struct {
	Name         string
	Severity     string
	ReleasedDate *Date
	Platform     Platform
}

type linuxRecordJSON struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
}

type macOSRecordJSON struct {
	Name         string `json:"name"`
	ReleasedDate *Date  `json:"released_date"`
}

type windowsRecordJSON struct {
	Name         string `json:"name"`
	Severity     string `json:"severity"`
	ReleasedDate *Date  `json:"released_date"`
}

// MarshalJSON emits only the keys the record's platform produces.
func (r Record) MarshalJSON() ([]byte, error) {
	switch r.Platform {
	case PlatformLinux:
		return json.Marshal(linuxRecordJSON{Name: r.Name, Severity: r.Severity})
	case PlatformMacOS:
		return json.Marshal(macOSRecordJSON{Name: r.Name, ReleasedDate: r.ReleasedDate})
	case PlatformWindows:
		return json.Marshal(windowsRecordJSON{Name: r.Name, Severity: r.Severity, ReleasedDate: r.ReleasedDate})
	default:
		return nil, fmt.Errorf("record %q has unknown platform %q", r.Name, r.Platform)
	}
}

// HasSeverity reports whether the record's platform produces a severity.
func (r Record) HasSeverity() bool {
	return r.Platform == PlatformLinux || r.Platform == PlatformWindows
}

// HasReleasedDate reports whether the record's platform produces a release date.
func (r Record) HasReleasedDate() bool {
	return r.Platform == PlatformMacOS || r.Platform == PlatformWindows
}
