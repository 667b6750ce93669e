// Package report renders a dispatch result for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/jongio/scan-patch/cliout"
	"github.com/jongio/scan-patch/dispatch"
	"github.com/jongio/scan-patch/updates"
)

const (
	// NoUpdatesMessage is printed when the scan found nothing pending.
	NoUpdatesMessage = "No updates found"
	// UnsupportedMessage is printed when every probe faulted.
	UnsupportedMessage = "Unsupported operating system"
)

// jsonIndent is four spaces per level.
const jsonIndent = "    "

// unknownDate fills the released column of a table for records without a date.
const unknownDate = "unknown"

// Render writes res to w in the given format. Exactly one of a record
// listing, NoUpdatesMessage or UnsupportedMessage is written.
func Render(w io.Writer, res dispatch.Result, format cliout.Format) error {
	if res.Unsupported() {
		return cliout.Line(w, "%s", UnsupportedMessage)
	}
	if len(res.Records) == 0 {
		return cliout.Line(w, "%s", NoUpdatesMessage)
	}

	switch format {
	case cliout.FormatJSON, "":
		return cliout.WriteJSON(w, res.Records, jsonIndent)
	case cliout.FormatTable:
		return renderTable(w, res.Records)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderTable(w io.Writer, records []updates.Record) error {
	withSeverity, withDate := false, false
	for _, r := range records {
		withSeverity = withSeverity || r.HasSeverity()
		withDate = withDate || r.HasReleasedDate()
	}

	headers := []string{"Name"}
	if withSeverity {
		headers = append(headers, "Severity")
	}
	if withDate {
		headers = append(headers, "Released")
	}

	rows := make([]cliout.TableRow, 0, len(records))
	for _, r := range records {
		row := cliout.TableRow{"Name": r.Name}
		if r.HasSeverity() {
			row["Severity"] = r.Severity
		}
		if r.HasReleasedDate() {
			row["Released"] = unknownDate
			if r.ReleasedDate != nil {
				row["Released"] = r.ReleasedDate.String()
			}
		}
		rows = append(rows, row)
	}
	return cliout.Table(w, headers, rows)
}

// Summary describes res in one sentence, for notifications and tool results.
func Summary(res dispatch.Result) string {
	switch {
	case res.Unsupported():
		return UnsupportedMessage
	case len(res.Records) == 0:
		return NoUpdatesMessage
	case len(res.Records) == 1:
		return fmt.Sprintf("1 update pending on %s", res.Platform)
	default:
		return fmt.Sprintf("%d updates pending on %s", len(res.Records), res.Platform)
	}
}
