package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	// FormatJSON is indented JSON. It is the default.
	FormatJSON Format = "json"
	// FormatTable is a human-readable text table.
	FormatTable Format = "table"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
)

type colorMode int

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

var (
	mu   sync.RWMutex
	mode = colorAuto
)

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	mode = colorAlways
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	mode = colorNever
	mu.Unlock()
}

// AutoColor restores terminal detection.
func AutoColor() {
	mu.Lock()
	mode = colorAuto
	mu.Unlock()
}

// ParseFormat validates an output format name. An empty name selects JSON.
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(format) {
	case "", string(FormatJSON):
		return FormatJSON, nil
	case string(FormatTable):
		return FormatTable, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (valid options: json, table)", format)
	}
}

// ColorEnabled reports whether colour should be written to w.
func ColorEnabled(w io.Writer) bool {
	mu.RLock()
	m := mode
	mu.RUnlock()

	switch m {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Colorize wraps text in color when w accepts colour.
func Colorize(w io.Writer, color, text string) string {
	if !ColorEnabled(w) {
		return text
	}
	return color + text + Reset
}

// WriteJSON writes data to w as JSON indented by indent, followed by a newline.
func WriteJSON(w io.Writer, data interface{}, indent string) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	return encoder.Encode(data)
}

// Line writes a single line of plain text.
func Line(w io.Writer, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(w, format+"\n", args...)
	return err
}

// Status returns status coloured by its meaning.
func Status(w io.Writer, status string) string {
	switch strings.ToLower(status) {
	case "success", "ok", "none":
		return Colorize(w, BrightGreen, status)
	case "low", "moderate", "medium", "not_available":
		return Colorize(w, BrightYellow, status)
	case "critical", "important", "high", "faulted":
		return Colorize(w, BrightRed, status)
	default:
		return status
	}
}

// TableRow represents a row in a table as a map of column header to value.
type TableRow map[string]string

// Table writes a simple table with the given headers and rows.
// Nothing is written when rows is empty.
func Table(w io.Writer, headers []string, rows []TableRow) error {
	if len(rows) == 0 {
		return nil
	}

	widths := make(map[string]int, len(headers))
	for _, header := range headers {
		widths[header] = len(header)
	}
	for _, row := range rows {
		for _, header := range headers {
			if len(row[header]) > widths[header] {
				widths[header] = len(row[header])
			}
		}
	}

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, header := range headers {
		cells[i] = Colorize(w, Bold, fmt.Sprintf("%-*s", widths[header], header))
	}
	b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
	b.WriteByte('\n')

	for i, header := range headers {
		cells[i] = strings.Repeat("-", widths[header])
	}
	b.WriteString(strings.Join(cells, "  "))
	b.WriteByte('\n')

	for _, row := range rows {
		for i, header := range headers {
			cells[i] = fmt.Sprintf("%-*s", widths[header], row[header])
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
