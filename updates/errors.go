package updates

import (
	"errors"
	"fmt"
)

// ErrDateFormat is matched by every *DateFormatError.
var ErrDateFormat = errors.New("release date does not match expected format")

// DateFormatError reports a release date that could not be parsed.
// It aborts the whole listing, not just the offending line.
type DateFormatError struct {
	Platform Platform
	Line     int // 1-based line number in the listing
	Value    string
	Layout   string
	Err      error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("%s listing line %d: release date %q does not match %s: %v",
		e.Platform, e.Line, e.Value, e.Layout, e.Err)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDateFormat) true for any DateFormatError.
func (e *DateFormatError) Is(target error) bool {
	return target == ErrDateFormat
}
