// Package errdefs defines the error kinds shared by every FEZrs tool.
//
// Call sites wrap one of these sentinels with context, so callers can
// distinguish failure kinds with errors.Is:
//
//	if errors.Is(err, errdefs.ErrMissingBand) {
//	    // ask the user for the band
//	}
package errdefs

import "errors"

var (
	// ErrFileNotFound reports a band path that does not resolve to a file.
	ErrFileNotFound = errors.New("file not found")

	// ErrMissingBand reports a band a tool requires but was not given.
	ErrMissingBand = errors.New("required band missing")

	// ErrInvalidConfig reports malformed tool parameters or export options.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotComputed reports an export attempted before the tool calculated its output.
	ErrNotComputed = errors.New("data not computed")
)
