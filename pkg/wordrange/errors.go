package wordrange

import "errors"

// Sentinel errors for common error conditions
var (
	// ErrInvalidConfig is returned before any scanning starts: zero workers,
	// zero buffer size, an empty file or a missing input path.
	ErrInvalidConfig = errors.New("invalid config")

	// Scan-related errors
	ErrTransientRead = errors.New("transient read failure")
	ErrDegradedScan  = errors.New("degraded scan")
	ErrOpenFailure   = errors.New("open failure")
)
