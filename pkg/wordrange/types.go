// Package wordrange counts words in a file by scanning contiguous byte ranges
// independently and summing their counts.
package wordrange

import "fmt"

// Range is a contiguous byte interval [Offset, Offset+Size) of the input
// file, assigned to exactly one scanner.
type Range struct {
	Index  int    `json:"index"`
	Offset uint64 `json:"offset"`
	Size   uint64 `json:"size"`
}

// End returns the exclusive end offset of the range.
func (r Range) End() uint64 {
	return r.Offset + r.Size
}

func (r Range) String() string {
	return fmt.Sprintf("#%d[%d,%d)", r.Index, r.Offset, r.End())
}

// ScanResult is the outcome of scanning one Range.
type ScanResult struct {
	Err error `json:"-"`

	Range Range  `json:"range"`
	Count uint64 `json:"count"`

	// BoundaryEvent and TailEvent report whether the boundary or the
	// end-of-file check contributed to Count.
	BoundaryEvent bool `json:"boundary_event"`
	TailEvent     bool `json:"tail_event"`

	BytesRead uint64 `json:"bytes_read"`
	Retries   int    `json:"retries"`
	Degraded  bool   `json:"degraded"`
}

// Summary is the aggregate of all ScanResults of one run.
type Summary struct {
	Total          uint64 `json:"total"`
	Degraded       bool   `json:"degraded"`
	DegradedRanges []int  `json:"degraded_ranges,omitempty"`

	errs []error
}

// Err returns the joined errors of all degraded ranges, or nil.
func (s Summary) Err() error {
	return joinErrors(s.errs)
}
