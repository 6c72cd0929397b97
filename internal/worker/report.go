package worker

import (
	"time"

	"pkg.jsn.cam/wordrange/pkg/wordrange"
)

// Report is the outcome of one Pool.Run.
type Report struct {
	StartedAt time.Time
	Summary   wordrange.Summary

	RunID string
	Path  string
	Skip  string

	Results []wordrange.ScanResult

	FileSize   uint64
	Elapsed    time.Duration
	Workers    int
	BufferSize int
}

// Total returns the aggregate word count. It is exact unless Degraded.
func (r *Report) Total() uint64 {
	return r.Summary.Total
}

// Degraded reports whether any range failed, making Total a lower bound.
func (r *Report) Degraded() bool {
	return r.Summary.Degraded
}

// Err returns the joined errors of all degraded ranges, or nil.
func (r *Report) Err() error {
	return r.Summary.Err()
}

// Retries returns the number of read retries across all ranges.
func (r *Report) Retries() int {
	total := 0
	for _, res := range r.Results {
		total += res.Retries
	}
	return total
}
