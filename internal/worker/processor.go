package worker

import (
	"context"
	"fmt"
	"log"

	"pkg.jsn.cam/wordrange/pkg/wordrange"
)

// Processor runs the scan of a single range on its own file handle.
type Processor struct {
	opener Opener
	opts   wordrange.ScanOptions
}

// NewProcessor creates a new range processor
func NewProcessor(opener Opener, opts wordrange.ScanOptions) *Processor {
	return &Processor{
		opener: opener,
		opts:   opts,
	}
}

// ProcessRange opens a private handle, scans rng and closes the handle. A
// handle that cannot be opened yields a zero, degraded result.
func (p *Processor) ProcessRange(ctx context.Context, path string, fileSize uint64, rng wordrange.Range) wordrange.ScanResult {
	f, err := p.opener(path)
	if err != nil {
		log.Printf("[WORKER:%d] Open failed: %v", rng.Index, err)

		return wordrange.ScanResult{
			Range:    rng,
			Degraded: true,
			Err: fmt.Errorf("range %s: %w: %w: %w",
				rng, wordrange.ErrDegradedScan, wordrange.ErrOpenFailure, err),
		}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[WORKER:%d] Close failed: %v", rng.Index, err)
		}
	}()

	res := wordrange.Scan(ctx, f, fileSize, rng, p.opts)

	switch {
	case res.Degraded:
		log.Printf("[WORKER:%d] Range %s degraded after %d bytes (partial count %d): %v",
			rng.Index, rng, res.BytesRead, res.Count, res.Err)
	case res.Retries > 0:
		log.Printf("[WORKER:%d] Range %s recovered after %d retries", rng.Index, rng, res.Retries)
	}

	return res
}
