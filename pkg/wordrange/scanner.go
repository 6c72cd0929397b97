package wordrange

import (
	"context"
	"fmt"
	"io"
)

const (
	DefaultBufferSize      = 8192
	DefaultMaxReadFailures = 3
)

// ScanOptions tunes a single range scan. The zero value is usable.
type ScanOptions struct {
	// Classifier defaults to DefaultClassifier().
	Classifier *Classifier

	// OnRead, if set, is called with the number of range bytes read by each
	// successful read. It may be called from many scanners at once.
	OnRead func(n int)

	// BufferSize is the read window. It affects performance only.
	BufferSize int

	// MaxReadFailures is the number of consecutive failed reads at one
	// position after which the rest of the range is abandoned.
	MaxReadFailures int
}

func (o ScanOptions) withDefaults() ScanOptions {
	if o.Classifier == nil {
		o.Classifier = DefaultClassifier()
	}
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.MaxReadFailures <= 0 {
		o.MaxReadFailures = DefaultMaxReadFailures
	}
	return o
}

// Scan counts the word ends that belong to rng. It reads only the bytes of
// rng plus the one byte right before it, so summing the results of all ranges
// of a Plan gives the same total as scanning the whole file as one range.
//
// Scan never fails outright: read errors that survive the retry budget, and
// cancellation of ctx, stop the scan and mark the result as degraded with the
// count accumulated so far.
func Scan(ctx context.Context, r io.ReaderAt, fileLength uint64, rng Range, opts ScanOptions) ScanResult {
	s := &rangeScan{
		r:          r,
		rng:        rng,
		fileLength: fileLength,
		opts:       opts.withDefaults(),
		result:     ScanResult{Range: rng},
	}
	s.cls = s.opts.Classifier

	s.run(ctx)

	return s.result
}

// rangeScan is the state of one call to Scan. It never outlives the call.
type rangeScan struct {
	r      io.ReaderAt
	cls    *Classifier
	result ScanResult

	opts       ScanOptions
	rng        Range
	fileLength uint64

	pos  uint64
	last byte
}

func (s *rangeScan) run(ctx context.Context) {
	if s.rng.Size == 0 {
		return
	}

	s.pos = s.rng.Offset
	if !s.start() {
		return
	}

	buf := make([]byte, min(uint64(s.opts.BufferSize), s.rng.Size))
	for s.pos < s.rng.End() {
		if err := ctx.Err(); err != nil {
			s.degrade(err)
			return
		}

		window := buf[:min(uint64(len(buf)), s.rng.End()-s.pos)]
		n, err := s.fill(window, s.pos)
		s.consume(window[:n])
		if err != nil {
			s.degrade(err)
			return
		}
	}

	s.tail()
}

// start primes s.last with the first byte of the range. For every range but
// the first it also looks at the byte just before the range: a word running
// up to the boundary and closed by our first byte belongs to us, because the
// previous scanner stops before it sees the separator.
func (s *rangeScan) start() bool {
	var first [1]byte

	if s.rng.Offset > 0 {
		var handoff [1]byte
		if _, err := s.fill(handoff[:], s.rng.Offset-1); err != nil {
			s.degrade(fmt.Errorf("handoff byte: %w", err))
			return false
		}
		if _, err := s.fill(first[:], s.rng.Offset); err != nil {
			s.degrade(err)
			return false
		}
		if s.cls.IsWordEnd(handoff[0], first[0]) {
			s.result.Count++
			s.result.BoundaryEvent = true
		}
	} else if _, err := s.fill(first[:], 0); err != nil {
		s.degrade(err)
		return false
	}

	s.last = first[0]
	s.advance(1)

	return true
}

func (s *rangeScan) consume(window []byte) {
	for _, b := range window {
		if s.cls.IsWordEnd(s.last, b) {
			s.result.Count++
		}
		s.last = b
	}
	s.advance(len(window))
}

// tail counts a word that runs up to end of file with no separator after it.
func (s *rangeScan) tail() {
	if s.rng.End() != s.fileLength {
		return
	}
	if s.cls.Class(s.last) == Letter {
		s.result.Count++
		s.result.TailEvent = true
	}
}

func (s *rangeScan) advance(n int) {
	if n == 0 {
		return
	}
	s.pos += uint64(n)
	s.result.BytesRead += uint64(n)
	if s.opts.OnRead != nil {
		s.opts.OnRead(n)
	}
}

// fill reads len(p) bytes at off. A failed read is retried where it left off;
// after MaxReadFailures consecutive failures fill returns what it has.
func (s *rangeScan) fill(p []byte, off uint64) (int, error) {
	filled := 0
	failures := 0

	for filled < len(p) {
		n, err := s.r.ReadAt(p[filled:], int64(off)+int64(filled))
		filled += n
		if filled == len(p) {
			return filled, nil
		}

		if n > 0 {
			failures = 0
		}
		if err == nil {
			if n > 0 {
				continue
			}
			err = io.ErrNoProgress
		}

		failures++
		if failures >= s.opts.MaxReadFailures {
			return filled, fmt.Errorf("%w at offset %d after %d attempts: %w",
				ErrTransientRead, off+uint64(filled), failures, err)
		}
		s.result.Retries++
	}

	return filled, nil
}

func (s *rangeScan) degrade(err error) {
	s.result.Degraded = true
	s.result.Err = fmt.Errorf("range %s: %w: %w", s.rng, ErrDegradedScan, err)
}
