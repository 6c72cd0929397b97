package worker

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"pkg.jsn.cam/wordrange/pkg/wordrange"
)

// Config holds worker pool configuration
type Config struct {
	// Progress receives a progress bar while scanning; nil disables it.
	Progress io.Writer

	// Opener opens one private handle per range (default: OpenFile).
	Opener Opener

	// Skip is the set of bytes that neither end nor separate words. Nil means
	// wordrange.DefaultSkip; an empty non-nil slice means no skip bytes.
	Skip []byte

	Workers         int // number of ranges, one goroutine each
	BufferSize      int // read window per worker (default: wordrange.DefaultBufferSize)
	MaxReadFailures int // consecutive failed reads before a range is abandoned (default: 3)
}

// Validate rejects configurations that cannot produce a scan.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", wordrange.ErrInvalidConfig, c.Workers)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("%w: buffer size must be > 0, got %d", wordrange.ErrInvalidConfig, c.BufferSize)
	}
	if c.MaxReadFailures < 0 {
		return fmt.Errorf("%w: max read failures must be >= 0, got %d", wordrange.ErrInvalidConfig, c.MaxReadFailures)
	}
	return nil
}

// Pool scans one file with a fixed number of independent range workers.
type Pool struct {
	cls    *wordrange.Classifier
	config Config
}

// NewPool validates cfg and fills in defaults.
func NewPool(cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.BufferSize == 0 {
		cfg.BufferSize = wordrange.DefaultBufferSize
	}
	if cfg.MaxReadFailures == 0 {
		cfg.MaxReadFailures = wordrange.DefaultMaxReadFailures
	}
	if cfg.Opener == nil {
		cfg.Opener = OpenFile
	}

	skip := cfg.Skip
	if skip == nil {
		skip = []byte(wordrange.DefaultSkip)
	}
	cls, err := wordrange.NewClassifier(skip)
	if err != nil {
		return nil, err
	}
	cfg.Skip = skip

	return &Pool{cls: cls, config: cfg}, nil
}

// Run partitions the file at path and scans every range concurrently. It
// returns an error only when the scan cannot start; failures of individual
// ranges are reported in the Report.
func (p *Pool) Run(ctx context.Context, path string) (*Report, error) {
	size, ranges, err := partitionFile(path, p.config.Workers)
	if err != nil {
		return nil, err
	}

	runID := newRunID()
	log.Printf("[POOL:%s] Scanning %s (%d bytes) with %d workers, buffer %d",
		runID, path, size, len(ranges), p.config.BufferSize)

	opts := wordrange.ScanOptions{
		Classifier:      p.cls,
		BufferSize:      p.config.BufferSize,
		MaxReadFailures: p.config.MaxReadFailures,
	}

	var bar *progressbar.ProgressBar
	if p.config.Progress != nil {
		bar = newProgressBar(p.config.Progress, size)
		opts.OnRead = func(n int) { _ = bar.Add(n) }
	}

	processor := NewProcessor(p.config.Opener, opts)
	results := make([]wordrange.ScanResult, len(ranges))

	startedAt := time.Now()

	// Workers never fail the group: Wait is only the barrier.
	var g errgroup.Group
	for i, rng := range ranges {
		g.Go(func() error {
			results[i] = processor.ProcessRange(ctx, path, size, rng)
			return nil
		})
	}
	_ = g.Wait()

	elapsed := time.Since(startedAt)

	if bar != nil {
		_ = bar.Finish()
	}

	report := &Report{
		RunID:      runID,
		Path:       path,
		FileSize:   size,
		Workers:    len(ranges),
		BufferSize: p.config.BufferSize,
		Skip:       string(p.config.Skip),
		StartedAt:  startedAt,
		Elapsed:    elapsed,
		Results:    results,
		Summary:    wordrange.Summarize(results),
	}

	if report.Summary.Degraded {
		log.Printf("[POOL:%s] Scan degraded: ranges %v failed, total %d is a lower bound",
			runID, report.Summary.DegradedRanges, report.Summary.Total)
	} else {
		log.Printf("[POOL:%s] Scan finished: %d words in %v", runID, report.Summary.Total, elapsed)
	}

	return report, nil
}

func newProgressBar(w io.Writer, size uint64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(int64(size),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// newRunID returns a time-ordered identifier so stored runs sort by start time.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// File is the read capability a range worker needs.
type File interface {
	io.ReaderAt
	io.Closer
}

// Opener opens a private read handle onto the input file.
type Opener func(path string) (File, error)

// OpenFile opens path read-only.
func OpenFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
