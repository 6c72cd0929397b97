package store

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"golang.org/x/mod/semver"
	"pkg.jsn.cam/wordrange/internal/worker"
	"pkg.jsn.cam/wordrange/pkg/storage"
	"pkg.jsn.cam/wordrange/pkg/wordrange"
)

// RecordVersion is the format version written with every run. Records whose
// major version differs are not readable.
const RecordVersion = "v1.0.0"

var runsBucket = []byte("runs")

var (
	ErrRunNotFound         = errors.New("run not found")
	ErrIncompatibleVersion = errors.New("incompatible record version")
)

// Record is a stored scan run.
type Record struct {
	StartedAt time.Time `json:"started_at"`

	Version string `json:"version"`
	RunID   string `json:"run_id"`
	Path    string `json:"path"`
	Skip    string `json:"skip"`

	DegradedRanges []int         `json:"degraded_ranges,omitempty"`
	Ranges         []RangeRecord `json:"ranges"`

	FileSize   uint64        `json:"file_size"`
	Total      uint64        `json:"total"`
	Elapsed    time.Duration `json:"elapsed"`
	Workers    int           `json:"workers"`
	BufferSize int           `json:"buffer_size"`
	Degraded   bool          `json:"degraded"`
}

// RangeRecord is the stored form of one ScanResult; the error is kept as text.
type RangeRecord struct {
	wordrange.ScanResult

	Error string `json:"error,omitempty"`
}

// NewRecord converts a finished run into its stored form.
func NewRecord(rep *worker.Report) Record {
	rec := Record{
		Version:        RecordVersion,
		RunID:          rep.RunID,
		Path:           rep.Path,
		Skip:           rep.Skip,
		StartedAt:      rep.StartedAt,
		Elapsed:        rep.Elapsed,
		FileSize:       rep.FileSize,
		Workers:        rep.Workers,
		BufferSize:     rep.BufferSize,
		Total:          rep.Summary.Total,
		Degraded:       rep.Summary.Degraded,
		DegradedRanges: rep.Summary.DegradedRanges,
		Ranges:         make([]RangeRecord, len(rep.Results)),
	}

	for i, res := range rep.Results {
		rec.Ranges[i] = RangeRecord{ScanResult: res}
		if res.Err != nil {
			rec.Ranges[i].Error = res.Err.Error()
		}
	}

	return rec
}

// IsCompatibleVersion reports whether a record written with version v can be
// read by this build. Only the major version has to match.
func IsCompatibleVersion(v string) bool {
	return semver.IsValid(v) && semver.Major(v) == semver.Major(RecordVersion)
}

// Storage keeps the history of scan runs
type Storage struct {
	backend storage.Backend
}

// NewStorage opens a bbolt-backed history at dbPath
func NewStorage(dbPath string) (*Storage, error) {
	backend, err := storage.NewBboltBackend(dbPath)
	if err != nil {
		return nil, err
	}

	s, err := NewStorageWithBackend(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return s, nil
}

// NewStorageWithBackend creates a history on top of an existing backend
func NewStorageWithBackend(backend storage.Backend) (*Storage, error) {
	if err := backend.EnsureBucket(runsBucket); err != nil {
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}

	return &Storage{backend: backend}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.backend.Close()
}

// Save stores a finished run and returns its record.
func (s *Storage) Save(rep *worker.Report) (Record, error) {
	rec := NewRecord(rep)

	if err := storage.PutJSON(s.backend, runsBucket, []byte(rec.RunID), rec); err != nil {
		return Record{}, fmt.Errorf("save run %s: %w", rec.RunID, err)
	}

	return rec, nil
}

// Get loads one run by ID.
func (s *Storage) Get(runID string) (Record, error) {
	var rec Record

	found, err := storage.GetJSON(s.backend, runsBucket, []byte(runID), &rec)
	if err != nil {
		return Record{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	if !found {
		return Record{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if !IsCompatibleVersion(rec.Version) {
		return Record{}, fmt.Errorf("%w: run %s has version %q, want %s.x.x",
			ErrIncompatibleVersion, runID, rec.Version, semver.Major(RecordVersion))
	}

	return rec, nil
}

// List returns all readable runs, newest first. Records in an incompatible
// format are skipped.
func (s *Storage) List() ([]Record, error) {
	var records []Record

	err := s.backend.ForEach(runsBucket, func(k, v []byte) error {
		var rec Record
		if err := storage.DecodeJSON(v, &rec); err != nil {
			return fmt.Errorf("run %s: %w", k, err)
		}
		if !IsCompatibleVersion(rec.Version) {
			log.Printf("[STORE] Skipping run %s with version %q", k, rec.Version)
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(records)

	return records, nil
}

// Prune deletes all but the newest keep runs and returns how many were removed.
func (s *Storage) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be >= 0, got %d", keep)
	}

	removed := 0

	err := s.backend.Update(runsBucket, func(b storage.Bucket) error {
		var records []Record
		err := b.ForEach(func(k, v []byte) error {
			var rec Record
			if err := storage.DecodeJSON(v, &rec); err != nil {
				return fmt.Errorf("run %s: %w", k, err)
			}
			rec.RunID = string(k)
			records = append(records, rec)
			return nil
		})
		if err != nil {
			return err
		}

		sortNewestFirst(records)

		for _, rec := range records[min(keep, len(records)):] {
			if err := b.Delete([]byte(rec.RunID)); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		log.Printf("[STORE] Pruned %d runs, kept %d", removed, keep)
	}

	return removed, nil
}

func sortNewestFirst(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
}
