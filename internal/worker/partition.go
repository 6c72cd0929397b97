package worker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"pkg.jsn.cam/wordrange/pkg/wordrange"
)

// partitionFile stats path and splits it into one range per worker. The file
// is assumed not to change until every worker is done.
func partitionFile(path string, workers int) (uint64, []wordrange.Range, error) {
	if path == "" {
		return 0, nil, fmt.Errorf("%w: input path is required", wordrange.ErrInvalidConfig)
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil, fmt.Errorf("%w: %s does not exist", wordrange.ErrInvalidConfig, path)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.Mode().IsRegular() {
		return 0, nil, fmt.Errorf("%w: %s is not a regular file", wordrange.ErrInvalidConfig, path)
	}

	size := uint64(info.Size())
	ranges, err := wordrange.Plan(size, uint64(workers))
	if err != nil {
		return 0, nil, fmt.Errorf("plan %s: %w", path, err)
	}

	return size, ranges, nil
}
