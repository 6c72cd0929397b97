package wordrange

import "fmt"

// Plan divides a file of fileLength bytes into n contiguous, non-overlapping
// ranges. Every range but the last has size fileLength/n; the last one also
// absorbs the remainder.
func Plan(fileLength, n uint64) ([]Range, error) {
	if n == 0 {
		return nil, fmt.Errorf("%w: number of ranges must be > 0", ErrInvalidConfig)
	}
	if fileLength == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidConfig)
	}

	chunk := fileLength / n
	remainder := fileLength % n

	ranges := make([]Range, n)
	for i := range n {
		ranges[i] = Range{
			Index:  int(i),
			Offset: i * chunk,
			Size:   chunk,
		}
	}
	ranges[n-1].Size += remainder

	return ranges, nil
}
