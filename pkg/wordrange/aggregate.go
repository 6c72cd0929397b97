package wordrange

import "errors"

// Total sums the counts of all results.
func Total(results []ScanResult) uint64 {
	var total uint64
	for _, r := range results {
		total += r.Count
	}
	return total
}

// Summarize sums all results and collects the degraded ones. When the summary
// is degraded its Total is a lower bound.
func Summarize(results []ScanResult) Summary {
	s := Summary{Total: Total(results)}

	for _, r := range results {
		if !r.Degraded {
			continue
		}
		s.Degraded = true
		s.DegradedRanges = append(s.DegradedRanges, r.Range.Index)
		if r.Err != nil {
			s.errs = append(s.errs, r.Err)
		}
	}

	return s
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
