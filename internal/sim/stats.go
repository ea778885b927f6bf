package sim

import (
	"errors"
	"slices"
)

// ErrNoResults is returned when statistics are requested over nothing.
var ErrNoResults = errors.New("no results recorded")

// Summary holds the aggregate statistics of a run.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median uint64  `json:"median"`
	Min    uint64  `json:"min"`
	Max    uint64  `json:"max"`
	P90    uint64  `json:"p90"`
	Faults int     `json:"faults"`
}

// Summarize sorts a copy of results and derives count, mean, median, min, max
// and the 90th percentile. The median is the element at count/2 of the sorted
// results, so even counts report the upper middle value.
func Summarize(results []uint64) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, ErrNoResults
	}
	sorted := slices.Clone(results)
	slices.Sort(sorted)

	var sum float64
	for _, r := range sorted {
		sum += float64(r)
	}
	n := len(sorted)
	return Summary{
		Count:  n,
		Mean:   sum / float64(n),
		Median: sorted[n/2],
		Min:    sorted[0],
		Max:    sorted[n-1],
		P90:    sorted[n*9/10],
	}, nil
}
