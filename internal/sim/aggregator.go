package sim

import "sync"

// Aggregator collects per-game round counts from concurrent workers. Order of
// the collected results is unspecified.
type Aggregator struct {
	mu      sync.Mutex
	results []uint64
	faults  []Fault
}

// Fault describes a worker that stopped because of an unexpected panic.
type Fault struct {
	Worker   int    `json:"worker"`
	Instance int    `json:"instance"`
	Reason   string `json:"reason"`
}

// NewAggregator preallocates room for capacity results.
func NewAggregator(capacity int) *Aggregator {
	if capacity < 0 {
		capacity = 0
	}
	return &Aggregator{results: make([]uint64, 0, capacity)}
}

// Record appends one round count.
func (a *Aggregator) Record(rounds uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, rounds)
}

// RecordFault notes a failed instance. The results already recorded are kept.
func (a *Aggregator) RecordFault(f Fault) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.faults = append(a.faults, f)
}

// Results returns a copy of everything recorded so far.
func (a *Aggregator) Results() []uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]uint64, len(a.results))
	copy(out, a.results)
	return out
}

// Faults returns a copy of the recorded faults.
func (a *Aggregator) Faults() []Fault {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Fault, len(a.faults))
	copy(out, a.faults)
	return out
}

// Len returns the number of recorded results.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.results)
}

// Summarize computes statistics over what has been recorded.
func (a *Aggregator) Summarize() (Summary, error) {
	s, err := Summarize(a.Results())
	if err != nil {
		return s, err
	}
	s.Faults = len(a.Faults())
	return s, nil
}
