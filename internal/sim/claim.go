package sim

import "sync/atomic"

// Claimer hands out instance indices in [0, total) exactly once each across
// any number of goroutines.
type Claimer struct {
	next  atomic.Int64
	total int64
}

// NewClaimer returns a claimer over total instances.
func NewClaimer(total int) *Claimer {
	return &Claimer{total: int64(total)}
}

// Claim returns the next unclaimed index, or false once all are taken.
func (c *Claimer) Claim() (int, bool) {
	i := c.next.Add(1) - 1
	if i >= c.total {
		return 0, false
	}
	return int(i), true
}

// Claimed reports how many indices have been handed out.
func (c *Claimer) Claimed() int {
	n := c.next.Load()
	if n > c.total {
		n = c.total
	}
	return int(n)
}

// Total is the number of instances the claimer covers.
func (c *Claimer) Total() int { return int(c.total) }
