// Package backoff provides a grow-while-idle delay for polling loops:
// each idle round waits longer, up to a limit, and any productive
// round resets the delay to the base.
package backoff

import "time"

type Backoff struct {
	base  time.Duration
	limit time.Duration
	next  time.Duration
}

func New(base, limit time.Duration) *Backoff {
	if base <= 0 {
		base = time.Second
	}
	if limit < base {
		limit = base
	}
	return &Backoff{base: base, limit: limit, next: base}
}

// Next returns the delay to wait before the next poll and doubles the
// internal step.
func (b *Backoff) Next() time.Duration {
	d := b.next
	b.next *= 2
	if b.next > b.limit {
		b.next = b.limit
	}
	return d
}

func (b *Backoff) Reset() {
	b.next = b.base
}
