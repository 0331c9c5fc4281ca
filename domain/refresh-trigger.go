package domain

import "sync/atomic"

// RefreshTrigger is the shared version counter that mutating actions bump to
// tell independently-polling views "something changed, refetch". Subscribers
// compare the current value against the one they saw last; several bumps
// between two observations collapse into a single refetch.
type RefreshTrigger struct {
	counter int64
}

func NewRefreshTrigger() *RefreshTrigger {
	return &RefreshTrigger{}
}

// Bump is the only mutator.
func (t *RefreshTrigger) Bump() {
	atomic.AddInt64(&t.counter, 1)
}

// Current returns the opaque token. Consumers only compare it for equality
// with a previously seen value.
func (t *RefreshTrigger) Current() int64 {
	return atomic.LoadInt64(&t.counter)
}
