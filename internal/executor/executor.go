// Package executor provides the two ordered execution contexts the
// binding pipeline runs on: a plain FIFO queue drained by a single
// goroutine, and a draw-gated queue that buffers work until the
// consumer reports its first render.
package executor

import "time"

// Executor runs units in the order they were handed in. Execute never
// blocks the caller.
type Executor interface {
	Execute(fn func())
}

// IdleLock is a one-shot token satisfied once the queue it was taken
// from has no pending or running work.
type IdleLock struct {
	ch <-chan struct{}
}

// Done returns a channel closed when the lock is satisfied.
func (l *IdleLock) Done() <-chan struct{} { return l.ch }

// Wait blocks until the lock is satisfied or the timeout elapses.
// It returns false on timeout.
func (l *IdleLock) Wait(timeout time.Duration) bool {
	select {
	case <-l.ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

// SatisfiedIdleLock returns a lock that is already satisfied. Used
// when there is no consumer and therefore nothing to wait for.
func SatisfiedIdleLock() *IdleLock {
	ch := make(chan struct{})
	close(ch)
	return &IdleLock{ch: ch}
}
