package executor

import (
	"sync"
	"testing"
	"time"
)

const testWait = 2 * time.Second

type recorder struct {
	mu   sync.Mutex
	runs []int
}

func (r *recorder) add(n int) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.runs = append(r.runs, n)
	}
}

func (r *recorder) got() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.runs))
	copy(out, r.runs)
	return out
}

func TestQueueRunsInOrder(t *testing.T) {
	q := NewQueue()
	defer q.Close()
	rec := &recorder{}
	for i := 0; i < 50; i++ {
		q.Execute(rec.add(i))
	}
	if !q.NewIdleLock().Wait(testWait) {
		t.Fatalf("queue did not drain")
	}
	got := rec.got()
	if len(got) != 50 {
		t.Fatalf("expected 50 runs, got %d", len(got))
	}
	for i, n := range got {
		if n != i {
			t.Fatalf("out of order at %d: %d", i, n)
		}
	}
}

func TestQueueIdleLockImmediateWhenIdle(t *testing.T) {
	q := NewQueue()
	defer q.Close()
	// Give the drain goroutine a moment to park.
	time.Sleep(10 * time.Millisecond)
	select {
	case <-q.NewIdleLock().Done():
	case <-time.After(testWait):
		t.Fatalf("idle lock on empty queue not satisfied")
	}
}

func TestQueueIdleLockWaitsForRunningUnit(t *testing.T) {
	q := NewQueue()
	defer q.Close()
	release := make(chan struct{})
	started := make(chan struct{})
	q.Execute(func() {
		close(started)
		<-release
	})
	<-started
	lock := q.NewIdleLock()
	select {
	case <-lock.Done():
		t.Fatalf("idle lock satisfied while unit still running")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	if !lock.Wait(testWait) {
		t.Fatalf("idle lock never satisfied")
	}
}

func TestQueueCloseDropsNewWork(t *testing.T) {
	q := NewQueue()
	rec := &recorder{}
	q.Execute(rec.add(1))
	if !q.NewIdleLock().Wait(testWait) {
		t.Fatalf("queue did not drain")
	}
	q.Close()
	q.Execute(rec.add(2))
	time.Sleep(20 * time.Millisecond)
	if got := rec.got(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("unexpected runs after close: %v", got)
	}
}

func TestDrawGatedBuffersUntilTrigger(t *testing.T) {
	q := NewQueue()
	defer q.Close()
	g := NewDrawGated(q)
	rec := &recorder{}
	for i := 0; i < 5; i++ {
		g.Execute(rec.add(i))
	}
	time.Sleep(20 * time.Millisecond)
	if got := rec.got(); len(got) != 0 {
		t.Fatalf("gated units ran before trigger: %v", got)
	}
	g.Trigger()
	if !q.NewIdleLock().Wait(testWait) {
		t.Fatalf("queue did not drain")
	}
	got := rec.got()
	if len(got) != 5 {
		t.Fatalf("expected 5 runs, got %d", len(got))
	}
	for i, n := range got {
		if n != i {
			t.Fatalf("out of order at %d: %d", i, n)
		}
	}
}

func TestDrawGatedPassThroughAfterTrigger(t *testing.T) {
	q := NewQueue()
	defer q.Close()
	g := NewDrawGated(q)
	g.Trigger()
	if !g.Released() {
		t.Fatalf("gate not released")
	}
	rec := &recorder{}
	g.Execute(rec.add(7))
	if !q.NewIdleLock().Wait(testWait) {
		t.Fatalf("queue did not drain")
	}
	if got := rec.got(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("pass-through unit not run: %v", got)
	}
}

func TestSatisfiedIdleLock(t *testing.T) {
	if !SatisfiedIdleLock().Wait(time.Millisecond) {
		t.Fatalf("satisfied lock reported timeout")
	}
}
