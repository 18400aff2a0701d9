package executor

import "sync"

// Queue is an unbounded FIFO executor drained by one goroutine.
// Enqueue order is execution order.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	busy   bool
	closed bool
	idle   []chan struct{}
}

func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	go q.drain()
	return q
}

// Execute enqueues fn. Units handed in after Close are dropped.
func (q *Queue) Execute(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.tasks = append(q.tasks, fn)
	q.cond.Signal()
}

// NewIdleLock returns a token satisfied once the queue has neither
// queued nor running work. Already-idle queues satisfy immediately.
func (q *Queue) NewIdleLock() *IdleLock {
	q.mu.Lock()
	defer q.mu.Unlock()
	ch := make(chan struct{})
	if len(q.tasks) == 0 && !q.busy {
		close(ch)
		return &IdleLock{ch: ch}
	}
	q.idle = append(q.idle, ch)
	return &IdleLock{ch: ch}
}

// Close stops the drain goroutine once queued work finishes.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Signal()
}

func (q *Queue) drain() {
	q.mu.Lock()
	for {
		for len(q.tasks) == 0 && !q.closed {
			q.notifyIdleLocked()
			q.cond.Wait()
		}
		if len(q.tasks) == 0 {
			q.notifyIdleLocked()
			q.mu.Unlock()
			return
		}
		fn := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.busy = true
		q.mu.Unlock()
		fn()
		q.mu.Lock()
		q.busy = false
	}
}

func (q *Queue) notifyIdleLocked() {
	for _, ch := range q.idle {
		close(ch)
	}
	q.idle = nil
}
