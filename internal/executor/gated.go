package executor

import "sync"

// DrawGated wraps a target executor and buffers all units until a
// one-shot Trigger, after which buffered units are flushed in order
// and the gate becomes a pass-through. The consumer fires the trigger
// once it has completed its first render of the current page.
type DrawGated struct {
	target Executor

	mu       sync.Mutex
	released bool
	pending  []func()
}

func NewDrawGated(target Executor) *DrawGated {
	return &DrawGated{target: target}
}

// Execute buffers fn until the gate is released, then forwards it.
func (d *DrawGated) Execute(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		d.target.Execute(fn)
		return
	}
	d.pending = append(d.pending, fn)
}

// Trigger releases the gate. The first call flushes buffered units to
// the target in order; later calls are no-ops. The mutex is held
// through the flush so a concurrent Execute cannot jump the buffered
// units.
func (d *DrawGated) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}
	d.released = true
	for _, fn := range d.pending {
		d.target.Execute(fn)
	}
	d.pending = nil
}

// Released reports whether the gate has fired.
func (d *DrawGated) Released() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}
