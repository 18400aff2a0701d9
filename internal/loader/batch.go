package loader

import (
	"github.com/nicobailon/deskmux/internal/executor"
	"github.com/nicobailon/deskmux/internal/model"
)

// ItemsChunk is the batch size for workspace icons. Small enough that
// one batch binds within a single scheduling quantum of the consumer.
const ItemsChunk = 6

// bindItemBatches enqueues the ordered items as ⌈N/6⌉ independent
// units on exec, then the widgets one per unit (widget binds are
// heavier and each is meaningful on its own). Every unit re-resolves
// the consumer and skips silently if it is gone, so a torn-down
// consumer can never wedge the queue.
func (r *Results) bindItemBatches(items, widgets []*model.ItemInfo, exec executor.Executor) {
	n := len(items)
	for i := 0; i < n; i += ItemsChunk {
		chunk := items[i:min(i+ItemsChunk, n)]
		exec.Execute(func() {
			if cb := r.callbacks.Get(); cb != nil {
				cb.BindItems(chunk, false)
			}
		})
	}
	for _, w := range widgets {
		batch := []*model.ItemInfo{w}
		exec.Execute(func() {
			if cb := r.callbacks.Get(); cb != nil {
				cb.BindItems(batch, false)
			}
		})
	}
}
