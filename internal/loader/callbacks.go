// Package loader implements the binding pipeline: it takes a
// consistent snapshot of the data model, splits it by the currently
// shown workspace screen, orders it spatially, and delivers it to the
// consumer in small batches. The current page goes onto the UI queue
// first and everything else waits behind the first-draw gate.
package loader

import (
	"sync"

	"github.com/nicobailon/deskmux/internal/executor"
	"github.com/nicobailon/deskmux/internal/model"
)

// Callbacks is the consumer contract. Every call is fire-and-forget
// and must tolerate being invoked while the consumer is tearing down.
type Callbacks interface {
	// GetCurrentWorkspaceScreen returns the page index the consumer is
	// showing, or a negative value when it has none.
	GetCurrentWorkspaceScreen() int

	ClearPendingBinds()
	StartBinding()
	BindScreens(orderedScreenIDs []int64)
	BindItems(items []*model.ItemInfo, isRestore bool)
	// FinishFirstPageBind receives the draw gate holding the remaining
	// pages, or nil when everything was bound in one phase.
	FinishFirstPageBind(gate *executor.DrawGated)
	OnPageBoundSynchronously(page int)
	// ExecuteOnNextDraw hands the consumer the gate it must Trigger
	// after its next completed render.
	ExecuteOnNextDraw(gate *executor.DrawGated)
	FinishBindingItems()

	BindDeepShortcutMap(shortcuts map[string][]string)
	BindAllApplications(apps []model.AppInfo)
	BindAllWidgets(catalog map[string][]model.WidgetSpec)
}

// Ref is the non-owning consumer handle. Scheduled units resolve it at
// run time instead of capturing the consumer, so a consumer that went
// away between enqueue and execution turns the unit into a no-op.
type Ref struct {
	mu sync.Mutex
	cb Callbacks
}

func NewRef() *Ref {
	return &Ref{}
}

// Set attaches (or replaces) the consumer.
func (r *Ref) Set(cb Callbacks) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cb = cb
}

// Clear detaches the consumer. In-flight units degrade to no-ops.
func (r *Ref) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cb = nil
}

// Get returns the consumer or nil.
func (r *Ref) Get() Callbacks {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cb
}
