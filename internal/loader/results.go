package loader

import (
	"github.com/google/uuid"

	"github.com/nicobailon/deskmux/internal/executor"
	"github.com/nicobailon/deskmux/internal/logger"
	"github.com/nicobailon/deskmux/internal/model"
)

// InvalidPage means "no restore page requested" / "no valid current page".
const InvalidPage = -1

// Config carries the per-run pipeline parameters.
type Config struct {
	Cols       int
	Rows       int
	StrictSort bool
	// PageToBindFirst overrides the consumer's current page when >= 0.
	PageToBindFirst int
}

// Results owns one binding run: it snapshots the data model and
// delivers it to the consumer through the ordered phases of the
// pipeline. Create a fresh Results per invocation.
type Results struct {
	ui        *executor.Queue
	data      *model.DataModel
	apps      *model.AllAppsList
	callbacks *Ref
	cfg       Config
	runID     string
}

func NewResults(ui *executor.Queue, data *model.DataModel, apps *model.AllAppsList, callbacks *Ref, cfg Config) *Results {
	return &Results{
		ui:        ui,
		data:      data,
		apps:      apps,
		callbacks: callbacks,
		cfg:       cfg,
		runID:     uuid.NewString(),
	}
}

// RunID identifies this pipeline invocation in logs.
func (r *Results) RunID() string { return r.runID }

// BindWorkspace snapshots the workspace collections and binds them.
func (r *Results) BindWorkspace() {
	snap := r.data.Snapshot()
	logger.Debug("loader %s: snapshot: %d items, %d widgets, %d screens",
		r.runID, len(snap.Items), len(snap.Widgets), len(snap.OrderedScreenIDs))
	r.bindToWorkspace(snap.Items, snap.Widgets, snap.OrderedScreenIDs)
}

// currentScreen resolves the page to bind first: an explicit restore
// page wins, otherwise the consumer's current page. Out of range
// collapses to InvalidPage (there may be no workspace screens at all).
func (r *Results) currentScreen(cb Callbacks, screenCount int) int {
	curr := r.cfg.PageToBindFirst
	if curr == InvalidPage || curr < 0 {
		curr = cb.GetCurrentWorkspaceScreen()
	}
	if curr >= screenCount {
		curr = InvalidPage
	}
	return curr
}

func (r *Results) bindToWorkspace(items, widgets []*model.ItemInfo, orderedScreenIDs []int64) {
	// Resolve once up front only to decide whether to run at all; every
	// scheduled unit re-resolves for itself.
	cb := r.callbacks.Get()
	if cb == nil {
		logger.Warn("loader %s: no consumer attached, skipping bind", r.runID)
		return
	}

	page := r.currentScreen(cb, len(orderedScreenIDs))
	validFirstPage := page >= 0
	currentScreenID := model.InvalidScreenID
	if validFirstPage {
		currentScreenID = orderedScreenIDs[page]
	}

	currentItems, otherItems := FilterCurrentScreenItems(currentScreenID, items)
	currentWidgets, otherWidgets := FilterCurrentScreenItems(currentScreenID, widgets)
	SortItemsSpatially(currentItems, r.cfg.Cols, r.cfg.Rows, r.cfg.StrictSort)
	SortItemsSpatially(otherItems, r.cfg.Cols, r.cfg.Rows, r.cfg.StrictSort)
	logger.Debug("loader %s: page %d: %d current / %d other items",
		r.runID, page, len(currentItems), len(otherItems))

	r.ui.Execute(func() {
		if cb := r.callbacks.Get(); cb != nil {
			cb.ClearPendingBinds()
			cb.StartBinding()
		}
	})
	r.ui.Execute(func() {
		if cb := r.callbacks.Get(); cb != nil {
			cb.BindScreens(orderedScreenIDs)
		}
	})

	// Current page binds on the UI queue so it is visible immediately.
	r.bindItemBatches(currentItems, currentWidgets, r.ui)

	// With a valid first page the rest waits behind the draw gate; the
	// consumer releases it after its first completed render. Without
	// one, everything continues on the UI queue in a single phase.
	var gate *executor.DrawGated
	var deferred executor.Executor = r.ui
	if validFirstPage {
		gate = executor.NewDrawGated(r.ui)
		deferred = gate
	}

	r.ui.Execute(func() {
		if cb := r.callbacks.Get(); cb != nil {
			cb.FinishFirstPageBind(gate)
		}
	})

	r.bindItemBatches(otherItems, otherWidgets, deferred)

	deferred.Execute(func() {
		if cb := r.callbacks.Get(); cb != nil {
			cb.FinishBindingItems()
		}
	})

	if validFirstPage {
		r.ui.Execute(func() {
			if cb := r.callbacks.Get(); cb != nil {
				// Remaining pages bind after the first draw; tell the
				// consumer which page is already complete and hand it
				// the gate to release.
				cb.OnPageBoundSynchronously(page)
				cb.ExecuteOnNextDraw(gate)
			}
		})
	}
}

// BindAllAppsToScreen pins applications that are not yet placed
// anywhere on the workspace into free desktop cells and delivers the
// placements incrementally: batched BindItems on the UI queue, no
// clear or start phase, so the consumer appends to what it already
// shows. The placements are returned for the caller to persist.
func (r *Results) BindAllAppsToScreen() []*model.ItemInfo {
	snap := r.data.Snapshot()
	added := placeMissingApps(snap, r.apps.Copy(), r.cfg.Cols, r.cfg.Rows)
	if len(added) == 0 {
		return nil
	}
	logger.Info("loader %s: pinning %d unplaced apps", r.runID, len(added))
	r.data.AddItems(added)
	SortItemsSpatially(added, r.cfg.Cols, r.cfg.Rows, r.cfg.StrictSort)
	r.bindItemBatches(added, nil, r.ui)
	return added
}

// BindDeepShortcuts delivers a copy of the deep shortcut index.
func (r *Results) BindDeepShortcuts() {
	shortcuts := r.data.DeepShortcutsCopy()
	r.ui.Execute(func() {
		if cb := r.callbacks.Get(); cb != nil {
			cb.BindDeepShortcutMap(shortcuts)
		}
	})
}

// BindAllApps delivers a copy of the all-apps list.
func (r *Results) BindAllApps() {
	list := r.apps.Copy()
	r.ui.Execute(func() {
		if cb := r.callbacks.Get(); cb != nil {
			cb.BindAllApplications(list)
		}
	})
}

// BindWidgets delivers a copy of the widget catalog.
func (r *Results) BindWidgets() {
	catalog := r.data.WidgetCatalogCopy()
	r.ui.Execute(func() {
		if cb := r.callbacks.Get(); cb != nil {
			cb.BindAllWidgets(catalog)
		}
	})
}

// NewIdleLock returns a token satisfied when the UI queue goes idle.
// With no consumer attached there is nothing to wait for.
func (r *Results) NewIdleLock() *executor.IdleLock {
	if r.callbacks.Get() == nil {
		return executor.SatisfiedIdleLock()
	}
	return r.ui.NewIdleLock()
}
