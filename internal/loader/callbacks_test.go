package loader

import (
	"sync"

	"github.com/nicobailon/deskmux/internal/executor"
	"github.com/nicobailon/deskmux/internal/model"
)

// recCallbacks is a consumer that records every bind call in arrival
// order. ExecuteOnNextDraw releases the gate immediately, standing in
// for the first completed render.
type recCallbacks struct {
	mu   sync.Mutex
	page int

	events        []string
	batches       [][]*model.ItemInfo
	screens       []int64
	apps          []model.AppInfo
	shortcuts     map[string][]string
	catalog       map[string][]model.WidgetSpec
	firstPageGate bool
	boundPage     int
	holdGate      bool
	gate          *executor.DrawGated
}

func newRecCallbacks(page int) *recCallbacks {
	return &recCallbacks{page: page, boundPage: -99}
}

func (c *recCallbacks) record(ev string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *recCallbacks) Events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	copy(out, c.events)
	return out
}

func (c *recCallbacks) Batches() [][]*model.ItemInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]*model.ItemInfo, len(c.batches))
	copy(out, c.batches)
	return out
}

func (c *recCallbacks) GetCurrentWorkspaceScreen() int { return c.page }

func (c *recCallbacks) ClearPendingBinds() { c.record("clear") }
func (c *recCallbacks) StartBinding()      { c.record("start") }

func (c *recCallbacks) BindScreens(ids []int64) {
	c.mu.Lock()
	c.screens = ids
	c.mu.Unlock()
	c.record("screens")
}

func (c *recCallbacks) BindItems(items []*model.ItemInfo, isRestore bool) {
	c.mu.Lock()
	batch := make([]*model.ItemInfo, len(items))
	copy(batch, items)
	c.batches = append(c.batches, batch)
	c.mu.Unlock()
	c.record("items")
}

func (c *recCallbacks) FinishFirstPageBind(gate *executor.DrawGated) {
	c.mu.Lock()
	c.firstPageGate = gate != nil
	c.mu.Unlock()
	c.record("firstPage")
}

func (c *recCallbacks) OnPageBoundSynchronously(page int) {
	c.mu.Lock()
	c.boundPage = page
	c.mu.Unlock()
	c.record("pageBound")
}

func (c *recCallbacks) ExecuteOnNextDraw(gate *executor.DrawGated) {
	c.record("nextDraw")
	c.mu.Lock()
	hold := c.holdGate
	c.gate = gate
	c.mu.Unlock()
	if !hold {
		gate.Trigger()
	}
}

func (c *recCallbacks) Gate() *executor.DrawGated {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate
}

func (c *recCallbacks) FinishBindingItems() { c.record("finish") }

func (c *recCallbacks) BindDeepShortcutMap(m map[string][]string) {
	c.mu.Lock()
	c.shortcuts = m
	c.mu.Unlock()
	c.record("shortcuts")
}

func (c *recCallbacks) BindAllApplications(apps []model.AppInfo) {
	c.mu.Lock()
	c.apps = apps
	c.mu.Unlock()
	c.record("apps")
}

func (c *recCallbacks) BindAllWidgets(catalog map[string][]model.WidgetSpec) {
	c.mu.Lock()
	c.catalog = catalog
	c.mu.Unlock()
	c.record("widgets")
}
