package loader

import (
	"fmt"
	"time"

	"github.com/nicobailon/deskmux/internal/logger"
	"github.com/nicobailon/deskmux/internal/model"
)

// WorkspaceSource supplies the persisted layout. Implemented by the
// favorites store.
type WorkspaceSource interface {
	LoadWorkspace() (items, widgets []*model.ItemInfo, screens []int64, err error)
	LoadShortcuts() (map[string][]string, error)
}

// AppSource supplies the launchable application list. Implemented by
// the app scanner.
type AppSource interface {
	Scan() ([]model.AppInfo, error)
}

const defaultIdleTimeout = time.Second

// Task is the background producer: it fills the data model from the
// workspace source and drives one full binding run. The workspace
// binds first; the heavier phases wait for the UI queue to go idle so
// they never starve the visible page.
type Task struct {
	Source   WorkspaceSource
	Apps     AppSource
	Model    *model.DataModel
	AppsList *model.AllAppsList
	Results  *Results

	// IdleTimeout bounds each wait on the UI idle lock.
	IdleTimeout time.Duration
}

// Run executes one load-and-bind pass. It is invoked once per fresh
// Results; the watcher re-runs it with a new pipeline on change.
func (t *Task) Run() error {
	timeout := t.IdleTimeout
	if timeout <= 0 {
		timeout = defaultIdleTimeout
	}

	items, widgets, screens, err := t.Source.LoadWorkspace()
	if err != nil {
		return fmt.Errorf("load workspace: %w", err)
	}
	t.Model.SetWorkspace(items, widgets, screens)
	t.Results.BindWorkspace()

	if !t.Results.NewIdleLock().Wait(timeout) {
		logger.Debug("loader %s: idle wait timed out before app bind", t.Results.RunID())
	}

	apps, err := t.Apps.Scan()
	if err != nil {
		// Workspace binding already succeeded; an unreadable app dir
		// should not take the launcher down.
		logger.Warn("loader %s: app scan: %v", t.Results.RunID(), err)
		apps = nil
	}
	t.AppsList.Set(apps)
	t.Results.BindAllApps()

	if !t.Results.NewIdleLock().Wait(timeout) {
		logger.Debug("loader %s: idle wait timed out before shortcut bind", t.Results.RunID())
	}

	shortcuts, err := t.Source.LoadShortcuts()
	if err != nil {
		logger.Warn("loader %s: load shortcuts: %v", t.Results.RunID(), err)
	} else {
		t.Model.SetDeepShortcuts(shortcuts)
		t.Results.BindDeepShortcuts()
	}

	t.Model.SetWidgetCatalog(widgetCatalog(widgets))
	t.Results.BindWidgets()
	return nil
}

// widgetCatalog merges the built-in providers with any provider seen
// on a placed widget.
func widgetCatalog(placed []*model.ItemInfo) map[string][]model.WidgetSpec {
	catalog := map[string][]model.WidgetSpec{
		"clock": {{Provider: "clock", Label: "Clock", SpanX: 2, SpanY: 1}},
		"date":  {{Provider: "date", Label: "Date", SpanX: 2, SpanY: 1}},
		"sys":   {{Provider: "sys", Label: "System load", SpanX: 2, SpanY: 1}},
	}
	for _, w := range placed {
		if w == nil || w.Provider == "" {
			continue
		}
		if _, ok := catalog[w.Provider]; !ok {
			catalog[w.Provider] = []model.WidgetSpec{{
				Provider: w.Provider,
				Label:    w.Label,
				SpanX:    w.SpanX,
				SpanY:    w.SpanY,
			}}
		}
	}
	return catalog
}
