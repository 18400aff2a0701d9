// Package model holds the background-populated launcher data model:
// workspace items, widgets, screen order, the deep shortcut index and
// the all-apps list. The loader goroutine writes it, the binding
// pipeline reads consistent copies out of it.
package model

import "sync"

// DataModel is the shared store. All collections are guarded by one
// mutex; readers take point-in-time copies and never hold the lock
// while doing work.
type DataModel struct {
	mu sync.Mutex

	workspaceItems   []*ItemInfo
	appWidgets       []*ItemInfo
	workspaceScreens []int64

	deepShortcuts map[string][]string
	widgetCatalog map[string][]WidgetSpec
}

// Snapshot is a point-in-time copy of the three workspace collections,
// taken under a single lock acquisition so they are mutually
// consistent. The ItemInfo values themselves are shared and must not
// be mutated by consumers.
type Snapshot struct {
	Items            []*ItemInfo
	Widgets          []*ItemInfo
	OrderedScreenIDs []int64
}

func NewDataModel() *DataModel {
	return &DataModel{
		deepShortcuts: map[string][]string{},
		widgetCatalog: map[string][]WidgetSpec{},
	}
}

// Snapshot copies items, widgets and screen order in one critical
// section. No other work happens while the lock is held.
func (m *DataModel) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		Items:            make([]*ItemInfo, len(m.workspaceItems)),
		Widgets:          make([]*ItemInfo, len(m.appWidgets)),
		OrderedScreenIDs: make([]int64, len(m.workspaceScreens)),
	}
	copy(s.Items, m.workspaceItems)
	copy(s.Widgets, m.appWidgets)
	copy(s.OrderedScreenIDs, m.workspaceScreens)
	return s
}

// SetWorkspace replaces the workspace collections wholesale. Used by
// the loader task after a (re)load from the favorites store.
func (m *DataModel) SetWorkspace(items, widgets []*ItemInfo, screens []int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workspaceItems = items
	m.appWidgets = widgets
	m.workspaceScreens = screens
}

// AddItems appends newly placed items (pinned apps) to the workspace.
func (m *DataModel) AddItems(items []*ItemInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workspaceItems = append(m.workspaceItems, items...)
}

// ExistsOnWorkspace reports whether any workspace item references the
// given application ID.
func (m *DataModel) ExistsOnWorkspace(appID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.workspaceItems {
		if it != nil && it.AppID == appID {
			return true
		}
	}
	return false
}

// SetDeepShortcuts replaces the deep shortcut index.
func (m *DataModel) SetDeepShortcuts(idx map[string][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deepShortcuts = idx
}

// DeepShortcutsCopy returns a copy of the shortcut index safe to hand
// across goroutines.
func (m *DataModel) DeepShortcutsCopy() map[string][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]string, len(m.deepShortcuts))
	for k, v := range m.deepShortcuts {
		vs := make([]string, len(v))
		copy(vs, v)
		out[k] = vs
	}
	return out
}

// SetWidgetCatalog replaces the widget catalog.
func (m *DataModel) SetWidgetCatalog(catalog map[string][]WidgetSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widgetCatalog = catalog
}

// WidgetCatalogCopy returns a copy of the provider -> widgets map.
func (m *DataModel) WidgetCatalogCopy() map[string][]WidgetSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]WidgetSpec, len(m.widgetCatalog))
	for k, v := range m.widgetCatalog {
		vs := make([]WidgetSpec, len(v))
		copy(vs, v)
		out[k] = vs
	}
	return out
}
