package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nicobailon/deskmux/internal/config"
	"github.com/nicobailon/deskmux/internal/executor"
	"github.com/nicobailon/deskmux/internal/model"
	"github.com/nicobailon/deskmux/internal/recent"
)

type fakeCommander struct {
	launched []string
}

func (f *fakeCommander) Launch(execLine string) error {
	f.launched = append(f.launched, execLine)
	return nil
}

func testModel() appModel {
	cfg := &config.Config{GridRows: 3, GridCols: 3, DockSlots: 3, Theme: "catppuccin-mocha"}
	return initialModel(Deps{
		Cfg:         cfg,
		Commander:   &fakeCommander{},
		RecentStore: &recent.Store{},
		Consumer:    NewConsumer(func(tea.Msg) {}),
	})
}

func apply(t *testing.T, m appModel, msgs ...tea.Msg) appModel {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		var ok bool
		m, ok = next.(appModel)
		if !ok {
			t.Fatalf("update returned %T", next)
		}
		// run side-effecting commands (launches); the produced message
		// is not fed back
		if cmd != nil {
			cmd()
		}
	}
	return m
}

func boundWorkspace(t *testing.T, m appModel) appModel {
	return apply(t, m,
		clearPendingBindsMsg{},
		startBindingMsg{},
		screensBoundMsg{screenIDs: []int64{101, 102}},
		itemsBoundMsg{items: []*model.ItemInfo{
			{ID: 1, Container: model.ContainerHotseat, ScreenID: 0, Title: "Terminal", Exec: "term", AppID: "term", SpanX: 1, SpanY: 1},
			{ID: 2, Container: model.ContainerDesktop, ScreenID: 101, CellX: 0, CellY: 0, Title: "Files", Exec: "files", AppID: "files", SpanX: 1, SpanY: 1},
			{ID: 3, Container: model.ContainerDesktop, ScreenID: 101, CellX: 1, CellY: 0, Kind: model.KindFolder, Title: "Tools", SpanX: 1, SpanY: 1},
			{ID: 4, Container: 3, Title: "Editor", Exec: "edit", AppID: "edit"},
		}},
		bindFinishedMsg{},
	)
}

func TestBindMessagesPopulateGrid(t *testing.T) {
	m := boundWorkspace(t, testModel())

	if len(m.data.ScreenIDs) != 2 {
		t.Fatalf("screens not applied: %v", m.data.ScreenIDs)
	}
	if len(m.grid.Dock) != 1 || m.grid.Dock[0].Title != "Terminal" {
		t.Fatalf("dock mismatch: %+v", m.grid.Dock)
	}
	if cell, ok := m.grid.Cells[0]; !ok || cell.Title != "Files" {
		t.Fatalf("cell (0,0) mismatch: %+v", m.grid.Cells)
	}
	if cell, ok := m.grid.Cells[1]; !ok || !cell.IsFolder {
		t.Fatalf("cell (1,0) should be a folder: %+v", m.grid.Cells)
	}
	if m.binding {
		t.Fatalf("binding flag should clear on finish")
	}
}

func TestStartBindingResetsStagedItems(t *testing.T) {
	m := boundWorkspace(t, testModel())
	m = apply(t, m,
		startBindingMsg{},
		screensBoundMsg{screenIDs: []int64{101}},
		bindFinishedMsg{},
	)
	if len(m.data.Desktop) != 0 || len(m.data.Hotseat) != 0 {
		t.Fatalf("stale items survived a new run: %+v", m.data)
	}
}

func TestIncrementalItemsAppendToBoundWorkspace(t *testing.T) {
	m := boundWorkspace(t, testModel())

	// A pin pass delivers plain item batches with no clear or start
	// phase; everything already bound must survive.
	m = apply(t, m, itemsBoundMsg{items: []*model.ItemInfo{
		{ID: 9, Container: model.ContainerDesktop, ScreenID: 101, CellX: 2, CellY: 0, Title: "Mail", Exec: "mail", AppID: "mail", SpanX: 1, SpanY: 1},
	}})

	if got := len(m.data.Desktop[101]); got != 3 {
		t.Fatalf("desktop lost previously bound items: have %d, want 3", got)
	}
	if len(m.data.Hotseat) != 1 {
		t.Fatalf("dock lost previously bound items: %+v", m.data.Hotseat)
	}
	if cell, ok := m.grid.Cells[2]; !ok || cell.Title != "Mail" {
		t.Fatalf("pinned item not projected into the grid: %+v", m.grid.Cells)
	}
}

func TestNextDrawReleasesGate(t *testing.T) {
	q := executor.NewQueue()
	t.Cleanup(q.Close)
	gate := executor.NewDrawGated(q)

	m := testModel()
	next, cmd := m.Update(nextDrawMsg{gate: gate})
	if _, ok := next.(appModel); !ok {
		t.Fatalf("update returned %T", next)
	}
	if cmd == nil {
		t.Fatalf("expected a release command")
	}
	cmd()
	if !gate.Released() {
		t.Fatalf("gate should be released after the draw command runs")
	}
}

func TestPageSwitchUpdatesConsumer(t *testing.T) {
	m := boundWorkspace(t, testModel())
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	if m.page != 1 {
		t.Fatalf("expected page 1, got %d", m.page)
	}
	if got := m.deps.Consumer.GetCurrentWorkspaceScreen(); got != 1 {
		t.Fatalf("consumer page mirror not updated: %d", got)
	}

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	if m.page != 1 {
		t.Fatalf("page should clamp at the last screen, got %d", m.page)
	}
}

func TestEnterLaunchesSelectedItem(t *testing.T) {
	m := boundWorkspace(t, testModel())
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	cmdr := m.deps.Commander.(*fakeCommander)
	if len(cmdr.launched) != 1 || cmdr.launched[0] != "files" {
		t.Fatalf("expected files launch, got %v", cmdr.launched)
	}
	if len(m.deps.RecentStore.Entries) != 1 {
		t.Fatalf("launch should land in the recent store")
	}
}

func TestEnterOnFolderOpensIt(t *testing.T) {
	m := boundWorkspace(t, testModel())
	m = apply(t, m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.state != stateFolder || m.openFolder != 3 {
		t.Fatalf("folder should open: state=%d folder=%d", m.state, m.openFolder)
	}

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	cmdr := m.deps.Commander.(*fakeCommander)
	if len(cmdr.launched) != 1 || cmdr.launched[0] != "edit" {
		t.Fatalf("folder member should launch: %v", cmdr.launched)
	}
	if m.state != stateWorkspace {
		t.Fatalf("launching should close the folder")
	}
}

func TestDrawerFiltersApps(t *testing.T) {
	m := boundWorkspace(t, testModel())
	m = apply(t, m, appsBoundMsg{apps: []model.AppInfo{
		{AppID: "term", Title: "Terminal", Exec: "term"},
		{AppID: "files", Title: "Files", Exec: "files"},
	}})

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if m.state != stateDrawer {
		t.Fatalf("drawer should open")
	}

	m = apply(t, m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}},
	)
	filtered := m.drawer.Filtered()
	if len(filtered) != 1 || filtered[0].AppID != "term" {
		t.Fatalf("filter mismatch: %v", filtered)
	}

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	cmdr := m.deps.Commander.(*fakeCommander)
	if len(cmdr.launched) != 1 || cmdr.launched[0] != "term" {
		t.Fatalf("drawer launch mismatch: %v", cmdr.launched)
	}
}

func TestDeepShortcutLaunch(t *testing.T) {
	m := boundWorkspace(t, testModel())
	m = apply(t, m,
		appsBoundMsg{apps: []model.AppInfo{{AppID: "term", Title: "Terminal", Exec: "term"}}},
		shortcutsBoundMsg{shortcuts: map[string][]string{"term": {"New Window"}}},
	)

	m = apply(t, m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	cmdr := m.deps.Commander.(*fakeCommander)
	if len(cmdr.launched) != 1 {
		t.Fatalf("expected one launch, got %v", cmdr.launched)
	}
	if len(m.deps.RecentStore.Entries) == 0 {
		t.Fatalf("shortcut launch should still count as a launch")
	}
}
