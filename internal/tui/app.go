package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/deskmux/internal/config"
	"github.com/nicobailon/deskmux/internal/executor"
	"github.com/nicobailon/deskmux/internal/logger"
	"github.com/nicobailon/deskmux/internal/model"
	"github.com/nicobailon/deskmux/internal/recent"
	"github.com/nicobailon/deskmux/internal/shell"
	"github.com/nicobailon/deskmux/internal/tui/theme"
	"github.com/nicobailon/deskmux/internal/tui/views"
)

type viewState int

const (
	stateWorkspace viewState = iota
	stateDrawer
	stateFolder
	stateHelp
)

const widgetRefreshInterval = time.Second

type Deps struct {
	Cfg         *config.Config
	Commander   shell.Commander
	RecentStore *recent.Store
	Consumer    *Consumer

	// Reload re-runs the loader pipeline; wired by the command layer.
	Reload func()
}

// WorkspaceData is everything the loader has bound so far, grouped
// for rendering.
type WorkspaceData struct {
	ScreenIDs []int64
	Desktop   map[int64][]*model.ItemInfo
	Hotseat   []*model.ItemInfo
	Widgets   map[int64][]*model.ItemInfo
	Folders   map[int64][]*model.ItemInfo
	Apps      []model.AppInfo
	Shortcuts map[string][]string
	Catalog   map[string][]model.WidgetSpec
}

func newWorkspaceData() WorkspaceData {
	return WorkspaceData{
		Desktop: make(map[int64][]*model.ItemInfo),
		Widgets: make(map[int64][]*model.ItemInfo),
		Folders: make(map[int64][]*model.ItemInfo),
	}
}

type appModel struct {
	deps Deps
	data WorkspaceData

	state     viewState
	page      int
	binding   bool
	firstPage bool

	grid       views.GridState
	drawer     views.DrawerState
	search     textinput.Model
	spinner    spinner.Model
	openFolder int64
	folderIdx  int

	width  int
	height int
	toast  *toast
	styles toastStyles
}

type App struct {
	deps Deps
}

func New(deps Deps) *App {
	return &App{deps: deps}
}

// Run drives the TUI until quit. The caller attaches the Consumer to
// the loader before starting it.
func (a *App) Run(p *tea.Program) error {
	_, err := p.Run()
	return err
}

// NewProgram builds the bubbletea program. The model is created here
// so the caller can hand Program.Send to the Consumer.
func (a *App) NewProgram() *tea.Program {
	return tea.NewProgram(initialModel(a.deps), tea.WithAltScreen())
}

func initialModel(deps Deps) appModel {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Placeholder = "search apps"
	ti.Prompt = ""
	ti.TextStyle = theme.TextStyle
	ti.PlaceholderStyle = theme.SubTextStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return appModel{
		deps:    deps,
		data:    newWorkspaceData(),
		state:   stateWorkspace,
		binding: true,
		search:  ti,
		spinner: sp,
		grid: views.GridState{
			Rows:    deps.Cfg.GridRows,
			Cols:    deps.Cfg.GridCols,
			Cells:   make(map[int]views.Cell),
			Loading: true,
		},
		styles: toastStyles{
			success: theme.SuccessStyle,
			error:   theme.ErrorStyle,
			warning: theme.WarnStyle,
			info:    theme.SubTextStyle,
		},
	}
}

// TEA plumbing

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, widgetTickCmd())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case widgetTickMsg:
		// refresh live widget content (clock, load average)
		m.rebuildGrid()
		return m, widgetTickCmd()

	case toastExpiredMsg:
		if m.toast != nil && m.toast.expired() {
			m.toast = nil
		}
		return m, nil

	case SuccessMsg:
		m.toast = &toast{message: msg.Message, kind: toastSuccess, expiresAt: time.Now().Add(toastDuration)}
		return m, toastExpireCmd()

	case ErrorMsg:
		m.toast = &toast{message: msg.Error(), kind: toastError, expiresAt: time.Now().Add(toastDuration)}
		return m, toastExpireCmd()

	case launchedMsg:
		if msg.err != nil {
			return m, NewErrorCmd(msg.err, "launch "+msg.title)
		}
		return m, NewSuccessCmd(theme.IconLaunch + " " + msg.title)
	}

	return m.handleBindMsg(msg)
}

// handleBindMsg applies one loader callback to the staged workspace.
func (m appModel) handleBindMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearPendingBindsMsg:
		// A newer run supersedes anything still queued from the last
		// one; the staged data resets when it starts binding.
		return m, nil

	case startBindingMsg:
		apps, shortcuts, catalog := m.data.Apps, m.data.Shortcuts, m.data.Catalog
		m.data = newWorkspaceData()
		m.data.Apps = apps
		m.data.Shortcuts = shortcuts
		m.data.Catalog = catalog
		m.binding = true
		m.firstPage = false
		m.grid.Loading = true
		return m, nil

	case screensBoundMsg:
		m.data.ScreenIDs = msg.screenIDs
		if m.page >= len(msg.screenIDs) {
			m.setPage(0)
		}
		m.rebuildGrid()
		return m, nil

	case itemsBoundMsg:
		for _, it := range msg.items {
			m.addItem(it)
		}
		m.rebuildGrid()
		return m, nil

	case firstPageBoundMsg:
		m.firstPage = true
		m.grid.Loading = msg.gate != nil
		return m, nil

	case pageBoundMsg:
		m.setPage(msg.page)
		m.rebuildGrid()
		return m, nil

	case nextDrawMsg:
		// The command runs after this frame is rendered; releasing the
		// gate there lets the remaining pages bind behind the visible one.
		return m, releaseGateCmd(msg.gate)

	case bindFinishedMsg:
		m.binding = false
		m.grid.Loading = false
		m.rebuildGrid()
		return m, nil

	case appsBoundMsg:
		m.data.Apps = msg.apps
		m.rebuildDrawer()
		return m, nil

	case shortcutsBoundMsg:
		m.data.Shortcuts = msg.shortcuts
		m.rebuildDrawer()
		return m, nil

	case widgetsBoundMsg:
		m.data.Catalog = msg.catalog
		return m, nil
	}

	return m, nil
}

func (m *appModel) addItem(it *model.ItemInfo) {
	switch {
	case it.Container == model.ContainerHotseat:
		m.data.Hotseat = append(m.data.Hotseat, it)
	case it.Container == model.ContainerDesktop && it.Kind == model.KindWidget:
		m.data.Widgets[it.ScreenID] = append(m.data.Widgets[it.ScreenID], it)
	case it.Container == model.ContainerDesktop:
		m.data.Desktop[it.ScreenID] = append(m.data.Desktop[it.ScreenID], it)
	default:
		m.data.Folders[it.Container] = append(m.data.Folders[it.Container], it)
	}
}

func (m *appModel) setPage(page int) {
	if page < 0 || (len(m.data.ScreenIDs) > 0 && page >= len(m.data.ScreenIDs)) {
		return
	}
	m.page = page
	if m.deps.Consumer != nil {
		m.deps.Consumer.SetCurrentPage(page)
	}
}

// rebuildGrid projects the staged items for the visible page into the
// grid view.
func (m *appModel) rebuildGrid() {
	m.grid.Rows = m.deps.Cfg.GridRows
	m.grid.Cols = m.deps.Cfg.GridCols
	m.grid.Page = m.page
	m.grid.PageCount = len(m.data.ScreenIDs)
	m.grid.Cells = make(map[int]views.Cell)
	m.grid.Widgets = nil
	m.grid.Dock = nil

	if m.page >= len(m.data.ScreenIDs) {
		return
	}
	screenID := m.data.ScreenIDs[m.page]

	for _, it := range m.data.Desktop[screenID] {
		cell := views.Cell{Title: it.Title, ItemID: it.ID, IsFolder: it.Kind == model.KindFolder}
		m.grid.Cells[it.CellY*m.grid.Cols+it.CellX] = cell
	}
	for _, w := range m.data.Widgets[screenID] {
		m.grid.Widgets = append(m.grid.Widgets, views.WidgetBox{
			Label:   w.Label,
			Content: widgetContent(w.Provider),
			SpanX:   w.SpanX,
			CellX:   w.CellX,
			CellY:   w.CellY,
		})
	}

	dock := append([]*model.ItemInfo(nil), m.data.Hotseat...)
	sort.SliceStable(dock, func(i, j int) bool { return dock[i].ScreenID < dock[j].ScreenID })
	for _, it := range dock {
		m.grid.Dock = append(m.grid.Dock, views.Cell{Title: it.Title, ItemID: it.ID})
	}
}

func (m *appModel) rebuildDrawer() {
	apps := make([]views.DrawerApp, 0, len(m.data.Apps))
	for _, a := range m.data.Apps {
		apps = append(apps, views.DrawerApp{
			AppID:     a.AppID,
			Title:     a.Title,
			Exec:      a.Exec,
			Shortcuts: m.data.Shortcuts[a.AppID],
		})
	}
	m.drawer.Apps = apps
	m.drawer.Invalidate()

	if m.deps.RecentStore != nil {
		var preds []views.DrawerApp
		for _, e := range m.deps.RecentStore.Top(5) {
			preds = append(preds, views.DrawerApp{
				AppID: e.AppID, Title: e.Title, Exec: e.Exec, Prediction: true,
			})
		}
		m.drawer.Predictions = preds
	}
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateDrawer:
		return m.handleDrawerKey(msg)
	case stateFolder:
		return m.handleFolderKey(msg)
	case stateHelp:
		m.state = stateWorkspace
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.state = stateHelp
		return m, nil
	case "a", " ":
		m.state = stateDrawer
		m.search.SetValue("")
		m.drawer.Filter = ""
		m.drawer.Index = 0
		m.search.Focus()
		return m, textinput.Blink
	case "left", "h":
		m.grid.MoveCursor(-1, 0)
	case "right", "l":
		m.grid.MoveCursor(1, 0)
	case "up", "k":
		m.grid.MoveCursor(0, -1)
	case "down", "j":
		m.grid.MoveCursor(0, 1)
	case "[", "pgup":
		m.setPage(m.page - 1)
		m.rebuildGrid()
	case "]", "pgdown":
		m.setPage(m.page + 1)
		m.rebuildGrid()
	case "r":
		if m.deps.Reload != nil {
			m.deps.Reload()
			return m, NewSuccessCmd("reloading")
		}
	case "enter":
		return m.activateSelected()
	}
	return m, nil
}

func (m appModel) activateSelected() (tea.Model, tea.Cmd) {
	cell, ok := m.grid.Selected()
	if !ok {
		return m, nil
	}
	if cell.IsFolder {
		m.state = stateFolder
		m.openFolder = cell.ItemID
		m.folderIdx = 0
		return m, nil
	}
	if it := m.findItem(cell.ItemID); it != nil {
		return m, m.launch(it.Title, it.Exec, it.AppID)
	}
	return m, nil
}

func (m appModel) handleFolderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	members := m.data.Folders[m.openFolder]
	switch msg.String() {
	case "esc", "q":
		m.state = stateWorkspace
	case "up", "k":
		if m.folderIdx > 0 {
			m.folderIdx--
		}
	case "down", "j":
		if m.folderIdx < len(members)-1 {
			m.folderIdx++
		}
	case "enter":
		if m.folderIdx < len(members) {
			it := members[m.folderIdx]
			m.state = stateWorkspace
			return m, m.launch(it.Title, it.Exec, it.AppID)
		}
	}
	return m, nil
}

func (m appModel) handleDrawerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateWorkspace
		m.search.Blur()
		return m, nil
	case "up", "ctrl+k":
		m.drawer.Move(-1)
		return m, nil
	case "down", "ctrl+j":
		m.drawer.Move(1)
		return m, nil
	case "tab":
		// cycle through the selected app's deep shortcuts
		if app, ok := m.drawer.Selected(); ok && len(app.Shortcuts) > 0 {
			m.drawer.ShortcutIdx = (m.drawer.ShortcutIdx + 1) % (len(app.Shortcuts) + 1)
		}
		return m, nil
	case "enter":
		if app, ok := m.drawer.Selected(); ok {
			m.state = stateWorkspace
			m.search.Blur()
			title := app.Title
			if m.drawer.ShortcutIdx > 0 && m.drawer.ShortcutIdx <= len(app.Shortcuts) {
				title = app.Title + ": " + app.Shortcuts[m.drawer.ShortcutIdx-1]
			}
			return m, m.launch(title, app.Exec, app.AppID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.drawer.Filter = m.search.Value()
	m.drawer.Index = 0
	m.drawer.ShortcutIdx = 0
	return m, cmd
}

func (m appModel) findItem(id int64) *model.ItemInfo {
	for _, items := range m.data.Desktop {
		for _, it := range items {
			if it.ID == id {
				return it
			}
		}
	}
	for _, it := range m.data.Hotseat {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (m appModel) launch(title, execLine, appID string) tea.Cmd {
	if m.deps.RecentStore != nil && appID != "" {
		m.deps.RecentStore.Add(model.AppInfo{AppID: appID, Title: title, Exec: execLine})
		if err := m.deps.RecentStore.Save(); err != nil {
			logger.Warn("recent: save: %v", err)
		}
	}
	return launchCmd(m.deps.Commander, title, execLine)
}

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(views.Title(m.page, len(m.data.ScreenIDs)))
	if m.binding {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateDrawer:
		b.WriteString(m.drawer.Render(m.width))
	case stateFolder:
		b.WriteString(m.renderFolder())
	case stateHelp:
		b.WriteString(renderHelp())
	default:
		b.WriteString(m.grid.Render(m.width))
	}

	if m.toast != nil {
		b.WriteString("\n" + m.toast.render(m.styles))
	}
	return b.String()
}

func (m appModel) renderFolder() string {
	members := m.data.Folders[m.openFolder]
	var b strings.Builder
	for i, it := range members {
		line := theme.IconApp + " " + it.Title
		if i == m.folderIdx {
			b.WriteString(theme.SelectedCellStyle.Render(line))
		} else {
			b.WriteString(theme.TextStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(members) == 0 {
		b.WriteString(theme.DimStyle.Render("empty folder"))
	}
	return theme.DrawerFrameStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderHelp() string {
	rows := [][2]string{
		{"hjkl / arrows", "move"},
		{"[ ]", "switch page"},
		{"a / space", "apps drawer"},
		{"tab", "cycle deep shortcuts"},
		{"enter", "launch"},
		{"r", "reload layout"},
		{"q", "quit"},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(theme.KeyStyle.Render(fmt.Sprintf("%-14s", r[0])))
		b.WriteString(theme.SubTextStyle.Render(r[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// widgetContent renders the live value for a built-in provider.
func widgetContent(provider string) string {
	switch provider {
	case "clock":
		return time.Now().Format("15:04:05")
	case "date":
		return time.Now().Format("Mon Jan 2")
	case "sys":
		return loadAvg()
	default:
		return theme.IconWidget
	}
}

func loadAvg() string {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return "-"
	}
	fields := strings.Fields(string(data))
	if len(fields) < 3 {
		return "-"
	}
	return strings.Join(fields[:3], " ")
}

func widgetTickCmd() tea.Cmd {
	return tea.Tick(widgetRefreshInterval, func(time.Time) tea.Msg {
		return widgetTickMsg{}
	})
}

func launchCmd(cmdr shell.Commander, title, execLine string) tea.Cmd {
	return func() tea.Msg {
		return launchedMsg{title: title, err: cmdr.Launch(execLine)}
	}
}

func releaseGateCmd(gate *executor.DrawGated) tea.Cmd {
	return func() tea.Msg {
		gate.Trigger()
		return nil
	}
}
