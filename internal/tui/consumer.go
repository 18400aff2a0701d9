package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nicobailon/deskmux/internal/executor"
	"github.com/nicobailon/deskmux/internal/model"
)

// Consumer bridges the loader callbacks onto the bubbletea event loop.
// Every callback turns into a message sent to the program; the model
// applies it on its own goroutine. The current page is mirrored into
// an atomic so the loader can read it without touching the model.
type Consumer struct {
	send func(tea.Msg)
	page atomic.Int32
}

func NewConsumer(send func(tea.Msg)) *Consumer {
	return &Consumer{send: send}
}

// Bind attaches the program's Send. Must happen before the loader
// starts delivering.
func (c *Consumer) Bind(send func(tea.Msg)) {
	c.send = send
}

// SetCurrentPage mirrors the page the model is showing.
func (c *Consumer) SetCurrentPage(page int) {
	c.page.Store(int32(page))
}

func (c *Consumer) GetCurrentWorkspaceScreen() int {
	return int(c.page.Load())
}

func (c *Consumer) ClearPendingBinds() {
	c.send(clearPendingBindsMsg{})
}

func (c *Consumer) StartBinding() {
	c.send(startBindingMsg{})
}

func (c *Consumer) BindScreens(screenIDs []int64) {
	c.send(screensBoundMsg{screenIDs: screenIDs})
}

func (c *Consumer) BindItems(items []*model.ItemInfo, isRestore bool) {
	c.send(itemsBoundMsg{items: items})
}

func (c *Consumer) FinishFirstPageBind(gate *executor.DrawGated) {
	c.send(firstPageBoundMsg{gate: gate})
}

func (c *Consumer) OnPageBoundSynchronously(page int) {
	c.send(pageBoundMsg{page: page})
}

func (c *Consumer) ExecuteOnNextDraw(gate *executor.DrawGated) {
	c.send(nextDrawMsg{gate: gate})
}

func (c *Consumer) FinishBindingItems() {
	c.send(bindFinishedMsg{})
}

func (c *Consumer) BindDeepShortcutMap(shortcuts map[string][]string) {
	c.send(shortcutsBoundMsg{shortcuts: shortcuts})
}

func (c *Consumer) BindAllApplications(apps []model.AppInfo) {
	c.send(appsBoundMsg{apps: apps})
}

func (c *Consumer) BindAllWidgets(catalog map[string][]model.WidgetSpec) {
	c.send(widgetsBoundMsg{catalog: catalog})
}
