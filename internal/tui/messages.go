package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/deskmux/internal/executor"
	"github.com/nicobailon/deskmux/internal/model"
)

type toastType int

const (
	toastSuccess toastType = iota
	toastError
	toastWarning
	toastInfo
)

const toastDuration = 3 * time.Second

type toast struct {
	message   string
	kind      toastType
	expiresAt time.Time
}

func (t *toast) expired() bool {
	return time.Now().After(t.expiresAt)
}

type SuccessMsg struct {
	Message string
}

type ErrorMsg struct {
	Err     error
	Context string
}

func (e ErrorMsg) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
	return e.Err.Error()
}

type InfoMsg struct {
	Message string
}

type toastExpiredMsg struct{}

func NewSuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return SuccessMsg{Message: message}
	}
}

func NewErrorCmd(err error, context string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err, Context: context}
	}
}

func toastExpireCmd() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func (t *toast) render(styles toastStyles) string {
	var style lipgloss.Style
	switch t.kind {
	case toastSuccess:
		style = styles.success
	case toastError:
		style = styles.error
	case toastWarning:
		style = styles.warning
	default:
		style = styles.info
	}
	return style.Render(t.message)
}

type toastStyles struct {
	success lipgloss.Style
	error   lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

// Binding messages, forwarded from the loader by the Consumer bridge.
// Each carries data already copied out of the data model.

type clearPendingBindsMsg struct{}

type startBindingMsg struct{}

type screensBoundMsg struct {
	screenIDs []int64
}

type itemsBoundMsg struct {
	items []*model.ItemInfo
}

type firstPageBoundMsg struct {
	gate *executor.DrawGated
}

type pageBoundMsg struct {
	page int
}

type nextDrawMsg struct {
	gate *executor.DrawGated
}

type bindFinishedMsg struct{}

type appsBoundMsg struct {
	apps []model.AppInfo
}

type shortcutsBoundMsg struct {
	shortcuts map[string][]string
}

type widgetsBoundMsg struct {
	catalog map[string][]model.WidgetSpec
}

type launchedMsg struct {
	title string
	err   error
}

type widgetTickMsg struct{}
