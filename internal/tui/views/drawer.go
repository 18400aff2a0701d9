package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/deskmux/internal/tui/theme"
)

// DrawerApp is one row in the all-apps drawer.
type DrawerApp struct {
	AppID      string
	Title      string
	Exec       string
	Shortcuts  []string
	Prediction bool
}

// DrawerState is the searchable all-apps overlay with the predictions
// row on top.
type DrawerState struct {
	Apps        []DrawerApp
	Predictions []DrawerApp

	Filter      string
	Index       int
	ShortcutIdx int

	filteredCache  []DrawerApp
	filterCacheKey string
}

func (d *DrawerState) Filtered() []DrawerApp {
	if d.Filter == "" {
		return d.Apps
	}
	if d.filterCacheKey == d.Filter && d.filteredCache != nil {
		return d.filteredCache
	}
	filterLower := strings.ToLower(d.Filter)
	d.filteredCache = make([]DrawerApp, 0, len(d.Apps))
	for _, a := range d.Apps {
		if strings.Contains(strings.ToLower(a.Title), filterLower) ||
			strings.Contains(strings.ToLower(a.AppID), filterLower) {
			d.filteredCache = append(d.filteredCache, a)
		}
	}
	d.filterCacheKey = d.Filter
	return d.filteredCache
}

// Invalidate drops the filter cache after the app list changes.
func (d *DrawerState) Invalidate() {
	d.filteredCache = nil
	d.filterCacheKey = ""
}

func (d *DrawerState) Move(delta int) {
	apps := d.Filtered()
	d.Index += delta
	if d.Index < 0 {
		d.Index = 0
	}
	if d.Index >= len(apps) && len(apps) > 0 {
		d.Index = len(apps) - 1
	}
	d.ShortcutIdx = 0
}

// Selected returns the highlighted app, if any.
func (d *DrawerState) Selected() (DrawerApp, bool) {
	apps := d.Filtered()
	if d.Index < 0 || d.Index >= len(apps) {
		return DrawerApp{}, false
	}
	return apps[d.Index], true
}

const drawerHeight = 14

func (d *DrawerState) Render(width int) string {
	var b strings.Builder

	b.WriteString(theme.SectionStyle.Render(theme.IconSearch + " " + d.Filter))
	b.WriteString(theme.DimStyle.Render("▌"))
	b.WriteString("\n\n")

	if len(d.Predictions) > 0 && d.Filter == "" {
		var preds []string
		for _, p := range d.Predictions {
			preds = append(preds, theme.PredictionStyle.Render(theme.IconStar+" "+p.Title))
		}
		b.WriteString(strings.Join(preds, theme.SeparatorStyle.Render("  ·  ")))
		b.WriteString("\n\n")
	}

	apps := d.Filtered()
	if len(apps) == 0 {
		b.WriteString(theme.DimStyle.Render("no matching apps"))
	}
	start := 0
	if d.Index >= drawerHeight {
		start = d.Index - drawerHeight + 1
	}
	for i := start; i < len(apps) && i < start+drawerHeight; i++ {
		app := apps[i]
		line := theme.IconApp + " " + app.Title
		if i == d.Index {
			b.WriteString(theme.SelectedCellStyle.Render(line))
			for j, action := range app.Shortcuts {
				marker := "  "
				style := theme.SubTextStyle
				if j == d.ShortcutIdx-1 {
					style = theme.SelectedCellStyle
				}
				b.WriteString("\n" + marker + style.Render("↳ "+action))
			}
		} else {
			b.WriteString(theme.TextStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return theme.DrawerFrameStyle.Width(minInt(width-4, 60)).Render(
		lipgloss.JoinVertical(lipgloss.Left, strings.TrimRight(b.String(), "\n")))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
