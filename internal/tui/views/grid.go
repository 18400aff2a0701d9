package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/deskmux/internal/tui/theme"
)

// Cell is one renderable slot on the workspace grid or in the dock.
type Cell struct {
	Title    string
	Icon     string
	IsFolder bool
	ItemID   int64
}

// WidgetBox is a rendered widget spanning grid columns.
type WidgetBox struct {
	Label   string
	Content string
	SpanX   int
	CellX   int
	CellY   int
}

// GridState is the visible workspace: one page of cells, the widgets
// placed on it, the dock row, and the cursor.
type GridState struct {
	Rows int
	Cols int

	Cells   map[int]Cell // keyed by cellY*Cols+cellX
	Widgets []WidgetBox
	Dock    []Cell

	CursorX int
	CursorY int
	InDock  bool
	DockIdx int

	Page      int
	PageCount int
	Loading   bool
}

func (g *GridState) MoveCursor(dx, dy int) {
	if g.InDock {
		g.DockIdx += dx
		if g.DockIdx < 0 {
			g.DockIdx = 0
		}
		if g.DockIdx >= len(g.Dock) && len(g.Dock) > 0 {
			g.DockIdx = len(g.Dock) - 1
		}
		if dy < 0 {
			g.InDock = false
		}
		return
	}

	g.CursorX += dx
	g.CursorY += dy
	if g.CursorX < 0 {
		g.CursorX = 0
	}
	if g.CursorX >= g.Cols {
		g.CursorX = g.Cols - 1
	}
	if g.CursorY < 0 {
		g.CursorY = 0
	}
	if g.CursorY >= g.Rows {
		g.CursorY = g.Rows - 1
		if dy > 0 {
			g.InDock = true
		}
	}
}

// Selected returns the cell under the cursor, if any.
func (g *GridState) Selected() (Cell, bool) {
	if g.InDock {
		if g.DockIdx < len(g.Dock) {
			return g.Dock[g.DockIdx], true
		}
		return Cell{}, false
	}
	c, ok := g.Cells[g.CursorY*g.Cols+g.CursorX]
	return c, ok
}

const cellWidth = 14

func (g *GridState) Render(width int) string {
	var b strings.Builder

	for _, w := range g.Widgets {
		box := theme.WidgetStyle.Width(w.SpanX * cellWidth).Render(
			theme.SubTextStyle.Render(w.Label) + "  " + w.Content)
		b.WriteString(box)
		b.WriteString("\n")
	}

	occupied := g.widgetCells()
	for y := 0; y < g.Rows; y++ {
		var row []string
		for x := 0; x < g.Cols; x++ {
			idx := y*g.Cols + x
			if _, hidden := occupied[idx]; hidden {
				row = append(row, strings.Repeat(" ", cellWidth))
				continue
			}
			row = append(row, g.renderCell(x, y))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	b.WriteString(g.renderDock())
	b.WriteString("\n")
	b.WriteString(g.renderPager(width))
	return b.String()
}

// widgetCells marks grid slots covered by a widget so the cell pass
// leaves them blank.
func (g *GridState) widgetCells() map[int]struct{} {
	covered := make(map[int]struct{})
	for _, w := range g.Widgets {
		for x := w.CellX; x < w.CellX+w.SpanX; x++ {
			covered[w.CellY*g.Cols+x] = struct{}{}
		}
	}
	return covered
}

func (g *GridState) renderCell(x, y int) string {
	cell, ok := g.Cells[y*g.Cols+x]
	label := ""
	if ok {
		icon := cell.Icon
		if icon == "" {
			icon = theme.IconApp
		}
		if cell.IsFolder {
			icon = theme.IconFolder
		}
		label = icon + " " + truncate(cell.Title, cellWidth-4)
	}

	style := theme.CellStyle
	if !g.InDock && x == g.CursorX && y == g.CursorY {
		style = theme.SelectedCellStyle
	}
	return style.Width(cellWidth - 2).Render(label)
}

func (g *GridState) renderDock() string {
	var slots []string
	for i, cell := range g.Dock {
		style := theme.CellStyle
		if g.InDock && i == g.DockIdx {
			style = theme.SelectedCellStyle
		}
		slots = append(slots, style.Render(theme.IconDock+" "+truncate(cell.Title, cellWidth-4)))
	}
	return theme.DockStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, slots...))
}

func (g *GridState) renderPager(width int) string {
	if g.PageCount <= 0 {
		return ""
	}
	var dots []string
	for i := 0; i < g.PageCount; i++ {
		if i == g.Page {
			dots = append(dots, theme.PagerActiveStyle.Render(theme.IconPageFull))
		} else {
			dots = append(dots, theme.PagerStyle.Render(theme.IconPageDot))
		}
	}
	line := strings.Join(dots, " ")
	if g.Loading {
		line += "  " + theme.DimStyle.Render("loading")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return s[:max-1] + "…"
}

// Title renders the page header with the screen position.
func Title(page, count int) string {
	return theme.TitleStyle.Render("deskmux") + " " +
		theme.DimStyle.Render(fmt.Sprintf("page %d/%d", page+1, count))
}
