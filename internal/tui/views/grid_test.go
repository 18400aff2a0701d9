package views

import "testing"

func TestMoveCursorClampsToGrid(t *testing.T) {
	g := GridState{Rows: 3, Cols: 3, Cells: map[int]Cell{}}
	g.MoveCursor(-1, 0)
	if g.CursorX != 0 {
		t.Fatalf("cursor escaped left: %d", g.CursorX)
	}
	g.MoveCursor(5, 0)
	if g.CursorX != 2 {
		t.Fatalf("cursor should clamp right: %d", g.CursorX)
	}
}

func TestMoveCursorDownEntersDock(t *testing.T) {
	g := GridState{Rows: 2, Cols: 2, Cells: map[int]Cell{}, Dock: []Cell{{Title: "A"}, {Title: "B"}}}
	g.MoveCursor(0, 1)
	g.MoveCursor(0, 1)
	if !g.InDock {
		t.Fatalf("moving past the last row should enter the dock")
	}
	g.MoveCursor(1, 0)
	if g.DockIdx != 1 {
		t.Fatalf("dock cursor mismatch: %d", g.DockIdx)
	}
	g.MoveCursor(0, -1)
	if g.InDock {
		t.Fatalf("moving up should leave the dock")
	}
}

func TestSelectedReturnsCellUnderCursor(t *testing.T) {
	g := GridState{Rows: 2, Cols: 2, Cells: map[int]Cell{
		3: {Title: "Editor", ItemID: 9},
	}}
	g.MoveCursor(1, 1)
	cell, ok := g.Selected()
	if !ok || cell.ItemID != 9 {
		t.Fatalf("selection mismatch: %+v ok=%v", cell, ok)
	}
}

func TestDrawerFilterCaseInsensitive(t *testing.T) {
	d := DrawerState{Apps: []DrawerApp{
		{AppID: "term", Title: "Terminal"},
		{AppID: "files", Title: "Files"},
	}}
	d.Filter = "FIL"
	got := d.Filtered()
	if len(got) != 1 || got[0].AppID != "files" {
		t.Fatalf("filter mismatch: %v", got)
	}
}

func TestDrawerFilterCacheInvalidation(t *testing.T) {
	d := DrawerState{Apps: []DrawerApp{{AppID: "a", Title: "A"}}}
	d.Filter = "a"
	if got := d.Filtered(); len(got) != 1 {
		t.Fatalf("expected a match: %v", got)
	}
	d.Apps = append(d.Apps, DrawerApp{AppID: "ab", Title: "AB"})
	d.Invalidate()
	if got := d.Filtered(); len(got) != 2 {
		t.Fatalf("cache should rebuild after invalidation: %v", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Terminal", 5); got != "Term…" {
		t.Fatalf("truncate mismatch: %q", got)
	}
	if got := truncate("ok", 5); got != "ok" {
		t.Fatalf("short strings pass through: %q", got)
	}
}
