package loader

import (
	"github.com/nicobailon/deskmux/internal/model"
)

// placeMissingApps builds desktop placements for apps that have no
// workspace item yet, filling free cells screen by screen in row-major
// order. Apps that do not fit on the existing screens are left for the
// next run; this never creates screens.
func placeMissingApps(snap model.Snapshot, apps []model.AppInfo, cols, rows int) []*model.ItemInfo {
	placed := make(map[string]struct{}, len(snap.Items))
	var maxID int64
	occupied := make(map[int64]map[int]struct{})
	for _, it := range snap.Items {
		if it == nil {
			continue
		}
		if it.AppID != "" {
			placed[it.AppID] = struct{}{}
		}
		if it.ID > maxID {
			maxID = it.ID
		}
		if it.Container == model.ContainerDesktop {
			cells := occupied[it.ScreenID]
			if cells == nil {
				cells = make(map[int]struct{})
				occupied[it.ScreenID] = cells
			}
			spanX, spanY := it.SpanX, it.SpanY
			if spanX < 1 {
				spanX = 1
			}
			if spanY < 1 {
				spanY = 1
			}
			for y := it.CellY; y < it.CellY+spanY; y++ {
				for x := it.CellX; x < it.CellX+spanX; x++ {
					cells[y*cols+x] = struct{}{}
				}
			}
		}
	}
	for _, w := range snap.Widgets {
		if w != nil && w.ID > maxID {
			maxID = w.ID
		}
	}

	var added []*model.ItemInfo
	screenIdx, cell := 0, 0
	nextFree := func() (int64, int, bool) {
		for screenIdx < len(snap.OrderedScreenIDs) {
			screenID := snap.OrderedScreenIDs[screenIdx]
			for cell < cols*rows {
				if _, ok := occupied[screenID][cell]; !ok {
					return screenID, cell, true
				}
				cell++
			}
			screenIdx++
			cell = 0
		}
		return 0, 0, false
	}

	for _, app := range apps {
		if _, ok := placed[app.AppID]; ok {
			continue
		}
		screenID, c, ok := nextFree()
		if !ok {
			break
		}
		maxID++
		added = append(added, &model.ItemInfo{
			ID:        maxID,
			Container: model.ContainerDesktop,
			ScreenID:  screenID,
			CellX:     c % cols,
			CellY:     c / cols,
			SpanX:     1,
			SpanY:     1,
			Kind:      model.KindShortcut,
			Title:     app.Title,
			Exec:      app.Exec,
			AppID:     app.AppID,
		})
		cells := occupied[screenID]
		if cells == nil {
			cells = make(map[int]struct{})
			occupied[screenID] = cells
		}
		cells[c] = struct{}{}
	}
	return added
}
