package loader

import (
	"math"
	"sort"

	"github.com/nicobailon/deskmux/internal/model"
)

type spatialKey struct {
	container int64
	rank      int64
}

// SortItemsSpatially orders items for visual binding: hotseat before
// desktop, and within the desktop screen-major then row-major. An item
// held by a folder ranks with the folder itself, so a folder's members
// bind right behind it; a member whose parent is not in the slice
// ranks after every placed item. Any other container value is a
// data-consistency violation that panics in strict mode and compares
// as equal rank otherwise. The sort is stable, so equal keys keep
// their incoming order.
func SortItemsSpatially(items []*model.ItemInfo, cols, rows int, strict bool) {
	cellCount := int64(cols * rows)

	rootKey := func(it *model.ItemInfo) (spatialKey, bool) {
		switch it.Container {
		case model.ContainerDesktop:
			return spatialKey{model.ContainerDesktop, it.ScreenID*cellCount + int64(it.CellY*cols+it.CellX)}, true
		case model.ContainerHotseat:
			// ScreenID doubles as the slot rank in the dock.
			return spatialKey{model.ContainerHotseat, it.ScreenID}, true
		}
		return spatialKey{}, false
	}

	parents := make(map[int64]spatialKey)
	for _, it := range items {
		if k, ok := rootKey(it); ok {
			parents[it.ID] = k
		}
	}

	keyOf := func(it *model.ItemInfo) spatialKey {
		if k, ok := rootKey(it); ok {
			return k
		}
		if it.Container > 0 {
			if k, ok := parents[it.Container]; ok {
				return k
			}
			return spatialKey{model.ContainerDesktop, math.MaxInt64}
		}
		if strict {
			panic("unexpected container when sorting workspace items")
		}
		return spatialKey{it.Container, 0}
	}

	sort.SliceStable(items, func(i, j int) bool {
		lk, rk := keyOf(items[i]), keyOf(items[j])
		if lk.container != rk.container {
			// Hotseat (-101) sorts before desktop (-100).
			return lk.container < rk.container
		}
		return lk.rank < rk.rank
	})
}
