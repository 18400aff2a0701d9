package loader

import (
	"sort"

	"github.com/nicobailon/deskmux/internal/model"
)

// FilterCurrentScreenItems splits items into those that belong to the
// screen with currentScreenID (directly, via the hotseat, or inside a
// container placed there) and everything else. Nil entries are
// dropped; every other input item lands in exactly one output slice.
//
// The working copy is ordered by container value first: the root
// containers are negative and folder IDs are positive, so a folder is
// always classified before its members and one forward pass can
// resolve membership through the onScreen set.
func FilterCurrentScreenItems(currentScreenID int64, items []*model.ItemInfo) (current, other []*model.ItemInfo) {
	work := make([]*model.ItemInfo, 0, len(items))
	for _, it := range items {
		if it != nil {
			work = append(work, it)
		}
	}
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].Container < work[j].Container
	})

	onScreen := make(map[int64]struct{})
	for _, it := range work {
		switch it.Container {
		case model.ContainerDesktop:
			if it.ScreenID == currentScreenID {
				current = append(current, it)
				onScreen[it.ID] = struct{}{}
			} else {
				other = append(other, it)
			}
		case model.ContainerHotseat:
			current = append(current, it)
			onScreen[it.ID] = struct{}{}
		default:
			// Membership in a container already known to be on the
			// current screen. A container ID we never saw means the
			// parent is gone; keep the orphan off the active page.
			if _, ok := onScreen[it.Container]; ok {
				current = append(current, it)
				onScreen[it.ID] = struct{}{}
			} else {
				other = append(other, it)
			}
		}
	}
	return current, other
}
