package favorites

import (
	"fmt"

	"github.com/nicobailon/deskmux/internal/model"
)

// Seed writes a starter layout into an empty store: two screens, a
// dock built from the first launchable apps, and a clock widget. It is
// a no-op when the store already has screens.
func (s *Store) Seed(apps []model.AppInfo, dockSlots int) error {
	empty, err := s.Empty()
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	if err := s.AddScreen(1); err != nil {
		return err
	}
	if err := s.AddScreen(2); err != nil {
		return err
	}

	for i, app := range apps {
		if i >= dockSlots {
			break
		}
		_, err := s.AddItem(&model.ItemInfo{
			Kind:      model.KindShortcut,
			Container: model.ContainerHotseat,
			ScreenID:  int64(i),
			SpanX:     1,
			SpanY:     1,
			Title:     app.Title,
			Exec:      app.Exec,
			AppID:     app.AppID,
		})
		if err != nil {
			return fmt.Errorf("seeding dock: %w", err)
		}
	}

	_, err = s.AddItem(&model.ItemInfo{
		Kind:      model.KindWidget,
		Container: model.ContainerDesktop,
		ScreenID:  1,
		CellX:     0,
		CellY:     0,
		SpanX:     2,
		SpanY:     1,
		Provider:  "clock",
		Label:     "Clock",
	})
	if err != nil {
		return fmt.Errorf("seeding widget: %w", err)
	}
	return nil
}
