package favorites

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nicobailon/deskmux/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS screens (
	screen_id   INTEGER PRIMARY KEY,
	screen_rank INTEGER NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS favorites (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	kind      INTEGER NOT NULL,
	container INTEGER NOT NULL,
	screen    INTEGER NOT NULL DEFAULT 0,
	cell_x    INTEGER NOT NULL DEFAULT 0,
	cell_y    INTEGER NOT NULL DEFAULT 0,
	span_x    INTEGER NOT NULL DEFAULT 1,
	span_y    INTEGER NOT NULL DEFAULT 1,
	title     TEXT NOT NULL DEFAULT '',
	exec      TEXT NOT NULL DEFAULT '',
	app_id    TEXT NOT NULL DEFAULT '',
	provider  TEXT NOT NULL DEFAULT '',
	label     TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS shortcuts (
	app_id TEXT NOT NULL,
	action TEXT NOT NULL
);
`

// Store is the persisted workspace layout: screens, placed favorites
// and widgets, and the deep shortcut index.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the favorites database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// LoadWorkspace reads the full layout: shortcut and folder items,
// widget items, and the screen order. Rows referencing a folder that
// is itself inside a folder are dropped; the layout forbids nesting.
func (s *Store) LoadWorkspace() ([]*model.ItemInfo, []*model.ItemInfo, []int64, error) {
	rows, err := s.db.Query(`
		SELECT id, kind, container, screen, cell_x, cell_y, span_x, span_y,
		       title, exec, app_id, provider, label
		FROM favorites ORDER BY id`)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("querying favorites: %w", err)
	}
	defer rows.Close()

	var all []*model.ItemInfo
	folders := make(map[int64]*model.ItemInfo)
	for rows.Next() {
		it := &model.ItemInfo{}
		var kind int
		if err := rows.Scan(&it.ID, &kind, &it.Container, &it.ScreenID,
			&it.CellX, &it.CellY, &it.SpanX, &it.SpanY,
			&it.Title, &it.Exec, &it.AppID, &it.Provider, &it.Label); err != nil {
			return nil, nil, nil, fmt.Errorf("scanning favorite: %w", err)
		}
		it.Kind = model.ItemKind(kind)
		if it.Kind == model.KindFolder {
			folders[it.ID] = it
		}
		all = append(all, it)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("reading favorites: %w", err)
	}

	var items, widgets []*model.ItemInfo
	for _, it := range all {
		if it.Container > 0 {
			// Nested folders are forbidden. A row whose parent vanished
			// is kept; the loader classifies it off the active page.
			if parent, ok := folders[it.Container]; ok && parent.Container > 0 {
				continue
			}
		}
		if it.Kind == model.KindWidget {
			widgets = append(widgets, it)
		} else {
			items = append(items, it)
		}
	}

	screens, err := s.loadScreens()
	if err != nil {
		return nil, nil, nil, err
	}
	return items, widgets, screens, nil
}

func (s *Store) loadScreens() ([]int64, error) {
	rows, err := s.db.Query(`SELECT screen_id FROM screens ORDER BY screen_rank`)
	if err != nil {
		return nil, fmt.Errorf("querying screens: %w", err)
	}
	defer rows.Close()

	var screens []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning screen: %w", err)
		}
		screens = append(screens, id)
	}
	return screens, rows.Err()
}

// LoadShortcuts reads the deep shortcut index keyed by app ID.
func (s *Store) LoadShortcuts() (map[string][]string, error) {
	rows, err := s.db.Query(`SELECT app_id, action FROM shortcuts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying shortcuts: %w", err)
	}
	defer rows.Close()

	shortcuts := make(map[string][]string)
	for rows.Next() {
		var appID, action string
		if err := rows.Scan(&appID, &action); err != nil {
			return nil, fmt.Errorf("scanning shortcut: %w", err)
		}
		shortcuts[appID] = append(shortcuts[appID], action)
	}
	return shortcuts, rows.Err()
}

// AddItem persists one placement and returns its assigned ID.
func (s *Store) AddItem(it *model.ItemInfo) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO favorites (kind, container, screen, cell_x, cell_y, span_x, span_y,
		                       title, exec, app_id, provider, label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int(it.Kind), it.Container, it.ScreenID, it.CellX, it.CellY, it.SpanX, it.SpanY,
		it.Title, it.Exec, it.AppID, it.Provider, it.Label)
	if err != nil {
		return 0, fmt.Errorf("inserting favorite: %w", err)
	}
	return res.LastInsertId()
}

// AddItems persists placements produced by the loader, keeping the
// IDs it already assigned.
func (s *Store) AddItems(items []*model.ItemInfo) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	for _, it := range items {
		if _, err := tx.Exec(`
			INSERT INTO favorites (id, kind, container, screen, cell_x, cell_y, span_x, span_y,
			                       title, exec, app_id, provider, label)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, int(it.Kind), it.Container, it.ScreenID, it.CellX, it.CellY, it.SpanX, it.SpanY,
			it.Title, it.Exec, it.AppID, it.Provider, it.Label); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting favorite %d: %w", it.ID, err)
		}
	}
	return tx.Commit()
}

// RemoveItem deletes a placement and anything inside it.
func (s *Store) RemoveItem(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM favorites WHERE id = ? OR container = ?`, id, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("deleting favorite %d: %w", id, err)
	}
	return tx.Commit()
}

// AddScreen appends a screen at the end of the pager order.
func (s *Store) AddScreen(screenID int64) error {
	_, err := s.db.Exec(`
		INSERT INTO screens (screen_id, screen_rank)
		VALUES (?, COALESCE((SELECT MAX(screen_rank) FROM screens), -1) + 1)`, screenID)
	if err != nil {
		return fmt.Errorf("inserting screen %d: %w", screenID, err)
	}
	return nil
}

// Empty reports whether the store has no layout yet.
func (s *Store) Empty() (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM screens`).Scan(&n); err != nil {
		return false, fmt.Errorf("counting screens: %w", err)
	}
	return n == 0, nil
}
