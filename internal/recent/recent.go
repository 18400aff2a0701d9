package recent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nicobailon/deskmux/internal/model"
)

const maxRecent = 10

type Entry struct {
	AppID       string    `json:"app_id"`
	Title       string    `json:"title"`
	Exec        string    `json:"exec"`
	LaunchCount int       `json:"launch_count"`
	LastLaunch  time.Time `json:"last_launch"`
}

type Store struct {
	Entries []Entry `json:"entries"`
	path    string
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "deskmux")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "deskmux")
}

func Load() (*Store, error) {
	dir := configDir()
	path := filepath.Join(dir, "recent.json")

	s := &Store{path: path, Entries: []Entry{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return s, nil
	}
	s.path = path
	return s, nil
}

func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Add records one launch of the app.
func (s *Store) Add(app model.AppInfo) {
	for i, e := range s.Entries {
		if e.AppID == app.AppID {
			s.Entries[i].LaunchCount++
			s.Entries[i].LastLaunch = time.Now()
			s.Entries[i].Title = app.Title
			s.Entries[i].Exec = app.Exec
			return
		}
	}

	s.Entries = append(s.Entries, Entry{
		AppID:       app.AppID,
		Title:       app.Title,
		Exec:        app.Exec,
		LaunchCount: 1,
		LastLaunch:  time.Now(),
	})

	s.prune()
}

func (s *Store) prune() {
	sort.Slice(s.Entries, func(i, j int) bool {
		return s.Entries[i].LastLaunch.After(s.Entries[j].LastLaunch)
	})

	if len(s.Entries) > maxRecent*3 {
		s.Entries = s.Entries[:maxRecent*3]
	}
}

// Top returns the most launched apps, recency breaking ties. This
// feeds the predictions row above the apps drawer.
func (s *Store) Top(limit int) []Entry {
	top := make([]Entry, len(s.Entries))
	copy(top, s.Entries)

	sort.Slice(top, func(i, j int) bool {
		if top[i].LaunchCount != top[j].LaunchCount {
			return top[i].LaunchCount > top[j].LaunchCount
		}
		return top[i].LastLaunch.After(top[j].LastLaunch)
	})

	if len(top) > limit {
		top = top[:limit]
	}

	return top
}

func (s *Store) Remove(appID string) {
	var filtered []Entry
	for _, e := range s.Entries {
		if e.AppID != appID {
			filtered = append(filtered, e)
		}
	}
	s.Entries = filtered
}
