package recent

import (
	"testing"

	"github.com/nicobailon/deskmux/internal/model"
)

func TestAddIncrementsLaunchCount(t *testing.T) {
	s := &Store{}
	app := model.AppInfo{AppID: "term", Title: "Terminal", Exec: "term"}
	s.Add(app)
	s.Add(app)
	if len(s.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(s.Entries))
	}
	if s.Entries[0].LaunchCount != 2 {
		t.Fatalf("launch count mismatch: %d", s.Entries[0].LaunchCount)
	}
}

func TestTopOrdersByCountThenRecency(t *testing.T) {
	s := &Store{}
	a := model.AppInfo{AppID: "a", Title: "A", Exec: "a"}
	b := model.AppInfo{AppID: "b", Title: "B", Exec: "b"}
	c := model.AppInfo{AppID: "c", Title: "C", Exec: "c"}
	s.Add(a)
	s.Add(b)
	s.Add(b)
	s.Add(c)

	top := s.Top(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].AppID != "b" {
		t.Fatalf("most launched should lead: %v", top)
	}
	if top[1].AppID != "c" {
		t.Fatalf("recency should break the tie: %v", top)
	}
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	s, err := Load()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	s.Add(model.AppInfo{AppID: "term", Title: "Terminal", Exec: "term"})
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	s2, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(s2.Entries) != 1 || s2.Entries[0].AppID != "term" {
		t.Fatalf("round trip lost entries: %v", s2.Entries)
	}
}

func TestRemove(t *testing.T) {
	s := &Store{}
	s.Add(model.AppInfo{AppID: "a"})
	s.Add(model.AppInfo{AppID: "b"})
	s.Remove("a")
	if len(s.Entries) != 1 || s.Entries[0].AppID != "b" {
		t.Fatalf("remove left %v", s.Entries)
	}
}
