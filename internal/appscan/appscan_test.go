package appscan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDesktop(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestScanParsesDesktopEntries(t *testing.T) {
	dir := t.TempDir()
	writeDesktop(t, dir, "term.desktop", `[Desktop Entry]
Name=Terminal
Exec=term %u
Type=Application`)
	writeDesktop(t, dir, "files.desktop", `[Desktop Entry]
Name=Files
Exec=files
Type=Application`)

	apps, err := New([]string{dir}).Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(apps))
	}
	// sorted by title
	if apps[0].AppID != "files" || apps[1].AppID != "term" {
		t.Fatalf("unexpected order: %v", apps)
	}
	if apps[1].Exec != "term" {
		t.Fatalf("field codes should be stripped: %q", apps[1].Exec)
	}
}

func TestScanSkipsHiddenEntries(t *testing.T) {
	dir := t.TempDir()
	writeDesktop(t, dir, "hidden.desktop", `[Desktop Entry]
Name=Hidden
Exec=hidden
NoDisplay=true`)
	writeDesktop(t, dir, "broken.desktop", `[Desktop Entry]
Name=NoExec`)

	apps, err := New([]string{dir}).Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(apps) != 0 {
		t.Fatalf("hidden and broken entries should be skipped: %v", apps)
	}
}

func TestScanLaterPathShadowsEarlier(t *testing.T) {
	sys := t.TempDir()
	user := t.TempDir()
	writeDesktop(t, sys, "term.desktop", `[Desktop Entry]
Name=System Terminal
Exec=term`)
	writeDesktop(t, user, "term.desktop", `[Desktop Entry]
Name=My Terminal
Exec=myterm`)

	apps, err := New([]string{sys, user}).Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(apps) != 1 || apps[0].Exec != "myterm" {
		t.Fatalf("user entry should shadow system entry: %v", apps)
	}
}

func TestScanIgnoresUnreadableDirs(t *testing.T) {
	dir := t.TempDir()
	writeDesktop(t, dir, "a.desktop", `[Desktop Entry]
Name=A
Exec=a`)

	apps, err := New([]string{"/does/not/exist", dir}).Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 app, got %d", len(apps))
	}
}

func TestScanBinDirFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mytool"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	apps, err := New([]string{dir}).Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(apps) != 1 || apps[0].AppID != "mytool" {
		t.Fatalf("expected only the executable, got %v", apps)
	}
	if apps[0].Exec != filepath.Join(dir, "mytool") {
		t.Fatalf("exec should be the full path: %q", apps[0].Exec)
	}
}

func TestScanSkipsOtherGroups(t *testing.T) {
	dir := t.TempDir()
	writeDesktop(t, dir, "app.desktop", `[Desktop Entry]
Name=App
Exec=app
[Desktop Action new]
Name=New Window
Exec=app --new`)

	apps, err := New([]string{dir}).Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(apps) != 1 || apps[0].Exec != "app" {
		t.Fatalf("action group leaked into entry: %v", apps)
	}
}
