package appscan

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nicobailon/deskmux/internal/model"
)

// Scanner walks the configured application directories and parses
// desktop entries into the launchable app list.
type Scanner struct {
	Paths []string
}

func New(paths []string) *Scanner {
	if len(paths) == 0 {
		paths = DefaultPaths()
	}
	return &Scanner{Paths: paths}
}

func DefaultPaths() []string {
	paths := []string{"/usr/share/applications", "/usr/local/share/applications"}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, "applications"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".local", "share", "applications"))
	}
	return paths
}

// Scan reads every .desktop entry under the search paths. A directory
// with no desktop entries at all is treated as a bin dir ($PATH
// segment) and its executables become plain entries. Unreadable
// directories are skipped; a later path shadows an earlier one for
// the same app ID, matching the XDG precedence order reversed by
// DefaultPaths.
func (s *Scanner) Scan() ([]model.AppInfo, error) {
	byID := make(map[string]model.AppInfo)

	for _, searchPath := range s.Paths {
		expanded := os.ExpandEnv(searchPath)
		if strings.HasPrefix(expanded, "~/") {
			home, _ := os.UserHomeDir()
			expanded = filepath.Join(home, expanded[2:])
		}

		entries, err := os.ReadDir(expanded)
		if err != nil {
			continue
		}

		sawDesktop := false
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
				continue
			}
			sawDesktop = true
			app, ok := parseDesktopFile(filepath.Join(expanded, entry.Name()))
			if !ok {
				continue
			}
			byID[app.AppID] = app
		}
		if !sawDesktop {
			for _, app := range scanBinDir(expanded, entries) {
				byID[app.AppID] = app
			}
		}
	}

	apps := make([]model.AppInfo, 0, len(byID))
	for _, app := range byID {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Title) < strings.ToLower(apps[j].Title)
	})
	return apps, nil
}

// scanBinDir turns the executables of a directory into plain entries
// named after the binary.
func scanBinDir(dir string, entries []os.DirEntry) []model.AppInfo {
	var apps []model.AppInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0111 == 0 {
			continue
		}
		apps = append(apps, model.AppInfo{
			AppID: entry.Name(),
			Title: entry.Name(),
			Exec:  filepath.Join(dir, entry.Name()),
		})
	}
	return apps
}

func parseDesktopFile(path string) (model.AppInfo, bool) {
	f, err := os.Open(path)
	if err != nil {
		return model.AppInfo{}, false
	}
	defer f.Close()

	app := model.AppInfo{
		AppID: strings.TrimSuffix(filepath.Base(path), ".desktop"),
	}
	inEntry := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			// only the main group describes the launchable entry
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Name":
			if app.Title == "" {
				app.Title = strings.TrimSpace(val)
			}
		case "Exec":
			app.Exec = stripFieldCodes(strings.TrimSpace(val))
		case "NoDisplay", "Hidden":
			if strings.EqualFold(strings.TrimSpace(val), "true") {
				return model.AppInfo{}, false
			}
		}
	}
	if app.Title == "" || app.Exec == "" {
		return model.AppInfo{}, false
	}
	return app, true
}

// stripFieldCodes drops the %f/%u style placeholders from an Exec line;
// the launcher never passes files or URLs.
func stripFieldCodes(execLine string) string {
	fields := strings.Fields(execLine)
	out := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(f, "%") && len(f) == 2 {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
