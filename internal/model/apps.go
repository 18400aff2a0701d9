package model

import "sync"

// AllAppsList is the list of launchable applications, maintained by
// the app scanner on the loader goroutine and copied out for binding.
type AllAppsList struct {
	mu   sync.Mutex
	data []AppInfo
}

func NewAllAppsList() *AllAppsList {
	return &AllAppsList{}
}

// Set replaces the list.
func (a *AllAppsList) Set(apps []AppInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data = apps
}

// Copy returns a shallow copy of the list.
func (a *AllAppsList) Copy() []AppInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]AppInfo, len(a.data))
	copy(out, a.data)
	return out
}

// Len returns the number of known applications.
func (a *AllAppsList) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.data)
}
