package config

import (
	"sync"

	"github.com/rpgo/networth-planner/internal/domain"
)

// Workspace holds the settings currently being edited. A failed import
// leaves the previous settings in place.
type Workspace struct {
	mu       sync.RWMutex
	settings *Settings
}

// NewWorkspace starts a workspace from the given settings, or from the
// example household when s is nil.
func NewWorkspace(s *Settings) *Workspace {
	if s == nil {
		s = ExampleSettings()
	}
	return &Workspace{settings: s}
}

// Settings returns the current document.
func (w *Workspace) Settings() *Settings {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.settings
}

// Params resolves the current document.
func (w *Workspace) Params() domain.Params {
	return Resolve(w.Settings())
}

// Import replaces the current settings with the decoded document.
func (w *Workspace) Import(data []byte) error {
	s, err := Decode(data)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.settings = s
	w.mu.Unlock()
	return nil
}

// ImportFile is Import for a file on disk.
func (w *Workspace) ImportFile(filename string) error {
	s, err := LoadFromFile(filename)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.settings = s
	w.mu.Unlock()
	return nil
}

// Export encodes the current settings.
func (w *Workspace) Export(format DocumentFormat) ([]byte, error) {
	return Encode(w.Settings(), format)
}

// Clear resets every field to blank, keeping selectors at their defaults.
func (w *Workspace) Clear() {
	w.mu.Lock()
	w.settings = BlankSettings()
	w.mu.Unlock()
}
