package windows

import (
	"sync"

	"github.com/username/vault-tray/internal/host"
	"github.com/username/vault-tray/internal/settings"
	"go.uber.org/zap"
)

// Settings is the read side of the settings store
type Settings interface {
	Bool(opt settings.Option) bool
}

// Registry tracks the main window and every open child window
type Registry struct {
	main     host.Window
	children []host.Window
	known    map[string]struct{}
	settings Settings
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewRegistry creates a registry rooted at the main window
func NewRegistry(main host.Window, s Settings, logger *zap.Logger) *Registry {
	return &Registry{
		main:     main,
		known:    make(map[string]struct{}),
		settings: s,
		logger:   logger,
	}
}

// Main returns the main window
func (r *Registry) Main() host.Window {
	return r.main
}

// RegisterChild starts tracking a newly created child window. It reports
// false when the window is already tracked.
func (r *Registry) RegisterChild(w host.Window) bool {
	if w == nil || w.ID() == r.main.ID() {
		return false
	}

	r.mu.Lock()
	if _, ok := r.known[w.ID()]; ok {
		r.mu.Unlock()
		return false
	}
	r.known[w.ID()] = struct{}{}
	r.children = append(r.children, w)
	r.mu.Unlock()

	w.SetSkipTaskbar(r.settings.Bool(settings.HideTaskbarIcon))
	w.OnClosed(func() { r.UnregisterChild(w) })

	r.logger.Debug("Child window registered", zap.String("window", w.ID()))
	return true
}

// UnregisterChild stops tracking a child window. Unknown windows are ignored.
func (r *Registry) UnregisterChild(w host.Window) {
	if w == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.known[w.ID()]; !ok {
		return
	}
	delete(r.known, w.ID())
	for i, c := range r.children {
		if c.ID() == w.ID() {
			r.children = append(r.children[:i:i], r.children[i+1:]...)
			break
		}
	}

	r.logger.Debug("Child window unregistered", zap.String("window", w.ID()))
}

// AllWindows returns the children in insertion order followed by the main window
func (r *Registry) AllWindows() []host.Window {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]host.Window, 0, len(r.children)+1)
	out = append(out, r.children...)
	return append(out, r.main)
}

// ShowAll makes every window visible
func (r *Registry) ShowAll() {
	r.logger.Info("Showing windows")
	for _, w := range r.AllWindows() {
		w.Show()
	}
}

// HideAll takes every window off screen. With run-in-background enabled
// windows are hidden, otherwise they are minimized to the taskbar.
func (r *Registry) HideAll() {
	r.logger.Info("Hiding windows")
	background := r.settings.Bool(settings.RunInBackground)
	for _, w := range r.AllWindows() {
		if w.IsFocused() {
			w.Blur()
		}
		if background {
			w.Hide()
		} else {
			w.Minimize()
		}
	}
}

// ToggleVisibility hides every window when any window is visible (and
// focused, when requireFocus is set); otherwise it shows them all.
func (r *Registry) ToggleVisibility(requireFocus bool) {
	open := false
	for _, w := range r.AllWindows() {
		if (!requireFocus || w.IsFocused()) && w.IsVisible() {
			open = true
			break
		}
	}

	if open {
		r.HideAll()
	} else {
		r.ShowAll()
	}
}

// ApplyTaskbarPolicy applies the hide-taskbar-icon setting to every window
func (r *Registry) ApplyTaskbarPolicy() {
	skip := r.settings.Bool(settings.HideTaskbarIcon)
	for _, w := range r.AllWindows() {
		w.SetSkipTaskbar(skip)
	}
}

// DestroyAll destroys every tracked window
func (r *Registry) DestroyAll() {
	for _, w := range r.AllWindows() {
		w.Destroy()
	}
}
