//go:build !windows && !darwin && !(linux && cgo)

package desktop

import (
	"github.com/username/vault-tray/internal/host"
	"go.uber.org/zap"
)

// Shortcuts is unavailable on this platform
type Shortcuts struct {
	logger *zap.Logger
}

// NewShortcuts creates a global shortcut registry (not supported on this platform)
func NewShortcuts(logger *zap.Logger) *Shortcuts {
	return &Shortcuts{logger: logger}
}

// Register always fails on this platform
func (s *Shortcuts) Register(accelerator string, fn func()) error {
	if _, err := ParseAccelerator(accelerator); err != nil {
		return err
	}
	return host.ErrNotSupported
}

// Unregister reports nothing is bound
func (s *Shortcuts) Unregister(accelerator string) error {
	return host.ErrNotRegistered
}
