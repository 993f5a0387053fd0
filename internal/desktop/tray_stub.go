//go:build !windows && !darwin && !linux

package desktop

import (
	"github.com/username/vault-tray/internal/host"
	"go.uber.org/zap"
)

// SystrayFactory is unavailable on this platform
type SystrayFactory struct {
	logger *zap.Logger
}

// NewSystrayFactory creates a tray factory (not supported on this platform)
func NewSystrayFactory(logger *zap.Logger) *SystrayFactory {
	return &SystrayFactory{logger: logger}
}

// NewTray always fails on this platform
func (f *SystrayFactory) NewTray(icon []byte) (host.Tray, error) {
	return nil, host.ErrNotSupported
}

// Close does nothing on this platform
func (f *SystrayFactory) Close() {
}
