// Package desktop implements the host capabilities on a real desktop: a
// wails main window, a system tray icon, global hotkeys, login items and a
// vault of markdown notes on disk.
package desktop

import (
	"github.com/spf13/afero"
	"github.com/username/vault-tray/internal/host"
	"go.uber.org/zap"
)

// Options configures the desktop host
type Options struct {
	AppName     string
	DisplayName string
	// Args are passed to relaunched and login-launched instances
	Args        []string
	StartHidden bool
	VaultRoot   string
	VaultName   string
	// Fs defaults to the OS filesystem
	Fs afero.Fs
}

// Host holds the desktop backends
type Host struct {
	Window    *MainWindow
	Windows   *Windows
	Trays     *SystrayFactory
	Shortcuts *Shortcuts
	Process   *Process
	Autostart *Autostart
	Vault     *FSVault
}

// New creates the desktop backends
func New(opts Options, logger *zap.Logger) *Host {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	h := &Host{
		Window:    NewMainWindow(opts.StartHidden, logger.Named("window")),
		Trays:     NewSystrayFactory(logger.Named("tray")),
		Shortcuts: NewShortcuts(logger.Named("hotkeys")),
		Autostart: NewAutostart(opts.AppName, opts.DisplayName, opts.Args, logger),
		Vault:     NewFSVault(opts.Fs, opts.VaultRoot, opts.VaultName, logger.Named("vault")),
	}
	h.Windows = NewWindows(h.Window)
	h.Process = NewProcess(opts.Args, func(int) { h.Trays.Close() }, logger)
	h.Vault.SetOpener(h.Window.OpenNote)

	return h
}

// Capabilities returns the backends as host capabilities
func (h *Host) Capabilities() host.Host {
	return host.Host{
		Windows:    h.Windows,
		Trays:      h.Trays,
		Shortcuts:  h.Shortcuts,
		Process:    h.Process,
		LoginItems: h.Autostart,
		Vault:      h.Vault,
	}
}

// Close releases the tray session
func (h *Host) Close() {
	h.Trays.Close()
}
