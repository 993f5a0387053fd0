package main

import (
	"context"

	"github.com/username/vault-tray/internal/daemon"
	"github.com/username/vault-tray/internal/desktop"
	"github.com/username/vault-tray/internal/settings"
	"go.uber.org/zap"
)

// App is the wails lifecycle and the methods bound to the frontend
type App struct {
	daemon *daemon.Daemon
	host   *desktop.Host
	logger *zap.Logger
}

// NewApp creates the application binding
func NewApp(d *daemon.Daemon, h *desktop.Host, logger *zap.Logger) *App {
	return &App{
		daemon: d,
		host:   h,
		logger: logger,
	}
}

func (a *App) startup(ctx context.Context) {
	a.host.Window.Attach(ctx)
	a.daemon.Load()
}

func (a *App) domReady(ctx context.Context) {
	a.logger.Debug("Frontend ready")
	a.daemon.HideOnLaunch()
}

func (a *App) beforeClose(ctx context.Context) bool {
	return a.host.Windows.BeforeClose(ctx)
}

func (a *App) shutdown(ctx context.Context) {
	a.daemon.Unload()
	a.host.Window.MarkClosed()
	a.daemon.Stop()
}

// Settings returns the descriptors the settings page renders
func (a *App) Settings() []settings.Descriptor {
	return a.daemon.Editor().Descriptors()
}

// SetSetting applies a value typed into the settings page
func (a *App) SetSetting(key, input string) error {
	return a.daemon.Editor().ApplyInput(key, input)
}

// Commands returns the host commands
func (a *App) Commands() []map[string]string {
	var out []map[string]string
	for _, c := range a.daemon.Commands() {
		out = append(out, map[string]string{"id": c.ID, "name": c.Name})
	}
	return out
}

// RunCommand runs a host command by ID
func (a *App) RunCommand(id string) error {
	return a.daemon.RunCommand(id)
}

// Status returns the daemon status
func (a *App) Status() map[string]interface{} {
	return a.daemon.GetStatus()
}

// WindowFocusChanged is called by the frontend on window focus and blur
func (a *App) WindowFocusChanged(focused bool) {
	a.host.Window.SetFocused(focused)
}
