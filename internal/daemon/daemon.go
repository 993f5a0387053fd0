package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/username/vault-tray/internal/host"
	"github.com/username/vault-tray/internal/hotkeys"
	"github.com/username/vault-tray/internal/quicknote"
	"github.com/username/vault-tray/internal/settings"
	"github.com/username/vault-tray/internal/tray"
	"github.com/username/vault-tray/internal/windows"
	"github.com/username/vault-tray/pkg/dateutil"
	"go.uber.org/zap"
)

// Command is an action exposed to the host's command surface
type Command struct {
	ID   string
	Name string
	Run  func()
}

// Command IDs
const (
	CommandRelaunch   = "relaunch-app"
	CommandCloseVault = "close-vault"
)

// Daemon owns every coordination component and their lifecycle
type Daemon struct {
	host      host.Host
	file      *settings.File
	store     *settings.Store
	reactions *settings.Reactions
	editor    *settings.Editor
	watcher   *settings.Watcher
	registry  *windows.Registry
	guard     *windows.CloseGuard
	tray      *tray.Controller
	hotkeys   *hotkeys.Controller
	notes     *quicknote.Creator
	level     zap.AtomicLevel
	watch     bool
	deferHide bool

	commands      []Command
	stopObserving func()
	loaded        bool
	mu            sync.Mutex
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
}

// Options configures a daemon
type Options struct {
	// WatchSettings replays external edits of the settings file
	WatchSettings bool
	// Level is adjusted by the logLevel setting
	Level zap.AtomicLevel
	// DeferHideOnLaunch leaves hide-on-launch to HideOnLaunch, for hosts
	// whose windows are not ready when Load runs
	DeferHideOnLaunch bool
}

// NewDaemon creates a daemon for the given host and settings file
func NewDaemon(h host.Host, file *settings.File, opts Options, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	if opts.Level == (zap.AtomicLevel{}) {
		opts.Level = zap.NewAtomicLevel()
	}

	store := settings.NewStore(settings.Catalog(), logger)
	reactions := settings.NewReactions()

	d := &Daemon{
		host:      h,
		file:      file,
		store:     store,
		reactions: reactions,
		editor:    settings.NewEditor(store, reactions, file, logger),
		level:     opts.Level,
		watch:     opts.WatchSettings,
		deferHide: opts.DeferHideOnLaunch,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}

	d.registry = windows.NewRegistry(h.Windows.Main(), store, logger)
	d.guard = windows.NewCloseGuard(h.Windows, logger)
	d.notes = quicknote.NewCreator(store, h.Vault, d.registry, logger)
	d.tray = tray.NewController(h.Trays, store, h.Vault, d, logger)
	d.hotkeys = hotkeys.NewController(h.Shortcuts, store, d, logger)
	d.watcher = settings.NewWatcher(file, d.editor, logger)

	d.editor.SetPreview(settings.KeyTrayIconTooltip, func(v string) string {
		return tray.RenderTooltip(v, h.Vault.Name())
	})
	d.editor.SetPreview(settings.KeyQuickNoteDateFormat, func(v string) string {
		return dateutil.FormatMoment(time.Now(), v)
	})

	return d
}

// Load loads settings and sets up the tray, hotkeys, window policy and
// close interception. Failures are logged; the host commands are always
// registered so the vault can still be relaunched or closed. Loading a
// loaded daemon unloads it first.
func (d *Daemon) Load() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		d.unloadLocked()
	}

	d.logger.Info("Loading")

	defer d.registerCommands()

	if err := d.load(); err != nil {
		d.logger.Error("Error loading", zap.Error(err))
	}
}

func (d *Daemon) load() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during load: %v", r)
		}
	}()

	d.loadSettings()
	d.applyLogLevel()
	d.wireReactions()
	d.loaded = true

	if err := d.tray.Rebuild(); err != nil {
		d.logger.Warn("Continuing without tray icon", zap.Error(err))
	}
	d.hotkeys.RegisterAll()
	d.registry.ApplyTaskbarPolicy()
	d.applyLoginItem()
	d.stopObserving = d.host.Windows.OnWindowCreated(d.observeWindow)

	if d.store.Bool(settings.RunInBackground) {
		d.guard.Intercept()
	}

	if !d.deferHide {
		d.hideOnLaunch()
	}

	if d.watch {
		if err := d.watcher.Start(); err != nil {
			d.logger.Warn("Failed to watch settings file", zap.Error(err))
		}
	}

	return nil
}

// Unload reverses every registration made by Load
func (d *Daemon) Unload() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return
	}
	d.unloadLocked()
}

func (d *Daemon) unloadLocked() {
	d.logger.Info("Cleaning up")

	d.watcher.Close()
	d.hotkeys.UnregisterAll()
	d.guard.Release()
	d.tray.Destroy()
	if d.stopObserving != nil {
		d.stopObserving()
		d.stopObserving = nil
	}
	d.reactions.Reset()
	d.commands = nil
	d.loaded = false
}

// HideOnLaunch hides every window when the hideOnLaunch setting is on
func (d *Daemon) HideOnLaunch() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		d.hideOnLaunch()
	}
}

func (d *Daemon) hideOnLaunch() {
	if d.store.Bool(settings.HideOnLaunch) {
		d.registry.HideAll()
	}
}

func (d *Daemon) loadSettings() {
	data, err := d.file.Load()
	if err != nil {
		d.logger.Warn("Failed to load settings, using defaults", zap.Error(err))
		data = map[string]any{}
	}
	d.store.LoadFrom(data)
}

func (d *Daemon) observeWindow(w host.Window) {
	d.registry.RegisterChild(w)
}

func (d *Daemon) registerCommands() {
	d.commands = []Command{
		{ID: CommandRelaunch, Name: tray.LabelRelaunch, Run: d.Relaunch},
		{ID: CommandCloseVault, Name: tray.LabelClose, Run: d.CloseVault},
	}
}

// Commands returns the commands exposed to the host
func (d *Daemon) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Command(nil), d.commands...)
}

// RunCommand runs a host command by ID
func (d *Daemon) RunCommand(id string) error {
	for _, c := range d.Commands() {
		if c.ID == id {
			d.logger.Info("Running command", zap.String("command", id))
			c.Run()
			return nil
		}
	}
	return fmt.Errorf("unknown command %q", id)
}

// ShowAll shows every window
func (d *Daemon) ShowAll() {
	d.registry.ShowAll()
}

// HideAll hides or minimizes every window
func (d *Daemon) HideAll() {
	d.registry.HideAll()
}

// ToggleVisibility toggles window visibility, taking focus into account
func (d *Daemon) ToggleVisibility() {
	d.registry.ToggleVisibility(true)
}

// QuickNote creates a quick note and shows the windows
func (d *Daemon) QuickNote() {
	if err := d.notes.Create(); err != nil {
		d.logger.Error("Failed to create quick note", zap.Error(err))
	}
}

// Relaunch restarts the application
func (d *Daemon) Relaunch() {
	d.logger.Info("Relaunching")
	if err := d.host.Process.Relaunch(); err != nil {
		d.logger.Error("Failed to relaunch", zap.Error(err))
		return
	}
	d.host.Process.Exit(0)
}

// CloseVault fully tears down the vault: hotkeys, close interception, tray
// and every window.
func (d *Daemon) CloseVault() {
	d.logger.Info("Closing vault")
	d.hotkeys.UnregisterAll()
	d.guard.Release()
	d.tray.Destroy()
	d.registry.DestroyAll()
	d.Stop()
}

// Stop ends Wait
func (d *Daemon) Stop() {
	d.cancel()
}

// Done is closed once the daemon is stopped
func (d *Daemon) Done() <-chan struct{} {
	return d.ctx.Done()
}

// Wait blocks until Stop is called or the process receives an interrupt,
// then unloads.
func (d *Daemon) Wait() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-d.ctx.Done():
		d.logger.Info("Daemon stopped")
	case sig := <-sigChan:
		d.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))
		d.Stop()
	}

	d.Unload()
}

// Editor returns the settings editor
func (d *Daemon) Editor() *settings.Editor {
	return d.editor
}

// Store returns the settings store
func (d *Daemon) Store() *settings.Store {
	return d.store
}

// Registry returns the window registry
func (d *Daemon) Registry() *windows.Registry {
	return d.registry
}

// Guard returns the close guard
func (d *Daemon) Guard() *windows.CloseGuard {
	return d.guard
}

// GetStatus returns daemon status
func (d *Daemon) GetStatus() map[string]interface{} {
	bound := map[string]string{}
	for slot, accel := range d.hotkeys.Bound() {
		bound[slot.String()] = accel
	}

	visible := 0
	all := d.registry.AllWindows()
	for _, w := range all {
		if w.IsVisible() {
			visible++
		}
	}

	return map[string]interface{}{
		"vault":           d.host.Vault.Name(),
		"tray":            d.tray.Active(),
		"close_guard":     d.guard.State().String(),
		"hotkeys":         bound,
		"windows":         len(all),
		"visible_windows": visible,
		"log_level":       d.level.Level().String(),
	}
}
