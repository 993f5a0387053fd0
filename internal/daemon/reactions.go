package daemon

import (
	"strings"

	"github.com/username/vault-tray/internal/settings"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// wireReactions subscribes the controllers to the settings they render
func (d *Daemon) wireReactions() {
	d.reactions.Reset()
	r := d.reactions

	r.OnChange(settings.KeyLaunchOnStartup, func(settings.Change) { d.applyLoginItem() })
	r.OnChange(settings.KeyHideOnLaunch, func(settings.Change) { d.applyLoginItem() })

	r.OnChange(settings.KeyRunInBackground, func(settings.Change) {
		d.applyLoginItem()
		background := d.store.Bool(settings.RunInBackground)
		d.guard.Sync(background)
		if !background {
			d.registry.ShowAll()
		}
	})

	r.OnChange(settings.KeyHideTaskbarIcon, func(settings.Change) {
		d.registry.ApplyTaskbarPolicy()
	})

	for _, key := range []string{
		settings.KeyCreateTrayIcon,
		settings.KeyTrayIconImage,
		settings.KeyTrayIconTooltip,
	} {
		r.OnChange(key, func(settings.Change) { d.rebuildTray() })
	}

	for _, key := range []string{
		settings.KeyToggleWindowFocusHotkey,
		settings.KeyQuickNoteHotkey,
	} {
		r.OnBeforeChange(key, func(settings.Change) { d.hotkeys.UnregisterAll() })
		r.OnChange(key, func(settings.Change) { d.hotkeys.RegisterAll() })
	}

	r.OnChange(settings.KeyLogLevel, func(settings.Change) { d.applyLogLevel() })
}

func (d *Daemon) rebuildTray() {
	if err := d.tray.Rebuild(); err != nil {
		d.logger.Warn("Failed to rebuild tray icon", zap.Error(err))
	}
}

// applyLoginItem opens the app at login, hidden when it would hide on
// launch into the background anyway.
func (d *Daemon) applyLoginItem() {
	openAtLogin := d.store.Bool(settings.LaunchOnStartup)
	openAsHidden := d.store.Bool(settings.RunInBackground) && d.store.Bool(settings.HideOnLaunch)

	if err := d.host.LoginItems.SetLoginItem(openAtLogin, openAsHidden); err != nil {
		d.logger.Warn("Failed to update login item",
			zap.Bool("open_at_login", openAtLogin),
			zap.Bool("open_as_hidden", openAsHidden),
			zap.Error(err))
	}
}

func (d *Daemon) applyLogLevel() {
	level := ParseLogLevel(d.store.String(settings.LogLevel))
	d.level.SetLevel(level)
}

// ParseLogLevel maps a logLevel setting to a zap level. OFF yields a level
// above Fatal so nothing is logged; unknown values fall back to Error.
func ParseLogLevel(s string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case settings.LogLevelAll, settings.LogLevelTrace, settings.LogLevelDebug:
		return zapcore.DebugLevel
	case settings.LogLevelInfo, settings.LogLevelMark:
		return zapcore.InfoLevel
	case settings.LogLevelWarn:
		return zapcore.WarnLevel
	case settings.LogLevelError:
		return zapcore.ErrorLevel
	case settings.LogLevelFatal:
		return zapcore.FatalLevel
	case settings.LogLevelOff:
		return zapcore.FatalLevel + 1
	default:
		return zapcore.ErrorLevel
	}
}
