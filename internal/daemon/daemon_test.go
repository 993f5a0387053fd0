package daemon

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/vault-tray/internal/host/memhost"
	"github.com/username/vault-tray/internal/settings"
	"github.com/username/vault-tray/internal/tray"
	"github.com/username/vault-tray/internal/windows"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

const settingsPath = "/vault/.vault-tray/settings.json"

type fixture struct {
	daemon *Daemon
	host   *memhost.Host
	fs     afero.Fs
	level  zap.AtomicLevel
}

func newFixture(t *testing.T, persisted string) *fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	if persisted != "" {
		require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(persisted), 0o644))
	}

	h := memhost.New("Research")
	level := zap.NewAtomicLevel()
	file := settings.NewFileFs(fs, settingsPath, zap.NewNop())
	d := NewDaemon(h.Capabilities(), file, Options{Level: level}, zaptest.NewLogger(t))

	return &fixture{daemon: d, host: h, fs: fs, level: level}
}

func TestDaemon_LoadWithDefaults(t *testing.T) {
	f := newFixture(t, "")
	f.daemon.Load()
	defer f.daemon.Unload()

	assert.Equal(t, 1, f.host.Trays.Live())
	assert.Equal(t, "Research | Vault", f.host.Trays.Last().Tooltip)
	assert.Equal(t, 1, f.host.Shortcuts.Bindings("CmdOrCtrl+Shift+Tab"))
	assert.Equal(t, 1, f.host.Shortcuts.Bindings("CmdOrCtrl+Shift+Q"))
	assert.Equal(t, windows.Passive, f.daemon.Guard().State())
	assert.True(t, f.host.Windows.MainWindow().IsVisible())
	assert.Equal(t, 1, f.host.LoginItems.Calls)
	assert.False(t, f.host.LoginItems.OpenAtLogin)
	assert.Equal(t, zapcore.ErrorLevel, f.level.Level())

	var ids []string
	for _, c := range f.daemon.Commands() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{CommandRelaunch, CommandCloseVault}, ids)
}

func TestDaemon_LoadFromPersistedSettings(t *testing.T) {
	f := newFixture(t, `{
		"runInBackground": true,
		"hideOnLaunch": true,
		"launchOnStartup": true,
		"createTrayIcon": false,
		"logLevel": "DEBUG"
	}`)
	f.daemon.Load()
	defer f.daemon.Unload()

	main := f.host.Windows.MainWindow()
	assert.Equal(t, windows.Intercepting, f.daemon.Guard().State())
	assert.False(t, main.IsVisible())
	assert.False(t, main.IsMinimized(), "hidden to tray rather than minimized")
	assert.Equal(t, 0, f.host.Trays.Live())
	assert.True(t, f.host.LoginItems.OpenAtLogin)
	assert.True(t, f.host.LoginItems.OpenAsHidden)
	assert.Equal(t, zapcore.DebugLevel, f.level.Level())
}

func TestDaemon_LoadWithCorruptSettingsUsesDefaults(t *testing.T) {
	f := newFixture(t, "{ not json")
	f.daemon.Load()
	defer f.daemon.Unload()

	assert.Equal(t, 1, f.host.Trays.Live())
	assert.Len(t, f.daemon.Commands(), 2)
}

func TestDaemon_CommandsRegisteredWhenLoadFails(t *testing.T) {
	h := memhost.New("Research")
	caps := h.Capabilities()
	caps.Vault = nil // tray rebuild panics reading the vault name

	d := NewDaemon(caps, settings.NewFileFs(afero.NewMemMapFs(), settingsPath, zap.NewNop()), Options{}, zap.NewNop())
	d.Load()

	assert.Len(t, d.Commands(), 2)
}

func TestDaemon_TrayCreationFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, "")
	f.host.Trays.FailCreate = true
	f.daemon.Load()
	defer f.daemon.Unload()

	assert.Equal(t, 1, f.host.Shortcuts.Bindings("CmdOrCtrl+Shift+Q"))
	assert.Len(t, f.daemon.Commands(), 2)
}

func TestDaemon_RunInBackgroundReaction(t *testing.T) {
	f := newFixture(t, "")
	f.daemon.Load()
	defer f.daemon.Unload()
	editor := f.daemon.Editor()
	main := f.host.Windows.MainWindow()

	require.NoError(t, editor.Apply(settings.KeyRunInBackground, settings.Toggle(true)))
	assert.Equal(t, windows.Intercepting, f.daemon.Guard().State())

	assert.False(t, f.host.Windows.RequestClose(main))
	assert.False(t, main.IsVisible())
	assert.False(t, main.Destroyed())

	require.NoError(t, editor.Apply(settings.KeyRunInBackground, settings.Toggle(false)))
	assert.Equal(t, windows.Passive, f.daemon.Guard().State())
	assert.True(t, main.IsVisible(), "windows come back when background mode is turned off")

	data, err := afero.ReadFile(f.fs, settingsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"runInBackground": false`)
}

func TestDaemon_TrayReactions(t *testing.T) {
	f := newFixture(t, "")
	f.daemon.Load()
	defer f.daemon.Unload()
	editor := f.daemon.Editor()

	require.NoError(t, editor.Apply(settings.KeyTrayIconTooltip, settings.Text("{{vault}} | Notes")))
	assert.Equal(t, 1, f.host.Trays.Live())
	assert.Equal(t, "Research | Notes", f.host.Trays.Last().Tooltip)

	require.NoError(t, editor.Apply(settings.KeyCreateTrayIcon, settings.Toggle(false)))
	assert.Equal(t, 0, f.host.Trays.Live())

	require.NoError(t, editor.Apply(settings.KeyCreateTrayIcon, settings.Toggle(true)))
	assert.Equal(t, 1, f.host.Trays.Live())
}

func TestDaemon_HotkeyReactions(t *testing.T) {
	f := newFixture(t, "")
	f.daemon.Load()
	defer f.daemon.Unload()

	require.NoError(t, f.daemon.Editor().Apply(settings.KeyQuickNoteHotkey, settings.Accelerator("Alt+N")))

	shortcuts := f.host.Shortcuts
	assert.Equal(t, 0, shortcuts.Bindings("CmdOrCtrl+Shift+Q"))
	assert.Equal(t, 1, shortcuts.Bindings("Alt+N"))
	assert.Equal(t, 1, shortcuts.Bindings("CmdOrCtrl+Shift+Tab"))

	shortcuts.Press("Alt+N")
	require.Len(t, f.host.Vault.Created, 1)
	assert.True(t, strings.HasPrefix(f.host.Vault.Created[0], "Notes/"))
}

func TestDaemon_TaskbarAndLogLevelReactions(t *testing.T) {
	f := newFixture(t, "")
	f.daemon.Load()
	defer f.daemon.Unload()
	editor := f.daemon.Editor()

	child := f.host.Windows.Open()
	require.NoError(t, editor.Apply(settings.KeyHideTaskbarIcon, settings.Toggle(true)))
	assert.True(t, child.SkipTaskbar())
	assert.True(t, f.host.Windows.MainWindow().SkipTaskbar())

	require.NoError(t, editor.Apply(settings.KeyLogLevel, settings.Text("warn")))
	assert.Equal(t, zapcore.WarnLevel, f.level.Level())

	require.NoError(t, editor.Apply(settings.KeyLaunchOnStartup, settings.Toggle(true)))
	assert.True(t, f.host.LoginItems.OpenAtLogin)
	assert.False(t, f.host.LoginItems.OpenAsHidden)
}

func TestDaemon_ToggleHotkey(t *testing.T) {
	f := newFixture(t, "")
	f.daemon.Load()
	defer f.daemon.Unload()
	main := f.host.Windows.MainWindow()

	main.Focus()
	f.host.Shortcuts.Press("CmdOrCtrl+Shift+Tab")
	assert.True(t, main.IsMinimized())

	f.host.Shortcuts.Press("CmdOrCtrl+Shift+Tab")
	assert.True(t, main.IsVisible())
}

func TestDaemon_TrayMenu(t *testing.T) {
	f := newFixture(t, `{"runInBackground": true}`)
	f.daemon.Load()
	defer f.daemon.Unload()
	tr := f.host.Trays.Last()
	main := f.host.Windows.MainWindow()

	require.True(t, tr.ClickItem(tray.LabelHide))
	assert.False(t, main.IsVisible())

	tr.Click()
	assert.True(t, main.IsVisible())

	require.True(t, tr.ClickItem(tray.LabelQuickNote))
	assert.Len(t, f.host.Vault.Created, 1)
}

func TestDaemon_ChildWindowsAreTracked(t *testing.T) {
	f := newFixture(t, `{"runInBackground": true}`)
	f.daemon.Load()

	child := f.host.Windows.Open()
	assert.Len(t, f.daemon.Registry().AllWindows(), 2)
	assert.False(t, f.host.Windows.RequestClose(child))
	assert.False(t, child.IsVisible())

	f.daemon.Unload()
	f.host.Windows.Open()
	assert.Len(t, f.daemon.Registry().AllWindows(), 2, "no tracking after unload")
}

func TestDaemon_Unload(t *testing.T) {
	f := newFixture(t, `{"runInBackground": true}`)
	f.daemon.Load()

	f.daemon.Unload()

	assert.Equal(t, 0, f.host.Trays.Live())
	assert.Equal(t, 0, f.host.Shortcuts.Bindings("CmdOrCtrl+Shift+Tab"))
	assert.Equal(t, 0, f.host.Shortcuts.Bindings("CmdOrCtrl+Shift+Q"))
	assert.Equal(t, windows.Passive, f.daemon.Guard().State())
	assert.False(t, f.host.Windows.HasCloseHandler())
	assert.Empty(t, f.daemon.Commands())

	require.NoError(t, f.daemon.Editor().Apply(settings.KeyCreateTrayIcon, settings.Toggle(true)))
	assert.Equal(t, 0, f.host.Trays.Live(), "reactions are dropped")

	f.daemon.Unload()
}

func TestDaemon_CloseVault(t *testing.T) {
	f := newFixture(t, `{"runInBackground": true}`)
	f.daemon.Load()
	child := f.host.Windows.Open()

	require.NoError(t, f.daemon.RunCommand(CommandCloseVault))

	assert.True(t, child.Destroyed())
	assert.True(t, f.host.Windows.MainWindow().Destroyed(), "close interception is released first")
	assert.Equal(t, 0, f.host.Trays.Live())
	assert.Equal(t, 0, f.host.Shortcuts.Bindings("CmdOrCtrl+Shift+Q"))

	select {
	case <-f.daemon.Done():
	default:
		t.Fatal("daemon not stopped")
	}
}

func TestDaemon_Relaunch(t *testing.T) {
	f := newFixture(t, "")
	f.daemon.Load()
	defer f.daemon.Unload()

	require.NoError(t, f.daemon.RunCommand(CommandRelaunch))
	assert.True(t, f.host.Process.Relaunched)
	assert.True(t, f.host.Process.Exited)
	assert.Equal(t, 0, f.host.Process.ExitCode)
}

func TestDaemon_RelaunchFailureKeepsRunning(t *testing.T) {
	f := newFixture(t, "")
	f.host.Process.FailRelaunch = true
	f.daemon.Load()
	defer f.daemon.Unload()

	f.daemon.Relaunch()

	assert.False(t, f.host.Process.Exited)
}

func TestDaemon_RunUnknownCommand(t *testing.T) {
	f := newFixture(t, "")
	f.daemon.Load()
	defer f.daemon.Unload()

	assert.Error(t, f.daemon.RunCommand("no-such-command"))
}

func TestDaemon_GetStatus(t *testing.T) {
	f := newFixture(t, "")
	f.daemon.Load()
	defer f.daemon.Unload()

	status := f.daemon.GetStatus()

	assert.Equal(t, "Research", status["vault"])
	assert.Equal(t, true, status["tray"])
	assert.Equal(t, "passive", status["close_guard"])
	assert.Equal(t, 1, status["windows"])
	assert.Equal(t, map[string]string{
		"toggle-visibility": "CmdOrCtrl+Shift+Tab",
		"quick-note":        "CmdOrCtrl+Shift+Q",
	}, status["hotkeys"])
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"ALL", zapcore.DebugLevel},
		{"TRACE", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"MARK", zapcore.InfoLevel},
		{" WARN ", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"FATAL", zapcore.FatalLevel},
		{"OFF", zapcore.FatalLevel + 1},
		{"verbose", zapcore.ErrorLevel},
		{"", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDaemon_LoadTwiceThenUnload(t *testing.T) {
	f := newFixture(t, `{"runInBackground": true}`)
	f.daemon.Load()
	f.daemon.Load()

	assert.Equal(t, 1, f.host.Trays.Live())
	assert.Equal(t, 1, f.host.Shortcuts.Bindings("CmdOrCtrl+Shift+Q"))
	assert.Equal(t, windows.Intercepting, f.daemon.Guard().State())

	f.daemon.Unload()
	f.host.Windows.Open()

	assert.Len(t, f.daemon.Registry().AllWindows(), 1)
	assert.Equal(t, 0, f.host.Trays.Live())
	assert.Equal(t, 0, f.host.Shortcuts.Bindings("CmdOrCtrl+Shift+Q"))
	assert.False(t, f.host.Windows.HasCloseHandler())
}

func TestDaemon_DeferredHideOnLaunch(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(`{"runInBackground": true, "hideOnLaunch": true}`), 0o644))

	h := memhost.New("Research")
	file := settings.NewFileFs(fs, settingsPath, zap.NewNop())
	d := NewDaemon(h.Capabilities(), file, Options{DeferHideOnLaunch: true}, zaptest.NewLogger(t))
	main := h.Windows.MainWindow()

	d.Load()
	defer d.Unload()
	assert.True(t, main.IsVisible(), "windows stay up until the host is ready")

	d.HideOnLaunch()
	assert.False(t, main.IsVisible())
}

func TestDaemon_HideOnLaunchAfterUnloadIsNoop(t *testing.T) {
	f := newFixture(t, `{"hideOnLaunch": true}`)
	f.daemon.Load()
	f.daemon.ShowAll()
	f.daemon.Unload()

	f.daemon.HideOnLaunch()

	assert.True(t, f.host.Windows.MainWindow().IsVisible())
}
