package settings

// Option keys
const (
	KeyLaunchOnStartup         = "launchOnStartup"
	KeyHideOnLaunch            = "hideOnLaunch"
	KeyRunInBackground         = "runInBackground"
	KeyHideTaskbarIcon         = "hideTaskbarIcon"
	KeyCreateTrayIcon          = "createTrayIcon"
	KeyTrayIconImage           = "trayIconImage"
	KeyTrayIconTooltip         = "trayIconTooltip"
	KeyToggleWindowFocusHotkey = "toggleWindowFocusHotkey"
	KeyQuickNoteLocation       = "quickNoteLocation"
	KeyQuickNoteDateFormat     = "quickNoteDateFormat"
	KeyQuickNoteHotkey         = "quickNoteHotkey"
	KeyLogLevel                = "logLevel"
)

// DefaultDateFormat is the default quick note filename pattern
const DefaultDateFormat = "YYYY-MM-DD"

// DefaultIcon is a 16x16 PNG vault icon
const DefaultIcon = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAABAAAAAQCAYAAAAf8/9hAAAAAXNSR0IArs4c6QAAAARnQU1BAACxjwv8YQUAAAAJcEhZcwAADsMAAA7DAcdvqGQAAAHZSURBVDhPlZKxTxRBFMa/XZcF7nIG7mjxjoRCwomJxgsFdhaASqzQxFDzB1AQKgstLGxIiBQGJBpiCCGx8h+wgYaGgAWNd0dyHofeEYVwt/PmOTMZV9aDIL/s5pvZvPfN9yaL/+HR3eXcypta0m4juFbP5GHuXc9IbunDFc9db/G81/ZzhDMN7g8td47mll4R5BfHwZN4LOaA+fHa259PbUmIYzWkt3e2NZNo3/V9v1vvU6kkstk+tLW3ItUVr/m+c3N8MlkwxYqmBFcbwUQQCNOcyVzDwEAWjuPi5DhAMV/tKOYPX5hCyz8Gz1zX5SmWjBvZfmTSaRBJkGAIoxJHv+pVW2yIGNxOJ8bUVNcFEWLxuG1ia6JercTbttwQTeDwPS0kCMXiXtgk/jQrFUw7ptYSMWApF40yo/ytjHq98fdk3ayVE+cn2CxMb6ruz9qAJKFUKoWza1VJSi/n0+ffgYHdWW2gHuxXymg0gjCB0sjpmiaDnkL3RzDyzLqBUKns2ztQqUR0fk2TwSrGSf1eczqF5vsPZRCQSSAFLk6gqctgQRkc6TWRQLV2YMYQki9OoNkqzFQ9r+WOGuW5CrJbOzyAlPKr6MSGLbkcDwbf35oY/jRkt6cAfgNwowruAMz9AgAAAABJRU5ErkJggg=="

// Log levels accepted by the logLevel option
const (
	LogLevelAll   = "ALL"
	LogLevelTrace = "TRACE"
	LogLevelDebug = "DEBUG"
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
	LogLevelFatal = "FATAL"
	LogLevelMark  = "MARK"
	LogLevelOff   = "OFF"
)

// Option describes a single named setting
type Option struct {
	Key         string
	Kind        Kind
	Default     Value // optional; falls back to the global Defaults table
	Section     string
	Description string
	Placeholder string
	Hidden      bool // not rendered by the settings surface
}

// Defaults is the global default table. Every catalog key has an entry.
var Defaults = map[string]Value{
	KeyCreateTrayIcon:          Toggle(false),
	KeyHideOnLaunch:            Toggle(false),
	KeyHideTaskbarIcon:         Toggle(false),
	KeyLaunchOnStartup:         Toggle(false),
	KeyLogLevel:                Text(LogLevelError),
	KeyQuickNoteDateFormat:     DatePattern(DefaultDateFormat),
	KeyQuickNoteHotkey:         Accelerator("CmdOrCtrl+Shift+Q"),
	KeyQuickNoteLocation:       Text("Notes"),
	KeyRunInBackground:         Toggle(false),
	KeyToggleWindowFocusHotkey: Accelerator("Meta+Shift+Home"),
	KeyTrayIconImage:           Image(DefaultIcon),
	KeyTrayIconTooltip:         Text(""),
}

const acceleratorHelp = "This hotkey is registered globally and will be detected even if the vault " +
	"does not have keyboard focus. Format: Electron-style accelerator, e.g. CmdOrCtrl+Shift+Q."

// Catalog options, in display order
var (
	LaunchOnStartup = Option{
		Key:         KeyLaunchOnStartup,
		Kind:        KindToggle,
		Default:     Toggle(false),
		Section:     "Window management",
		Description: "Open the vault automatically whenever you log into your computer.",
	}
	HideOnLaunch = Option{
		Key:     KeyHideOnLaunch,
		Kind:    KindToggle,
		Default: Toggle(false),
		Section: "Window management",
		Description: "Minimizes windows automatically whenever the app is launched. If \"Run in background\" " +
			"is enabled, windows are hidden to the tray instead of minimized to the taskbar.",
	}
	RunInBackground = Option{
		Key:     KeyRunInBackground,
		Kind:    KindToggle,
		Default: Toggle(false),
		Section: "Window management",
		Description: "Hides the app and keeps it running in the background instead of quitting it " +
			"when pressing the window close button or the toggle focus hotkey.",
	}
	HideTaskbarIcon = Option{
		Key:     KeyHideTaskbarIcon,
		Kind:    KindToggle,
		Default: Toggle(false),
		Section: "Window management",
		Description: "Hides the window icon from the dock/taskbar. Enabling the tray icon first is " +
			"recommended. May not work on Linux.",
	}
	CreateTrayIcon = Option{
		Key:     KeyCreateTrayIcon,
		Kind:    KindToggle,
		Default: Toggle(true),
		Section: "Window management",
		Description: "Adds a tray/menubar icon that brings hidden windows back on click and offers " +
			"relaunch and full quit from its menu.",
	}
	TrayIconImage = Option{
		Key:         KeyTrayIconImage,
		Kind:        KindImage,
		Default:     Image(DefaultIcon),
		Section:     "Window management",
		Description: "Image used by the tray/menubar icon. Recommended size: 16x16.",
	}
	TrayIconTooltip = Option{
		Key:     KeyTrayIconTooltip,
		Kind:    KindText,
		Default: Text("{{vault}} | Vault"),
		Section: "Window management",
		Description: "Title identifying the tray icon. The {{vault}} placeholder is replaced by " +
			"the vault name.",
	}
	ToggleWindowFocusHotkey = Option{
		Key:         KeyToggleWindowFocusHotkey,
		Kind:        KindHotkey,
		Default:     Accelerator("CmdOrCtrl+Shift+Tab"),
		Section:     "Window management",
		Description: acceleratorHelp,
	}
	QuickNoteLocation = Option{
		Key:         KeyQuickNoteLocation,
		Kind:        KindText,
		Section:     "Quick notes",
		Description: "New quick notes will be placed in this folder.",
		Placeholder: "Example: notes/quick",
	}
	QuickNoteDateFormat = Option{
		Key:         KeyQuickNoteDateFormat,
		Kind:        KindMoment,
		Default:     DatePattern(DefaultDateFormat),
		Section:     "Quick notes",
		Description: "New quick notes will use a filename of this pattern (moment.js tokens).",
	}
	QuickNoteHotkey = Option{
		Key:         KeyQuickNoteHotkey,
		Kind:        KindHotkey,
		Default:     Accelerator("CmdOrCtrl+Shift+Q"),
		Section:     "Quick notes",
		Description: acceleratorHelp,
	}
	LogLevel = Option{
		Key:         KeyLogLevel,
		Kind:        KindText,
		Section:     "Diagnostics",
		Description: "Minimum log level: ALL, TRACE, DEBUG, INFO, WARN, ERROR, FATAL, MARK or OFF.",
		Hidden:      true,
	}
)

// Catalog returns every known option in display order
func Catalog() []Option {
	return []Option{
		LaunchOnStartup,
		HideOnLaunch,
		RunInBackground,
		HideTaskbarIcon,
		CreateTrayIcon,
		TrayIconImage,
		TrayIconTooltip,
		ToggleWindowFocusHotkey,
		QuickNoteLocation,
		QuickNoteDateFormat,
		QuickNoteHotkey,
		LogLevel,
	}
}

// Lookup finds a catalog option by key
func Lookup(key string) (Option, bool) {
	for _, opt := range Catalog() {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}
